package dialogue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RGJohana/Bot-Frozen/internal/inventory"
	"github.com/RGJohana/Bot-Frozen/internal/order"
)

func newDialogue(t *testing.T) (*OrderDialogue, *inventory.Inventory, *order.Ledger) {
	t.Helper()
	inv := inventory.Default()
	ledger := order.NewLedger()
	return NewOrderDialogue(inv, ledger), inv, ledger
}

func joined(turn Turn) string { return strings.Join(turn.Lines, "\n") }

func TestOrderConfirmedWithoutDiscount(t *testing.T) {
	d, inv, ledger := newDialogue(t)

	turn := d.Feed("chocolate")
	assert.Equal(t, promptQuantity, turn.Prompt)
	require.Equal(t, StateAwaitQuantity, d.State())

	turn = d.Feed("2")
	require.Equal(t, StateAwaitDiscount, d.State())
	assert.Contains(t, joined(turn), "Producto disponible: Chocolate - Cantidad solicitada: 2")

	turn = d.Feed("")
	require.Equal(t, StateAwaitRepeat, d.State())
	assert.Contains(t, joined(turn), msgConfirmedNoCode)

	p, _ := inv.Get("Chocolate")
	assert.Equal(t, 1, p.Quantity, "stock decremented by order quantity")

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, order.Record{Product: "Chocolate", Quantity: 2, DiscountCode: ""}, records[0])

	turn = d.Feed("n")
	assert.True(t, turn.Done)
	assert.Equal(t, OutcomeCompleted, turn.Outcome)
}

func TestOrderConfirmedWithValidDiscount(t *testing.T) {
	d, inv, ledger := newDialogue(t)

	d.Feed("granizado")
	d.Feed("5")
	turn := d.Feed("FROZENPREMIUM")
	assert.Contains(t, joined(turn), msgConfirmed)

	p, _ := inv.Get("Granizado")
	assert.Equal(t, 5, p.Quantity)

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, order.Record{Product: "Granizado", Quantity: 5, DiscountCode: "FROZENPREMIUM"}, records[0])

	// Declining to continue ends the dialogue successfully.
	turn = d.Feed("no")
	assert.True(t, turn.Done)
	assert.Equal(t, OutcomeCompleted, turn.Outcome)
}

func TestInvalidDiscountRejectsItem(t *testing.T) {
	d, inv, ledger := newDialogue(t)

	d.Feed("chocolate")
	d.Feed("2")
	turn := d.Feed("BOGUS")

	assert.Contains(t, joined(turn), msgInvalidCode)
	assert.Equal(t, StateAwaitProduct, d.State(), "rejection loops back to product prompt")
	assert.Equal(t, 2, d.Attempts(), "rejection costs one attempt")

	p, _ := inv.Get("Chocolate")
	assert.Equal(t, 3, p.Quantity, "stock untouched on rejection")
	assert.True(t, ledger.Empty())
}

func TestProductValidationIsFree(t *testing.T) {
	d, _, _ := newDialogue(t)

	for _, bad := range []string{"", "   ", "123", "42"} {
		turn := d.Feed(bad)
		assert.Contains(t, joined(turn), msgBadProduct, "input %q", bad)
		assert.Equal(t, StateAwaitProduct, d.State())
	}
	assert.Equal(t, maxAttempts, d.Attempts(), "validation re-prompts cost no budget")
}

func TestQuantityValidationIsFree(t *testing.T) {
	d, _, _ := newDialogue(t)
	d.Feed("chocolate")

	for _, bad := range []string{"abc", "", "2.5", "0", "-3"} {
		d.Feed(bad)
		assert.Equal(t, StateAwaitQuantity, d.State(), "input %q", bad)
	}
	assert.Equal(t, maxAttempts, d.Attempts())

	badValue := d.Feed("xx")
	assert.Contains(t, joined(badValue), msgBadQuantityValue)
	badRange := d.Feed("-1")
	assert.Contains(t, joined(badRange), msgBadQuantityRange)
}

func TestInsufficientStock(t *testing.T) {
	d, _, ledger := newDialogue(t)

	d.Feed("limon")
	turn := d.Feed("1")

	out := joined(turn)
	assert.Contains(t, out, "'Limon' está disponible, pero no hay suficiente stock")
	assert.Contains(t, out, msgStockHeading)
	assert.Equal(t, 2, d.Attempts(), "business rejection costs one attempt")
	assert.True(t, ledger.Empty())
}

func TestUnknownProduct(t *testing.T) {
	d, _, ledger := newDialogue(t)

	d.Feed("mango")
	turn := d.Feed("1")

	out := joined(turn)
	assert.Contains(t, out, "'Mango' no está disponible")
	assert.Contains(t, out, msgStockHeading)
	assert.Contains(t, out, "Producto: Chocolate, Cantidad: 3")
	assert.True(t, ledger.Empty())
}

func TestBudgetExhaustion(t *testing.T) {
	d, _, ledger := newDialogue(t)

	for i := 0; i < 2; i++ {
		d.Feed("mango")
		turn := d.Feed("1")
		assert.False(t, turn.Done, "attempt %d should not terminate", i+1)
	}

	d.Feed("mango")
	turn := d.Feed("1")
	require.True(t, turn.Done)
	assert.Equal(t, OutcomeExhausted, turn.Outcome)
	assert.Contains(t, joined(turn), msgExhausted)
	assert.Equal(t, StateDone, d.State())
	assert.True(t, ledger.Empty())
}

func TestRepeatResetsBudget(t *testing.T) {
	d, _, ledger := newDialogue(t)

	// Burn two attempts, then confirm an order.
	d.Feed("mango")
	d.Feed("1")
	d.Feed("mango")
	d.Feed("1")
	require.Equal(t, 1, d.Attempts())

	d.Feed("granizado")
	d.Feed("1")
	turn := d.Feed("")
	require.Equal(t, StateAwaitRepeat, d.State())
	assert.False(t, turn.Done)

	turn = d.Feed("s")
	assert.Equal(t, StateAwaitProduct, d.State())
	assert.Equal(t, maxAttempts, d.Attempts(), "affirmative repeat resets the budget")
	assert.Equal(t, promptProduct, turn.Prompt)
	require.Len(t, ledger.Records(), 1)
}

func TestRepeatRequiresExactToken(t *testing.T) {
	for _, answer := range []string{"si", "yes", "n", "", "ss"} {
		d, _, _ := newDialogue(t)
		d.Feed("granizado")
		d.Feed("1")
		d.Feed("")

		turn := d.Feed(answer)
		assert.True(t, turn.Done, "answer %q should end the dialogue", answer)
		assert.Equal(t, OutcomeCompleted, turn.Outcome)
	}

	// Leading/trailing whitespace and casing are tolerated.
	d, _, _ := newDialogue(t)
	d.Feed("granizado")
	d.Feed("1")
	d.Feed("")
	turn := d.Feed("  S ")
	assert.False(t, turn.Done)
	assert.Equal(t, StateAwaitProduct, d.State())
}

func TestCanonicalProductNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"chocolate", "Chocolate"},
		{"CHOCOLATE", "Chocolate"},
		{"  granizado  ", "Granizado"},
		{"dulce de leche", "Dulce de Leche"},
		{"DULCE DE LECHE", "Dulce de Leche"},
	}

	for _, tt := range tests {
		d, _, _ := newDialogue(t)
		d.Feed(tt.input)
		assert.Equal(t, tt.want, d.product, "input %q", tt.input)
	}
}

func TestMultipleItemsAcrossRepeats(t *testing.T) {
	d, inv, ledger := newDialogue(t)

	d.Feed("chocolate")
	d.Feed("1")
	d.Feed("frozenbasic") // case-insensitive code
	d.Feed("s")

	d.Feed("dulce de leche")
	d.Feed("2")
	d.Feed("")
	turn := d.Feed("n")

	require.True(t, turn.Done)
	records := ledger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Chocolate", records[0].Product)
	assert.Equal(t, "frozenbasic", records[0].DiscountCode)
	assert.Equal(t, "Dulce de Leche", records[1].Product)

	choc, _ := inv.Get("Chocolate")
	ddl, _ := inv.Get("Dulce de Leche")
	assert.Equal(t, 2, choc.Quantity)
	assert.Equal(t, 3, ddl.Quantity)
}
