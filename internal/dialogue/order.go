package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RGJohana/Bot-Frozen/internal/inventory"
	"github.com/RGJohana/Bot-Frozen/internal/order"
)

// maxAttempts is the order-flow budget per sub-session. Input-validation
// re-prompts are free; only business rejections and confirmations spend it.
const maxAttempts = 3

// affirmative is the exact lowercase token that restarts the order flow at
// the repeat prompt.
const affirmative = "s"

// State identifies which input the order dialogue is waiting for.
type State int

const (
	StateAwaitProduct State = iota
	StateAwaitQuantity
	StateAwaitDiscount
	StateAwaitRepeat
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitProduct:
		return "await_product"
	case StateAwaitQuantity:
		return "await_quantity"
	case StateAwaitDiscount:
		return "await_discount"
	case StateAwaitRepeat:
		return "await_repeat"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome classifies how a dialogue reached StateDone.
type Outcome int

const (
	// OutcomeNone means the dialogue is still running.
	OutcomeNone Outcome = iota
	// OutcomeCompleted means the user declined to place another order.
	OutcomeCompleted
	// OutcomeExhausted means the attempt budget ran out.
	OutcomeExhausted
)

// Turn is the visible result of feeding one input line to the dialogue:
// zero or more lines to print, the next prompt (empty once done), and the
// completion flags.
type Turn struct {
	Lines   []string
	Prompt  string
	Done    bool
	Outcome Outcome
}

// User-facing dialogue text.
const (
	promptProduct  = "Me indicas el sabor para armar pedido, gracias: "
	promptQuantity = "Ingrese la cantidad deseada: "
	promptDiscount = "Ingrese su código de descuento (si no tiene, presione Enter): "
	promptRepeat   = "¿Desea realizar otro pedido con otro sabor? (s/n): "

	msgBadProduct       = "El nombre del producto no debe estar vacío, con números o con caracteres especiales."
	msgBadQuantityValue = "Por favor, ingrese un valor numérico válido para la cantidad."
	msgBadQuantityRange = "La cantidad no puede ser cero o negativa. Por favor, ingrese un valor mayor a cero."
	msgDiscountCodes    = "Códigos de descuentos: FROZEN-----, FROZEN-----, FROZEN-------"
	msgConfirmed        = "Código de descuento válido. ¡Pedido confirmado!"
	msgConfirmedNoCode  = "Pedido confirmado sin descuento."
	msgInvalidCode      = "Código de descuento inválido. Por favor, vuelva a intentarlo."
	msgStockHeading     = "Los productos en stock son:"
	msgExhausted        = "Se han agotado los intentos. Por favor, vuelva a intentarlo más tarde."
	msgFarewell         = "Gracias por su pedido. ¡Hasta luego!"
)

// OrderDialogue is the bounded-attempt order state machine. It owns no I/O;
// Feed consumes one user line per call and returns what to print next. The
// inventory and ledger are shared with the session that created it.
type OrderDialogue struct {
	state    State
	attempts int
	product  string
	quantity int

	inv    *inventory.Inventory
	ledger *order.Ledger
	titler cases.Caser
}

// NewOrderDialogue starts a dialogue in StateAwaitProduct with a full
// attempt budget.
func NewOrderDialogue(inv *inventory.Inventory, ledger *order.Ledger) *OrderDialogue {
	return &OrderDialogue{
		state:    StateAwaitProduct,
		attempts: maxAttempts,
		inv:      inv,
		ledger:   ledger,
		titler:   cases.Title(language.Spanish),
	}
}

// State returns the input the dialogue is currently waiting for.
func (d *OrderDialogue) State() State { return d.state }

// Attempts returns the remaining attempt budget.
func (d *OrderDialogue) Attempts() int { return d.attempts }

// Open returns the opening prompt without consuming input.
func (d *OrderDialogue) Open() Turn {
	return Turn{Prompt: promptProduct}
}

// Feed advances the state machine with one input line.
func (d *OrderDialogue) Feed(input string) Turn {
	switch d.state {
	case StateAwaitProduct:
		return d.feedProduct(input)
	case StateAwaitQuantity:
		return d.feedQuantity(input)
	case StateAwaitDiscount:
		return d.feedDiscount(input)
	case StateAwaitRepeat:
		return d.feedRepeat(input)
	default:
		return Turn{Done: true, Outcome: OutcomeCompleted}
	}
}

// feedProduct validates and canonicalizes the product name. Empty or
// all-numeric input re-prompts without spending the budget.
func (d *OrderDialogue) feedProduct(input string) Turn {
	name := strings.TrimSpace(input)
	if name == "" || allDigits(name) {
		return Turn{Lines: []string{msgBadProduct}, Prompt: promptProduct}
	}

	d.product = d.canonicalName(name)
	d.state = StateAwaitQuantity
	return Turn{Prompt: promptQuantity}
}

// feedQuantity parses the quantity and, once valid, immediately runs the
// availability check. Bad input re-prompts without spending the budget.
func (d *OrderDialogue) feedQuantity(input string) Turn {
	qty, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return Turn{Lines: []string{msgBadQuantityValue}, Prompt: promptQuantity}
	}
	if qty <= 0 {
		return Turn{Lines: []string{msgBadQuantityRange}, Prompt: promptQuantity}
	}

	d.quantity = qty
	return d.checkAvailability()
}

// checkAvailability is the branch point after a valid quantity: available
// products always move on to the discount prompt, anything else explains
// itself, shows the stock listing, and spends one attempt.
func (d *OrderDialogue) checkAvailability() Turn {
	if d.inv.IsAvailable(d.product, d.quantity) {
		d.state = StateAwaitDiscount
		return Turn{
			Lines: []string{
				fmt.Sprintf("¡¡¡Genial!!! Producto disponible: %s - Cantidad solicitada: %d", d.product, d.quantity),
				msgDiscountCodes,
			},
			Prompt: promptDiscount,
		}
	}

	var lines []string
	if p, ok := d.inv.Get(d.product); ok && p.Quantity < d.quantity {
		lines = append(lines, fmt.Sprintf("Lo siento, el producto '%s' está disponible, pero no hay suficiente stock para su orden.", d.product))
	} else {
		lines = append(lines, fmt.Sprintf("Lo siento, el producto '%s' no está disponible.", d.product))
	}
	lines = append(lines, d.stockListing()...)
	return d.spendAttempt(lines)
}

// feedDiscount confirms the order. An empty entry confirms with no discount;
// a valid code confirms with it; an invalid code rejects the whole item and
// spends an attempt without touching stock.
func (d *OrderDialogue) feedDiscount(input string) Turn {
	code := strings.TrimSpace(input)
	if code != "" && !order.IsValidDiscount(code) {
		return d.spendAttempt([]string{msgInvalidCode})
	}

	d.inv.Decrement(d.product, d.quantity)
	d.ledger.Append(order.Record{Product: d.product, Quantity: d.quantity, DiscountCode: code})
	d.attempts--

	confirm := msgConfirmed
	if code == "" {
		confirm = msgConfirmedNoCode
	}
	d.state = StateAwaitRepeat
	return Turn{Lines: []string{confirm}, Prompt: promptRepeat}
}

// feedRepeat either restarts the flow with a fresh budget or ends the
// dialogue successfully. Only the exact affirmative token repeats.
func (d *OrderDialogue) feedRepeat(input string) Turn {
	if strings.ToLower(strings.TrimSpace(input)) == affirmative {
		d.attempts = maxAttempts
		d.state = StateAwaitProduct
		return Turn{Prompt: promptProduct}
	}

	d.state = StateDone
	return Turn{Lines: []string{msgFarewell}, Done: true, Outcome: OutcomeCompleted}
}

// spendAttempt charges one attempt for a business rejection and either loops
// back to the product prompt or terminates the dialogue as exhausted.
func (d *OrderDialogue) spendAttempt(lines []string) Turn {
	d.attempts--
	if d.attempts <= 0 {
		d.state = StateDone
		return Turn{
			Lines:   append(lines, msgExhausted),
			Done:    true,
			Outcome: OutcomeExhausted,
		}
	}

	d.state = StateAwaitProduct
	return Turn{Lines: lines, Prompt: promptProduct}
}

// stockListing renders the products that still have stock, in table order.
func (d *OrderDialogue) stockListing() []string {
	lines := []string{msgStockHeading}
	for _, p := range d.inv.ListAvailable() {
		lines = append(lines, fmt.Sprintf("Producto: %s, Cantidad: %d", p.Name, p.Quantity))
	}
	return lines
}

// canonicalName title-cases the trimmed input the way the inventory is
// keyed. "Dulce De Leche" is the one compound name whose canonical casing
// differs from plain title-casing.
func (d *OrderDialogue) canonicalName(name string) string {
	canonical := d.titler.String(strings.ToLower(name))
	if canonical == "Dulce De Leche" {
		canonical = "Dulce de Leche"
	}
	return canonical
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
