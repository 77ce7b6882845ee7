package dialogue

import (
	"fmt"
	"math/rand"

	"github.com/RGJohana/Bot-Frozen/internal/inventory"
	"github.com/RGJohana/Bot-Frozen/internal/logging"
	"github.com/RGJohana/Bot-Frozen/internal/model"
	"github.com/RGJohana/Bot-Frozen/internal/nlp"
	"github.com/RGJohana/Bot-Frozen/internal/order"
)

// Reply is what the surrounding I/O loop prints after one user line.
// Finished signals that the interactive portion is over; the caller must
// then render Report and stop reading input.
type Reply struct {
	Lines    []string
	Prompt   string
	Finished bool
}

// Session ties the pipeline together for one user: classification of free
// text, hand-off into the order dialogue when an order-triggering intent
// fires, and routing of subsequent lines into the active dialogue. One
// Session serves one user at a time; nothing here is safe for concurrent
// use.
type Session struct {
	artifacts  *model.Artifacts
	classifier model.Classifier
	selector   *Selector
	inv        *inventory.Inventory
	ledger     *order.Ledger

	active *OrderDialogue
	log    *logging.Logger
}

// NewSession wires a session over already-loaded artifacts. A nil rng gives
// non-deterministic response variants, which is what production wants.
func NewSession(arts *model.Artifacts, inv *inventory.Inventory, threshold float64, rng *rand.Rand) *Session {
	return &Session{
		artifacts:  arts,
		classifier: arts.Network,
		selector:   NewSelector(arts.Responses, threshold, rng),
		inv:        inv,
		ledger:     order.NewLedger(),
		log:        logging.Get(logging.CategorySession),
	}
}

// Ledger exposes the session's confirmed orders.
func (s *Session) Ledger() *order.Ledger { return s.ledger }

// InOrderFlow reports whether an order dialogue is currently consuming
// input lines.
func (s *Session) InOrderFlow() bool { return s.active != nil }

// HandleLine processes one raw user line. Outside the order flow the line
// is classified and answered; inside it the line feeds the state machine.
func (s *Session) HandleLine(text string) (Reply, error) {
	if s.active != nil {
		return s.feedDialogue(text), nil
	}

	lemmas := nlp.Lemmatize(nlp.Tokenize(nlp.Normalize(text)), s.artifacts.Lemmas)
	vector := nlp.Vectorize(lemmas, s.artifacts.Vocab)
	dist, err := s.classifier.Classify(vector)
	if err != nil {
		return Reply{}, fmt.Errorf("classifying input: %w", err)
	}

	sel := s.selector.Select(dist)
	s.log.Debug("classified input: understood=%v label=%d score=%.3f lemmas=%d",
		sel.Understood, sel.Label, sel.Score, len(lemmas))

	if !sel.Understood {
		return Reply{Lines: []string{sel.Response}}, nil
	}
	if !sel.TriggersOrder {
		return Reply{Lines: []string{sel.Response}}, nil
	}

	s.active = NewOrderDialogue(s.inv, s.ledger)
	opening := s.active.Open()
	return Reply{Lines: []string{sel.Response}, Prompt: opening.Prompt}, nil
}

func (s *Session) feedDialogue(text string) Reply {
	turn := s.active.Feed(text)
	if !turn.Done {
		return Reply{Lines: turn.Lines, Prompt: turn.Prompt}
	}

	s.log.Info("order dialogue finished: outcome=%d orders=%d", turn.Outcome, len(s.ledger.Records()))
	s.active = nil
	return Reply{Lines: turn.Lines, Finished: true}
}

// StockListing renders the products that still have stock, in table order.
func (s *Session) StockListing() []string {
	lines := []string{msgStockHeading}
	for _, p := range s.inv.ListAvailable() {
		lines = append(lines, fmt.Sprintf("Producto: %s, Cantidad: %d", p.Name, p.Quantity))
	}
	return lines
}

// Report renders the confirmed-orders summary shown when the session ends.
func (s *Session) Report() []string {
	if s.ledger.Empty() {
		return []string{"No hay pedidos confirmados."}
	}

	lines := []string{"Pedidos Confirmados:"}
	for _, r := range s.ledger.Records() {
		lines = append(lines, fmt.Sprintf("Producto: %s, Cantidad: %d, Descuento: %s", r.Product, r.Quantity, r.DiscountCode))
	}
	return lines
}
