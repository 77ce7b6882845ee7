// Package order records confirmed orders for end-of-session reporting and
// validates discount codes.
package order

import "github.com/google/uuid"

// Record is one confirmed line item. DiscountCode is empty when no discount
// was applied. Records are immutable once appended.
type Record struct {
	Product      string
	Quantity     int
	DiscountCode string
}

// Ledger is the append-only list of confirmed orders for one session. It is
// never trimmed; the caller reads it back when the session ends.
type Ledger struct {
	sessionID string
	records   []Record
}

// NewLedger starts an empty ledger with a fresh session identifier.
func NewLedger() *Ledger {
	return &Ledger{sessionID: uuid.NewString()}
}

// SessionID returns the identifier assigned at ledger creation.
func (l *Ledger) SessionID() string { return l.sessionID }

// Append adds one confirmed record.
func (l *Ledger) Append(r Record) {
	l.records = append(l.records, r)
}

// Records returns a copy of the confirmed orders in confirmation order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Empty reports whether no order was confirmed this session.
func (l *Ledger) Empty() bool { return len(l.records) == 0 }
