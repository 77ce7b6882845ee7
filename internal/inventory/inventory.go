// Package inventory holds the session-scoped product stock table. One
// Inventory instance is created per session and mutated only through
// Decrement; the session loop is single-threaded, so no locking is needed.
package inventory

import "fmt"

// Product is a stocked item. Name is the unique key; Quantity is never
// negative.
type Product struct {
	Name     string
	Quantity int
}

// Inventory maps product names to remaining stock, preserving the seed
// order for listings.
type Inventory struct {
	products []*Product
	index    map[string]*Product
}

// New builds an Inventory from an ordered seed. Duplicate names keep the
// first entry.
func New(products []Product) *Inventory {
	inv := &Inventory{index: make(map[string]*Product, len(products))}
	for _, p := range products {
		if _, exists := inv.index[p.Name]; exists {
			continue
		}
		item := &Product{Name: p.Name, Quantity: p.Quantity}
		inv.products = append(inv.products, item)
		inv.index[p.Name] = item
	}
	return inv
}

// Default returns the Frozen SRL opening stock.
func Default() *Inventory {
	return New([]Product{
		{Name: "Chocolate", Quantity: 3},
		{Name: "Granizado", Quantity: 10},
		{Name: "Limon", Quantity: 0},
		{Name: "Dulce de Leche", Quantity: 5},
	})
}

// IsAvailable reports whether a product with that exact name exists with at
// least qty units in stock. Unknown names are simply unavailable.
func (inv *Inventory) IsAvailable(name string, qty int) bool {
	p, ok := inv.index[name]
	return ok && p.Quantity >= qty
}

// Get returns a copy of the named product. The second result is false when
// the name is not stocked.
func (inv *Inventory) Get(name string) (Product, bool) {
	p, ok := inv.index[name]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// Decrement subtracts qty from the named product's stock. Callers must have
// verified availability first; calling it for an absent name is a
// programming error, not a recoverable condition.
func (inv *Inventory) Decrement(name string, qty int) {
	p, ok := inv.index[name]
	if !ok {
		panic(fmt.Sprintf("inventory: decrement of unknown product %q", name))
	}
	p.Quantity -= qty
}

// ListAvailable returns the products with stock remaining, in seed order.
func (inv *Inventory) ListAvailable() []Product {
	var available []Product
	for _, p := range inv.products {
		if p.Quantity > 0 {
			available = append(available, *p)
		}
	}
	return available
}
