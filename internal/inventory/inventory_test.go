package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsAvailable(t *testing.T) {
	inv := Default()

	tests := []struct {
		name string
		qty  int
		want bool
	}{
		{"Chocolate", 1, true},
		{"Chocolate", 3, true},
		{"Chocolate", 4, false},
		{"Limon", 1, false},
		{"Limon", 0, true},
		{"Mango", 0, false},
		{"Mango", 1, false},
		{"chocolate", 1, false}, // matching is exact, casing is the caller's job
	}

	for _, tt := range tests {
		if got := inv.IsAvailable(tt.name, tt.qty); got != tt.want {
			t.Errorf("IsAvailable(%q, %d) = %v, want %v", tt.name, tt.qty, got, tt.want)
		}
	}
}

func TestGet(t *testing.T) {
	inv := Default()

	p, ok := inv.Get("Dulce de Leche")
	if !ok {
		t.Fatal("Get(Dulce de Leche) not found")
	}
	if p.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", p.Quantity)
	}

	if _, ok := inv.Get("Mango"); ok {
		t.Error("Get(Mango) found, want absent")
	}
}

func TestDecrement(t *testing.T) {
	inv := Default()

	if !inv.IsAvailable("Chocolate", 2) {
		t.Fatal("precondition failed: Chocolate=2 should be available")
	}
	inv.Decrement("Chocolate", 2)

	p, _ := inv.Get("Chocolate")
	if p.Quantity != 1 {
		t.Errorf("quantity after decrement = %d, want 1", p.Quantity)
	}
	if p.Quantity < 0 {
		t.Error("quantity went negative")
	}
}

func TestDecrementUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Decrement of unknown product did not panic")
		}
	}()
	Default().Decrement("Mango", 1)
}

func TestListAvailable(t *testing.T) {
	inv := Default()

	want := []Product{
		{Name: "Chocolate", Quantity: 3},
		{Name: "Granizado", Quantity: 10},
		{Name: "Dulce de Leche", Quantity: 5},
	}
	if diff := cmp.Diff(want, inv.ListAvailable()); diff != "" {
		t.Errorf("ListAvailable mismatch (-want +got):\n%s", diff)
	}

	// Draining a product removes it from the listing.
	inv.Decrement("Chocolate", 3)
	for _, p := range inv.ListAvailable() {
		if p.Name == "Chocolate" {
			t.Error("Chocolate still listed with zero stock")
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	inv := Default()
	p, _ := inv.Get("Granizado")
	p.Quantity = 0

	again, _ := inv.Get("Granizado")
	if again.Quantity != 10 {
		t.Errorf("mutating a Get result changed stock: %d", again.Quantity)
	}
}
