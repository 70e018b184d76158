package order

import (
	"slices"

	"github.com/google/uuid"

	"github.com/xenking/lanchonete/internal/domain/catalog"
)

// Order is a customer's order for one session. Items are only ever appended.
type Order struct {
	ID           string
	CustomerName string
	items        []catalog.Item
}

// New creates an empty order with a fresh ID.
func New() *Order {
	return &Order{ID: uuid.New().String()}
}

// Add appends item to the order.
func (o *Order) Add(item catalog.Item) {
	o.items = append(o.items, item)
}

// Items returns the ordered items in insertion order.
func (o *Order) Items() []catalog.Item {
	return slices.Clone(o.items)
}

// Len returns the number of ordered items.
func (o *Order) Len() int {
	return len(o.items)
}

// IsEmpty reports whether nothing was ordered.
func (o *Order) IsEmpty() bool {
	return len(o.items) == 0
}
