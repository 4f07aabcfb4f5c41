package order

import (
	"github.com/noah-isme/checkout-api/internal/catalog"
)

// ItemRequest names a catalog kind and a quantity in a create, add or
// cancel call.
type ItemRequest struct {
	Kind     catalog.Kind
	Quantity int
}

// Line is one entry in an order: a kind, how many units of it were asked
// for, and the wall-clock time the batch containing it was submitted.
// PlacedAt is nil when no time was supplied.
type Line struct {
	Kind     catalog.Kind
	Quantity int
	PlacedAt *TimeOfDay
}

// Order is an ordered sequence of lines. Batches added in separate calls
// stay as separate lines even when they share a kind, because each batch
// carries its own placement time and that time drives discount
// eligibility. Lines must only be mutated through the Order methods; the
// slice is exported for read access by the pricing engine.
type Order struct {
	Lines []Line
}

// New builds an order with one line per request, preserving input order.
// All lines share the same placement time. Quantities are recorded as
// given; the transport boundary is responsible for rejecting non-positive
// values.
func New(reqs []ItemRequest, at *TimeOfDay) *Order {
	o := &Order{Lines: make([]Line, 0, len(reqs))}
	o.Add(reqs, at)
	return o
}

// Add appends one new line per request, all stamped with the batch's own
// placement time. Existing lines of the same kind are never merged.
func (o *Order) Add(reqs []ItemRequest, at *TimeOfDay) {
	for _, req := range reqs {
		o.Lines = append(o.Lines, Line{Kind: req.Kind, Quantity: req.Quantity, PlacedAt: at})
	}
}

// Quantity returns the total units of a kind across all lines.
func (o *Order) Quantity(kind catalog.Kind) int {
	var total int
	for _, ln := range o.Lines {
		if ln.Kind == kind {
			total += ln.Quantity
		}
	}
	return total
}
