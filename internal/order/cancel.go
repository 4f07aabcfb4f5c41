package order

import (
	"fmt"

	"github.com/noah-isme/checkout-api/internal/catalog"
)

// CancelStrategy selects how a cancellation request is validated against
// the order's lines.
type CancelStrategy string

const (
	// CancelPerLine checks and subtracts the full requested amount
	// against every matching line independently. A kind split across two
	// lines therefore loses the requested amount from each of them, and a
	// single line holding fewer units than requested fails the whole
	// call. This matches the service's historical behavior and is the
	// default.
	CancelPerLine CancelStrategy = "per-line"

	// CancelAggregate validates the requested amount against the kind's
	// total across all lines and consumes it front to back.
	CancelAggregate CancelStrategy = "aggregate"
)

// ParseCancelStrategy resolves a config string to a strategy. Empty input
// selects the per-line default.
func ParseCancelStrategy(s string) (CancelStrategy, error) {
	switch CancelStrategy(s) {
	case "":
		return CancelPerLine, nil
	case CancelPerLine, CancelAggregate:
		return CancelStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown cancellation strategy %q", s)
	}
}

// CancelError reports a cancellation that asked for more units of a kind
// than were available on the evaluated scope (one line under per-line, the
// kind total under aggregate).
type CancelError struct {
	Kind      catalog.Kind
	Requested int
	Available int
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("cannot cancel %d of %s, only %d were ordered", e.Requested, e.Kind, e.Available)
}

// Cancel reduces the order by the requested quantities per kind. Later
// request entries for the same kind overwrite earlier ones. Lines reduced
// to zero are dropped; surviving lines keep their placement time. The new
// line list is built speculatively and swapped in only when every
// reduction succeeds, so a failed call leaves the order untouched.
func (o *Order) Cancel(reqs []ItemRequest, strategy CancelStrategy) error {
	amounts := make(map[catalog.Kind]int, len(reqs))
	for _, req := range reqs {
		amounts[req.Kind] = req.Quantity
	}

	var next []Line
	var err error
	switch strategy {
	case CancelAggregate:
		next, err = o.cancelAggregate(reqs, amounts)
	default:
		next, err = o.cancelPerLine(amounts)
	}
	if err != nil {
		return err
	}
	o.Lines = next
	return nil
}

func (o *Order) cancelPerLine(amounts map[catalog.Kind]int) ([]Line, error) {
	next := make([]Line, 0, len(o.Lines))
	for _, ln := range o.Lines {
		requested, ok := amounts[ln.Kind]
		if !ok {
			next = append(next, ln)
			continue
		}
		if requested > ln.Quantity {
			return nil, &CancelError{Kind: ln.Kind, Requested: requested, Available: ln.Quantity}
		}
		if remaining := ln.Quantity - requested; remaining > 0 {
			ln.Quantity = remaining
			next = append(next, ln)
		}
	}
	return next, nil
}

func (o *Order) cancelAggregate(reqs []ItemRequest, amounts map[catalog.Kind]int) ([]Line, error) {
	// Validate in request order so the first offending kind is reported.
	seen := make(map[catalog.Kind]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.Kind] {
			continue
		}
		seen[req.Kind] = true
		requested := amounts[req.Kind]
		if available := o.Quantity(req.Kind); requested > available {
			return nil, &CancelError{Kind: req.Kind, Requested: requested, Available: available}
		}
	}

	remaining := make(map[catalog.Kind]int, len(amounts))
	for kind, qty := range amounts {
		remaining[kind] = qty
	}
	next := make([]Line, 0, len(o.Lines))
	for _, ln := range o.Lines {
		take, ok := remaining[ln.Kind]
		if !ok || take == 0 {
			next = append(next, ln)
			continue
		}
		if take >= ln.Quantity {
			remaining[ln.Kind] = take - ln.Quantity
			continue
		}
		remaining[ln.Kind] = 0
		ln.Quantity -= take
		next = append(next, ln)
	}
	return next, nil
}
