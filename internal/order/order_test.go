package order

import (
	"errors"
	"reflect"
	"testing"

	"github.com/noah-isme/checkout-api/internal/catalog"
)

func mustTime(t *testing.T, s string) *TimeOfDay {
	t.Helper()
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return &parsed
}

func TestNewPreservesInputOrder(t *testing.T) {
	at := mustTime(t, "18:00")
	o := New([]ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Drink, Quantity: 2},
		{Kind: catalog.Starter, Quantity: 1},
	}, at)

	if len(o.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(o.Lines))
	}
	wantKinds := []catalog.Kind{catalog.Main, catalog.Drink, catalog.Starter}
	for i, ln := range o.Lines {
		if ln.Kind != wantKinds[i] {
			t.Fatalf("line %d kind = %s, want %s", i, ln.Kind, wantKinds[i])
		}
		if ln.PlacedAt == nil || *ln.PlacedAt != *at {
			t.Fatalf("line %d not stamped with the shared time", i)
		}
	}
}

func TestAddKeepsBatchesAsSeparateLines(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, mustTime(t, "18:00"))
	o.Add([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, mustTime(t, "20:15"))

	if len(o.Lines) != 2 {
		t.Fatalf("batches must not merge, got %d lines", len(o.Lines))
	}
	if o.Lines[0].PlacedAt.String() != "18:00" || o.Lines[1].PlacedAt.String() != "20:15" {
		t.Fatal("each batch must keep its own placement time")
	}
	if o.Quantity(catalog.Drink) != 3 {
		t.Fatalf("drink total = %d, want 3", o.Quantity(catalog.Drink))
	}
}

func TestAddWithoutTime(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Main, Quantity: 1}}, nil)
	if o.Lines[0].PlacedAt != nil {
		t.Fatal("absent time must stay nil")
	}
}

func TestCancelPerLineReducesAndDrops(t *testing.T) {
	at := mustTime(t, "18:00")
	o := New([]ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Drink, Quantity: 2},
	}, at)

	if err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, CancelPerLine); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Quantity(catalog.Drink) != 1 {
		t.Fatalf("drink total = %d, want 1", o.Quantity(catalog.Drink))
	}
	if o.Lines[1].PlacedAt == nil || o.Lines[1].PlacedAt.String() != "18:00" {
		t.Fatal("reduced line must keep its placement time")
	}

	if err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, CancelPerLine); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(o.Lines) != 1 {
		t.Fatal("a line reduced to zero must be dropped, not retained")
	}
}

func TestCancelPerLineAppliesToEveryMatchingLine(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, mustTime(t, "18:00"))
	o.Add([]ItemRequest{{Kind: catalog.Drink, Quantity: 3}}, mustTime(t, "20:00"))

	// The requested amount is applied against each matching line
	// independently, not decremented across them.
	if err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, CancelPerLine); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Quantity(catalog.Drink) != 1 {
		t.Fatalf("drink total = %d, want 1 (2 removed from each line)", o.Quantity(catalog.Drink))
	}
	if len(o.Lines) != 1 {
		t.Fatalf("expected the emptied line dropped, got %d lines", len(o.Lines))
	}
}

func TestCancelPerLineFailsOnShortLine(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, nil)
	o.Add([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, nil)
	before := append([]Line(nil), o.Lines...)

	err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, CancelPerLine)
	var cancelErr *CancelError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected CancelError, got %v", err)
	}
	if cancelErr.Kind != catalog.Drink || cancelErr.Requested != 2 || cancelErr.Available != 1 {
		t.Fatalf("unexpected error detail %+v", cancelErr)
	}
	if !reflect.DeepEqual(o.Lines, before) {
		t.Fatal("a failed cancel must leave the order untouched")
	}
}

func TestCancelAggregateConsumesAcrossLines(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, mustTime(t, "18:00"))
	o.Add([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, mustTime(t, "20:00"))

	if err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 3}}, CancelAggregate); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Quantity(catalog.Drink) != 0 || len(o.Lines) != 0 {
		t.Fatalf("expected all drinks consumed, got %d lines", len(o.Lines))
	}
}

func TestCancelAggregateFailsOnKindTotal(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Drink, Quantity: 2}}, nil)
	o.Add([]ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, nil)
	before := append([]Line(nil), o.Lines...)

	err := o.Cancel([]ItemRequest{{Kind: catalog.Drink, Quantity: 4}}, CancelAggregate)
	var cancelErr *CancelError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected CancelError, got %v", err)
	}
	if cancelErr.Available != 3 {
		t.Fatalf("aggregate availability = %d, want 3", cancelErr.Available)
	}
	if !reflect.DeepEqual(o.Lines, before) {
		t.Fatal("a failed cancel must leave the order untouched")
	}
}

func TestCancelDuplicateKindsOverwrite(t *testing.T) {
	o := New([]ItemRequest{{Kind: catalog.Main, Quantity: 3}}, nil)

	// Later entries for the same kind replace earlier ones; they are not
	// summed.
	err := o.Cancel([]ItemRequest{
		{Kind: catalog.Main, Quantity: 3},
		{Kind: catalog.Main, Quantity: 1},
	}, CancelPerLine)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Quantity(catalog.Main) != 2 {
		t.Fatalf("main total = %d, want 2", o.Quantity(catalog.Main))
	}
}

func TestCancelUntouchedKindsKept(t *testing.T) {
	o := New([]ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Starter, Quantity: 1},
	}, mustTime(t, "12:30"))

	if err := o.Cancel([]ItemRequest{{Kind: catalog.Main, Quantity: 1}}, CancelPerLine); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Quantity(catalog.Starter) != 1 {
		t.Fatal("kinds absent from the request must be kept unchanged")
	}
}

func TestParseCancelStrategy(t *testing.T) {
	for input, want := range map[string]CancelStrategy{
		"":          CancelPerLine,
		"per-line":  CancelPerLine,
		"aggregate": CancelAggregate,
	} {
		got, err := ParseCancelStrategy(input)
		if err != nil {
			t.Fatalf("ParseCancelStrategy(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseCancelStrategy(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseCancelStrategy("partial"); err == nil {
		t.Fatal("unknown strategy must be rejected")
	}
}
