package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/order"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cutoff, err := order.ParseTimeOfDay("19:00")
	if err != nil {
		t.Fatalf("parse cutoff: %v", err)
	}
	return Config{
		UnitPrices: map[catalog.Kind]decimal.Decimal{
			catalog.Main:    decimal.RequireFromString("10.00"),
			catalog.Starter: decimal.RequireFromString("5.00"),
			catalog.Drink:   decimal.RequireFromString("4.00"),
		},
		ServiceChargeRate: decimal.RequireFromString("0.10"),
		DrinkDiscountRate: decimal.RequireFromString("0.5"),
		DiscountCutoff:    cutoff,
	}
}

func at(t *testing.T, s string) *order.TimeOfDay {
	t.Helper()
	parsed, err := order.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return &parsed
}

func TestTotalBeforeCutoff(t *testing.T) {
	// 2 mains = 20.00, service charge 2.00, 2 drinks at half price = 4.00.
	o := order.New([]order.ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Drink, Quantity: 2},
	}, at(t, "18:00"))

	total, err := Total(o.Lines, testConfig(t))
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "26" {
		t.Fatalf("total = %s, want 26", total)
	}
}

func TestTotalAfterCutoff(t *testing.T) {
	o := order.New([]order.ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Drink, Quantity: 2},
	}, at(t, "20:00"))

	total, err := Total(o.Lines, testConfig(t))
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "30" {
		t.Fatalf("total = %s, want 30", total)
	}
}

func TestTotalAtCutoffGetsNoDiscount(t *testing.T) {
	cfg := testConfig(t)
	atCutoff := order.New([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, at(t, "19:00"))
	justBefore := order.New([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, at(t, "18:59"))

	total, err := Total(atCutoff.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "4" {
		t.Fatalf("cutoff-equal drink = %s, want full price 4", total)
	}
	total, err = Total(justBefore.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "2" {
		t.Fatalf("pre-cutoff drink = %s, want discounted 2", total)
	}
}

func TestTotalWithoutTimeGetsNoDiscount(t *testing.T) {
	o := order.New([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 3}}, nil)
	total, err := Total(o.Lines, testConfig(t))
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "12" {
		t.Fatalf("total = %s, want 12", total)
	}
}

func TestDrinksCarryNoServiceCharge(t *testing.T) {
	o := order.New([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 5}}, at(t, "21:00"))
	total, err := Total(o.Lines, testConfig(t))
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "20" {
		t.Fatalf("drink-only total = %s, want plain drink subtotal 20", total)
	}
}

func TestTotalIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	o := order.New([]order.ItemRequest{
		{Kind: catalog.Starter, Quantity: 3},
		{Kind: catalog.Drink, Quantity: 1},
	}, at(t, "17:45"))

	first, err := Total(o.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	second, err := Total(o.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("repeated totals differ: %s != %s", first, second)
	}
}

func TestMixedBatchesScenario(t *testing.T) {
	// Scenario: order at 18:00, starter added at 20:00, one drink
	// cancelled. Totals must always equal a from-scratch recomputation of
	// the surviving lines.
	cfg := testConfig(t)
	o := order.New([]order.ItemRequest{
		{Kind: catalog.Main, Quantity: 2},
		{Kind: catalog.Drink, Quantity: 2},
	}, at(t, "18:00"))
	o.Add([]order.ItemRequest{{Kind: catalog.Starter, Quantity: 1}}, at(t, "20:00"))
	if err := o.Cancel([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, order.CancelPerLine); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	total, err := Total(o.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	// food 25.00 + service charge 2.50 + one discounted drink 2.00
	if total.String() != "29.5" {
		t.Fatalf("total = %s, want 29.5", total)
	}

	rebuilt := order.New([]order.ItemRequest{{Kind: catalog.Main, Quantity: 2}}, at(t, "18:00"))
	rebuilt.Add([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, at(t, "18:00"))
	rebuilt.Add([]order.ItemRequest{{Kind: catalog.Starter, Quantity: 1}}, at(t, "20:00"))
	fresh, err := Total(rebuilt.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.Equal(fresh) {
		t.Fatalf("mutated order total %s != from-scratch total %s", total, fresh)
	}
}

func TestTotalRoundsHalfUp(t *testing.T) {
	cutoff, _ := order.ParseTimeOfDay("19:00")
	cfg := Config{
		UnitPrices: map[catalog.Kind]decimal.Decimal{
			catalog.Main:    decimal.RequireFromString("3.335"),
			catalog.Starter: decimal.Zero,
			catalog.Drink:   decimal.Zero,
		},
		ServiceChargeRate: decimal.Zero,
		DrinkDiscountRate: decimal.Zero,
		DiscountCutoff:    cutoff,
	}
	o := order.New([]order.ItemRequest{{Kind: catalog.Main, Quantity: 1}}, nil)
	total, err := Total(o.Lines, cfg)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total.String() != "3.34" {
		t.Fatalf("total = %s, want 3.34 (half-up)", total)
	}
}

func TestTotalMissingPrice(t *testing.T) {
	cfg := testConfig(t)
	delete(cfg.UnitPrices, catalog.Drink)
	o := order.New([]order.ItemRequest{{Kind: catalog.Drink, Quantity: 1}}, nil)

	_, err := Total(o.Lines, cfg)
	var missing *MissingPriceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPriceError, got %v", err)
	}
	if missing.Kind != catalog.Drink {
		t.Fatalf("missing kind = %s, want drink", missing.Kind)
	}
}

func TestValidate(t *testing.T) {
	cfg := testConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	incomplete := testConfig(t)
	delete(incomplete.UnitPrices, catalog.Starter)
	if err := incomplete.Validate(); !errors.Is(err, ErrIncompleteConfig) {
		t.Fatalf("expected ErrIncompleteConfig, got %v", err)
	}

	badRate := testConfig(t)
	badRate.ServiceChargeRate = decimal.RequireFromString("1.5")
	if err := badRate.Validate(); !errors.Is(err, ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange, got %v", err)
	}

	negative := testConfig(t)
	negative.UnitPrices[catalog.Main] = decimal.RequireFromString("-1")
	if err := negative.Validate(); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
}
