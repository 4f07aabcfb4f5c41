package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/order"
)

var (
	// ErrIncompleteConfig indicates the price table does not cover the
	// full catalog.
	ErrIncompleteConfig = errors.New("pricing config does not cover the full catalog")
	// ErrRateOutOfRange indicates a rate outside [0, 1].
	ErrRateOutOfRange = errors.New("rate must be between 0 and 1")
	// ErrNegativePrice indicates a negative unit price.
	ErrNegativePrice = errors.New("unit price must not be negative")
)

// Config holds the business rules the engine prices against: per-kind unit
// prices, the food service-charge rate, the early-bird drink discount rate
// and its exclusive cutoff time. A Config is never mutated after
// construction and may be shared read-only across any number of orders.
type Config struct {
	UnitPrices        map[catalog.Kind]decimal.Decimal
	ServiceChargeRate decimal.Decimal
	DrinkDiscountRate decimal.Decimal
	DiscountCutoff    order.TimeOfDay
}

// Validate checks catalog coverage and value ranges. The loader calls this
// once at startup; orders assume a valid config afterwards.
func (c Config) Validate() error {
	for _, kind := range catalog.Kinds() {
		price, ok := c.UnitPrices[kind]
		if !ok {
			return fmt.Errorf("%w: missing price for %s", ErrIncompleteConfig, kind)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: %s priced at %s", ErrNegativePrice, kind, price)
		}
	}
	for name, rate := range map[string]decimal.Decimal{
		"service_charge_rate": c.ServiceChargeRate,
		"drink_discount_rate": c.DrinkDiscountRate,
	} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: %s is %s", ErrRateOutOfRange, name, rate)
		}
	}
	return nil
}
