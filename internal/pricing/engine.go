package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/order"
)

// MissingPriceError reports a line whose kind has no entry in the price
// table. A validated config cannot produce it, but config is external
// input and the engine checks defensively.
type MissingPriceError struct {
	Kind catalog.Kind
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no unit price configured for %s", e.Kind)
}

// Total computes the price of the given lines under the config. It is a
// pure function: same lines and config always yield the same value.
//
// Drinks placed strictly before the discount cutoff are charged at
// unit price x (1 - discount rate); a placement time exactly equal to the
// cutoff does not qualify, and a line without a placement time never
// qualifies. The service charge applies to the food subtotal only. The
// final amount is rounded half-up to two decimal places.
func Total(lines []order.Line, cfg Config) (decimal.Decimal, error) {
	food := decimal.Zero
	drinks := decimal.Zero
	for _, ln := range lines {
		price, err := linePrice(ln, cfg)
		if err != nil {
			return decimal.Zero, err
		}
		if ln.Kind.IsFood() {
			food = food.Add(price)
		} else {
			drinks = drinks.Add(price)
		}
	}
	serviceCharge := food.Mul(cfg.ServiceChargeRate)
	total := food.Add(serviceCharge).Add(drinks)
	return total.Round(2), nil
}

func linePrice(ln order.Line, cfg Config) (decimal.Decimal, error) {
	unit, ok := cfg.UnitPrices[ln.Kind]
	if !ok {
		return decimal.Zero, &MissingPriceError{Kind: ln.Kind}
	}
	if ln.Kind == catalog.Drink && earlyBird(ln.PlacedAt, cfg.DiscountCutoff) {
		unit = unit.Mul(decimal.NewFromInt(1).Sub(cfg.DrinkDiscountRate))
	}
	return unit.Mul(decimal.NewFromInt(int64(ln.Quantity))), nil
}

func earlyBird(at *order.TimeOfDay, cutoff order.TimeOfDay) bool {
	return at != nil && at.Before(cutoff)
}
