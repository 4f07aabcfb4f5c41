package config

import (
	"fmt"

	yamlparser "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/order"
	"github.com/noah-isme/checkout-api/internal/pricing"
)

// pricingKeys are the fields a pricing document must carry.
var pricingKeys = []string{
	"item_prices",
	"service_charge_rate",
	"drink_discount_rate",
	"discount_cutoff_time",
}

// LoadPricing reads and validates the pricing rules from a YAML document.
// The returned config covers the whole catalog or an error is returned;
// callers may treat a loaded config as valid from then on.
func LoadPricing(path string) (pricing.Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yamlparser.Parser()); err != nil {
		return pricing.Config{}, fmt.Errorf("load pricing config %s: %w", path, err)
	}
	return parsePricing(k)
}

func parsePricing(k *koanf.Koanf) (pricing.Config, error) {
	for _, key := range pricingKeys {
		if !k.Exists(key) {
			return pricing.Config{}, fmt.Errorf("pricing config: missing required field %q", key)
		}
	}

	prices := make(map[catalog.Kind]decimal.Decimal)
	for name, value := range k.Float64Map("item_prices") {
		kind, err := catalog.ParseKind(name)
		if err != nil {
			return pricing.Config{}, fmt.Errorf("pricing config: %w", err)
		}
		if _, dup := prices[kind]; dup {
			return pricing.Config{}, fmt.Errorf("pricing config: duplicate price for %s", kind)
		}
		prices[kind] = decimal.NewFromFloat(value)
	}

	cutoff, err := order.ParseTimeOfDay(k.String("discount_cutoff_time"))
	if err != nil {
		return pricing.Config{}, fmt.Errorf("pricing config: discount_cutoff_time: %w", err)
	}

	cfg := pricing.Config{
		UnitPrices:        prices,
		ServiceChargeRate: decimal.NewFromFloat(k.Float64("service_charge_rate")),
		DrinkDiscountRate: decimal.NewFromFloat(k.Float64("drink_discount_rate")),
		DiscountCutoff:    cutoff,
	}
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("pricing config: %w", err)
	}
	return cfg, nil
}
