package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when an item name is not part of the catalog.
var ErrUnknownKind = errors.New("unknown item kind")

// Kind identifies a purchasable item in the closed menu catalog.
type Kind string

const (
	Starter Kind = "starter"
	Main    Kind = "main"
	Drink   Kind = "drink"
)

// Kinds returns the full closed set of catalog kinds.
func Kinds() []Kind {
	return []Kind{Starter, Main, Drink}
}

// ParseKind resolves a wire or config name to a catalog kind. Names are
// matched case-insensitively so config files may use upper-case keys.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case Starter:
		return Starter, nil
	case Main:
		return Main, nil
	case Drink:
		return Drink, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// IsFood reports whether the kind counts toward the food subtotal. Drinks
// are the only non-food kind; the classification is fixed, not configured.
func (k Kind) IsFood() bool {
	switch k {
	case Starter, Main:
		return true
	default:
		return false
	}
}

// String returns the wire name of the kind.
func (k Kind) String() string { return string(k) }

// MarshalJSON serializes the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

// UnmarshalJSON parses a wire name, rejecting anything outside the catalog.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
