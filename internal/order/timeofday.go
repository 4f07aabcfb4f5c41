package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when an order time string does not match
// the strict HH:MM layout.
var ErrInvalidTimeFormat = errors.New("invalid order time format, must be HH:MM (example: 18:30)")

const clockLayout = "15:04"

// TimeOfDay is an hour:minute wall-clock value with no date component.
type TimeOfDay struct {
	hour   int
	minute int
}

// ParseTimeOfDay parses a strict 24-hour HH:MM string. Zero padding is
// required: "8:30" is rejected, "08:30" is accepted.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(clockLayout) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	parsed, err := time.Parse(clockLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay{hour: parsed.Hour(), minute: parsed.Minute()}, nil
}

// ParseOptionalTimeOfDay treats an empty string as "no time supplied" and
// otherwise parses strictly.
func ParseOptionalTimeOfDay(s string) (*TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}

// String formats the value back to HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// MarshalJSON serializes the value as an "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses an "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
