// Package cost defines the fixed-precision monetary amount exchanged at
// every protocol boundary that reports spend: TurnMetadata, lifecycle budget
// events, and TurnConfig's max-cost limit.
//
// Floating-point accumulation is forbidden for cost fields: sub-cent token
// prices accumulated over thousands of model calls produce material error
// with float64. Amount wraps github.com/shopspring/decimal and always
// serializes as a JSON string (e.g. "0.005"), never a bare number.
package cost

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-precision monetary value. The zero Amount is zero cost
// and is always valid.
type Amount struct {
	d decimal.Decimal
}

// Zero is the additive identity, equivalent to a freshly constructed Amount.
var Zero = Amount{}

// New parses a decimal string (e.g. "0.005") into an Amount. Returns an
// error if s is not a valid decimal literal.
func New(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d: d}, nil
}

// FromFloat constructs an Amount from a float64. Prefer New when the source
// value is already textual (e.g. a provider's price-per-token string);
// FromFloat exists for call sites that only have a float at hand, such as a
// computed rate, and converts it through decimal's float-safe constructor.
func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Cmp compares two amounts: -1 if a < b, 0 if equal, 1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// String renders the canonical decimal string form.
func (a Amount) String() string {
	return a.d.String()
}

// MarshalJSON implements json.Marshaler, always producing a JSON string so
// consumers never reconstruct this value through a lossy float parse.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.d.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting only a JSON string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		a.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	a.d = d
	return nil
}
