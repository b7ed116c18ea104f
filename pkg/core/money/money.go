// Package money provides the arbitrary-precision decimal type used for every
// monetary value in the engine. It wraps shopspring/decimal so that 30 years of
// compounding never accumulates floating-point drift, and it fixes the wire
// representation: an Amount always crosses a process boundary as
// {"value":"<string>"} so no financial value is ever coerced to a float.
package money

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Amount is an immutable arbitrary-precision monetary value.
// The zero value is a valid zero amount.
type Amount struct {
	d decimal.Decimal
}

// Tolerance constants shared by the balance and reconciliation checks.
var (
	// Cent is the $0.01 tolerance used by all statement validation.
	Cent = Amount{decimal.New(1, -2)}

	zero = Amount{}
)

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// Zero returns the zero amount.
func Zero() Amount { return zero }

// FromInt builds an Amount from an integer number of currency units.
func FromInt(v int64) Amount { return Amount{decimal.NewFromInt(v)} }

// FromFloat builds an Amount from a float64. Intended for configuration
// literals (rates, ratios), not for chained arithmetic.
func FromFloat(v float64) Amount { return Amount{decimal.NewFromFloat(v)} }

// FromString parses a decimal string such as "10300000.25".
func FromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d}, nil
}

// MustFromString is FromString for trusted literals; it panics on bad input.
func MustFromString(s string) Amount {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal wraps a raw decimal.
func FromDecimal(d decimal.Decimal) Amount { return Amount{d} }

// =============================================================================
// ARITHMETIC
// =============================================================================

func (a Amount) Add(b Amount) Amount { return Amount{a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{a.d.Sub(b.d)} }
func (a Amount) Mul(b Amount) Amount { return Amount{a.d.Mul(b.d)} }
func (a Amount) Neg() Amount         { return Amount{a.d.Neg()} }
func (a Amount) Abs() Amount         { return Amount{a.d.Abs()} }

// Div divides with 16 digits of precision. Division by zero returns zero;
// callers that need to distinguish use IsZero on the divisor first.
func (a Amount) Div(b Amount) Amount {
	if b.d.IsZero() {
		return zero
	}
	return Amount{a.d.DivRound(b.d, 16)}
}

// PowInt raises the amount to a non-negative integer power. Used for
// step-escalation factors such as (1+g)^n.
func (a Amount) PowInt(n int) Amount {
	result := FromInt(1)
	for i := 0; i < n; i++ {
		result = result.Mul(a)
	}
	return result
}

// Round2 rounds to two decimal places (cents).
func (a Amount) Round2() Amount { return Amount{a.d.Round(2)} }

// Round6 rounds to six decimal places, used for rates rather than currency.
func (a Amount) Round6() Amount { return Amount{a.d.Round(6)} }

// =============================================================================
// COMPARISON
// =============================================================================

func (a Amount) Cmp(b Amount) int             { return a.d.Cmp(b.d) }
func (a Amount) Equal(b Amount) bool          { return a.d.Equal(b.d) }
func (a Amount) LessThan(b Amount) bool       { return a.d.LessThan(b.d) }
func (a Amount) GreaterThan(b Amount) bool    { return a.d.GreaterThan(b.d) }
func (a Amount) IsZero() bool                 { return a.d.IsZero() }
func (a Amount) IsNegative() bool             { return a.d.IsNegative() }
func (a Amount) IsPositive() bool             { return a.d.IsPositive() }
func (a Amount) GreaterOrEqual(b Amount) bool { return !a.d.LessThan(b.d) }

// WithinTolerance reports whether |a-b| < tol.
func (a Amount) WithinTolerance(b, tol Amount) bool {
	return a.d.Sub(b.d).Abs().LessThan(tol.d)
}

// WithinCents reports whether |a-b| < $0.01.
func (a Amount) WithinCents(b Amount) bool { return a.WithinTolerance(b, Cent) }

// =============================================================================
// HELPERS
// =============================================================================

// Sum adds a list of amounts.
func Sum(amounts ...Amount) Amount {
	total := zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Max returns the larger of two amounts.
func Max(a, b Amount) Amount {
	if a.d.GreaterThan(b.d) {
		return a
	}
	return b
}

// Min returns the smaller of two amounts.
func Min(a, b Amount) Amount {
	if a.d.LessThan(b.d) {
		return a
	}
	return b
}

// Floor0 clamps negative amounts to zero. Zakat and interest income both
// apply only to non-negative bases.
func Floor0(a Amount) Amount { return Max(a, zero) }

// String renders the full decimal value without loss.
func (a Amount) String() string { return a.d.String() }

// StringFixed2 renders with exactly two decimal places, for display.
func (a Amount) StringFixed2() string { return a.d.StringFixed(2) }

// Float64 returns a lossy float64 view. Only for discount-rate math in the
// IRR bisection, never for statement values.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Decimal exposes the underlying decimal.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// =============================================================================
// WIRE FORMAT
// =============================================================================

// taggedAmount is the boundary form: decimals cross process boundaries as
// {"value":"<string>"} so generic JSON tooling cannot silently downgrade them
// to float64.
type taggedAmount struct {
	Value string `json:"value"`
}

// MarshalJSON implements the tagged wire format.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedAmount{Value: a.d.String()})
}

// UnmarshalJSON restores the tagged form. A bare JSON string or number is also
// accepted so hand-written scenario fixtures stay convenient.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var tagged taggedAmount
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Value != "" {
		d, err := decimal.NewFromString(tagged.Value)
		if err != nil {
			return fmt.Errorf("tagged amount %q: %w", tagged.Value, err)
		}
		a.d = d
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("amount %q: %w", raw, err)
		}
		a.d = d
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("amount: unsupported JSON form %s", string(data))
	}
	a.d = d
	return nil
}

// MarshalYAML renders the plain decimal string in scenario files.
func (a Amount) MarshalYAML() (interface{}, error) {
	return a.d.String(), nil
}

// UnmarshalYAML accepts plain scalars ("0.03", 10000000) in scenario files.
func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err == nil {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("yaml amount %q: %w", raw, err)
		}
		a.d = d
		return nil
	}

	var f float64
	if err := unmarshal(&f); err != nil {
		return fmt.Errorf("yaml amount: %w", err)
	}
	a.d = decimal.NewFromFloat(f)
	return nil
}
