// Package money provides the monetary value type used throughout the
// payroll engine. Amounts are non-negative, carry a currency code, and are
// normalized to two decimal places with half-up rounding after every
// operation. All operations return new values; a Money is never mutated.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is the currency used by every constructor that does not
// take an explicit currency code. The engine is effectively single-currency.
const DefaultCurrency = "INR"

var (
	// ErrNegativeAmount is returned when a construction or subtraction
	// would produce a negative amount.
	ErrNegativeAmount = errors.New("money: amount cannot be negative")

	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("money: division by zero")

	// ErrCurrencyMismatch is returned when two amounts of different
	// currencies are compared or subtracted.
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// Money is an immutable monetary amount with financial precision.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money in the default currency from a float64.
func New(value float64) (Money, error) {
	return NewFromDecimal(decimal.NewFromFloat(value))
}

// NewFromDecimal creates a Money in the default currency from a decimal.
func NewFromDecimal(d decimal.Decimal) (Money, error) {
	return NewWithCurrency(d, DefaultCurrency)
}

// NewFromString creates a Money in the default currency from a decimal string.
func NewFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("money: invalid amount %q: %w", value, err)
	}
	return NewFromDecimal(d)
}

// NewWithCurrency creates a Money with an explicit currency code.
func NewWithCurrency(d decimal.Decimal, currency string) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, d.StringFixed(2))
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: d.Round(2), currency: currency}, nil
}

// NewClamped creates a Money from a decimal, clamping negative values to
// zero. Callers use it where a shortfall is defined to floor at zero, such
// as loss set-offs and exemption remainders.
func NewClamped(d decimal.Decimal) Money {
	if d.IsNegative() {
		return Zero()
	}
	m, _ := NewFromDecimal(d)
	return m
}

// MustNew is New that panics on error. It is intended for statutory
// constants and tests, never for boundary input.
func MustNew(value float64) Money {
	m, err := New(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount in the default currency.
func Zero() Money {
	return Money{amount: decimal.Zero, currency: DefaultCurrency}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// Add returns the sum of two amounts. Both operands carry the engine's
// single currency; the result keeps the receiver's currency.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2), currency: m.Currency()}
}

// Sub returns the difference of two amounts. A result below zero fails
// with ErrNegativeAmount rather than silently clamping.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, ErrCurrencyMismatch
	}
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, m.amount.StringFixed(2), other.amount.StringFixed(2))
	}
	return Money{amount: d.Round(2), currency: m.Currency()}, nil
}

// SubClamped returns m - other floored at zero. It exists for call sites
// where the domain rule is "clamp, don't reject".
func (m Money) SubClamped(other Money) Money {
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		return Zero()
	}
	return Money{amount: d.Round(2), currency: m.Currency()}
}

// Mul returns the amount multiplied by a non-negative factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.Currency()}
}

// Div returns the amount divided by a non-zero factor.
func (m Money) Div(factor decimal.Decimal) (Money, error) {
	if factor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.Div(factor).Round(2), currency: m.Currency()}, nil
}

// Percentage returns p percent of the amount.
func (m Money) Percentage(p decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(p).Div(decimal.NewFromInt(100)).Round(2), currency: m.Currency()}
}

// Compare returns -1, 0 or 1 comparing the amounts, after asserting that
// both operands carry the same currency.
func (m Money) Compare(other Money) (int, error) {
	if m.Currency() != other.Currency() {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	return m.amount.Cmp(other.amount), nil
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c < 0, err
}

// Equal reports whether both amount and currency are equal.
func (m Money) Equal(other Money) bool {
	return m.Currency() == other.Currency() && m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Min returns the smaller of two same-currency amounts.
func Min(a, b Money) Money {
	if a.amount.LessThan(b.amount) {
		return a
	}
	return b
}

// Max returns the larger of two same-currency amounts.
func Max(a, b Money) Money {
	if a.amount.GreaterThan(b.amount) {
		return a
	}
	return b
}

// Sum adds any number of same-currency amounts.
func Sum(parts ...Money) Money {
	total := Zero()
	for _, p := range parts {
		total = total.Add(p)
	}
	return total
}

// String returns the amount fixed to two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Format returns the amount prefixed with the rupee sign.
func (m Money) Format() string {
	return "₹" + m.String()
}

// InexactFloat64 converts the amount to a float64. Serialization-boundary
// use only; never feed the result back into a calculation.
func (m Money) InexactFloat64() float64 {
	return m.amount.InexactFloat64()
}

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a two-decimal string or bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Bare numbers are accepted for boundary convenience.
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("money: cannot unmarshal %s", string(data))
		}
		parsed, perr := New(f)
		if perr != nil {
			return perr
		}
		*m = parsed
		return nil
	}
	parsed, err := NewFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML encodes the amount as a fixed two-decimal string.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML decodes a scalar amount node.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := NewFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
