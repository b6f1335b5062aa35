package ads

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// microsPerUnit is the API's currency scale factor.
const microsPerUnit = 6

var (
	minMicros = decimal.NewFromInt(math.MinInt64)
	maxMicros = decimal.NewFromInt(math.MaxInt64)
)

// Money is a currency amount. On the wire it is carried as an integer count
// of micro-units (amount × 1,000,000).
//
// Conversion to micros is exact for amounts with at most six fractional
// digits. Further digits are truncated toward zero, so the conversion is
// lossy in that direction only: 0.1234565 becomes 123456 micros.
type Money struct {
	amount decimal.Decimal
}

// NewMoney parses a decimal amount such as "10.00".
func NewMoney(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, &MalformedValueError{Field: "money", Raw: amount, Err: err}
	}

	return Money{amount: d}, nil
}

// MustMoney is like NewMoney but panics on malformed input.
func MustMoney(amount string) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}

	return m
}

// MoneyFromDecimal wraps an existing decimal amount.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromMicros converts a micro-unit count into an amount.
func MoneyFromMicros(micros int64) Money {
	return Money{amount: decimal.New(micros, -microsPerUnit)}
}

// Decimal returns the amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Micros returns the amount in micro-units, truncated toward zero. Amounts
// whose micro-unit count does not fit in an int64 yield ErrMoneyOutOfRange.
func (m Money) Micros() (int64, error) {
	micros := m.amount.Shift(microsPerUnit).Truncate(0)
	if micros.LessThan(minMicros) || micros.GreaterThan(maxMicros) {
		return 0, &MalformedValueError{Field: "money", Raw: m.amount.String(), Err: ErrMoneyOutOfRange}
	}

	return micros.IntPart(), nil
}

// Equal reports whether both amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount in plain decimal notation.
func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON emits the micro-unit integer.
func (m Money) MarshalJSON() ([]byte, error) {
	micros, err := m.Micros()
	if err != nil {
		return nil, err
	}

	return []byte(strconv.FormatInt(micros, 10)), nil
}

// UnmarshalJSON reads a micro-unit integer.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n json.Number

	err := json.Unmarshal(data, &n)
	if err != nil {
		return &MalformedValueError{Field: "money", Raw: string(data), Err: err}
	}

	micros, err := n.Int64()
	if err != nil {
		return &MalformedValueError{Field: "money", Raw: string(data), Err: err}
	}

	*m = MoneyFromMicros(micros)

	return nil
}

// MarshalYAML renders the human-readable amount.
func (m Money) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
