// Package core provides the domain types of the rental complex: units,
// expenses, calendar dates and exact money amounts.
package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is an exact currency amount. The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// MoneyFromInt returns a whole-unit amount.
func MoneyFromInt(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// MoneyFromCents returns an amount expressed in hundredths.
func MoneyFromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -2)}
}

// ParseMoney parses an amount written with either a dot or a comma as the
// decimal separator. When both appear, the last one is the decimal separator
// and the other groups thousands, so "1.234,56" and "1,234.56" are equal.
// A leading sign is allowed.
//
// Examples:
//
//	ParseMoney("990")      -> 990
//	ParseMoney("1540,50")  -> 1540.5
//	ParseMoney("1.234,56") -> 1234.56
//	ParseMoney("-20.00")   -> -20
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return Money{}, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	if strings.Count(s, ".") > 1 {
		return Money{}, ErrInvalidAmount
	}

	digits := 0
	for _, r := range s {
		if r == '.' {
			continue
		}
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
		digits++
	}
	if digits == 0 {
		return Money{}, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(sign + s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

// MustParseMoney is ParseMoney for literals known to be valid.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic("core: invalid money literal " + s)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Mul multiplies by a whole factor, as in a monthly amount times a number
// of months.
func (m Money) Mul(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

var oneHalf = decimal.New(5, -1)

// Half returns m/2 exactly: multiplying by 0.5 adds one decimal place
// instead of rounding to a division precision.
func (m Money) Half() Money {
	return Money{d: m.d.Mul(oneHalf)}
}

// Sum adds every amount.
func Sum(amounts ...Money) Money {
	total := Money{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (m Money) IsZero() bool     { return m.d.IsZero() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// Equal compares by value, so 1.5 equals 1.50.
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

// String returns the shortest exact representation, "1340" or "670.5".
func (m Money) String() string { return m.d.String() }

// StringFixed renders with two decimals, as in "1340.00".
func (m Money) StringFixed() string { return m.d.StringFixed(2) }

// InexactFloat64 is for display and metrics only.
func (m Money) InexactFloat64() float64 { return m.d.InexactFloat64() }

// MarshalJSON renders the amount as a JSON string so no precision is lost.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts a JSON number or a string understood by ParseMoney.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return ErrInvalidAmount
	}
	*m = Money{d: d}
	return nil
}
