package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a fixed-point decimal amount with two fractional digits, stored
// as an integer number of cents. It exists so repeated budget updates never
// accumulate binary floating-point drift; at the JSON boundary it is always
// a decimal string such as "50000.00".
type Money struct {
	cents int64
}

// MoneyFromCents builds a Money from an integer number of cents.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// ParseMoney parses a decimal string with at most two fractional digits.
// "50000", "50000.5" and "50000.00" are all accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("empty amount")
	}

	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if !allDigits(intPart) {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	if hasFrac && (len(fracPart) > 2 || !allDigits(fracPart)) {
		return Money{}, fmt.Errorf("amount %q must have at most two decimal places", s)
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}

	var frac int64
	if hasFrac {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return Money{}, fmt.Errorf("invalid amount %q", s)
		}
		if len(fracPart) == 1 {
			frac *= 10
		}
	}

	if whole > (math.MaxInt64-frac)/100 {
		return Money{}, fmt.Errorf("amount %q out of range", s)
	}
	cents := whole*100 + frac
	if neg {
		cents = -cents
	}
	return Money{cents: cents}, nil
}

// allDigits reports whether s is non-empty and contains only ASCII digits.
// ParseInt alone is too lenient here: it accepts an embedded sign, which
// would let malformed fractions slip through with the wrong value.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	cents := m.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON serializes the amount as a decimal string to preserve exact
// monetary precision across the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts either a decimal string ("50000.00") or a bare JSON
// number (50000.5); both go through ParseMoney.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid money literal %s", s)
		}
		s = unquoted
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
