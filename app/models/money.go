package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in minor units (cents). Wallet balances and fee
// amounts are stored as BIGINT and never as floats, so repeated increments
// cannot drift.
type Money int64

// ParseMoney converts a decimal string such as "1500.50" into minor units.
// More than two decimal places is rejected rather than silently truncated.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return Money(d.Shift(2).IntPart()), nil
}

// Decimal returns the amount as a decimal value in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount with two decimal places, e.g. "1500.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
