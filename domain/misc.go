package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

// IsEmpty treats the zero address as empty, the same as "no owner" on chain.
func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) IsEmpty() bool {
	return len(strings.TrimSpace(string(i))) == 0
}

// IsValidAmount reports whether d is usable as an asset amount: a whole,
// non-negative number.
func IsValidAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Truncate(0))
}

// ParseAmount parses a decimal string into an amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil || !IsValidAmount(d) {
		return decimal.Zero, ErrInvalidNumberFormat
	}
	return d, nil
}
