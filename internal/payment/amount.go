package payment

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInexactAmount = errors.New("amount is not representable in minor units")

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// ToMinorUnits converts a major-unit amount into the integer the provider
// charges. Anything that would need rounding is an error.
func ToMinorUnits(amount decimal.Decimal, exponent int32) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %s", ErrInexactAmount, amount.String())
	}
	scaled := amount.Shift(exponent)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: %s with %d decimals", ErrInexactAmount, amount.String(), exponent)
	}
	if scaled.GreaterThan(maxMinor) {
		return 0, fmt.Errorf("%w: %s overflows", ErrInexactAmount, amount.String())
	}
	return scaled.IntPart(), nil
}

func FromMinorUnits(v int64, exponent int32) decimal.Decimal {
	return decimal.New(v, -exponent)
}
