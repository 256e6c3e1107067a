package liquidity

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToRawAmount converts a human token amount into base units, rounded down.
func ToRawAmount(amount float64, decimals uint8) (*big.Int, error) {
	if !validAmount(amount) {
		return nil, fmt.Errorf("amount %v: %w", amount, ErrInvalidAmount)
	}
	return decimal.NewFromFloat(amount).Shift(int32(decimals)).Floor().BigInt(), nil
}

// FormatRawAmount renders base units as a fixed-point string with decimals places.
func FormatRawAmount(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	if decimals == 0 {
		return raw.String()
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).StringFixed(int32(decimals))
}

// FormatAmount renders a human amount the way it will be submitted: truncated
// to the token's decimals.
func FormatAmount(amount float64, decimals uint8) (string, *big.Int, error) {
	raw, err := ToRawAmount(amount, decimals)
	if err != nil {
		return "", nil, err
	}
	return FormatRawAmount(raw, decimals), raw, nil
}
