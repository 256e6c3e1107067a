package tickmath

import (
	"fmt"
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

const (
	// TickBase is the price ratio between two adjacent ticks.
	TickBase = 1.0001

	MinTick = -887272
	MaxTick = -MinTick
)

var (
	logTickBase = math.Log(TickBase)
	q96         = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 96))
)

// TickToPrice returns the price of token0 denominated in token1, rescaled by
// the decimals of both tokens. Any tick is accepted; extreme ticks overflow to
// +Inf or underflow towards 0.
func TickToPrice(tick, decimals0, decimals1 int) float64 {
	return math.Pow(TickBase, float64(tick)) * math.Pow10(decimals0-decimals1)
}

// PriceToTick is the inverse of TickToPrice rounded to the nearest tick. A
// non-positive price yields -Inf or NaN instead of an error; see BoundaryTick.
func PriceToTick(price float64, decimals0, decimals1 int) float64 {
	raw := price / math.Pow10(decimals0-decimals1)
	return math.Round(math.Log(raw) / logTickBase)
}

// BoundaryTick converts a price into a tick usable as a position boundary.
// Ticks equal to 0, +Inf, -Inf or NaN are rejected with ErrUnusableTick.
func BoundaryTick(price float64, decimals0, decimals1 int) (int, error) {
	return checkTick(PriceToTick(price, decimals0, decimals1), price)
}

func checkTick(tick float64, price float64) (int, error) {
	if tick == 0 || math.IsInf(tick, 0) || math.IsNaN(tick) {
		return 0, fmt.Errorf("price %v: %w", price, ErrUnusableTick)
	}
	if tick < MinTick || tick > MaxTick {
		return 0, fmt.Errorf("tick %v: %w", tick, ErrTickOutOfRange)
	}
	return int(tick), nil
}

// ClampTick bounds a tick to [MinTick, MaxTick].
func ClampTick(tick int) int {
	if tick < MinTick {
		return MinTick
	}
	if tick > MaxTick {
		return MaxTick
	}
	return tick
}

// SqrtPriceX96ToPrice converts a pool sqrtPriceX96 into the TickToPrice convention.
func SqrtPriceX96ToPrice(sqrtPriceX96 *uint256.Int, decimals0, decimals1 int) float64 {
	if sqrtPriceX96 == nil || sqrtPriceX96.IsZero() {
		return 0
	}
	sqrt := new(big.Float).SetInt(sqrtPriceX96.ToBig())
	sqrt.Quo(sqrt, q96)
	ratio := new(big.Float).Mul(sqrt, sqrt)
	price, _ := ratio.Float64()
	return price * math.Pow10(decimals0-decimals1)
}

// ParseSqrtPriceX96 parses a base-10 sqrtPriceX96 as stored in slot0 records.
func ParseSqrtPriceX96(value string) (*uint256.Int, error) {
	sqrt, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, fmt.Errorf("parse sqrt price %q: %w", value, err)
	}
	return sqrt, nil
}
