package tickmath

import (
	"fmt"
	"strings"
)

// Direction selects which token of a sorted pair a price is quoted in.
type Direction int

const (
	// Token0Base quotes token1 per token0, the native tick convention.
	Token0Base Direction = iota
	// Token1Base quotes token0 per token1.
	Token1Base
)

func (d Direction) String() string {
	switch d {
	case Token0Base:
		return "token0"
	case Token1Base:
		return "token1"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Token1Base {
		return Token0Base
	}
	return Token1Base
}

// ParseDirection parses "token0" or "token1" (also "0"/"1").
func ParseDirection(input string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "token0", "0":
		return Token0Base, nil
	case "token1", "1":
		return Token1Base, nil
	default:
		return Token0Base, fmt.Errorf("invalid direction: %s", input)
	}
}

// TickToPriceIn is TickToPrice quoted in the given direction.
func TickToPriceIn(tick, decimals0, decimals1 int, dir Direction) float64 {
	price := TickToPrice(tick, decimals0, decimals1)
	if dir == Token1Base {
		return 1 / price
	}
	return price
}

// PriceToTickIn converts a price quoted in the given direction into a tick.
// Inverting the quote negates the tick, so a Token1Base lower bound becomes
// the upper tick.
func PriceToTickIn(price float64, decimals0, decimals1 int, dir Direction) float64 {
	if dir == Token1Base {
		return PriceToTick(1/price, decimals0, decimals1)
	}
	return PriceToTick(price, decimals0, decimals1)
}

// BoundaryTickIn is BoundaryTick for a price quoted in the given direction.
func BoundaryTickIn(price float64, decimals0, decimals1 int, dir Direction) (int, error) {
	if dir == Token0Base {
		return BoundaryTick(price, decimals0, decimals1)
	}
	return checkTick(PriceToTickIn(price, decimals0, decimals1, dir), price)
}
