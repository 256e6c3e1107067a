package liquidity

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositivePrice = errors.New("price must be positive and finite")
	ErrInvertedRange    = errors.New("lower price above upper price")
	ErrDegenerateRange  = errors.New("lower price equals upper price")
	ErrInvalidAmount    = errors.New("amount must be non-negative and finite")
	ErrInvalidPercent   = errors.New("percent must be in (0, 100]")

	// ErrSingleSided is returned when the known amount is on the side the
	// range cannot hold at the current price.
	ErrSingleSided = errors.New("range only accepts the other token at the current price")
)

// Side names one token of a sorted pair.
type Side int

const (
	Token0 Side = iota
	Token1
)

func (s Side) String() string {
	if s == Token1 {
		return "token1"
	}
	return "token0"
}

// RangePosition is where the current price sits relative to a range.
type RangePosition int

const (
	Below RangePosition = iota
	Within
	Above
)

func (p RangePosition) String() string {
	switch p {
	case Below:
		return "below"
	case Within:
		return "within"
	default:
		return "above"
	}
}

// Range is a position range and the current price, all token1 per token0.
type Range struct {
	Current float64
	Lower   float64
	Upper   float64
}

// Validate checks that all prices are positive and Lower < Upper.
func (r Range) Validate() error {
	for _, p := range []float64{r.Current, r.Lower, r.Upper} {
		if !validPrice(p) {
			return fmt.Errorf("price %v: %w", p, ErrNonPositivePrice)
		}
	}
	if r.Lower > r.Upper {
		return fmt.Errorf("range [%v, %v]: %w", r.Lower, r.Upper, ErrInvertedRange)
	}
	if r.Lower == r.Upper {
		return fmt.Errorf("range [%v, %v]: %w", r.Lower, r.Upper, ErrDegenerateRange)
	}
	return nil
}

// Position reports whether the current price is below, within or above the
// range. The bounds themselves count as outside.
func (r Range) Position() RangePosition {
	switch {
	case r.Current <= r.Lower:
		return Below
	case r.Current >= r.Upper:
		return Above
	default:
		return Within
	}
}

func (r Range) sqrts() (sqrtP, sqrtL, sqrtU float64) {
	return math.Sqrt(r.Current), math.Sqrt(r.Lower), math.Sqrt(r.Upper)
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}

func validAmount(a float64) bool {
	return a >= 0 && !math.IsInf(a, 0)
}
