package liquidity

import (
	"fmt"
	"math"
)

// Deposit is the pair of amounts needed to open a position.
type Deposit struct {
	Amount0   float64
	Amount1   float64
	Liquidity float64
	Position  RangePosition
}

// SizeDeposit sizes a deposit from one known amount. Inside the range the other
// amount follows RequiredToken1FromToken0 / RequiredToken0FromToken1; at or
// below the lower bound only token0 is accepted, at or above the upper bound
// only token1.
func SizeDeposit(r Range, side Side, amount float64) (Deposit, error) {
	if err := r.Validate(); err != nil {
		return Deposit{}, err
	}
	if !validAmount(amount) {
		return Deposit{}, fmt.Errorf("amount %v: %w", amount, ErrInvalidAmount)
	}

	sqrtP, sqrtL, sqrtU := r.sqrts()
	pos := r.Position()
	out := Deposit{Position: pos}

	switch pos {
	case Below:
		if side != Token0 {
			return Deposit{}, fmt.Errorf("%s deposit below range: %w", side, ErrSingleSided)
		}
		out.Amount0 = amount
		out.Liquidity = LiquidityForAmount0(sqrtL, sqrtU, amount)
	case Above:
		if side != Token1 {
			return Deposit{}, fmt.Errorf("%s deposit above range: %w", side, ErrSingleSided)
		}
		out.Amount1 = amount
		out.Liquidity = LiquidityForAmount1(sqrtL, sqrtU, amount)
	default:
		if side == Token0 {
			out.Amount0 = amount
			out.Amount1 = RequiredToken1FromToken0(r.Current, r.Lower, r.Upper, amount)
			out.Liquidity = LiquidityForAmount0(sqrtP, sqrtU, amount)
		} else {
			out.Amount1 = amount
			out.Amount0 = RequiredToken0FromToken1(r.Current, r.Lower, r.Upper, amount)
			out.Liquidity = LiquidityForAmount1(sqrtL, sqrtP, amount)
		}
	}
	return out, nil
}

// Principal returns the token amounts backing liquidity at the current price.
func Principal(r Range, liquidity float64) (float64, float64, error) {
	if err := r.Validate(); err != nil {
		return 0, 0, err
	}
	if !validAmount(liquidity) {
		return 0, 0, fmt.Errorf("liquidity %v: %w", liquidity, ErrInvalidAmount)
	}
	sqrtP, sqrtL, sqrtU := r.sqrts()
	a0, a1 := AmountsForLiquidity(sqrtP, sqrtL, sqrtU, liquidity)
	return a0, a1, nil
}

// Withdrawal is the result of removing part of a position.
type Withdrawal struct {
	Liquidity float64
	Remaining float64
	Amount0   float64
	Amount1   float64
}

// Decrease removes percent of liquidity and returns the principal released.
func Decrease(r Range, liquidity, percent float64) (Withdrawal, error) {
	if math.IsNaN(percent) || percent <= 0 || percent > 100 {
		return Withdrawal{}, fmt.Errorf("percent %v: %w", percent, ErrInvalidPercent)
	}
	removed := liquidity
	if percent < 100 {
		removed = liquidity * percent / 100
	}
	a0, a1, err := Principal(r, removed)
	if err != nil {
		return Withdrawal{}, err
	}
	return Withdrawal{
		Liquidity: removed,
		Remaining: liquidity - removed,
		Amount0:   a0,
		Amount1:   a1,
	}, nil
}

// Compounding is how much of the collected fees can be re-added to a range.
type Compounding struct {
	Liquidity float64
	Used0     float64
	Used1     float64
	Left0     float64
	Left1     float64
}

// Compound sizes re-adding collected fees to the same range. The side that
// limits the liquidity is used fully; the rest of the other side is left over.
func Compound(r Range, fees0, fees1 float64) (Compounding, error) {
	if err := r.Validate(); err != nil {
		return Compounding{}, err
	}
	if !validAmount(fees0) || !validAmount(fees1) {
		return Compounding{}, fmt.Errorf("fees %v/%v: %w", fees0, fees1, ErrInvalidAmount)
	}

	sqrtP, sqrtL, sqrtU := r.sqrts()
	liq := LiquidityForAmounts(sqrtP, sqrtL, sqrtU, fees0, fees1)
	used0, used1 := AmountsForLiquidity(sqrtP, sqrtL, sqrtU, liq)
	used0 = math.Min(used0, fees0)
	used1 = math.Min(used1, fees1)

	return Compounding{
		Liquidity: liq,
		Used0:     used0,
		Used1:     used1,
		Left0:     fees0 - used0,
		Left1:     fees1 - used1,
	}, nil
}
