package liquidity

// Liquidity helpers over square-root prices. Bounds may be passed in either
// order.

func sortSqrt(sqrtA, sqrtB float64) (float64, float64) {
	if sqrtA > sqrtB {
		return sqrtB, sqrtA
	}
	return sqrtA, sqrtB
}

// LiquidityForAmount0 returns the liquidity backed by amount0 between two sqrt prices.
func LiquidityForAmount0(sqrtA, sqrtB, amount0 float64) float64 {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	return amount0 * sqrtA * sqrtB / (sqrtB - sqrtA)
}

// LiquidityForAmount1 returns the liquidity backed by amount1 between two sqrt prices.
func LiquidityForAmount1(sqrtA, sqrtB, amount1 float64) float64 {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	return amount1 / (sqrtB - sqrtA)
}

// LiquidityForAmounts returns the largest liquidity both amounts can back at sqrtP.
func LiquidityForAmounts(sqrtP, sqrtA, sqrtB, amount0, amount1 float64) float64 {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	switch {
	case sqrtP <= sqrtA:
		return LiquidityForAmount0(sqrtA, sqrtB, amount0)
	case sqrtP < sqrtB:
		l0 := LiquidityForAmount0(sqrtP, sqrtB, amount0)
		l1 := LiquidityForAmount1(sqrtA, sqrtP, amount1)
		if l0 < l1 {
			return l0
		}
		return l1
	default:
		return LiquidityForAmount1(sqrtA, sqrtB, amount1)
	}
}

// Amount0ForLiquidity returns the token0 held by liquidity between two sqrt prices.
func Amount0ForLiquidity(sqrtA, sqrtB, liquidity float64) float64 {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	return liquidity * (sqrtB - sqrtA) / (sqrtA * sqrtB)
}

// Amount1ForLiquidity returns the token1 held by liquidity between two sqrt prices.
func Amount1ForLiquidity(sqrtA, sqrtB, liquidity float64) float64 {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	return liquidity * (sqrtB - sqrtA)
}

// AmountsForLiquidity returns the principal of a position at sqrtP.
func AmountsForLiquidity(sqrtP, sqrtA, sqrtB, liquidity float64) (float64, float64) {
	sqrtA, sqrtB = sortSqrt(sqrtA, sqrtB)
	switch {
	case sqrtP <= sqrtA:
		return Amount0ForLiquidity(sqrtA, sqrtB, liquidity), 0
	case sqrtP < sqrtB:
		return Amount0ForLiquidity(sqrtP, sqrtB, liquidity), Amount1ForLiquidity(sqrtA, sqrtP, liquidity)
	default:
		return 0, Amount1ForLiquidity(sqrtA, sqrtB, liquidity)
	}
}
