package liquidity

import "math"

// RequiredToken1FromToken0 returns the token1 amount that must accompany
// amount0 for a position in [priceLower, priceUpper] at currentPrice.
// Prices are token1 per token0.
//
//	L  = a0 * √Pu * √P / (√Pu - √P)
//
//	a1 = L * (√P - √Pl)
//
// The result is only meaningful for priceLower < currentPrice < priceUpper;
// outside that the formula yields negative, infinite or NaN values.
func RequiredToken1FromToken0(currentPrice, priceLower, priceUpper, amount0 float64) float64 {
	sqrtP := math.Sqrt(currentPrice)
	sqrtPL := math.Sqrt(priceLower)
	sqrtPU := math.Sqrt(priceUpper)

	liquidity := amount0 * sqrtPU * sqrtP / (sqrtPU - sqrtP)
	return liquidity * (sqrtP - sqrtPL)
}

// RequiredToken0FromToken1 is the inverse of RequiredToken1FromToken0.
//
//	L  = a1 / (√P - √Pl)
//
//	a0 = L * (1/√P - 1/√Pu)
func RequiredToken0FromToken1(currentPrice, priceLower, priceUpper, amount1 float64) float64 {
	sqrtP := math.Sqrt(currentPrice)
	sqrtPL := math.Sqrt(priceLower)
	sqrtPU := math.Sqrt(priceUpper)

	liquidity := amount1 / (sqrtP - sqrtPL)
	return liquidity * (1/sqrtP - 1/sqrtPU)
}
