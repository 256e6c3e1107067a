package liquidity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValidate(t *testing.T) {
	require.NoError(t, Range{Current: 2000, Lower: 1800, Upper: 2200}.Validate())
	require.NoError(t, Range{Current: 10, Lower: 1800, Upper: 2200}.Validate())

	cases := []struct {
		name string
		r    Range
		want error
	}{
		{"zero current", Range{Current: 0, Lower: 1, Upper: 2}, ErrNonPositivePrice},
		{"negative lower", Range{Current: 1, Lower: -1, Upper: 2}, ErrNonPositivePrice},
		{"nan upper", Range{Current: 1, Lower: 0.5, Upper: math.NaN()}, ErrNonPositivePrice},
		{"inf upper", Range{Current: 1, Lower: 0.5, Upper: math.Inf(1)}, ErrNonPositivePrice},
		{"inverted", Range{Current: 1, Lower: 2, Upper: 0.5}, ErrInvertedRange},
		{"degenerate", Range{Current: 1, Lower: 2, Upper: 2}, ErrDegenerateRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.r.Validate()
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestRangePosition(t *testing.T) {
	assert.Equal(t, Below, Range{Current: 1800, Lower: 1800, Upper: 2200}.Position())
	assert.Equal(t, Within, Range{Current: 1801, Lower: 1800, Upper: 2200}.Position())
	assert.Equal(t, Above, Range{Current: 2200, Lower: 1800, Upper: 2200}.Position())
	assert.Equal(t, "within", Within.String())
}

func TestSizeDepositWithinRange(t *testing.T) {
	r := Range{Current: 2000, Lower: 1800, Upper: 2200}

	d0, err := SizeDeposit(r, Token0, 1.5)
	require.NoError(t, err)
	assert.Equal(t, Within, d0.Position)
	assert.Equal(t, 1.5, d0.Amount0)
	assert.InEpsilon(t, RequiredToken1FromToken0(2000, 1800, 2200, 1.5), d0.Amount1, 1e-12)

	d1, err := SizeDeposit(r, Token1, d0.Amount1)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.5, d1.Amount0, 1e-9)
	assert.InEpsilon(t, d0.Liquidity, d1.Liquidity, 1e-9)

	a0, a1, err := Principal(r, d0.Liquidity)
	require.NoError(t, err)
	assert.InEpsilon(t, d0.Amount0, a0, 1e-9)
	assert.InEpsilon(t, d0.Amount1, a1, 1e-9)
}

func TestSizeDepositSingleSided(t *testing.T) {
	below := Range{Current: 1500, Lower: 1800, Upper: 2200}
	d, err := SizeDeposit(below, Token0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d.Amount0)
	assert.Equal(t, 0.0, d.Amount1)
	assert.Greater(t, d.Liquidity, 0.0)

	_, err = SizeDeposit(below, Token1, 2)
	assert.True(t, errors.Is(err, ErrSingleSided))

	above := Range{Current: 2500, Lower: 1800, Upper: 2200}
	d, err = SizeDeposit(above, Token1, 4000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Amount0)
	assert.Equal(t, 4000.0, d.Amount1)

	_, err = SizeDeposit(above, Token0, 1)
	assert.True(t, errors.Is(err, ErrSingleSided))

	// exactly on the lower bound is single-sided token0
	_, err = SizeDeposit(Range{Current: 1800, Lower: 1800, Upper: 2200}, Token1, 1)
	assert.True(t, errors.Is(err, ErrSingleSided))
}

func TestSizeDepositRejectsBadInput(t *testing.T) {
	r := Range{Current: 2000, Lower: 1800, Upper: 2200}
	for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := SizeDeposit(r, Token0, amount)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "amount %v", amount)
	}

	_, err := SizeDeposit(Range{Current: 2000, Lower: 2200, Upper: 1800}, Token0, 1)
	assert.True(t, errors.Is(err, ErrInvertedRange))
}

func TestDecrease(t *testing.T) {
	r := Range{Current: 2000, Lower: 1800, Upper: 2200}
	full0, full1, err := Principal(r, 1000)
	require.NoError(t, err)

	w, err := Decrease(r, 1000, 25)
	require.NoError(t, err)
	assert.InDelta(t, 250, w.Liquidity, 1e-9)
	assert.InDelta(t, 750, w.Remaining, 1e-9)
	assert.InEpsilon(t, full0/4, w.Amount0, 1e-12)
	assert.InEpsilon(t, full1/4, w.Amount1, 1e-12)

	w, err = Decrease(r, 1000, 100)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, w.Liquidity)
	assert.Equal(t, 0.0, w.Remaining)

	for _, pct := range []float64{0, -5, 100.5, math.NaN()} {
		_, err := Decrease(r, 1000, pct)
		assert.True(t, errors.Is(err, ErrInvalidPercent), "percent %v", pct)
	}

	_, err = Decrease(r, -1, 50)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestCompoundToken0Limited(t *testing.T) {
	r := Range{Current: 2000, Lower: 1800, Upper: 2200}
	need1 := RequiredToken1FromToken0(2000, 1800, 2200, 1)

	c, err := Compound(r, 1, 2*need1)
	require.NoError(t, err)
	assert.InDelta(t, 1, c.Used0, 1e-9)
	assert.InDelta(t, 0, c.Left0, 1e-9)
	assert.InEpsilon(t, need1, c.Used1, 1e-9)
	assert.InEpsilon(t, need1, c.Left1, 1e-9)
	assert.GreaterOrEqual(t, c.Left0, 0.0)
}

func TestCompoundOutOfRange(t *testing.T) {
	below := Range{Current: 1000, Lower: 1800, Upper: 2200}
	c, err := Compound(below, 3, 50)
	require.NoError(t, err)
	assert.InDelta(t, 3, c.Used0, 1e-9)
	assert.Equal(t, 0.0, c.Used1)
	assert.Equal(t, 50.0, c.Left1)

	_, err = Compound(below, -1, 50)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestAmountsForLiquidityBoundOrder(t *testing.T) {
	sqrtP, sqrtA, sqrtB := math.Sqrt(2000.0), math.Sqrt(1800.0), math.Sqrt(2200.0)
	a0, a1 := AmountsForLiquidity(sqrtP, sqrtA, sqrtB, 500)
	b0, b1 := AmountsForLiquidity(sqrtP, sqrtB, sqrtA, 500)
	assert.Equal(t, a0, b0)
	assert.Equal(t, a1, b1)

	l := LiquidityForAmounts(sqrtP, sqrtA, sqrtB, a0, a1)
	assert.InEpsilon(t, 500, l, 1e-9)
}
