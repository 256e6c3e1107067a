package position

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityRange/internal/liquidity"
	"liquidityRange/internal/tickmath"
)

func heldState(t *testing.T) State {
	t.Helper()
	plan, err := testPlanner().Plan(wethRequest())
	require.NoError(t, err)
	return State{
		Token0:       usdc,
		Token1:       weth,
		TickLower:    int(plan.TickLower),
		TickUpper:    int(plan.TickUpper),
		CurrentPrice: 2000,
		Direction:    tickmath.Token1Base,
		Liquidity:    plan.Liquidity,
	}
}

func TestDecreaseReturnsPrincipal(t *testing.T) {
	s := heldState(t)

	w, err := testPlanner().Decrease(s, 100)
	require.NoError(t, err)
	assert.Equal(t, s.Liquidity, w.Liquidity)
	assert.Equal(t, 0.0, w.Remaining)
	assert.InEpsilon(t, 1.0, w.Amount1, 1e-9)

	half, err := testPlanner().Decrease(s, 50)
	require.NoError(t, err)
	assert.InEpsilon(t, s.Liquidity/2, half.Remaining, 1e-12)
	assert.InEpsilon(t, 0.5, half.Amount1, 1e-9)
	assert.InEpsilon(t, w.Amount0/2, half.Amount0, 1e-9)
}

func TestDecreaseRejectsBadInput(t *testing.T) {
	s := heldState(t)

	_, err := testPlanner().Decrease(s, 0)
	assert.True(t, errors.Is(err, liquidity.ErrInvalidPercent))
	_, err = testPlanner().Decrease(s, 101)
	assert.True(t, errors.Is(err, liquidity.ErrInvalidPercent))

	s.TickUpper = s.TickLower
	_, err = testPlanner().Decrease(s, 10)
	assert.True(t, errors.Is(err, ErrEmptyRange))

	s = heldState(t)
	s.TickUpper = tickmath.MaxTick + 1
	_, err = testPlanner().Decrease(s, 10)
	assert.True(t, errors.Is(err, tickmath.ErrTickOutOfRange))

	s = heldState(t)
	s.TickLower, s.TickUpper = s.TickUpper, s.TickLower
	_, err = testPlanner().Decrease(s, 10)
	assert.True(t, errors.Is(err, liquidity.ErrInvertedRange))
}

func TestCompoundFees(t *testing.T) {
	s := heldState(t)

	c, err := testPlanner().Compound(s, 100, 0.01)
	require.NoError(t, err)
	assert.Greater(t, c.Liquidity, 0.0)
	assert.InDelta(t, 100, c.Used0+c.Left0, 1e-9)
	assert.InDelta(t, 0.01, c.Used1+c.Left1, 1e-12)
	// One side is fully used.
	assert.True(t, c.Left0 < 1e-9 || c.Left1 < 1e-12, "left %v/%v", c.Left0, c.Left1)

	_, err = testPlanner().Compound(s, -1, 0)
	assert.True(t, errors.Is(err, liquidity.ErrInvalidAmount))
}

func TestStateFromPlan(t *testing.T) {
	plan, err := testPlanner().Plan(wethRequest())
	require.NoError(t, err)

	s, err := StateFromPlan(plan)
	require.NoError(t, err)
	assert.Equal(t, tickmath.Token1Base, s.Direction)
	assert.Equal(t, usdc.Address, s.Token0.Address)
	assert.Equal(t, uint8(18), s.Token1.Decimals)
	assert.Equal(t, 2000.0, s.CurrentPrice)

	w, err := testPlanner().Decrease(s, 100)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, w.Amount1, 1e-9)

	plan.Direction = "sideways"
	_, err = StateFromPlan(plan)
	assert.Error(t, err)
}
