package position

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liquidityRange/internal/liquidity"
	"liquidityRange/internal/model"
	"liquidityRange/internal/tickmath"
)

var (
	weth = model.TokenMeta{Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18, Symbol: "WETH"}
	usdc = model.TokenMeta{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, Symbol: "USDC"}
	dai  = model.TokenMeta{Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18, Symbol: "DAI"}
)

func testPlanner() *Planner {
	p := NewPlanner(nil)
	p.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func wethRequest() Request {
	return Request{
		Base:         weth,
		Quote:        usdc,
		Fee:          tickmath.FeeTier500,
		CurrentPrice: 2000,
		PriceLower:   1800,
		PriceUpper:   2200,
		Amount:       1,
		AmountSide:   BaseAmount,
	}
}

func parseAmount(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func TestPlanSortsPairAndSnapsTicks(t *testing.T) {
	plan, err := testPlanner().Plan(wethRequest())
	require.NoError(t, err)

	assert.Equal(t, usdc.Address, plan.Token0)
	assert.Equal(t, weth.Address, plan.Token1)
	assert.Equal(t, "token1", plan.Direction)
	assert.Equal(t, int32(10), plan.TickSpacing)
	assert.Equal(t, int32(199360), plan.TickLower)
	assert.Equal(t, int32(201370), plan.TickUpper)
	assert.InEpsilon(t, 1800, plan.PriceLower, 1e-3)
	assert.InEpsilon(t, 2200, plan.PriceUpper, 1e-3)
	assert.Equal(t, "within", plan.RangeState)
	assert.Equal(t, "2024-03-01T12:00:00Z", plan.CreatedAt)
}

func TestPlanSizesOtherSide(t *testing.T) {
	plan, err := testPlanner().Plan(wethRequest())
	require.NoError(t, err)

	assert.Equal(t, "1.000000000000000000", plan.Amount1)
	assert.Equal(t, "1000000000000000000", plan.Amount1Raw)

	amount0 := parseAmount(t, plan.Amount0)
	assert.Greater(t, amount0, 1000.0)
	assert.Less(t, amount0, 3000.0)

	lower := tickmath.TickToPrice(int(plan.TickLower), 6, 18)
	upper := tickmath.TickToPrice(int(plan.TickUpper), 6, 18)
	back := liquidity.RequiredToken1FromToken0(1.0/2000, lower, upper, amount0)
	assert.InEpsilon(t, 1.0, back, 1e-6)
	assert.Greater(t, plan.Liquidity, 0.0)
}

func TestPlanQuoteAmount(t *testing.T) {
	req := wethRequest()
	req.Amount = 2000
	req.AmountSide = QuoteAmount

	plan, err := testPlanner().Plan(req)
	require.NoError(t, err)
	assert.Equal(t, "2000.000000", plan.Amount0)
	assert.Equal(t, "2000000000", plan.Amount0Raw)
	assert.Greater(t, parseAmount(t, plan.Amount1), 0.0)
}

func TestPlanSameTicksInEitherDirection(t *testing.T) {
	byWeth, err := testPlanner().Plan(wethRequest())
	require.NoError(t, err)

	byUsdc, err := testPlanner().Plan(Request{
		Base:         usdc,
		Quote:        weth,
		Fee:          tickmath.FeeTier500,
		CurrentPrice: 1.0 / 2000,
		PriceLower:   1.0 / 2200,
		PriceUpper:   1.0 / 1800,
		Amount:       1,
		AmountSide:   QuoteAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, "token0", byUsdc.Direction)
	assert.Equal(t, byWeth.TickLower, byUsdc.TickLower)
	assert.Equal(t, byWeth.TickUpper, byUsdc.TickUpper)
	assert.Equal(t, byWeth.Amount1, byUsdc.Amount1)
	assert.Equal(t, byWeth.Amount0, byUsdc.Amount0)
}

func TestPlanSingleSided(t *testing.T) {
	req := wethRequest()
	req.CurrentPrice = 1700

	plan, err := testPlanner().Plan(req)
	require.NoError(t, err)
	assert.Equal(t, "above", plan.RangeState)
	assert.Equal(t, "0.000000", plan.Amount0)
	assert.Equal(t, "1.000000000000000000", plan.Amount1)

	req.AmountSide = QuoteAmount
	_, err = testPlanner().Plan(req)
	assert.True(t, errors.Is(err, liquidity.ErrSingleSided), "got %v", err)
}

func TestPlanErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"unknown fee", func(r *Request) { r.Fee = 2500 }, tickmath.ErrUnknownFeeTier},
		{"inverted", func(r *Request) { r.PriceLower, r.PriceUpper = 2200, 1800 }, liquidity.ErrInvertedRange},
		{"zero price", func(r *Request) { r.PriceLower = 0 }, liquidity.ErrNonPositivePrice},
		{"negative amount", func(r *Request) { r.Amount = -1 }, liquidity.ErrInvalidAmount},
		{"one tick", func(r *Request) {
			r.Fee = tickmath.FeeTier10000
			r.CurrentPrice, r.PriceLower, r.PriceUpper = 2000.005, 2000, 2000.01
		}, ErrEmptyRange},
		{"tick zero", func(r *Request) {
			r.Base, r.Quote = dai, weth
			r.CurrentPrice, r.PriceLower, r.PriceUpper = 1.05, 1.0, 1.1
		}, tickmath.ErrUnusableTick},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := wethRequest()
			tc.mutate(&req)
			_, err := testPlanner().Plan(req)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestRangeFromPercent(t *testing.T) {
	lower, upper, err := RangeFromPercent(2000, 10, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1800, lower, 1e-9)
	assert.InDelta(t, 2200, upper, 1e-9)

	lower, upper, err = RangeFromPercent(2000, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, lower)
	assert.InDelta(t, 3000, upper, 1e-9)

	_, _, err = RangeFromPercent(0, 10, 10)
	assert.True(t, errors.Is(err, liquidity.ErrNonPositivePrice))
	for _, bad := range [][2]float64{{100, 10}, {-1, 10}, {10, -1}, {0, 0}} {
		_, _, err = RangeFromPercent(2000, bad[0], bad[1])
		assert.True(t, errors.Is(err, ErrInvalidWidth), "width %v", bad)
	}
}

func TestRequestFromSnapshot(t *testing.T) {
	snap := model.PoolSnapshot{
		ChainID: 1,
		Meta: model.PoolMeta{
			Address:     "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640",
			Token0:      usdc.Address,
			Token1:      weth.Address,
			Fee:         500,
			TickSpacing: 10,
		},
		Token0: usdc,
		Token1: weth,
		State:  model.PoolState{SqrtPriceX96: "1771595571142957102961017161607260", Tick: 200311},
	}

	req, err := RequestFromSnapshot(snap, tickmath.Token1Base)
	require.NoError(t, err)
	assert.Equal(t, weth, req.Base)
	assert.Equal(t, usdc, req.Quote)
	assert.Equal(t, tickmath.FeeTier500, req.Fee)
	assert.Equal(t, uint64(1), req.ChainID)
	assert.InEpsilon(t, 2000, req.CurrentPrice, 1e-9)

	req, err = RequestFromSnapshot(snap, tickmath.Token0Base)
	require.NoError(t, err)
	assert.Equal(t, usdc, req.Base)
	assert.InEpsilon(t, 0.0005, req.CurrentPrice, 1e-9)

	snap.State.SqrtPriceX96 = "0"
	_, err = RequestFromSnapshot(snap, tickmath.Token0Base)
	assert.True(t, errors.Is(err, liquidity.ErrNonPositivePrice))
}
