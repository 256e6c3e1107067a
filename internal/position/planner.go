package position

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"liquidityRange/internal/liquidity"
	"liquidityRange/internal/model"
	"liquidityRange/internal/pair"
	"liquidityRange/internal/tickmath"
)

// Planner turns requests into sized positions and sizes changes to held ones.
type Planner struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewPlanner(logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{logger: logger, now: time.Now}
}

// Plan sorts the pair, converts and snaps both bounds to the fee tier grid,
// then sizes the deposit inside the snapped range.
func (p *Planner) Plan(req Request) (model.PositionPlan, error) {
	if err := req.priceRange().Validate(); err != nil {
		return model.PositionPlan{}, err
	}
	spacing, err := tickmath.TickSpacing(req.Fee)
	if err != nil {
		return model.PositionPlan{}, err
	}

	token0, token1, dir := pair.Orient(req.Base, req.Quote)
	d0, d1 := int(token0.Decimals), int(token1.Decimals)

	tickA, err := boundaryTick(req.PriceLower, d0, d1, dir, req.Fee, spacing)
	if err != nil {
		return model.PositionPlan{}, fmt.Errorf("lower bound: %w", err)
	}
	tickB, err := boundaryTick(req.PriceUpper, d0, d1, dir, req.Fee, spacing)
	if err != nil {
		return model.PositionPlan{}, fmt.Errorf("upper bound: %w", err)
	}
	// A token1 base inverts the quote, which swaps the bounds.
	lower, upper := tickA, tickB
	if lower > upper {
		lower, upper = upper, lower
	}
	if lower == upper {
		return model.PositionPlan{}, fmt.Errorf("tick %d: %w", lower, ErrEmptyRange)
	}

	current := req.CurrentPrice
	if dir == tickmath.Token1Base {
		current = 1 / current
	}
	r := liquidity.Range{
		Current: current,
		Lower:   tickmath.TickToPrice(lower, d0, d1),
		Upper:   tickmath.TickToPrice(upper, d0, d1),
	}

	// The known amount is token0 when its token is the base of amountDir.
	amountDir := dir
	if req.AmountSide == QuoteAmount {
		amountDir = dir.Flip()
	}
	side := liquidity.Token0
	if amountDir == tickmath.Token1Base {
		side = liquidity.Token1
	}
	dep, err := liquidity.SizeDeposit(r, side, req.Amount)
	if err != nil {
		return model.PositionPlan{}, err
	}

	amount0, raw0, err := liquidity.FormatAmount(dep.Amount0, token0.Decimals)
	if err != nil {
		return model.PositionPlan{}, fmt.Errorf("amount0: %w", err)
	}
	amount1, raw1, err := liquidity.FormatAmount(dep.Amount1, token1.Decimals)
	if err != nil {
		return model.PositionPlan{}, fmt.Errorf("amount1: %w", err)
	}

	priceA := tickmath.TickToPriceIn(lower, d0, d1, dir)
	priceB := tickmath.TickToPriceIn(upper, d0, d1, dir)

	plan := model.PositionPlan{
		ChainID:      req.ChainID,
		Pool:         req.Pool,
		Token0:       token0.Address,
		Token1:       token1.Address,
		Symbol0:      token0.Symbol,
		Symbol1:      token1.Symbol,
		Decimals0:    token0.Decimals,
		Decimals1:    token1.Decimals,
		Fee:          uint32(req.Fee),
		TickSpacing:  int32(spacing),
		Direction:    dir.String(),
		TickLower:    int32(lower),
		TickUpper:    int32(upper),
		CurrentPrice: req.CurrentPrice,
		PriceLower:   math.Min(priceA, priceB),
		PriceUpper:   math.Max(priceA, priceB),
		Amount0:      amount0,
		Amount1:      amount1,
		Amount0Raw:   raw0.String(),
		Amount1Raw:   raw1.String(),
		Liquidity:    dep.Liquidity,
		RangeState:   dep.Position.String(),
		CreatedAt:    p.now().UTC().Format(time.RFC3339),
	}

	p.logger.Info("position planned",
		zap.String("token0", token0.Symbol),
		zap.String("token1", token1.Symbol),
		zap.Uint32("fee", plan.Fee),
		zap.Int("tick_lower", lower),
		zap.Int("tick_upper", upper),
		zap.String("amount0", amount0),
		zap.String("amount1", amount1),
		zap.String("range_state", plan.RangeState),
	)
	return plan, nil
}

func boundaryTick(price float64, d0, d1 int, dir tickmath.Direction, fee tickmath.FeeTier, spacing int) (int, error) {
	tick, err := tickmath.BoundaryTickIn(price, d0, d1, dir)
	if err != nil {
		return 0, err
	}
	snapped, err := tickmath.NearestValidTick(tick, fee)
	if err != nil {
		return 0, err
	}
	return tickmath.ClampToGrid(snapped, spacing), nil
}
