package position

import (
	"fmt"

	"go.uber.org/zap"

	"liquidityRange/internal/liquidity"
	"liquidityRange/internal/model"
	"liquidityRange/internal/tickmath"
)

// State is a held position. CurrentPrice is quoted in Direction.
type State struct {
	Token0       model.TokenMeta
	Token1       model.TokenMeta
	TickLower    int
	TickUpper    int
	CurrentPrice float64
	Direction    tickmath.Direction
	Liquidity    float64
}

func (s State) priceRange() (liquidity.Range, error) {
	for _, tick := range []int{s.TickLower, s.TickUpper} {
		if tick < tickmath.MinTick || tick > tickmath.MaxTick {
			return liquidity.Range{}, fmt.Errorf("tick %d: %w", tick, tickmath.ErrTickOutOfRange)
		}
	}
	if s.TickLower == s.TickUpper {
		return liquidity.Range{}, fmt.Errorf("tick %d: %w", s.TickLower, ErrEmptyRange)
	}
	d0, d1 := int(s.Token0.Decimals), int(s.Token1.Decimals)
	current := s.CurrentPrice
	if s.Direction == tickmath.Token1Base {
		current = 1 / current
	}
	r := liquidity.Range{
		Current: current,
		Lower:   tickmath.TickToPrice(s.TickLower, d0, d1),
		Upper:   tickmath.TickToPrice(s.TickUpper, d0, d1),
	}
	return r, r.Validate()
}

// Decrease sizes removing percent of the position's liquidity.
func (p *Planner) Decrease(s State, percent float64) (liquidity.Withdrawal, error) {
	r, err := s.priceRange()
	if err != nil {
		return liquidity.Withdrawal{}, err
	}
	w, err := liquidity.Decrease(r, s.Liquidity, percent)
	if err != nil {
		return liquidity.Withdrawal{}, err
	}
	p.logger.Info("liquidity decrease sized",
		zap.Int("tick_lower", s.TickLower),
		zap.Int("tick_upper", s.TickUpper),
		zap.Float64("percent", percent),
		zap.Float64("liquidity", w.Liquidity),
		zap.Float64("amount0", w.Amount0),
		zap.Float64("amount1", w.Amount1),
	)
	return w, nil
}

// Compound sizes re-adding collected fees to the position's range.
func (p *Planner) Compound(s State, fees0, fees1 float64) (liquidity.Compounding, error) {
	r, err := s.priceRange()
	if err != nil {
		return liquidity.Compounding{}, err
	}
	c, err := liquidity.Compound(r, fees0, fees1)
	if err != nil {
		return liquidity.Compounding{}, err
	}
	p.logger.Info("fee compounding sized",
		zap.Int("tick_lower", s.TickLower),
		zap.Int("tick_upper", s.TickUpper),
		zap.Float64("liquidity", c.Liquidity),
		zap.Float64("left0", c.Left0),
		zap.Float64("left1", c.Left1),
	)
	return c, nil
}

// StateFromPlan rebuilds a held position from a stored plan, priced at the
// plan's current price.
func StateFromPlan(plan model.PositionPlan) (State, error) {
	dir, err := tickmath.ParseDirection(plan.Direction)
	if err != nil {
		return State{}, err
	}
	return State{
		Token0:       model.TokenMeta{Address: plan.Token0, Decimals: plan.Decimals0, Symbol: plan.Symbol0},
		Token1:       model.TokenMeta{Address: plan.Token1, Decimals: plan.Decimals1, Symbol: plan.Symbol1},
		TickLower:    int(plan.TickLower),
		TickUpper:    int(plan.TickUpper),
		CurrentPrice: plan.CurrentPrice,
		Direction:    dir,
		Liquidity:    plan.Liquidity,
	}, nil
}
