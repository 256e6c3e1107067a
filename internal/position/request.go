package position

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"liquidityRange/internal/liquidity"
	"liquidityRange/internal/model"
	"liquidityRange/internal/tickmath"
)

var (
	// ErrEmptyRange is returned when both bounds snap to the same tick.
	ErrEmptyRange = errors.New("range collapses to a single tick")

	ErrInvalidWidth = errors.New("range width must be a non-negative percent, below 100 under the price")
)

// AmountSide says which token of a request the known amount is in.
type AmountSide int

const (
	BaseAmount AmountSide = iota
	QuoteAmount
)

func (s AmountSide) String() string {
	if s == QuoteAmount {
		return "quote"
	}
	return "base"
}

// ParseAmountSide parses "base" or "quote".
func ParseAmountSide(input string) (AmountSide, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "base":
		return BaseAmount, nil
	case "quote":
		return QuoteAmount, nil
	default:
		return BaseAmount, fmt.Errorf("invalid amount side: %s", input)
	}
}

// Request describes a position to open. Prices are quote per base, in any
// token order; the planner sorts the pair itself.
type Request struct {
	ChainID uint64
	Pool    string

	Base  model.TokenMeta
	Quote model.TokenMeta
	Fee   tickmath.FeeTier

	CurrentPrice float64
	PriceLower   float64
	PriceUpper   float64

	Amount     float64
	AmountSide AmountSide
}

func (r Request) priceRange() liquidity.Range {
	return liquidity.Range{Current: r.CurrentPrice, Lower: r.PriceLower, Upper: r.PriceUpper}
}

// RangeFromPercent returns the bounds belowPct under and abovePct over current.
func RangeFromPercent(current, belowPct, abovePct float64) (float64, float64, error) {
	if current <= 0 || math.IsInf(current, 0) || math.IsNaN(current) {
		return 0, 0, fmt.Errorf("price %v: %w", current, liquidity.ErrNonPositivePrice)
	}
	if math.IsNaN(belowPct) || math.IsNaN(abovePct) || belowPct < 0 || belowPct >= 100 || abovePct < 0 || math.IsInf(abovePct, 0) {
		return 0, 0, fmt.Errorf("width -%v%%/+%v%%: %w", belowPct, abovePct, ErrInvalidWidth)
	}
	if belowPct == 0 && abovePct == 0 {
		return 0, 0, fmt.Errorf("width -0%%/+0%%: %w", ErrInvalidWidth)
	}
	return current * (1 - belowPct/100), current * (1 + abovePct/100), nil
}

// RequestFromSnapshot fills the pool side of a request from chain data. dir
// picks the base token: Token0Base quotes token1 per token0.
func RequestFromSnapshot(snap model.PoolSnapshot, dir tickmath.Direction) (Request, error) {
	sqrt, err := tickmath.ParseSqrtPriceX96(snap.State.SqrtPriceX96)
	if err != nil {
		return Request{}, err
	}
	price := tickmath.SqrtPriceX96ToPrice(sqrt, int(snap.Token0.Decimals), int(snap.Token1.Decimals))
	if price <= 0 || math.IsInf(price, 0) {
		return Request{}, fmt.Errorf("pool %s price %v: %w", snap.Meta.Address, price, liquidity.ErrNonPositivePrice)
	}

	req := Request{
		ChainID:      snap.ChainID,
		Pool:         snap.Meta.Address,
		Base:         snap.Token0,
		Quote:        snap.Token1,
		Fee:          tickmath.FeeTier(snap.Meta.Fee),
		CurrentPrice: price,
	}
	if dir == tickmath.Token1Base {
		req.Base, req.Quote = req.Quote, req.Base
		req.CurrentPrice = 1 / price
	}
	return req, nil
}
