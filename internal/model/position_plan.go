package model

// PositionPlan is a sized concentrated-liquidity position ready to be handed
// to a transaction builder.
type PositionPlan struct {
	ChainID      uint64  `json:"chain_id,omitempty"`
	Pool         string  `json:"pool,omitempty"`
	Token0       string  `json:"token0"`
	Token1       string  `json:"token1"`
	Symbol0      string  `json:"symbol0,omitempty"`
	Symbol1      string  `json:"symbol1,omitempty"`
	Decimals0    uint8   `json:"decimals0"`
	Decimals1    uint8   `json:"decimals1"`
	Fee          uint32  `json:"fee"`
	TickSpacing  int32   `json:"tick_spacing"`
	Direction    string  `json:"direction"`
	TickLower    int32   `json:"tick_lower"`
	TickUpper    int32   `json:"tick_upper"`
	CurrentPrice float64 `json:"current_price"`
	PriceLower   float64 `json:"price_lower"`
	PriceUpper   float64 `json:"price_upper"`
	Amount0      string  `json:"amount0"`
	Amount1      string  `json:"amount1"`
	Amount0Raw   string  `json:"amount0_raw"`
	Amount1Raw   string  `json:"amount1_raw"`
	Liquidity    float64 `json:"liquidity"`
	RangeState   string  `json:"range_state"`
	CreatedAt    string  `json:"created_at"`
}
