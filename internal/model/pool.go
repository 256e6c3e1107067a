package model

// PoolMeta is the immutable part of a pool: its sorted tokens and fee tier.
type PoolMeta struct {
	Address     string `json:"address"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Fee         uint32 `json:"fee"`
	TickSpacing int32  `json:"tick_spacing"`
}

// PoolState holds the live slot0 and liquidity values of a pool.
type PoolState struct {
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Tick         int32  `json:"tick"`
	Liquidity    string `json:"liquidity,omitempty"`
}

// PoolSnapshot is everything the planner needs from chain about one pool.
type PoolSnapshot struct {
	ChainID     uint64    `json:"chain_id"`
	BlockNumber uint64    `json:"block_number,omitempty"`
	Meta        PoolMeta  `json:"meta"`
	Token0      TokenMeta `json:"token0"`
	Token1      TokenMeta `json:"token1"`
	State       PoolState `json:"state"`
}
