package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"liquidityRange/internal/model"
	"liquidityRange/internal/tickmath"
)

var (
	weth = model.TokenMeta{Address: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", Decimals: 18, Symbol: "WETH"}
	usdc = model.TokenMeta{Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, Symbol: "USDC"}
	dai  = model.TokenMeta{Address: "0x6b175474e89094c44da98b954eedeac495271d0f", Decimals: 18, Symbol: "DAI"}
)

func TestReorderByAddress(t *testing.T) {
	t0, t1 := ReorderByAddress(weth, usdc)
	assert.Equal(t, usdc, t0)
	assert.Equal(t, weth, t1)

	t0, t1 = ReorderByAddress(usdc, weth)
	assert.Equal(t, usdc, t0)
	assert.Equal(t, weth, t1)
}

func TestReorderByAddressOrderInvariant(t *testing.T) {
	tokens := []model.TokenMeta{weth, usdc, dai}
	for _, a := range tokens {
		for _, b := range tokens {
			ab0, ab1 := ReorderByAddress(a, b)
			ba0, ba1 := ReorderByAddress(b, a)
			assert.Equal(t, ab0, ba0)
			assert.Equal(t, ab1, ba1)

			again0, again1 := ReorderByAddress(ab0, ab1)
			assert.Equal(t, ab0, again0)
			assert.Equal(t, ab1, again1)
		}
	}
}

func TestReorderByAddressMixedCase(t *testing.T) {
	// Checksummed upper-case hex must not sort before lower-case hex of a
	// smaller address.
	lower := model.TokenMeta{Address: "0x0aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	upper := model.TokenMeta{Address: "0x0BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"}
	t0, t1 := ReorderByAddress(upper, lower)
	assert.Equal(t, lower, t0)
	assert.Equal(t, upper, t1)
}

func TestReorderByAddressMissingOrEqual(t *testing.T) {
	missing := model.TokenMeta{Symbol: "ETH"}
	t0, t1 := ReorderByAddress(weth, missing)
	assert.Equal(t, weth, t0)
	assert.Equal(t, missing, t1)

	t0, t1 = ReorderByAddress(missing, usdc)
	assert.Equal(t, missing, t0)
	assert.Equal(t, usdc, t1)

	same := model.TokenMeta{Address: weth.Address, Symbol: "WETH9"}
	t0, t1 = ReorderByAddress(weth, same)
	assert.Equal(t, weth, t0)
	assert.Equal(t, same, t1)
}

func TestReorderByAddressNonHex(t *testing.T) {
	a := model.TokenMeta{Address: "native:b"}
	b := model.TokenMeta{Address: "NATIVE:A"}
	t0, t1 := ReorderByAddress(a, b)
	assert.Equal(t, b, t0)
	assert.Equal(t, a, t1)
}

func TestOrient(t *testing.T) {
	t0, t1, dir := Orient(weth, usdc)
	assert.Equal(t, usdc, t0)
	assert.Equal(t, weth, t1)
	assert.Equal(t, tickmath.Token1Base, dir)

	t0, t1, dir = Orient(usdc, weth)
	assert.Equal(t, usdc, t0)
	assert.Equal(t, weth, t1)
	assert.Equal(t, tickmath.Token0Base, dir)
}
