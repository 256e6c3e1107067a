package dex

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"liquidityRange/internal/model"
)

// addressCache is a concurrency-safe map keyed by contract address.
type addressCache[V any] struct {
	mu   sync.RWMutex
	data map[common.Address]V
}

func newAddressCache[V any]() *addressCache[V] {
	return &addressCache[V]{data: make(map[common.Address]V)}
}

func (c *addressCache[V]) Get(address common.Address) (V, bool) {
	c.mu.RLock()
	v, ok := c.data[address]
	c.mu.RUnlock()
	return v, ok
}

func (c *addressCache[V]) Set(address common.Address, v V) {
	c.mu.Lock()
	c.data[address] = v
	c.mu.Unlock()
}

// PoolMetaCache caches immutable pool metadata by pool address.
type PoolMetaCache = addressCache[model.PoolMeta]

// TokenMetaCache caches ERC20 metadata by token address.
type TokenMetaCache = addressCache[model.TokenMeta]

func NewPoolMetaCache() *PoolMetaCache {
	return newAddressCache[model.PoolMeta]()
}

func NewTokenMetaCache() *TokenMetaCache {
	return newAddressCache[model.TokenMeta]()
}
