package dex

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"liquidityRange/internal/model"
)

// ErrPoolNotFound is returned when the factory has no pool for a pair and fee.
var ErrPoolNotFound = errors.New("pool not found")

// ContractCaller performs eth_call; *chain.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader loads the pool and token values the planner consumes.
type Reader struct {
	caller ContractCaller
	pools  *PoolMetaCache
	tokens *TokenMetaCache
	retry  RetryPolicy
	logger *zap.Logger
}

func NewReader(caller ContractCaller, retry RetryPolicy, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		caller: caller,
		pools:  NewPoolMetaCache(),
		tokens: NewTokenMetaCache(),
		retry:  retry,
		logger: logger,
	}
}

func (r *Reader) call(ctx context.Context, to common.Address, parsed abi.ABI, method string, block *big.Int, args ...interface{}) ([]interface{}, error) {
	if r.caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}

	var resp []byte
	err = r.retry.run(ctx, func(ctx context.Context, attempt int) error {
		var err error
		resp, err = r.caller.CallContract(ctx, msg, block)
		if err != nil {
			r.logger.Warn("eth_call failed",
				zap.String("to", to.Hex()),
				zap.String("method", method),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: empty result", method)
	}
	return values, nil
}

// PoolMeta loads the immutable fields of a pool, cached by address.
func (r *Reader) PoolMeta(ctx context.Context, pool common.Address) (model.PoolMeta, error) {
	if meta, ok := r.pools.Get(pool); ok {
		return meta, nil
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := r.call(ctx, pool, poolABI, "token0", nil)
	if err != nil {
		return model.PoolMeta{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("token0: %w", err)
	}

	values, err = r.call(ctx, pool, poolABI, "token1", nil)
	if err != nil {
		return model.PoolMeta{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("token1: %w", err)
	}

	values, err = r.call(ctx, pool, poolABI, "fee", nil)
	if err != nil {
		return model.PoolMeta{}, err
	}
	fee, err := asFee(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("fee: %w", err)
	}

	values, err = r.call(ctx, pool, poolABI, "tickSpacing", nil)
	if err != nil {
		return model.PoolMeta{}, err
	}
	spacing, err := asInt24(values[0])
	if err != nil {
		return model.PoolMeta{}, fmt.Errorf("tick spacing: %w", err)
	}

	meta := model.PoolMeta{
		Address:     pool.Hex(),
		Token0:      token0.Hex(),
		Token1:      token1.Hex(),
		Fee:         fee,
		TickSpacing: spacing,
	}
	r.pools.Set(pool, meta)
	return meta, nil
}

// PoolState reads slot0 and liquidity at block, or at the latest block when nil.
// A failing liquidity() read is logged and left empty.
func (r *Reader) PoolState(ctx context.Context, pool common.Address, block *big.Int) (model.PoolState, error) {
	poolABI, err := V3PoolABI()
	if err != nil {
		return model.PoolState{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := r.call(ctx, pool, poolABI, "slot0", block)
	if err != nil {
		return model.PoolState{}, err
	}
	if len(values) < 2 {
		return model.PoolState{}, fmt.Errorf("slot0: unexpected values %d", len(values))
	}
	sqrt, err := asUint160(values[0])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("slot0 sqrt price: %w", err)
	}
	tick, err := asInt24(values[1])
	if err != nil {
		return model.PoolState{}, fmt.Errorf("slot0 tick: %w", err)
	}

	state := model.PoolState{
		SqrtPriceX96: sqrt.Dec(),
		Tick:         tick,
	}

	if values, err := r.call(ctx, pool, poolABI, "liquidity", block); err == nil {
		if liq, err := asBig(values[0]); err == nil {
			state.Liquidity = liq.String()
		}
	} else {
		r.logger.Debug("liquidity call failed", zap.String("pool", pool.Hex()), zap.Error(err))
	}

	return state, nil
}

// TokenMeta loads ERC20 metadata, cached by address. Decimals are required;
// symbol and name fall back to the bytes32 ABI and are otherwise left empty.
func (r *Reader) TokenMeta(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	if meta, ok := r.tokens.Get(token); ok {
		return meta, nil
	}

	stringABI, err := erc20StringABI.get()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20Bytes32ABI.get()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	meta := model.TokenMeta{Address: token.Hex()}

	values, err := r.call(ctx, token, stringABI, "decimals", nil)
	if err != nil {
		return model.TokenMeta{}, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("decimals: %w", err)
	}
	meta.Decimals = decimals

	meta.Symbol = r.readText(ctx, token, stringABI, bytes32ABI, "symbol")
	meta.Name = r.readText(ctx, token, stringABI, bytes32ABI, "name")

	r.tokens.Set(token, meta)
	return meta, nil
}

func (r *Reader) readText(ctx context.Context, token common.Address, stringABI, bytes32ABI abi.ABI, method string) string {
	if values, err := r.call(ctx, token, stringABI, method, nil); err == nil {
		if text, ok := values[0].(string); ok {
			return text
		}
	}
	values, err := r.call(ctx, token, bytes32ABI, method, nil)
	if err != nil {
		r.logger.Debug("token text call failed", zap.String("token", token.Hex()), zap.String("method", method), zap.Error(err))
		return ""
	}
	return bytes32Text(values[0])
}

// FindPool asks a V3 factory for the pool of a pair and fee tier.
func (r *Reader) FindPool(ctx context.Context, factory, tokenA, tokenB common.Address, fee uint32) (common.Address, error) {
	factoryABI, err := V3FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse factory abi: %w", err)
	}
	values, err := r.call(ctx, factory, factoryABI, "getPool", nil, tokenA, tokenB, new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return common.Address{}, err
	}
	pool, err := asAddress(values[0])
	if err != nil {
		return common.Address{}, fmt.Errorf("getPool: %w", err)
	}
	if pool == (common.Address{}) {
		return common.Address{}, fmt.Errorf("fee %d: %w", fee, ErrPoolNotFound)
	}
	return pool, nil
}

// FactoryTickSpacing returns the spacing a factory has enabled for fee; zero
// means the fee tier is not enabled.
func (r *Reader) FactoryTickSpacing(ctx context.Context, factory common.Address, fee uint32) (int32, error) {
	factoryABI, err := V3FactoryABI()
	if err != nil {
		return 0, fmt.Errorf("parse factory abi: %w", err)
	}
	values, err := r.call(ctx, factory, factoryABI, "feeAmountTickSpacing", nil, new(big.Int).SetUint64(uint64(fee)))
	if err != nil {
		return 0, err
	}
	spacing, err := asInt24(values[0])
	if err != nil {
		return 0, fmt.Errorf("feeAmountTickSpacing: %w", err)
	}
	return spacing, nil
}

// Snapshot loads pool metadata, both tokens and the live state in one go.
func (r *Reader) Snapshot(ctx context.Context, pool common.Address, block *big.Int) (model.PoolSnapshot, error) {
	meta, err := r.PoolMeta(ctx, pool)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool meta: %w", err)
	}
	token0, err := r.TokenMeta(ctx, common.HexToAddress(meta.Token0))
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("token0 meta: %w", err)
	}
	token1, err := r.TokenMeta(ctx, common.HexToAddress(meta.Token1))
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("token1 meta: %w", err)
	}
	state, err := r.PoolState(ctx, pool, block)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("pool state: %w", err)
	}

	r.logger.Debug("pool snapshot",
		zap.String("pool", pool.Hex()),
		zap.Uint32("fee", meta.Fee),
		zap.Int32("tick", state.Tick),
		zap.String("token0", token0.Symbol),
		zap.String("token1", token1.Symbol),
	)

	return model.PoolSnapshot{
		Meta:   meta,
		Token0: token0,
		Token1: token1,
		State:  state,
	}, nil
}
