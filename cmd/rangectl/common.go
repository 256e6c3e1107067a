package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityRange/internal/chain"
	"liquidityRange/internal/config"
	"liquidityRange/internal/dex"
	"liquidityRange/internal/model"
	"liquidityRange/internal/position"
	"liquidityRange/internal/storage"
	"liquidityRange/internal/storage/postgres"
	"liquidityRange/internal/tickmath"
)

func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func writeJSON(cmd *cobra.Command, value interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func addDecimalsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("decimals0", 18, "token0 decimals")
	cmd.Flags().Int("decimals1", 18, "token1 decimals")
}

func decimalsFromFlags(cmd *cobra.Command) (int, int, error) {
	d0, _ := cmd.Flags().GetInt("decimals0")
	d1, _ := cmd.Flags().GetInt("decimals1")
	if d0 < 0 || d0 > 255 || d1 < 0 || d1 > 255 {
		return 0, 0, fmt.Errorf("decimals out of range: %d/%d", d0, d1)
	}
	return d0, d1, nil
}

func addRPCFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "RPC URL")
	cmd.Flags().Uint64("chain-id", 0, "chain id, read from RPC when 0")
	cmd.Flags().Int("max-retries", 3, "maximum retry attempts per eth_call")
	cmd.Flags().Duration("retry-backoff", 250*time.Millisecond, "initial retry backoff")
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "./data/plans.jsonl", "position plans JSONL path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
}

func dialReader(ctx context.Context, cfg config.Config, logger *zap.Logger) (*chain.Client, *dex.Reader, error) {
	if cfg.RPCURL == "" {
		return nil, nil, fmt.Errorf("rpc url is required")
	}
	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}
	reader := dex.NewReader(client, dex.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
	}, logger)
	return client, reader, nil
}

func openStore(ctx context.Context, cfg config.Config) (*postgres.Store, error) {
	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return store, nil
}

func parseAddress(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address: %q", name, value)
	}
	return common.HexToAddress(value), nil
}

func addHeldStateFlags(cmd *cobra.Command) {
	addRPCFlags(cmd)
	addStoreFlags(cmd)
	cmd.Flags().String("pool", "", "pool address of the stored plan (latest plan when empty)")
	cmd.Flags().Float64("price", 0, "current price in the plan's direction, read from the pool when unset")
	cmd.Flags().Float64("liquidity", 0, "position liquidity, taken from the plan when unset")
}

// loadHeldState rebuilds the latest stored plan for cfg.Pool as a held
// position, from Postgres when a DSN is set and from the JSONL file otherwise.
func loadHeldState(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *zap.Logger) (position.State, error) {
	var (
		plan  model.PositionPlan
		found bool
		err   error
	)
	if cfg.PGDSN != "" {
		chainID, err := heldChainID(ctx, cfg, rpcChainID)
		if err != nil {
			return position.State{}, err
		}
		store, err := openStore(ctx, cfg)
		if err != nil {
			return position.State{}, err
		}
		defer store.Close()
		plan, found, err = store.LatestPlan(ctx, chainID, cfg.Pool)
		if err != nil {
			return position.State{}, fmt.Errorf("load plan: %w", err)
		}
	} else {
		plan, found, err = storage.NewJsonlStorage(cfg.Out).LastPlan(cfg.Pool)
		if err != nil {
			return position.State{}, fmt.Errorf("load plan: %w", err)
		}
	}
	if !found {
		return position.State{}, fmt.Errorf("no stored plan for pool %q", cfg.Pool)
	}

	state, err := position.StateFromPlan(plan)
	if err != nil {
		return position.State{}, err
	}

	switch {
	case cmd.Flags().Changed("price"):
		state.CurrentPrice, _ = cmd.Flags().GetFloat64("price")
	case cfg.RPCURL != "" && plan.Pool != "":
		price, err := livePrice(ctx, cfg, logger, plan.Pool, state)
		if err != nil {
			return position.State{}, err
		}
		state.CurrentPrice = price
	}
	if cmd.Flags().Changed("liquidity") {
		state.Liquidity, _ = cmd.Flags().GetFloat64("liquidity")
	}

	logger.Info("held position loaded",
		zap.String("pool", plan.Pool),
		zap.String("created_at", plan.CreatedAt),
		zap.Int("tick_lower", state.TickLower),
		zap.Int("tick_upper", state.TickUpper),
		zap.Float64("current_price", state.CurrentPrice),
	)
	return state, nil
}

// heldChainID picks the chain a stored plan is looked up on: --chain-id when
// set, else the chain behind --rpc when a pool is named, else 0 for any chain.
func heldChainID(ctx context.Context, cfg config.Config, fetch func(context.Context, string) (uint64, error)) (uint64, error) {
	if cfg.ChainID != 0 || cfg.RPCURL == "" || cfg.Pool == "" {
		return cfg.ChainID, nil
	}
	id, err := fetch(ctx, cfg.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("chain id: %w", err)
	}
	return id, nil
}

func rpcChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := chain.NewClient(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()
	return client.ChainID(ctx)
}

func livePrice(ctx context.Context, cfg config.Config, logger *zap.Logger, pool string, state position.State) (float64, error) {
	addr, err := parseAddress("pool", pool)
	if err != nil {
		return 0, err
	}
	client, reader, err := dialReader(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	poolState, err := reader.PoolState(ctx, addr, nil)
	if err != nil {
		return 0, fmt.Errorf("read pool state: %w", err)
	}
	sqrt, err := tickmath.ParseSqrtPriceX96(poolState.SqrtPriceX96)
	if err != nil {
		return 0, err
	}
	price := tickmath.SqrtPriceX96ToPrice(sqrt, int(state.Token0.Decimals), int(state.Token1.Decimals))
	if state.Direction == tickmath.Token1Base && price != 0 {
		price = 1 / price
	}
	return price, nil
}
