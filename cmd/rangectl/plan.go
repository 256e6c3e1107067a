package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityRange/internal/config"
	"liquidityRange/internal/model"
	"liquidityRange/internal/position"
	"liquidityRange/internal/storage"
	"liquidityRange/internal/tickmath"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a concentrated liquidity position",
		Long: "Plan a concentrated liquidity position.\n" +
			"With --pool (or --factory plus --base and --quote) tokens, fee and price are read from chain;\n" +
			"otherwise every value comes from flags. Prices are quote per base.",
		RunE: runPlan,
	}

	addRPCFlags(cmd)
	addStoreFlags(cmd)
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("factory", "", "V3 factory address used to look up the pool")
	cmd.Flags().String("base", "", "base token address")
	cmd.Flags().String("base-symbol", "", "base token symbol")
	cmd.Flags().Int("base-decimals", 18, "base token decimals")
	cmd.Flags().String("quote", "", "quote token address")
	cmd.Flags().String("quote-symbol", "", "quote token symbol")
	cmd.Flags().Int("quote-decimals", 18, "quote token decimals")
	cmd.Flags().Uint32("fee", 3000, "fee tier (100, 500, 3000, 10000)")
	cmd.Flags().String("direction", "token0", "base token of a pool read from chain when --base is unset")
	cmd.Flags().Float64("price", 0, "current price, read from the pool when unset")
	cmd.Flags().Float64("lower", 0, "lower range price")
	cmd.Flags().Float64("upper", 0, "upper range price")
	cmd.Flags().Float64("below-pct", 10, "range width under the price when --lower/--upper are unset")
	cmd.Flags().Float64("above-pct", 10, "range width over the price when --lower/--upper are unset")
	cmd.Flags().Float64("amount", 0, "known token amount")
	cmd.Flags().String("amount-side", "base", "token of the known amount: base or quote")
	cmd.Flags().Bool("dry-run", false, "print the plan without storing it")

	return cmd
}

func runPlan(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		req      position.Request
		snapshot *model.PoolSnapshot
	)
	if cfg.Pool != "" || cfg.Factory != "" {
		snap, err := loadSnapshot(ctx, cfg, logger)
		if err != nil {
			return err
		}
		dir, err := snapshotDirection(cfg, snap)
		if err != nil {
			return err
		}
		req, err = position.RequestFromSnapshot(snap, dir)
		if err != nil {
			return err
		}
		snapshot = &snap
	} else {
		req = position.Request{
			ChainID: cfg.ChainID,
			Base:    tokenFromConfig(cfg.Base),
			Quote:   tokenFromConfig(cfg.Quote),
			Fee:     tickmath.FeeTier(cfg.Fee),
		}
	}

	if cmd.Flags().Changed("price") {
		req.CurrentPrice, _ = cmd.Flags().GetFloat64("price")
	}
	if req.CurrentPrice == 0 {
		return fmt.Errorf("current price is required without --pool")
	}

	if cmd.Flags().Changed("lower") || cmd.Flags().Changed("upper") {
		req.PriceLower, _ = cmd.Flags().GetFloat64("lower")
		req.PriceUpper, _ = cmd.Flags().GetFloat64("upper")
	} else {
		below, _ := cmd.Flags().GetFloat64("below-pct")
		above, _ := cmd.Flags().GetFloat64("above-pct")
		req.PriceLower, req.PriceUpper, err = position.RangeFromPercent(req.CurrentPrice, below, above)
		if err != nil {
			return err
		}
	}

	req.Amount, _ = cmd.Flags().GetFloat64("amount")
	sideFlag, _ := cmd.Flags().GetString("amount-side")
	if req.AmountSide, err = position.ParseAmountSide(sideFlag); err != nil {
		return err
	}

	plan, err := position.NewPlanner(logger).Plan(req)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); !dryRun {
		if err := storePlan(ctx, cfg, logger, plan, snapshot); err != nil {
			return err
		}
	}

	return writeJSON(cmd, plan)
}

func loadSnapshot(ctx context.Context, cfg config.Config, logger *zap.Logger) (model.PoolSnapshot, error) {
	client, reader, err := dialReader(ctx, cfg, logger)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	defer client.Close()

	chainID := cfg.ChainID
	if chainID == 0 {
		if chainID, err = client.ChainID(ctx); err != nil {
			return model.PoolSnapshot{}, fmt.Errorf("chain id: %w", err)
		}
	}

	poolAddr := cfg.Pool
	if poolAddr == "" {
		factory, err := parseAddress("factory", cfg.Factory)
		if err != nil {
			return model.PoolSnapshot{}, err
		}
		base, err := parseAddress("base", cfg.Base.Address)
		if err != nil {
			return model.PoolSnapshot{}, err
		}
		quote, err := parseAddress("quote", cfg.Quote.Address)
		if err != nil {
			return model.PoolSnapshot{}, err
		}
		if spacing, err := reader.FactoryTickSpacing(ctx, factory, cfg.Fee); err != nil {
			return model.PoolSnapshot{}, err
		} else if spacing == 0 {
			return model.PoolSnapshot{}, fmt.Errorf("fee %d: %w", cfg.Fee, tickmath.ErrUnknownFeeTier)
		}
		found, err := reader.FindPool(ctx, factory, base, quote, cfg.Fee)
		if err != nil {
			return model.PoolSnapshot{}, err
		}
		poolAddr = found.Hex()
	}

	pool, err := parseAddress("pool", poolAddr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	block, err := client.LatestBlockNumber(ctx)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("latest block: %w", err)
	}
	snap, err := reader.Snapshot(ctx, pool, new(big.Int).SetUint64(block))
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	snap.ChainID = chainID
	snap.BlockNumber = block

	logger.Info("pool loaded",
		zap.Uint64("chain_id", chainID),
		zap.Uint64("block", block),
		zap.String("pool", snap.Meta.Address),
		zap.Uint32("fee", snap.Meta.Fee),
		zap.Int32("tick", snap.State.Tick),
	)
	return snap, nil
}

// snapshotDirection picks the base token of a pool: --base wins over --direction.
func snapshotDirection(cfg config.Config, snap model.PoolSnapshot) (tickmath.Direction, error) {
	if cfg.Base.Address == "" {
		return tickmath.ParseDirection(cfg.Direction)
	}
	switch {
	case strings.EqualFold(cfg.Base.Address, snap.Token0.Address):
		return tickmath.Token0Base, nil
	case strings.EqualFold(cfg.Base.Address, snap.Token1.Address):
		return tickmath.Token1Base, nil
	default:
		return tickmath.Token0Base, fmt.Errorf("base %s is not a token of pool %s", cfg.Base.Address, snap.Meta.Address)
	}
}

func tokenFromConfig(tc config.TokenConfig) model.TokenMeta {
	return model.TokenMeta{
		Address:  tc.Address,
		Symbol:   tc.Symbol,
		Decimals: uint8(tc.Decimals),
	}
}

func storePlan(ctx context.Context, cfg config.Config, logger *zap.Logger, plan model.PositionPlan, snapshot *model.PoolSnapshot) error {
	if cfg.Out != "" {
		var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutPlans([]model.PositionPlan{plan}); err != nil {
			return err
		}
		logger.Info("plan written", zap.String("out", cfg.Out))
	}

	if cfg.PGDSN == "" {
		return nil
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if snapshot != nil {
		if err := store.UpsertPools(ctx, []model.PoolSnapshot{*snapshot}); err != nil {
			return fmt.Errorf("upsert pool: %w", err)
		}
	}
	if err := store.InsertPlans(ctx, []model.PositionPlan{plan}); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	logger.Info("plan stored", zap.String("pool", plan.Pool))
	return nil
}
