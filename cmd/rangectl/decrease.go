package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"liquidityRange/internal/position"
)

type decreaseOutput struct {
	TickLower    int     `json:"tick_lower"`
	TickUpper    int     `json:"tick_upper"`
	CurrentPrice float64 `json:"current_price"`
	Percent      float64 `json:"percent"`
	Liquidity    float64 `json:"liquidity_removed"`
	Remaining    float64 `json:"liquidity_remaining"`
	Amount0      float64 `json:"amount0"`
	Amount1      float64 `json:"amount1"`
}

func newDecreaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrease",
		Short: "Size removing part of a stored position",
		RunE:  runDecrease,
	}
	addHeldStateFlags(cmd)
	cmd.Flags().Float64("percent", 100, "share of liquidity to remove, in (0, 100]")
	return cmd
}

func runDecrease(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := loadHeldState(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}

	percent, _ := cmd.Flags().GetFloat64("percent")
	w, err := position.NewPlanner(logger).Decrease(state, percent)
	if err != nil {
		return err
	}

	return writeJSON(cmd, decreaseOutput{
		TickLower:    state.TickLower,
		TickUpper:    state.TickUpper,
		CurrentPrice: state.CurrentPrice,
		Percent:      percent,
		Liquidity:    w.Liquidity,
		Remaining:    w.Remaining,
		Amount0:      w.Amount0,
		Amount1:      w.Amount1,
	})
}
