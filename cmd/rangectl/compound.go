package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"liquidityRange/internal/position"
)

type compoundOutput struct {
	TickLower    int     `json:"tick_lower"`
	TickUpper    int     `json:"tick_upper"`
	CurrentPrice float64 `json:"current_price"`
	Liquidity    float64 `json:"liquidity_added"`
	Used0        float64 `json:"used0"`
	Used1        float64 `json:"used1"`
	Left0        float64 `json:"left0"`
	Left1        float64 `json:"left1"`
}

func newCompoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Size re-adding collected fees to a stored position",
		RunE:  runCompound,
	}
	addHeldStateFlags(cmd)
	cmd.Flags().Float64("fees0", 0, "collected token0 fees")
	cmd.Flags().Float64("fees1", 0, "collected token1 fees")
	return cmd
}

func runCompound(cmd *cobra.Command, _ []string) error {
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

	fees0, _ := cmd.Flags().GetFloat64("fees0")
	fees1, _ := cmd.Flags().GetFloat64("fees1")
	c, err := position.NewPlanner(logger).Compound(state, fees0, fees1)
	if err != nil {
		return err
	}

	return writeJSON(cmd, compoundOutput{
		TickLower:    state.TickLower,
		TickUpper:    state.TickUpper,
		CurrentPrice: state.CurrentPrice,
		Liquidity:    c.Liquidity,
		Used0:        c.Used0,
		Used1:        c.Used1,
		Left0:        c.Left0,
		Left1:        c.Left1,
	})
}
