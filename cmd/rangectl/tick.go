package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"liquidityRange/internal/tickmath"
)

type tickOutput struct {
	Price            float64 `json:"price"`
	Direction        string  `json:"direction"`
	Tick             int     `json:"tick"`
	Fee              uint32  `json:"fee"`
	TickSpacing      int     `json:"tick_spacing"`
	NearestValidTick int     `json:"nearest_valid_tick"`
	Boundary         bool    `json:"usable_as_boundary"`
}

func newTickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Convert a price into a tick and snap it to a fee tier",
		RunE:  runTick,
	}
	cmd.Flags().Float64("price", 0, "price in the chosen direction")
	cmd.Flags().Uint32("fee", 3000, "fee tier (100, 500, 3000, 10000)")
	cmd.Flags().String("direction", "token0", "base token: token0 or token1")
	addDecimalsFlags(cmd)
	return cmd
}

func runTick(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dir, err := tickmath.ParseDirection(cfg.Direction)
	if err != nil {
		return err
	}
	d0, d1, err := decimalsFromFlags(cmd)
	if err != nil {
		return err
	}
	price, _ := cmd.Flags().GetFloat64("price")

	tick := tickmath.PriceToTickIn(price, d0, d1, dir)
	if math.IsNaN(tick) || math.IsInf(tick, 0) {
		return fmt.Errorf("price %v: %w", price, tickmath.ErrUnusableTick)
	}

	// Out-of-range ticks are reported at the nearest limit and flagged as
	// unusable boundaries.
	clamped := tickmath.ClampTick(int(tick))
	fee := tickmath.FeeTier(cfg.Fee)
	nearest, err := tickmath.NearestValidTick(clamped, fee)
	if err != nil {
		return err
	}
	spacing := tickmath.TickSpacingOrDefault(fee)
	_, boundaryErr := tickmath.BoundaryTickIn(price, d0, d1, dir)

	return writeJSON(cmd, tickOutput{
		Price:            price,
		Direction:        dir.String(),
		Tick:             clamped,
		Fee:              cfg.Fee,
		TickSpacing:      spacing,
		NearestValidTick: tickmath.ClampToGrid(nearest, spacing),
		Boundary:         boundaryErr == nil,
	})
}
