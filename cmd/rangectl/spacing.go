package main

import (
	"github.com/spf13/cobra"

	"liquidityRange/internal/tickmath"
)

type spacingOutput struct {
	Fee              uint32 `json:"fee"`
	TickSpacing      int    `json:"tick_spacing"`
	MinUsableTick    int    `json:"min_usable_tick"`
	MaxUsableTick    int    `json:"max_usable_tick"`
	Tick             *int   `json:"tick,omitempty"`
	NearestValidTick *int   `json:"nearest_valid_tick,omitempty"`
}

func newSpacingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spacing",
		Short: "Show tick spacing for fee tiers and snap a tick to the grid",
		RunE:  runSpacing,
	}
	cmd.Flags().Uint32("fee", 3000, "fee tier (100, 500, 3000, 10000)")
	cmd.Flags().Int("tick", 0, "tick to snap to the fee tier grid")
	cmd.Flags().Bool("all", false, "list every supported fee tier")
	return cmd
}

func runSpacing(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if all, _ := cmd.Flags().GetBool("all"); all {
		rows := make([]spacingOutput, 0, len(tickmath.FeeTiers()))
		for _, fee := range tickmath.FeeTiers() {
			row, err := spacingRow(fee)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return writeJSON(cmd, rows)
	}

	row, err := spacingRow(tickmath.FeeTier(cfg.Fee))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tick") {
		tick, _ := cmd.Flags().GetInt("tick")
		nearest, err := tickmath.NearestValidTick(tick, tickmath.FeeTier(cfg.Fee))
		if err != nil {
			return err
		}
		row.Tick = &tick
		row.NearestValidTick = &nearest
	}
	return writeJSON(cmd, row)
}

func spacingRow(fee tickmath.FeeTier) (spacingOutput, error) {
	spacing, err := tickmath.TickSpacing(fee)
	if err != nil {
		return spacingOutput{}, err
	}
	lo, hi := tickmath.UsableTickBounds(spacing)
	return spacingOutput{
		Fee:           uint32(fee),
		TickSpacing:   spacing,
		MinUsableTick: lo,
		MaxUsableTick: hi,
	}, nil
}
