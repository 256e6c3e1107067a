package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityRange/internal/tickmath"
)

// errPriceOutOfRange reports a price that overflows or underflows float64,
// which happens for ticks far outside [MinTick, MaxTick].
var errPriceOutOfRange = errors.New("price out of float64 range")

type priceOutput struct {
	Tick      *int    `json:"tick,omitempty"`
	Direction string  `json:"direction"`
	Price     float64 `json:"price"`
}

func newPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Convert a tick or a sqrtPriceX96 into a price",
		RunE:  runPrice,
	}
	cmd.Flags().Int("tick", 0, "tick to convert")
	cmd.Flags().String("sqrt-price-x96", "", "slot0 sqrtPriceX96 to convert instead of a tick")
	cmd.Flags().String("direction", "token0", "base token: token0 quotes token1 per token0, token1 the inverse")
	addDecimalsFlags(cmd)
	return cmd
}

func runPrice(cmd *cobra.Command, _ []string) error {
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

	out := priceOutput{Direction: dir.String()}
	if raw, _ := cmd.Flags().GetString("sqrt-price-x96"); raw != "" {
		sqrt, err := tickmath.ParseSqrtPriceX96(raw)
		if err != nil {
			return err
		}
		price := tickmath.SqrtPriceX96ToPrice(sqrt, d0, d1)
		if price == 0 {
			return fmt.Errorf("sqrt price %s: zero price", raw)
		}
		if dir == tickmath.Token1Base {
			price = 1 / price
		}
		out.Price = price
	} else {
		tick, _ := cmd.Flags().GetInt("tick")
		out.Tick = &tick
		out.Price = tickmath.TickToPriceIn(tick, d0, d1, dir)
	}
	if out.Price == 0 || math.IsInf(out.Price, 0) || math.IsNaN(out.Price) {
		if out.Tick != nil {
			return fmt.Errorf("tick %d: %w", *out.Tick, errPriceOutOfRange)
		}
		return errPriceOutOfRange
	}

	logger.Debug("price converted", zap.Float64("price", out.Price), zap.String("direction", out.Direction))
	return writeJSON(cmd, out)
}
