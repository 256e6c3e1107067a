package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liquidityRange/internal/liquidity"
)

type sizeOutput struct {
	CurrentPrice float64 `json:"current_price"`
	PriceLower   float64 `json:"price_lower"`
	PriceUpper   float64 `json:"price_upper"`
	Side         string  `json:"side"`
	Amount0      float64 `json:"amount0"`
	Amount1      float64 `json:"amount1"`
	Liquidity    float64 `json:"liquidity"`
	RangeState   string  `json:"range_state"`
}

func newSizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size the other token of a deposit from one known amount",
		Long: "Size the other token of a deposit from one known amount.\n" +
			"Prices are token1 per token0 and already adjusted for decimals.",
		RunE: runSize,
	}
	cmd.Flags().Float64("price", 0, "current price")
	cmd.Flags().Float64("lower", 0, "lower range price")
	cmd.Flags().Float64("upper", 0, "upper range price")
	cmd.Flags().Float64("amount", 0, "known token amount")
	cmd.Flags().String("side", "token0", "token of the known amount: token0 or token1")
	return cmd
}

func runSize(cmd *cobra.Command, _ []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	price, _ := cmd.Flags().GetFloat64("price")
	lower, _ := cmd.Flags().GetFloat64("lower")
	upper, _ := cmd.Flags().GetFloat64("upper")
	amount, _ := cmd.Flags().GetFloat64("amount")
	sideFlag, _ := cmd.Flags().GetString("side")

	var side liquidity.Side
	switch strings.ToLower(strings.TrimSpace(sideFlag)) {
	case "token0", "0":
		side = liquidity.Token0
	case "token1", "1":
		side = liquidity.Token1
	default:
		return fmt.Errorf("invalid side: %s", sideFlag)
	}

	r := liquidity.Range{Current: price, Lower: lower, Upper: upper}
	dep, err := liquidity.SizeDeposit(r, side, amount)
	if err != nil {
		return err
	}

	return writeJSON(cmd, sizeOutput{
		CurrentPrice: price,
		PriceLower:   lower,
		PriceUpper:   upper,
		Side:         side.String(),
		Amount0:      dep.Amount0,
		Amount1:      dep.Amount1,
		Liquidity:    dep.Liquidity,
		RangeState:   dep.Position.String(),
	})
}
