package cmd

import (
	"time"

	"pledge/core"
	"pledge/internal/kinked"
	"pledge/pkg/number"

	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "pool management",
}

var addPoolCmd = &cobra.Command{
	Use:   "add <asset_id> <symbol>",
	Short: "add a lending pool",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)

		incentive := number.Decimal(cmd.Flag("liquidation-incentive").Value.String())
		if incentive.LessThan(kinked.LiquidationIncentiveMin) ||
			incentive.GreaterThan(kinked.LiquidationIncentiveMax) {
			cmd.PrintErrln("liquidation incentive out of range")
			return
		}

		pool := &core.Pool{
			AssetID:              args[0],
			Symbol:               args[1],
			ReserveFactor:        number.Decimal(cmd.Flag("reserve-factor").Value.String()),
			BaseRate:             number.Decimal(cmd.Flag("base-rate").Value.String()),
			Multiplier:           number.Decimal(cmd.Flag("multiplier").Value.String()),
			JumpMultiplier:       number.Decimal(cmd.Flag("jump-multiplier").Value.String()),
			Kink:                 number.Decimal(cmd.Flag("kink").Value.String()),
			CollateralFactor:     number.Decimal(cmd.Flag("collateral-factor").Value.String()),
			LiquidationThreshold: number.Decimal(cmd.Flag("liquidation-threshold").Value.String()),
			LiquidationIncentive: incentive,
			LiquidityIndex:       number.Decimal("1"),
			BorrowIndex:          number.Decimal("1"),
			LastAccruedAt:        time.Now(),
		}

		if err := poolStore.Save(ctx, database, pool); err != nil {
			cmd.PrintErrln("save pool error:", err)
			return
		}

		cmd.Println("pool created:", pool.AssetID, pool.Symbol)
	},
}

func init() {
	addPoolCmd.Flags().String("reserve-factor", "0.1", "share of accrued interest kept as reserves")
	addPoolCmd.Flags().String("base-rate", "0.025", "base annual borrow rate")
	addPoolCmd.Flags().String("multiplier", "0.2", "rate slope below the kink")
	addPoolCmd.Flags().String("jump-multiplier", "1", "rate slope above the kink")
	addPoolCmd.Flags().String("kink", "0.8", "utilization kink")
	addPoolCmd.Flags().String("collateral-factor", "0.75", "max loan to value")
	addPoolCmd.Flags().String("liquidation-threshold", "0.85", "liquidation threshold")
	addPoolCmd.Flags().String("liquidation-incentive", "0.05", "liquidation bonus")

	poolCmd.AddCommand(addPoolCmd)
	rootCmd.AddCommand(poolCmd)
}
