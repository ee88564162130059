package cmd

import (
	"github.com/spf13/cobra"
)

var registerUserCmd = &cobra.Command{
	Use:   "register",
	Short: "register a user and print the new credit record",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)
		loanStore := provideLoanStore(database)
		creditStore := provideCreditStore(database)
		priceStore := providePriceStore(database)
		transferStore := provideTransferStore(database)

		poolSrv := providePoolService()
		priceSrv := providePriceService(priceStore)
		scoreSrv := provideScoreService(creditStore)
		riskSrv := provideRiskService(poolStore, loanStore, creditStore, priceSrv, poolSrv)
		lendSrv := provideLendService(database, poolStore, loanStore, creditStore, transferStore, poolSrv, riskSrv, scoreSrv)

		record, err := lendSrv.RegisterUser(ctx)
		if err != nil {
			cmd.PrintErrln("register user error:", err)
			return
		}

		cmd.Println("user registered:", record.UserID)
	},
}

func init() {
	rootCmd.AddCommand(registerUserCmd)
}
