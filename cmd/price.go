package cmd

import (
	"pledge/pkg/number"

	"github.com/spf13/cobra"
)

var setPriceCmd = &cobra.Command{
	Use:   "setprice <asset_id> <price>",
	Short: "set the unit price of an asset",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		priceSrv := providePriceService(providePriceStore(database))

		if err := priceSrv.SetPrice(ctx, args[0], number.Decimal(args[1])); err != nil {
			cmd.PrintErrln("set price error:", err)
			return
		}

		cmd.Println("price updated:", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(setPriceCmd)
}
