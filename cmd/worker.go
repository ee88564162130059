package cmd

import (
	"sync"

	"pledge/worker"
	"pledge/worker/accrual"
	"pledge/worker/cashier"
	"pledge/worker/priceoracle"
	"pledge/worker/scanner"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "pledge job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		poolStore := providePoolStore(database)
		loanStore := provideLoanStore(database)
		creditStore := provideCreditStore(database)
		priceStore := providePriceStore(database)
		transferStore := provideTransferStore(database)

		poolSrv := providePoolService()
		priceSrv := providePriceService(priceStore)
		riskSrv := provideRiskService(poolStore, loanStore, creditStore, priceSrv, poolSrv)
		custodySrv := provideCustodyService()

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")

		workers := []worker.Worker{
			cashier.New(database, transferStore, custodySrv, cashier.Config{
				Batch:    batch,
				Capacity: capacity,
			}),
			accrual.New(provideConfig(), database, poolStore, poolSrv),
			priceoracle.New(provideConfig(), priceSrv),
			scanner.New(propertyStore, riskSrv),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("cashier.batch", 100, "custom batch for worker cashier")
	workerCmd.Flags().Int64("cashier.capacity", 1, "custom capacity for worker cashier")
}
