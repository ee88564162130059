package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pledge/handler"

	"github.com/drone/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run pledge api server",
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
		liquidationSrv := provideLiquidationService(database, poolStore, loanStore, creditStore, transferStore, poolSrv, riskSrv, scoreSrv, priceSrv)

		svr := handler.Server{
			Version:        rootCmd.Version,
			Config:         provideConfig(),
			PoolStore:      poolStore,
			LoanStore:      loanStore,
			CreditStore:    creditStore,
			PoolSrv:        poolSrv,
			RiskSrv:        riskSrv,
			LendSrv:        lendSrv,
			LiquidationSrv: liquidationSrv,
			PriceSrv:       priceSrv,
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: svr.Handler(),
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
