package cmd

import (
	"pledge/core"
	creditservice "pledge/service/credit"
	"pledge/service/custody"
	lendservice "pledge/service/lend"
	liquidationservice "pledge/service/liquidation"
	"pledge/service/oracle"
	poolservice "pledge/service/pool"
	riskservice "pledge/service/risk"
	"pledge/store/credit"
	"pledge/store/loan"
	"pledge/store/pool"
	"pledge/store/price"
	"pledge/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func provideLoanStore(db *db.DB) core.ILoanStore {
	return loan.New(db)
}

func provideCreditStore(db *db.DB) core.ICreditStore {
	return credit.Cache(credit.New(db))
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

// ------------------service------------------------------------

func providePoolService() core.IPoolService {
	return poolservice.New()
}

func providePriceService(priceStore core.IPriceStore) core.IPriceService {
	return oracle.New(priceStore, cfg.PriceFeed.EndPoint)
}

func provideScoreService(creditStore core.ICreditStore) core.IScoreService {
	return creditservice.New(creditStore, cfg.Credit)
}

func provideCustodyService() core.ICustodyService {
	return custody.New()
}

func provideRiskService(
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	priceSrv core.IPriceService,
	poolSrv core.IPoolService,
) core.IRiskService {
	return riskservice.New(poolStore, loanStore, creditStore, priceSrv, poolSrv)
}

func provideLendService(
	db *db.DB,
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	transferStore core.ITransferStore,
	poolSrv core.IPoolService,
	riskSrv core.IRiskService,
	scoreSrv core.IScoreService,
) core.ILendService {
	return lendservice.New(db, poolStore, loanStore, creditStore, transferStore, poolSrv, riskSrv, scoreSrv)
}

func provideLiquidationService(
	db *db.DB,
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	transferStore core.ITransferStore,
	poolSrv core.IPoolService,
	riskSrv core.IRiskService,
	scoreSrv core.IScoreService,
	priceSrv core.IPriceService,
) core.ILiquidationService {
	return liquidationservice.New(db, poolStore, loanStore, creditStore, transferStore, poolSrv, riskSrv, scoreSrv, priceSrv)
}
