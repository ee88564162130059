package rest

import (
	"context"
	"net/http"

	"pledge/core"
	"pledge/handler/param"
	"pledge/handler/render"
	"pledge/handler/views"

	"github.com/shopspring/decimal"
)

func allPoolsHandler(poolStr core.IPoolStore, poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pools, err := poolStr.All(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		poolViews := make([]*views.Pool, 0, len(pools))
		for _, p := range pools {
			poolViews = append(poolViews, getPoolView(ctx, p, poolSrv))
		}

		render.JSON(w, poolViews)
	}
}

func poolHandler(poolStr core.IPoolStore, poolSrv core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := poolStr.Find(ctx, param.String(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, getPoolView(ctx, pool, poolSrv))
	}
}

func getPoolView(ctx context.Context, pool *core.Pool, poolSrv core.IPoolService) *views.Pool {
	utilizationRate, err := poolSrv.CurUtilizationRate(ctx, pool)
	if err != nil {
		utilizationRate = decimal.Zero
	}

	supplyRate, err := poolSrv.CurSupplyRate(ctx, pool)
	if err != nil {
		supplyRate = decimal.Zero
	}

	borrowRate, err := poolSrv.CurBorrowRate(ctx, pool)
	if err != nil {
		borrowRate = decimal.Zero
	}

	return &views.Pool{
		Pool:            *pool,
		Liquidity:       pool.Liquidity(),
		UtilizationRate: utilizationRate,
		SupplyAPY:       supplyRate,
		BorrowAPY:       borrowRate,
	}
}
