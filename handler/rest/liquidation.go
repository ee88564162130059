package rest

import (
	"net/http"

	"pledge/core"
	"pledge/handler/param"
	"pledge/handler/render"

	"github.com/shopspring/decimal"
)

func liquidateHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			LoanID       string          `json:"loan" valid:"uuid,required"`
			LiquidatorID string          `json:"liquidator_id" valid:"uuid,required"`
			Amount       decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := liquidationSrv.Liquidate(ctx, params.LoanID, params.LiquidatorID, params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, result)
	}
}
