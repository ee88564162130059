package rest

import (
	"net/http"

	"pledge/core"
	"pledge/handler/param"
	"pledge/handler/render"

	"github.com/shopspring/decimal"
)

func setPriceHandler(cfg *core.Config, priceSrv core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Admin   string          `json:"admin" valid:"uuid,required"`
			AssetID string          `json:"asset_id" valid:"uuid,required"`
			Price   decimal.Decimal `json:"price"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !cfg.IsAdmin(params.Admin) {
			render.Error(w, core.ErrOperationForbidden)
			return
		}

		if err := priceSrv.SetPrice(ctx, params.AssetID, params.Price); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"asset_id": params.AssetID, "price": params.Price})
	}
}
