package rest

import (
	"errors"
	"net/http"

	"pledge/core"
	"pledge/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	poolSrv core.IPoolService,
	riskSrv core.IRiskService,
	lendSrv core.ILendService,
	liquidationSrv core.ILiquidationService,
	priceSrv core.IPriceService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", allPoolsHandler(poolStore, poolSrv))
	router.Get("/pools/{asset}", poolHandler(poolStore, poolSrv))
	router.Get("/loans/{loan}", loanHandler(loanStore, riskSrv))
	router.Get("/loans", badLoansHandler(riskSrv))
	router.Get("/users/{user}/credit", creditHandler(creditStore))
	router.Get("/users/{user}/loans", userLoansHandler(loanStore, riskSrv))
	router.Post("/loans/{loan}/liquidations", liquidateHandler(liquidationSrv))
	router.Post("/users", registerHandler(lendSrv))
	router.Post("/prices", setPriceHandler(cfg, priceSrv))

	return router
}
