package handler

import (
	"net/http"

	"pledge/core"
	"pledge/handler/hc"
	"pledge/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server api server
type Server struct {
	Version string

	Config         *core.Config
	PoolStore      core.IPoolStore
	LoanStore      core.ILoanStore
	CreditStore    core.ICreditStore
	PoolSrv        core.IPoolService
	RiskSrv        core.IRiskService
	LendSrv        core.ILendService
	LiquidationSrv core.ILiquidationService
	PriceSrv       core.IPriceService
}

// Handler assembles the full http mux
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.Version))
	mux.Mount("/api", rest.Handle(
		s.Config,
		s.PoolStore,
		s.LoanStore,
		s.CreditStore,
		s.PoolSrv,
		s.RiskSrv,
		s.LendSrv,
		s.LiquidationSrv,
		s.PriceSrv,
	))

	return mux
}
