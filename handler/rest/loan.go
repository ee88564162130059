package rest

import (
	"net/http"

	"pledge/core"
	"pledge/handler/param"
	"pledge/handler/render"
	"pledge/handler/views"
)

func loanHandler(loanStr core.ILoanStore, riskSrv core.IRiskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		loan, err := loanStr.Find(ctx, param.String(r, "loan"))
		if err != nil {
			render.Error(w, err)
			return
		}

		view := views.Loan{
			Loan:    *loan,
			Balance: loan.Balance(),
		}

		if risk, err := riskSrv.LoanRisk(ctx, loan); err == nil {
			view.Risk = risk
		}

		render.JSON(w, view)
	}
}

func userLoansHandler(loanStr core.ILoanStore, riskSrv core.IRiskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		loans, err := loanStr.FindByUser(ctx, param.String(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		loanViews := make([]*views.Loan, 0, len(loans))
		for _, loan := range loans {
			view := &views.Loan{
				Loan:    *loan,
				Balance: loan.Balance(),
			}

			if risk, err := riskSrv.LoanRisk(ctx, loan); err == nil {
				view.Risk = risk
			}

			loanViews = append(loanViews, view)
		}

		render.JSON(w, loanViews)
	}
}

func badLoansHandler(riskSrv core.IRiskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cursor := param.Uint64(r, "cursor")
		limit := param.Int(r, "limit")
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		ids, next, err := riskSrv.ScanBadLoans(ctx, cursor, limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"loan_ids":    ids,
			"next_cursor": next,
		})
	}
}
