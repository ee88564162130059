package rest

import (
	"net/http"

	"pledge/core"
	"pledge/handler/param"
	"pledge/handler/render"
	"pledge/handler/views"
)

const eventsLimit = 50

func creditHandler(creditStr core.ICreditStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := param.String(r, "user")
		record, err := creditStr.Find(ctx, userID)
		if err != nil {
			render.Error(w, err)
			return
		}

		events, err := creditStr.ListEvents(ctx, userID, eventsLimit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Credit{
			CreditRecord: *record,
			Events:       events,
		})
	}
}

func registerHandler(lendSrv core.ILendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := lendSrv.RegisterUser(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, record)
	}
}
