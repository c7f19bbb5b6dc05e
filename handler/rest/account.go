package rest

import (
	"net/http"

	"tandem/core"
	"tandem/handler/render"
	"tandem/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "user")

		account, err := engine.GetAccountLiquidity(ctx, userID)
		if err != nil {
			renderErr(w, err)
			return
		}

		balance, err := engine.GetBorrowBalance(ctx, userID)
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, views.Account{
			Account:       *account,
			BorrowBalance: balance,
		})
	}
}

func underwaterHandler(accountStore core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, err := accountStore.ListUnderwater(r.Context())
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, snapshots)
	}
}
