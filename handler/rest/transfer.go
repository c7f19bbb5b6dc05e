package rest

import (
	"net/http"

	"tandem/core"
	"tandem/handler/param"
	"tandem/handler/render"
)

func transfersHandler(transferStore core.ITransferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			User  string `json:"user"`
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		var (
			transfers []*core.Transfer
			err       error
		)
		if params.User != "" {
			transfers, err = transferStore.ListByUser(ctx, params.User, params.Limit)
		} else {
			transfers, err = transferStore.List(ctx, params.From, params.Limit)
		}
		if err != nil {
			renderErr(w, err)
			return
		}

		render.JSON(w, transfers)
	}
}
