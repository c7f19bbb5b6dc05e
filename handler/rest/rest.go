package rest

import (
	"errors"
	"net/http"

	"tandem/core"
	"tandem/handler/codes"
	"tandem/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	engine core.IEngine,
	lendingz core.ILendingService,
	collateralz core.ICollateralService,
	transferStore core.ITransferStore,
	accountStore core.IAccountStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", poolsHandler(engine, lendingz, collateralz))
	router.Get("/accounts/{user}", accountHandler(engine))
	router.Get("/accounts/underwater", underwaterHandler(accountStore))
	router.Get("/transfers", transfersHandler(transferStore))

	router.Post("/deposit", depositHandler(engine))
	router.Post("/redeem", redeemHandler(engine))
	router.Post("/borrow", borrowHandler(engine))
	router.Post("/repay", repayHandler(engine))
	router.Post("/liquidate", liquidateHandler(engine))
	router.Post("/resize", resizeHandler(engine))

	return router
}

func renderErr(w http.ResponseWriter, err error) {
	status, code, msg := codes.Resolve(err)
	render.Error(w, status, code, errors.New(msg))
}
