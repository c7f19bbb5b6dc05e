package handler

import (
	"net/http"

	"tandem/core"
	"tandem/handler/render"
	"tandem/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg           *core.Config
	engine        core.IEngine
	lendingz      core.ILendingService
	collateralz   core.ICollateralService
	transferStore core.ITransferStore
	accountStore  core.IAccountStore
}

// New new server
func New(
	cfg *core.Config,
	engine core.IEngine,
	lendingz core.ILendingService,
	collateralz core.ICollateralService,
	transferStore core.ITransferStore,
	accountStore core.IAccountStore,
) Server {
	return Server{
		cfg:           cfg,
		engine:        engine,
		lendingz:      lendingz,
		collateralz:   collateralz,
		transferStore: transferStore,
		accountStore:  accountStore,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		err := twirp.NotFoundError("not found")
		render.Error(w, http.StatusNotFound, int(core.ErrUnknown), err)
	})

	r.Mount("/", rest.Handle(s.engine, s.lendingz, s.collateralz, s.transferStore, s.accountStore))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
