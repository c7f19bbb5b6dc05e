package rest

import (
	"net/http"

	"tandem/core"
	"tandem/handler/render"
	"tandem/handler/views"
)

func poolsHandler(engine core.IEngine, lendingz core.ILendingService, collateralz core.ICollateralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lending, collateral, err := engine.GetPools(ctx)
		if err != nil {
			renderErr(w, err)
			return
		}

		view := views.Pools{
			Lending: &views.LendingPool{
				LendingPool:     *lending,
				ExchangeRate:    lendingz.CurExchangeRate(lending),
				UtilizationRate: lendingz.CurUtilizationRate(lending),
				SupplyAPY:       lendingz.CurSupplyRate(lending),
				BorrowAPY:       lendingz.CurBorrowRate(lending),
			},
			Collateral: &views.CollateralPool{
				CollateralPool: *collateral,
				ExchangeRate:   collateralz.CurExchangeRate(collateral),
			},
		}

		render.JSON(w, view)
	}
}
