package liquidity

import (
	"context"
	"time"

	"tandem/core"
	"tandem/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Worker scans every borrower and persists a liquidity snapshot, the feed
// liquidators watch for underwater accounts.
type Worker struct {
	worker.BaseJob
	pools       core.ILendingPoolStore
	collaterals core.ICollateralPoolStore
	borrows     core.IBorrowStore
	accounts    core.IAccountStore
	accountz    core.IAccountService

	borrowAsset     string
	collateralAsset string
}

// New new liquidity worker
func New(
	location string,
	cfg *core.Config,
	pools core.ILendingPoolStore,
	collaterals core.ICollateralPoolStore,
	borrows core.IBorrowStore,
	accounts core.IAccountStore,
	accountz core.IAccountService,
) *Worker {
	job := Worker{
		pools:           pools,
		collaterals:     collaterals,
		borrows:         borrows,
		accounts:        accounts,
		accountz:        accountz,
		borrowAsset:     cfg.App.BorrowAssetID,
		collateralAsset: cfg.App.CollateralAssetID,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidity")

	lending, err := w.pools.Find(ctx, w.borrowAsset)
	if err != nil {
		return err
	}

	collateral, err := w.collaterals.Find(ctx, w.collateralAsset)
	if err != nil {
		return err
	}

	if lending.ID == 0 || collateral.ID == 0 {
		return core.ErrPoolNotFound
	}

	users, err := w.borrows.Users(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(16)
	for _, userID := range users {
		userID := userID
		g.Go(func() error {
			account, err := w.accountz.GetAccountLiquidity(ctx, lending, collateral, userID)
			if err != nil {
				log.WithError(err).WithField("user", userID).Errorln("account liquidity failed")
				return err
			}

			return w.accounts.SaveLiquidity(ctx, userID, account.Liquidity, account.Shortfall)
		})
	}

	return g.Wait()
}
