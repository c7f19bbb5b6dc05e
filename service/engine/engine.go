package engine

import (
	"context"
	"sync"
	"time"

	"tandem/core"
	"tandem/pkg/id"
	"tandem/pkg/tandem"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Engine serializes every mutating operation of the paired vaults behind one
// lock and one db transaction, the accrue-then-act ordering applied at the
// top of each entry point.
type engine struct {
	mu sync.Mutex

	cfg *core.Config
	db  *db.DB

	pools       core.ILendingPoolStore
	collaterals core.ICollateralPoolStore
	shares      core.IShareStore
	borrows     core.IBorrowStore

	lendingz     core.ILendingService
	collateralz  core.ICollateralService
	accountz     core.IAccountService
	liquidationz core.ILiquidationService
	positionz    core.IPositionService
	walletz      core.IWalletService
	oraclez      core.IPriceOracleService
	notifier     core.IRewardNotifier
}

// New new engine
func New(
	cfg *core.Config,
	database *db.DB,
	pools core.ILendingPoolStore,
	collaterals core.ICollateralPoolStore,
	shares core.IShareStore,
	borrows core.IBorrowStore,
	lendingz core.ILendingService,
	collateralz core.ICollateralService,
	accountz core.IAccountService,
	liquidationz core.ILiquidationService,
	positionz core.IPositionService,
	walletz core.IWalletService,
	oraclez core.IPriceOracleService,
	notifier core.IRewardNotifier,
) (core.IEngine, error) {
	if _, err := govalidator.ValidateStruct(cfg.App); err != nil {
		return nil, err
	}

	return &engine{
		cfg:          cfg,
		db:           database,
		pools:        pools,
		collaterals:  collaterals,
		shares:       shares,
		borrows:      borrows,
		lendingz:     lendingz,
		collateralz:  collateralz,
		accountz:     accountz,
		liquidationz: liquidationz,
		positionz:    positionz,
		walletz:      walletz,
		oraclez:      oraclez,
		notifier:     notifier,
	}, nil
}

func (e *engine) checkDeadline(deadline time.Time) error {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return core.ErrExpired
	}

	return nil
}

func (e *engine) loadPools(ctx context.Context) (*core.LendingPool, *core.CollateralPool, error) {
	lending, err := e.pools.Find(ctx, e.cfg.App.BorrowAssetID)
	if err != nil {
		return nil, nil, err
	}

	if lending.ID == 0 {
		return nil, nil, core.ErrPoolNotFound
	}

	collateral, err := e.collaterals.Find(ctx, e.cfg.App.CollateralAssetID)
	if err != nil {
		return nil, nil, err
	}

	if collateral.ID == 0 {
		return nil, nil, core.ErrPoolNotFound
	}

	return lending, collateral, nil
}

func (e *engine) notifyShareChanged(ctx context.Context, userID, shareSymbol string, delta decimal.Decimal) {
	share, err := e.shares.Find(ctx, userID, shareSymbol)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Infoln("share lookup for reward event failed")
		return
	}

	e.notifier.ShareChanged(ctx, userID, shareSymbol, delta, share.Shares)
}

// Deposit routes by asset to the lending or collateral vault
func (e *engine) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal, deadline time.Time) (decimal.Decimal, error) {
	if err := e.checkDeadline(deadline); err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var minted decimal.Decimal
	var shareSymbol string
	trace := id.New()

	err := e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		action := core.NewAction()
		action[core.ActionKeyService] = core.ActionServiceDeposit
		action[core.ActionKeyUser] = userID
		action[core.ActionKeyReferTrace] = trace

		switch assetID {
		case lending.AssetID:
			if err := e.walletz.Pull(ctx, tx, userID, assetID, amount, action); err != nil {
				return err
			}

			if minted, err = e.lendingz.Deposit(ctx, tx, lending, userID, amount); err != nil {
				return err
			}
			shareSymbol = lending.ShareSymbol

		case collateral.AssetID:
			if err := e.walletz.Pull(ctx, tx, userID, assetID, amount, action); err != nil {
				return err
			}

			if minted, err = e.collateralz.Deposit(ctx, tx, collateral, userID, amount); err != nil {
				return err
			}
			shareSymbol = collateral.ShareSymbol

		default:
			return core.ErrPoolNotFound
		}

		if err := e.pools.Update(ctx, tx, lending); err != nil {
			return err
		}

		return e.collaterals.Update(ctx, tx, collateral)
	})
	if err != nil {
		return decimal.Zero, err
	}

	e.notifyShareChanged(ctx, userID, shareSymbol, minted)
	return minted, nil
}

func (e *engine) Redeem(ctx context.Context, userID, assetID string, shares decimal.Decimal, deadline time.Time) (decimal.Decimal, error) {
	if err := e.checkDeadline(deadline); err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var released decimal.Decimal
	var shareSymbol string
	trace := id.New()

	err := e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		switch assetID {
		case lending.AssetID:
			if released, err = e.lendingz.Redeem(ctx, tx, lending, userID, shares); err != nil {
				return err
			}
			shareSymbol = lending.ShareSymbol

		case collateral.AssetID:
			if released, err = e.collateralz.Redeem(ctx, tx, collateral, lending, userID, shares); err != nil {
				return err
			}
			shareSymbol = collateral.ShareSymbol

		default:
			return core.ErrPoolNotFound
		}

		action := core.NewAction()
		action[core.ActionKeyService] = core.ActionServiceRedeem
		action[core.ActionKeyUser] = userID
		action[core.ActionKeyReferTrace] = trace
		if err := e.walletz.Payout(ctx, tx, userID, assetID, released, action); err != nil {
			return err
		}

		if err := e.pools.Update(ctx, tx, lending); err != nil {
			return err
		}

		return e.collaterals.Update(ctx, tx, collateral)
	})
	if err != nil {
		return decimal.Zero, err
	}

	e.notifyShareChanged(ctx, userID, shareSymbol, shares.Neg())
	return released, nil
}

// Borrow draws from the lending pool against the caller's collateral. The
// admission check runs before the ledger update so a rejected borrow leaves
// no trace.
func (e *engine) Borrow(ctx context.Context, userID string, amount decimal.Decimal, deadline time.Time) error {
	if err := e.checkDeadline(deadline); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	trace := id.New()

	return e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		ok, err := e.accountz.CanBorrow(ctx, lending, collateral, userID, amount)
		if err != nil {
			return err
		}

		if !ok {
			return core.ErrUnhealthy
		}

		if err := e.lendingz.Borrow(ctx, tx, lending, userID, amount); err != nil {
			return err
		}

		action := core.NewAction()
		action[core.ActionKeyService] = core.ActionServiceBorrow
		action[core.ActionKeyUser] = userID
		action[core.ActionKeyReferTrace] = trace
		if err := e.walletz.Payout(ctx, tx, userID, lending.AssetID, amount, action); err != nil {
			return err
		}

		return e.pools.Update(ctx, tx, lending)
	})
}

func (e *engine) Repay(ctx context.Context, userID string, amount decimal.Decimal, deadline time.Time) (decimal.Decimal, error) {
	if err := e.checkDeadline(deadline); err != nil {
		return decimal.Zero, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var applied decimal.Decimal
	trace := id.New()

	err := e.db.Tx(func(tx *db.DB) error {
		lending, _, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		applied, _, err = e.lendingz.Repay(ctx, tx, lending, userID, amount)
		if err != nil {
			return err
		}

		action := core.NewAction()
		action[core.ActionKeyService] = core.ActionServiceRepay
		action[core.ActionKeyUser] = userID
		action[core.ActionKeyReferTrace] = trace
		if err := e.walletz.Pull(ctx, tx, userID, lending.AssetID, applied, action); err != nil {
			return err
		}

		return e.pools.Update(ctx, tx, lending)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return applied, nil
}

func (e *engine) Liquidate(ctx context.Context, liquidator, borrower string, amount decimal.Decimal, swapOut bool, minOut decimal.Decimal, deadline time.Time) (*core.Liquidation, error) {
	if err := e.checkDeadline(deadline); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var result *core.Liquidation
	var shareSymbol string
	trace := id.New()

	err := e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}
		shareSymbol = collateral.ShareSymbol

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		result, err = e.liquidationz.Liquidate(ctx, tx, lending, collateral, liquidator, borrower, amount, swapOut, minOut)
		if err != nil {
			return err
		}

		action := core.NewAction()
		action[core.ActionKeyService] = core.ActionServiceLiquidate
		action[core.ActionKeyUser] = liquidator
		action[core.ActionKeyReferTrace] = trace
		if err := e.walletz.Pull(ctx, tx, liquidator, lending.AssetID, result.RepaidAmount, action); err != nil {
			return err
		}

		if result.SwappedOut.IsPositive() {
			credit := core.NewAction()
			credit[core.ActionKeyService] = core.ActionServiceLiquidatePayout
			credit[core.ActionKeyUser] = liquidator
			credit[core.ActionKeyReferTrace] = trace
			if err := e.walletz.Credit(ctx, tx, liquidator, lending.AssetID, result.SwappedOut, credit); err != nil {
				return err
			}

			payout := core.NewAction()
			payout[core.ActionKeyService] = core.ActionServiceLiquidatePayout
			payout[core.ActionKeyUser] = liquidator
			payout[core.ActionKeyReferTrace] = trace
			if err := e.walletz.Payout(ctx, tx, liquidator, lending.AssetID, result.SwappedOut, payout); err != nil {
				return err
			}
		}

		if err := e.pools.Update(ctx, tx, lending); err != nil {
			return err
		}

		return e.collaterals.Update(ctx, tx, collateral)
	})
	if err != nil {
		return nil, err
	}

	e.notifyShareChanged(ctx, borrower, shareSymbol, result.SeizedShares.Add(result.FeeShares).Neg())
	e.notifyShareChanged(ctx, liquidator, shareSymbol, result.SeizedShares)

	return result, nil
}

func (e *engine) ResizePosition(ctx context.Context, userID, direction string, amount, minOut decimal.Decimal, deadline time.Time) (*core.Resize, error) {
	if err := e.checkDeadline(deadline); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var result *core.Resize
	var shareSymbol string
	trace := id.New()

	err := e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}
		shareSymbol = collateral.ShareSymbol

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		switch direction {
		case core.ResizeIncrease:
			result, err = e.positionz.Increase(ctx, tx, lending, collateral, userID, amount, minOut)
		case core.ResizeDecrease:
			result, err = e.positionz.Decrease(ctx, tx, lending, collateral, userID, amount, minOut)
		default:
			return core.ErrInvalidAmount
		}
		if err != nil {
			return err
		}

		for _, leg := range resizeLegs(direction, userID, trace, lending, collateral, result) {
			var err error
			if leg.out {
				err = e.walletz.Payout(ctx, tx, userID, leg.assetID, leg.amount, leg.action)
			} else {
				err = e.walletz.Credit(ctx, tx, userID, leg.assetID, leg.amount, leg.action)
			}
			if err != nil {
				return err
			}
		}

		if err := e.pools.Update(ctx, tx, lending); err != nil {
			return err
		}

		return e.collaterals.Update(ctx, tx, collateral)
	})
	if err != nil {
		return nil, err
	}

	delta := result.ShareDelta
	if direction == core.ResizeDecrease {
		delta = delta.Neg()
	}
	e.notifyShareChanged(ctx, userID, shareSymbol, delta)

	return result, nil
}

// transferLeg one wallet journal entry of a resize flow
type transferLeg struct {
	out     bool
	assetID string
	amount  decimal.Decimal
	action  core.Action
}

// resizeLegs the journal legs of one resize. On increase the borrowed
// funds leave custody for the converter and the proceeds land back as
// collateral; on decrease the proceeds land as borrow asset and any
// remainder after repayment settles out to the caller. Every movement
// gets a leg so the journal balances across the flow.
func resizeLegs(direction, userID, trace string, lending *core.LendingPool, collateral *core.CollateralPool, result *core.Resize) []transferLeg {
	newAction := func(service string) core.Action {
		action := core.NewAction()
		action[core.ActionKeyService] = service
		action[core.ActionKeyUser] = userID
		action[core.ActionKeyReferTrace] = trace
		return action
	}

	var legs []transferLeg
	switch direction {
	case core.ResizeIncrease:
		if result.DebtDelta.IsPositive() {
			legs = append(legs, transferLeg{out: true, assetID: lending.AssetID, amount: result.DebtDelta, action: newAction(core.ActionServiceResize)})
		}
		if result.Converted.IsPositive() {
			legs = append(legs, transferLeg{assetID: collateral.AssetID, amount: result.Converted, action: newAction(core.ActionServiceResize)})
		}
	case core.ResizeDecrease:
		if result.Converted.IsPositive() {
			legs = append(legs, transferLeg{assetID: lending.AssetID, amount: result.Converted, action: newAction(core.ActionServiceResize)})
		}
	}

	if result.Returned.IsPositive() {
		legs = append(legs, transferLeg{out: true, assetID: lending.AssetID, amount: result.Returned, action: newAction(core.ActionServiceResizeReturn)})
	}

	return legs
}

// UpdateRiskParams validates every supplied parameter against its hard
// bounds before anything is written; zero fields stay unchanged.
func (e *engine) UpdateRiskParams(ctx context.Context, adminID string, params core.RiskParams, deadline time.Time) error {
	if err := e.checkDeadline(deadline); err != nil {
		return err
	}

	if !e.cfg.IsAdmin(adminID) {
		return core.ErrOperationForbidden
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.db.Tx(func(tx *db.DB) error {
		lending, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, time.Now()); err != nil {
			return err
		}

		if err := applyParams(lending, collateral, params); err != nil {
			return err
		}

		if err := e.pools.Update(ctx, tx, lending); err != nil {
			return err
		}

		return e.collaterals.Update(ctx, tx, collateral)
	})
}

func applyParams(lending *core.LendingPool, collateral *core.CollateralPool, params core.RiskParams) error {
	if v := params.DebtRatioMax; v.IsPositive() {
		if v.GreaterThan(tandem.DebtRatioMax) {
			return core.ErrParamOutOfRange
		}
		collateral.DebtRatioMax = v
	}

	if v := params.LiquidationIncentive; v.IsPositive() {
		if v.LessThanOrEqual(tandem.LiquidationIncentiveMin) || v.GreaterThan(tandem.LiquidationIncentiveMax) {
			return core.ErrParamOutOfRange
		}
		collateral.LiquidationIncentive = v
	}

	if v := params.LiquidationFee; v.IsPositive() {
		if v.GreaterThan(tandem.LiquidationFeeMax) {
			return core.ErrParamOutOfRange
		}
		collateral.LiquidationFee = v
	}

	if v := params.ReserveFactor; v.IsPositive() {
		if v.GreaterThan(tandem.ReserveFactorMax) {
			return core.ErrParamOutOfRange
		}
		lending.ReserveFactor = v
	}

	if v := params.BaseRate; v.IsPositive() {
		lending.BaseRate = v
	}

	if v := params.Multiplier; v.IsPositive() {
		lending.Multiplier = v
	}

	if v := params.JumpMultiplier; v.IsPositive() {
		lending.JumpMultiplier = v
	}

	if v := params.Kink; v.IsPositive() {
		if v.GreaterThan(tandem.KinkMax) {
			return core.ErrParamOutOfRange
		}
		lending.Kink = v
	}

	return nil
}

func (e *engine) SyncPrice(ctx context.Context, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.db.Tx(func(tx *db.DB) error {
		_, collateral, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		ticker, err := e.oraclez.PullPriceTicker(ctx, collateral.AssetID, at)
		if err != nil {
			return err
		}

		collateral.Price = ticker.Price
		collateral.PriceUpdatedAt = at
		return e.collaterals.Update(ctx, tx, collateral)
	})
}

func (e *engine) Accrue(ctx context.Context, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.db.Tx(func(tx *db.DB) error {
		lending, _, err := e.loadPools(ctx)
		if err != nil {
			return err
		}

		if err := e.lendingz.AccrueInterest(ctx, tx, lending, at); err != nil {
			return err
		}

		return e.pools.Update(ctx, tx, lending)
	})
}

func (e *engine) GetPools(ctx context.Context) (*core.LendingPool, *core.CollateralPool, error) {
	return e.loadPools(ctx)
}

func (e *engine) GetAccountLiquidity(ctx context.Context, userID string) (*core.Account, error) {
	lending, collateral, err := e.loadPools(ctx)
	if err != nil {
		return nil, err
	}

	return e.accountz.GetAccountLiquidity(ctx, lending, collateral, userID)
}

// GetBorrowBalance virtually accrues interest up to now for display; the
// stored state stays untouched.
func (e *engine) GetBorrowBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	lending, _, err := e.loadPools(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	borrow, err := e.borrows.Find(ctx, userID, lending.AssetID)
	if err != nil {
		return decimal.Zero, err
	}

	index := lending.BorrowIndex
	if !index.IsPositive() {
		index = decimal.New(1, 0)
	}

	if elapsed := decimal.NewFromInt(time.Now().Unix() - lending.AccruedAt.Unix()); elapsed.IsPositive() && !lending.AccruedAt.IsZero() {
		rate := tandem.GetBorrowRatePerSecond(
			tandem.UtilizationRate(lending.TotalCash, lending.TotalBorrows),
			lending.BaseRate,
			lending.Multiplier,
			lending.JumpMultiplier,
			lending.Kink,
		)
		index = index.Add(rate.Mul(elapsed).Mul(index)).Truncate(tandem.MaxPrecision)
	}

	return tandem.BorrowBalance(borrow.Principal, index, borrow.InterestIndex), nil
}
