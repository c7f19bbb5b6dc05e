package position

import (
	"context"

	"tandem/core"
	"tandem/service/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type positionService struct {
	shares      core.IShareStore
	accountz    core.IAccountService
	lendingz    core.ILendingService
	collateralz core.ICollateralService
	swapz       core.ISwapService
}

// New new position resizer
func New(
	shares core.IShareStore,
	accountz core.IAccountService,
	lendingz core.ILendingService,
	collateralz core.ICollateralService,
	swapz core.ISwapService,
) core.IPositionService {
	return &positionService{
		shares:      shares,
		accountz:    accountz,
		lendingz:    lendingz,
		collateralz: collateralz,
		swapz:       swapz,
	}
}

// Increase chains borrow, conversion and collateral deposit. The health
// check runs once against the post state; the deposit mints at the entry
// exchange rate so the whole flow settles on the snapshot taken here.
func (s *positionService) Increase(ctx context.Context, tx *db.DB, lending *core.LendingPool, collateral *core.CollateralPool, userID string, amount, minOut decimal.Decimal) (*core.Resize, error) {
	log := logger.FromContext(ctx).WithField("event", "leverage")

	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if err := s.lendingz.Borrow(ctx, tx, lending, userID, amount); err != nil {
		return nil, err
	}

	converted, err := s.swapz.Convert(ctx, lending.AssetID, collateral.AssetID, amount, minOut)
	if err != nil {
		return nil, err
	}

	minted, err := s.collateralz.Deposit(ctx, tx, collateral, userID, converted)
	if err != nil {
		return nil, err
	}

	account, err := s.accountz.GetAccountLiquidity(ctx, lending, collateral, userID)
	if err != nil {
		return nil, err
	}

	if account.Shortfall.IsPositive() {
		return nil, core.ErrUnhealthy
	}

	log.WithField("user", userID).
		WithField("borrowed", amount).
		WithField("minted", minted).
		Infoln("position increased")

	return &core.Resize{
		UserID:     userID,
		Direction:  core.ResizeIncrease,
		DebtDelta:  amount,
		ShareDelta: minted,
		Converted:  converted,
		Health:     account.Health,
	}, nil
}

// Decrease burns collateral shares, converts the proceeds and repays debt.
// The share burn skips the standing redeem gate because the repayment that
// follows restores health within the same atomic flow; the final state must
// not be worse than the entry state.
func (s *positionService) Decrease(ctx context.Context, tx *db.DB, lending *core.LendingPool, collateral *core.CollateralPool, userID string, shares, minOut decimal.Decimal) (*core.Resize, error) {
	log := logger.FromContext(ctx).WithField("event", "deleverage")

	if !shares.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	before, err := s.accountz.GetAccountLiquidity(ctx, lending, collateral, userID)
	if err != nil {
		return nil, err
	}

	redeemed, err := vault.Burn(ctx, tx, s.shares, &vault.State{
		ShareSymbol:  collateral.ShareSymbol,
		TotalShares:  &collateral.TotalShares,
		TotalAssets:  &collateral.TotalCollateral,
		ExchangeRate: s.collateralz.CurExchangeRate(collateral),
	}, userID, shares)
	if err != nil {
		return nil, err
	}

	converted, err := s.swapz.Convert(ctx, collateral.AssetID, lending.AssetID, redeemed, minOut)
	if err != nil {
		return nil, err
	}

	var applied, returned decimal.Decimal
	borrowed, err := s.accountz.HasBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}

	if borrowed {
		var refund decimal.Decimal
		applied, refund, err = s.lendingz.Repay(ctx, tx, lending, userID, converted)
		if err != nil {
			return nil, err
		}
		returned = refund
	} else {
		returned = converted
	}

	after, err := s.accountz.GetAccountLiquidity(ctx, lending, collateral, userID)
	if err != nil {
		return nil, err
	}

	if after.Shortfall.IsPositive() && after.Health.GreaterThan(before.Health) {
		return nil, core.ErrUnhealthy
	}

	log.WithField("user", userID).
		WithField("burned", shares).
		WithField("repaid", applied).
		Infoln("position decreased")

	return &core.Resize{
		UserID:     userID,
		Direction:  core.ResizeDecrease,
		DebtDelta:  applied,
		ShareDelta: shares,
		Converted:  converted,
		Returned:   returned,
		Health:     after.Health,
	}, nil
}
