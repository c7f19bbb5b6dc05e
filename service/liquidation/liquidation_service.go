package liquidation

import (
	"context"

	"tandem/core"
	"tandem/pkg/tandem"
	"tandem/service/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type liquidationService struct {
	shares      core.IShareStore
	accountz    core.IAccountService
	lendingz    core.ILendingService
	collateralz core.ICollateralService
	oraclez     core.IPriceOracleService
	swapz       core.ISwapService
}

// New new liquidation service
func New(
	shares core.IShareStore,
	accountz core.IAccountService,
	lendingz core.ILendingService,
	collateralz core.ICollateralService,
	oraclez core.IPriceOracleService,
	swapz core.ISwapService,
) core.ILiquidationService {
	return &liquidationService{
		shares:      shares,
		accountz:    accountz,
		lendingz:    lendingz,
		collateralz: collateralz,
		oraclez:     oraclez,
		swapz:       swapz,
	}
}

// Liquidate settles an underwater borrower: the liquidator repays up to the
// owed amount and takes collateral shares worth repaid * (incentive + fee),
// the fee slice routing to the reserve holder. Any failed step aborts the
// whole settlement with the enclosing transaction.
func (s *liquidationService) Liquidate(ctx context.Context, tx *db.DB, lending *core.LendingPool, collateral *core.CollateralPool, liquidator, borrower string, amount decimal.Decimal, swapOut bool, minOut decimal.Decimal) (*core.Liquidation, error) {
	log := logger.FromContext(ctx).WithField("event", "liquidation")

	if liquidator == borrower {
		return nil, core.ErrCannotLiquidateSelf
	}

	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	account, err := s.accountz.GetAccountLiquidity(ctx, lending, collateral, borrower)
	if err != nil {
		return nil, err
	}

	// health exactly 1 is still solvent; seizure needs a strict shortfall
	if !account.Shortfall.IsPositive() {
		return nil, core.ErrNotLiquidatable
	}

	price, err := s.oraclez.GetUnderlyingPrice(ctx, collateral)
	if err != nil {
		return nil, err
	}

	applied, refund, err := s.lendingz.Repay(ctx, tx, lending, borrower, amount)
	if err != nil {
		return nil, err
	}

	exchangeRate := s.collateralz.CurExchangeRate(collateral)
	seized := tandem.SeizeShares(applied, collateral.LiquidationIncentive, collateral.LiquidationFee, exchangeRate, price)
	fee := tandem.FeeShares(applied, collateral.LiquidationFee, exchangeRate, price)

	held, err := s.shares.Find(ctx, borrower, collateral.ShareSymbol)
	if err != nil {
		return nil, err
	}

	if seized.GreaterThan(held.Shares) {
		return nil, core.ErrInsufficientCollateral
	}

	if err := vault.Move(ctx, tx, s.shares, collateral.ShareSymbol, borrower, liquidator, seized.Sub(fee)); err != nil {
		return nil, err
	}

	if fee.IsPositive() {
		if err := vault.Move(ctx, tx, s.shares, collateral.ShareSymbol, borrower, core.ReserveHolderID, fee); err != nil {
			return nil, err
		}
	}

	result := &core.Liquidation{
		Borrower:     borrower,
		RepaidAmount: applied,
		RefundAmount: refund,
		SeizedShares: seized.Sub(fee),
		FeeShares:    fee,
	}

	if swapOut {
		redeemed, err := s.collateralz.Redeem(ctx, tx, collateral, lending, liquidator, result.SeizedShares)
		if err != nil {
			return nil, err
		}

		out, err := s.swapz.Convert(ctx, collateral.AssetID, lending.AssetID, redeemed, minOut)
		if err != nil {
			return nil, err
		}

		result.SwappedOut = out
	}

	after, err := s.accountz.GetAccountLiquidity(ctx, lending, collateral, borrower)
	if err != nil {
		return nil, err
	}
	result.ShortfallAfter = after.Shortfall

	log.WithField("borrower", borrower).
		WithField("repaid", applied).
		WithField("seized", seized).
		Infoln("liquidated")

	return result, nil
}
