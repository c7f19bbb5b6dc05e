package account

import (
	"context"

	"tandem/core"
	"tandem/pkg/number"
	"tandem/pkg/tandem"

	"github.com/shopspring/decimal"
)

type accountService struct {
	shares  core.IShareStore
	borrows core.IBorrowStore
	oraclez core.IPriceOracleService
}

// New new account risk service
func New(
	shares core.IShareStore,
	borrows core.IBorrowStore,
	oraclez core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		shares:  shares,
		borrows: borrows,
		oraclez: oraclez,
	}
}

func (s *accountService) GetAccountLiquidity(ctx context.Context, lending *core.LendingPool, collateral *core.CollateralPool, userID string) (*core.Account, error) {
	price, err := s.oraclez.GetUnderlyingPrice(ctx, collateral)
	if err != nil {
		return nil, err
	}

	share, err := s.shares.Find(ctx, userID, collateral.ShareSymbol)
	if err != nil {
		return nil, err
	}

	borrow, err := s.borrows.Find(ctx, userID, lending.AssetID)
	if err != nil {
		return nil, err
	}

	exchangeRate := tandem.GetExchangeRate(collateral.TotalCollateral, decimal.Zero, collateral.TotalShares, collateral.InitExchangeRate)
	collateralValue := tandem.CollateralValue(share.Shares, exchangeRate, price)
	capacity := tandem.BorrowCapacity(collateralValue, collateral.DebtRatioMax, collateral.LiquidationIncentive, collateral.LiquidationFee)
	debtValue := tandem.BorrowBalance(borrow.Principal, lending.BorrowIndex, borrow.InterestIndex)

	return &core.Account{
		UserID:          userID,
		Liquidity:       number.NonNegative(capacity.Sub(debtValue)),
		Shortfall:       number.NonNegative(debtValue.Sub(capacity)),
		Health:          tandem.AccountHealth(debtValue, capacity),
		CollateralValue: collateralValue,
		DebtValue:       debtValue,
	}, nil
}

// CanBorrow an account may add debt while health stays at or below 1;
// exact parity is still solvent.
func (s *accountService) CanBorrow(ctx context.Context, lending *core.LendingPool, collateral *core.CollateralPool, userID string, amount decimal.Decimal) (bool, error) {
	account, err := s.GetAccountLiquidity(ctx, lending, collateral, userID)
	if err != nil {
		return false, err
	}

	if account.Shortfall.IsPositive() {
		return false, nil
	}

	return amount.LessThanOrEqual(account.Liquidity), nil
}

func (s *accountService) CanRedeem(ctx context.Context, lending *core.LendingPool, collateral *core.CollateralPool, userID string, shares decimal.Decimal) (bool, error) {
	borrow, err := s.borrows.Find(ctx, userID, lending.AssetID)
	if err != nil {
		return false, err
	}

	debtValue := tandem.BorrowBalance(borrow.Principal, lending.BorrowIndex, borrow.InterestIndex)
	if !debtValue.IsPositive() {
		return true, nil
	}

	price, err := s.oraclez.GetUnderlyingPrice(ctx, collateral)
	if err != nil {
		return false, err
	}

	share, err := s.shares.Find(ctx, userID, collateral.ShareSymbol)
	if err != nil {
		return false, err
	}

	remaining := share.Shares.Sub(shares)
	if remaining.IsNegative() {
		return false, nil
	}

	exchangeRate := tandem.GetExchangeRate(collateral.TotalCollateral, decimal.Zero, collateral.TotalShares, collateral.InitExchangeRate)
	capacity := tandem.BorrowCapacity(
		tandem.CollateralValue(remaining, exchangeRate, price),
		collateral.DebtRatioMax,
		collateral.LiquidationIncentive,
		collateral.LiquidationFee,
	)

	return debtValue.LessThanOrEqual(capacity), nil
}

func (s *accountService) HasBorrows(ctx context.Context, userID string) (bool, error) {
	borrows, err := s.borrows.FindByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, b := range borrows {
		if b.Principal.IsPositive() {
			return true, nil
		}
	}

	return false, nil
}
