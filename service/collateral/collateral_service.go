package collateral

import (
	"context"

	"tandem/core"
	"tandem/pkg/tandem"
	"tandem/service/vault"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type collateralService struct {
	shares   core.IShareStore
	accountz core.IAccountService
}

// New new collateral pool service
func New(shares core.IShareStore, accountz core.IAccountService) core.ICollateralService {
	return &collateralService{
		shares:   shares,
		accountz: accountz,
	}
}

func (s *collateralService) CurExchangeRate(pool *core.CollateralPool) decimal.Decimal {
	return tandem.GetExchangeRate(pool.TotalCollateral, decimal.Zero, pool.TotalShares, pool.InitExchangeRate)
}

func (s *collateralService) Deposit(ctx context.Context, tx *db.DB, pool *core.CollateralPool, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	return vault.Mint(ctx, tx, s.shares, &vault.State{
		ShareSymbol:  pool.ShareSymbol,
		TotalShares:  &pool.TotalShares,
		TotalAssets:  &pool.TotalCollateral,
		ExchangeRate: s.CurExchangeRate(pool),
	}, userID, amount)
}

// Redeem burns collateral shares. A holder with outstanding debt may only
// withdraw down to the point where health stays at or below 1.
func (s *collateralService) Redeem(ctx context.Context, tx *db.DB, pool *core.CollateralPool, lending *core.LendingPool, userID string, shares decimal.Decimal) (decimal.Decimal, error) {
	ok, err := s.accountz.CanRedeem(ctx, lending, pool, userID, shares)
	if err != nil {
		return decimal.Zero, err
	}

	if !ok {
		return decimal.Zero, core.ErrRedeemNotAllowed
	}

	return vault.Burn(ctx, tx, s.shares, &vault.State{
		ShareSymbol:  pool.ShareSymbol,
		TotalShares:  &pool.TotalShares,
		TotalAssets:  &pool.TotalCollateral,
		ExchangeRate: s.CurExchangeRate(pool),
	}, userID, shares)
}
