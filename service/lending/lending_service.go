package lending

import (
	"context"
	"time"

	"tandem/core"
	"tandem/pkg/number"
	"tandem/pkg/tandem"
	"tandem/service/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type lendingService struct {
	shares  core.IShareStore
	borrows core.IBorrowStore
}

// New new lending pool service
func New(shares core.IShareStore, borrows core.IBorrowStore) core.ILendingService {
	return &lendingService{
		shares:  shares,
		borrows: borrows,
	}
}

func (s *lendingService) CurExchangeRate(pool *core.LendingPool) decimal.Decimal {
	return tandem.GetExchangeRate(pool.TotalCash, pool.TotalBorrows, pool.TotalShares, pool.InitExchangeRate)
}

func (s *lendingService) CurUtilizationRate(pool *core.LendingPool) decimal.Decimal {
	return tandem.UtilizationRate(pool.TotalCash, pool.TotalBorrows)
}

func (s *lendingService) CurBorrowRate(pool *core.LendingPool) decimal.Decimal {
	return tandem.GetBorrowRatePerSecond(
		s.CurUtilizationRate(pool),
		pool.BaseRate,
		pool.Multiplier,
		pool.JumpMultiplier,
		pool.Kink,
	).Mul(tandem.SecondsPerYear).Truncate(tandem.MaxPrecision)
}

func (s *lendingService) CurSupplyRate(pool *core.LendingPool) decimal.Decimal {
	return tandem.GetSupplyRatePerSecond(
		s.CurUtilizationRate(pool),
		pool.BaseRate,
		pool.Multiplier,
		pool.JumpMultiplier,
		pool.Kink,
		pool.ReserveFactor,
	).Mul(tandem.SecondsPerYear).Truncate(tandem.MaxPrecision)
}

// AccrueInterest compounds totalBorrows and the borrow index for the seconds
// elapsed since the last accrual and mints the reserve factor slice of the
// interest as shares to the reserve holder. Running twice at the same
// instant is a no-op.
func (s *lendingService) AccrueInterest(ctx context.Context, tx *db.DB, pool *core.LendingPool, at time.Time) error {
	if !pool.BorrowIndex.IsPositive() {
		pool.BorrowIndex = decimal.New(1, 0)
	}

	if pool.AccruedAt.IsZero() {
		pool.AccruedAt = at
		return nil
	}

	elapsed := decimal.NewFromInt(at.Unix() - pool.AccruedAt.Unix())
	if !elapsed.IsPositive() {
		return nil
	}

	rate := tandem.GetBorrowRatePerSecond(
		tandem.UtilizationRate(pool.TotalCash, pool.TotalBorrows),
		pool.BaseRate,
		pool.Multiplier,
		pool.JumpMultiplier,
		pool.Kink,
	)

	timesRate := rate.Mul(elapsed)
	interest := pool.TotalBorrows.Mul(timesRate).Truncate(tandem.MaxPrecision)

	pool.AccruedAt = at
	pool.TotalBorrows = pool.TotalBorrows.Add(interest)
	pool.BorrowIndex = pool.BorrowIndex.Add(
		number.Ceil(timesRate.Mul(pool.BorrowIndex), tandem.MaxPrecision))

	// the protocol's cut of the interest compounds as shares. Minting
	// dilutes the exchange rate, so the mint is priced against the pool
	// net of the cut; the freshly minted shares then carry the cut's
	// value after dilution.
	reserveAssets := interest.Mul(pool.ReserveFactor).Truncate(tandem.MaxPrecision)
	if reserveAssets.IsPositive() && pool.TotalShares.IsPositive() {
		netAssets := pool.TotalCash.Add(pool.TotalBorrows).Sub(reserveAssets)
		reserveShares := decimal.Zero
		if netAssets.IsPositive() {
			reserveShares = number.DivFloor(reserveAssets.Mul(pool.TotalShares), netAssets, tandem.AmountPrecision)
		}
		if reserveShares.IsPositive() {
			if err := s.shares.Add(ctx, tx, core.ReserveHolderID, pool.ShareSymbol, reserveShares); err != nil {
				return err
			}
			pool.TotalShares = pool.TotalShares.Add(reserveShares)
		}
	}

	return nil
}

func (s *lendingService) Deposit(ctx context.Context, tx *db.DB, pool *core.LendingPool, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	return vault.Mint(ctx, tx, s.shares, &vault.State{
		ShareSymbol:  pool.ShareSymbol,
		TotalShares:  &pool.TotalShares,
		TotalAssets:  &pool.TotalCash,
		ExchangeRate: s.CurExchangeRate(pool),
	}, userID, amount)
}

func (s *lendingService) Redeem(ctx context.Context, tx *db.DB, pool *core.LendingPool, userID string, shares decimal.Decimal) (decimal.Decimal, error) {
	rate := s.CurExchangeRate(pool)

	// loans out on the book are not redeemable cash
	if tandem.AssetsFromShares(shares, rate).GreaterThan(pool.TotalCash) {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	return vault.Burn(ctx, tx, s.shares, &vault.State{
		ShareSymbol:  pool.ShareSymbol,
		TotalShares:  &pool.TotalShares,
		TotalAssets:  &pool.TotalCash,
		ExchangeRate: rate,
	}, userID, shares)
}

// Borrow updates the borrower's position and moves cash off the book. Risk
// admission is the engine's job; this only enforces pool liquidity.
func (s *lendingService) Borrow(ctx context.Context, tx *db.DB, pool *core.LendingPool, userID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if amount.GreaterThan(pool.TotalCash) {
		return core.ErrInsufficientLiquidity
	}

	borrow, err := s.borrows.Find(ctx, userID, pool.AssetID)
	if err != nil {
		return err
	}

	owed := tandem.BorrowBalance(borrow.Principal, pool.BorrowIndex, borrow.InterestIndex)
	borrow.Principal = owed.Add(amount)
	borrow.InterestIndex = pool.BorrowIndex

	if borrow.ID == 0 {
		borrow.UserID = userID
		borrow.AssetID = pool.AssetID
		if err := s.borrows.Create(ctx, tx, borrow); err != nil {
			return err
		}
	} else if err := s.borrows.Update(ctx, tx, borrow); err != nil {
		return err
	}

	pool.TotalCash = pool.TotalCash.Sub(amount)
	pool.TotalBorrows = pool.TotalBorrows.Add(amount)

	logger.FromContext(ctx).WithField("user", userID).Debugln("borrow", amount)
	return nil
}

// Repay applies min(amount, owed) against the borrower's debt and returns
// (applied, refund). Overpayment never sticks to the pool.
func (s *lendingService) Repay(ctx context.Context, tx *db.DB, pool *core.LendingPool, userID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, core.ErrInvalidAmount
	}

	borrow, err := s.borrows.Find(ctx, userID, pool.AssetID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if borrow.ID == 0 {
		return decimal.Zero, decimal.Zero, core.ErrBorrowNotFound
	}

	owed := tandem.BorrowBalance(borrow.Principal, pool.BorrowIndex, borrow.InterestIndex)
	applied := number.Min(amount, owed)
	refund := amount.Sub(applied)

	borrow.Principal = number.NonNegative(owed.Sub(applied))
	borrow.InterestIndex = pool.BorrowIndex
	if err := s.borrows.Update(ctx, tx, borrow); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	pool.TotalBorrows = number.NonNegative(pool.TotalBorrows.Sub(applied))
	pool.TotalCash = pool.TotalCash.Add(applied)

	return applied, refund, nil
}
