package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LendingPool the borrow-asset market backing a collateral pool
type LendingPool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:lending_asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:lending_symbol_idx" json:"symbol"`
	// share token identifier, e.g. iUSD for a USD pool
	ShareSymbol string `sql:"size:20;unique_index:lending_share_idx" json:"share_symbol"`
	// asset held directly by the pool
	TotalCash decimal.Decimal `sql:"type:decimal(32,16)" json:"total_cash"`
	// outstanding principal plus accrued interest as of accrued_at
	TotalBorrows decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	// shares outstanding, reserve shares included
	TotalShares decimal.Decimal `sql:"type:decimal(32,16)" json:"total_shares"`
	// cumulative interest multiplier, starts at 1 and only moves forward
	BorrowIndex      decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"borrow_index"`
	InitExchangeRate decimal.Decimal `sql:"type:decimal(20,8);default:1" json:"init_exchange_rate"`
	// fraction of interest minted as reserve shares, [0, 0.5)
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// interest curve, rates per year
	BaseRate       decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	Multiplier     decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	Kink           decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	AccruedAt      time.Time       `json:"accrued_at"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TotalAssets pool value backing shares: cash on hand plus outstanding loans.
// Reserves are already represented as shares, not subtracted here.
func (p *LendingPool) TotalAssets() decimal.Decimal {
	return p.TotalCash.Add(p.TotalBorrows)
}

// ILendingPoolStore lending pool store interface
type ILendingPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *LendingPool) error
	Find(ctx context.Context, assetID string) (*LendingPool, error)
	FindBySymbol(ctx context.Context, symbol string) (*LendingPool, error)
	All(ctx context.Context) ([]*LendingPool, error)
	Update(ctx context.Context, tx *db.DB, pool *LendingPool) error
}

// ILendingService lending pool service interface
type ILendingService interface {
	CurExchangeRate(pool *LendingPool) decimal.Decimal
	CurUtilizationRate(pool *LendingPool) decimal.Decimal
	CurBorrowRate(pool *LendingPool) decimal.Decimal
	CurSupplyRate(pool *LendingPool) decimal.Decimal
	// AccrueInterest compounds borrows and the borrow index for the time
	// elapsed since pool.AccruedAt and credits reserve shares. Idempotent
	// within the same instant.
	AccrueInterest(ctx context.Context, tx *db.DB, pool *LendingPool, at time.Time) error
	Deposit(ctx context.Context, tx *db.DB, pool *LendingPool, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	Redeem(ctx context.Context, tx *db.DB, pool *LendingPool, userID string, shares decimal.Decimal) (decimal.Decimal, error)
	Borrow(ctx context.Context, tx *db.DB, pool *LendingPool, userID string, amount decimal.Decimal) error
	// Repay applies min(amount, owed) and returns (applied, refund)
	Repay(ctx context.Context, tx *db.DB, pool *LendingPool, userID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
}
