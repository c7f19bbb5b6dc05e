package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account a borrower's derived position
type Account struct {
	UserID string `json:"user_id"`
	// borrow capacity minus debt value, zero when under water
	Liquidity decimal.Decimal `json:"liquidity"`
	// debt value minus borrow capacity, zero while solvent
	Shortfall decimal.Decimal `json:"shortfall"`
	// debt value over capacity; above 1 the account is liquidatable
	Health          decimal.Decimal `json:"health"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	DebtValue       decimal.Decimal `json:"debt_value"`
}

// LiquiditySnapshot persisted scanner output for one borrower
type LiquiditySnapshot struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:36;unique_index:liquidity_user_idx" json:"user_id"`
	Liquidity decimal.Decimal `sql:"type:decimal(32,16)" json:"liquidity"`
	Shortfall decimal.Decimal `sql:"type:decimal(32,16)" json:"shortfall"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAccountStore liquidity snapshot store interface
type IAccountStore interface {
	SaveLiquidity(ctx context.Context, userID string, liquidity, shortfall decimal.Decimal) error
	FindLiquidity(ctx context.Context, userID string) (*LiquiditySnapshot, error)
	ListUnderwater(ctx context.Context) ([]*LiquiditySnapshot, error)
}

// IAccountService the risk engine: account valuation and permission checks
type IAccountService interface {
	// GetAccountLiquidity computes the account position from the paired
	// pools and the oracle price. Exactly one of liquidity and shortfall is
	// nonzero, or both are zero at exact parity.
	GetAccountLiquidity(ctx context.Context, lending *LendingPool, collateral *CollateralPool, userID string) (*Account, error)
	// CanBorrow whether increasing debt by amount keeps health <= 1
	CanBorrow(ctx context.Context, lending *LendingPool, collateral *CollateralPool, userID string, amount decimal.Decimal) (bool, error)
	// CanRedeem whether burning shares keeps health <= 1 for a debtor
	CanRedeem(ctx context.Context, lending *LendingPool, collateral *CollateralPool, userID string, shares decimal.Decimal) (bool, error)
	HasBorrows(ctx context.Context, userID string) (bool, error)
}
