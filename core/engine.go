package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// IEngine the serialized front door of the paired vaults. Every mutating
// operation runs to completion under one lock and one db transaction;
// failures roll back all state of the enclosing flow.
type IEngine interface {
	// Deposit routes by asset to the lending or collateral pool
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal, deadline time.Time) (decimal.Decimal, error)
	Redeem(ctx context.Context, userID, assetID string, shares decimal.Decimal, deadline time.Time) (decimal.Decimal, error)
	Borrow(ctx context.Context, userID string, amount decimal.Decimal, deadline time.Time) error
	Repay(ctx context.Context, userID string, amount decimal.Decimal, deadline time.Time) (decimal.Decimal, error)
	Liquidate(ctx context.Context, liquidator, borrower string, amount decimal.Decimal, swapOut bool, minOut decimal.Decimal, deadline time.Time) (*Liquidation, error)
	ResizePosition(ctx context.Context, userID, direction string, amount, minOut decimal.Decimal, deadline time.Time) (*Resize, error)

	// UpdateRiskParams admin-gated parameter update, validated against the
	// hard bounds before it is applied
	UpdateRiskParams(ctx context.Context, adminID string, params RiskParams, deadline time.Time) error
	// SyncPrice pulls a fresh oracle quote into the collateral pool record
	SyncPrice(ctx context.Context, at time.Time) error
	// Accrue brings lending pool interest up to date
	Accrue(ctx context.Context, at time.Time) error

	// read-only surface; may observe interest staler than the next mutation
	GetPools(ctx context.Context) (*LendingPool, *CollateralPool, error)
	GetAccountLiquidity(ctx context.Context, userID string) (*Account, error)
	GetBorrowBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// RiskParams admin-mutable parameter set; zero fields are left unchanged
type RiskParams struct {
	DebtRatioMax         decimal.Decimal `json:"debt_ratio_max"`
	LiquidationIncentive decimal.Decimal `json:"liquidation_incentive"`
	LiquidationFee       decimal.Decimal `json:"liquidation_fee"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
	BaseRate             decimal.Decimal `json:"base_rate"`
	Multiplier           decimal.Decimal `json:"multiplier"`
	JumpMultiplier       decimal.Decimal `json:"jump_multiplier"`
	Kink                 decimal.Decimal `json:"kink"`
}
