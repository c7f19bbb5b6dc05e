package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Resize directions
const (
	ResizeIncrease = "increase"
	ResizeDecrease = "decrease"
)

// Resize result of one atomic leverage or deleverage operation
type Resize struct {
	UserID    string `json:"user_id"`
	Direction string `json:"direction"`
	// borrow asset borrowed (increase) or repaid (decrease)
	DebtDelta decimal.Decimal `json:"debt_delta"`
	// collateral shares minted (increase) or burned (decrease)
	ShareDelta decimal.Decimal `json:"share_delta"`
	// conversion output that landed in pool custody
	Converted decimal.Decimal `json:"converted"`
	// borrow asset returned to the caller after a decrease
	Returned decimal.Decimal `json:"returned"`
	Health   decimal.Decimal `json:"health"`
}

// IPositionService atomic leverage / deleverage orchestration
type IPositionService interface {
	// Increase borrows amount, converts it to collateral asset and deposits
	// the proceeds as the caller's collateral. Fails with ErrUnhealthy if
	// the post state would exceed health 1.
	Increase(ctx context.Context, tx *db.DB, lending *LendingPool, collateral *CollateralPool, userID string, amount, minOut decimal.Decimal) (*Resize, error)
	// Decrease redeems shares, converts the proceeds to the borrow asset,
	// repays up to the owed amount and returns the remainder.
	Decrease(ctx context.Context, tx *db.DB, lending *LendingPool, collateral *CollateralPool, userID string, shares, minOut decimal.Decimal) (*Resize, error)
}
