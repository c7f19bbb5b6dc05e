package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Liquidation settlement result of one liquidation event
type Liquidation struct {
	Borrower string `json:"borrower"`
	// debt actually repaid, capped at the owed amount
	RepaidAmount decimal.Decimal `json:"repaid_amount"`
	// refund to the liquidator when the requested amount exceeded the owed amount
	RefundAmount decimal.Decimal `json:"refund_amount"`
	// collateral shares moved to the liquidator
	SeizedShares decimal.Decimal `json:"seized_shares"`
	// collateral shares moved to the protocol fee holder
	FeeShares decimal.Decimal `json:"fee_shares"`
	// borrow asset paid out when the liquidator chose to swap the seizure out
	SwappedOut decimal.Decimal `json:"swapped_out"`
	// shortfall remaining after settlement
	ShortfallAfter decimal.Decimal `json:"shortfall_after"`
}

// ILiquidationService the settlement sequence for an underwater borrower
type ILiquidationService interface {
	// Liquidate repays up to amount of the borrower's debt on the
	// liquidator's behalf and seizes discounted collateral shares. When
	// swapOut is set the seized shares are redeemed and converted to the
	// borrow asset, guarded by minOut.
	Liquidate(ctx context.Context, tx *db.DB, lending *LendingPool, collateral *CollateralPool, liquidator, borrower string, amount decimal.Decimal, swapOut bool, minOut decimal.Decimal) (*Liquidation, error)
}
