package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Transfer direction
const (
	TransferDirectionIn  = "in"
	TransferDirectionOut = "out"
)

// Transfer one journaled asset movement into or out of a pool
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id"`
	UserID    string          `sql:"size:36;index:transfer_user_idx" json:"user_id"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Direction string          `sql:"size:4" json:"direction"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Memo      string          `sql:"size:255" json:"memo"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ITransferStore transfer journal store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	FindByTrace(ctx context.Context, traceID string) (*Transfer, error)
	List(ctx context.Context, fromID uint64, limit int) ([]*Transfer, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Transfer, error)
}

// IWalletService moves underlying assets between users and the pools,
// journaling every movement with a deterministic trace
type IWalletService interface {
	// Pull draws amount of asset from the user into the pool; the user must
	// have pre-authorized the movement
	Pull(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action Action) error
	// Credit journals an inbound movement that needs no user authorization,
	// e.g. swap proceeds landing in pool custody
	Credit(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action Action) error
	// Payout releases amount of asset from the pool to the user
	Payout(ctx context.Context, tx *db.DB, userID, assetID string, amount decimal.Decimal, action Action) error
}

// IAuthorizer external pre-authorization check consumed before any pull.
// Satisfied by a standing allowance or a single-use signed message; the
// engine does not care which.
type IAuthorizer interface {
	IsAuthorized(ctx context.Context, owner, asset string, amount decimal.Decimal) (bool, error)
}
