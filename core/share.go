package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// DeadHolderID permanently inaccessible holder of the first-deposit shares
	DeadHolderID = "00000000-0000-0000-0000-00000000dead"
	// ReserveHolderID protocol-owned holder of reserve and fee shares
	ReserveHolderID = "00000000-0000-0000-0000-0000000f0e0e"
)

// Share a holder's balance in one pool's share token
type Share struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID      string          `sql:"size:36;unique_index:share_idx" json:"user_id"`
	ShareSymbol string          `sql:"size:20;unique_index:share_idx" json:"share_symbol"`
	Shares      decimal.Decimal `sql:"type:decimal(32,16)" json:"shares"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IShareStore share balance store interface
type IShareStore interface {
	Find(ctx context.Context, userID, shareSymbol string) (*Share, error)
	FindByUser(ctx context.Context, userID string) ([]*Share, error)
	// Add credits (or debits, negative delta) a holder's balance
	Add(ctx context.Context, tx *db.DB, userID, shareSymbol string, delta decimal.Decimal) error
	Sum(ctx context.Context, shareSymbol string) (decimal.Decimal, error)
}
