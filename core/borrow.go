package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Borrow user borrow position against a lending pool
type Borrow struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID  string `sql:"size:36;unique_index:borrow_idx" json:"-"`
	AssetID string `sql:"size:36;unique_index:borrow_idx" json:"asset_id"`
	// owed amount as of the snapshot in interest_index
	Principal decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	// borrow index snapshot taken when principal was last synchronized
	InterestIndex decimal.Decimal `sql:"type:decimal(32,16);default:1" json:"interest_index"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Create(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Find(ctx context.Context, userID, assetID string) (*Borrow, error)
	FindByUser(ctx context.Context, userID string) ([]*Borrow, error)
	Update(ctx context.Context, tx *db.DB, borrow *Borrow) error
	All(ctx context.Context) ([]*Borrow, error)
	Users(ctx context.Context) ([]string, error)
}
