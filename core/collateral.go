package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// CollateralPool the volatile-asset vault backing exactly one lending pool
type CollateralPool struct {
	ID          uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID     string `sql:"size:36;unique_index:collateral_asset_idx" json:"asset_id"`
	Symbol      string `sql:"size:20;unique_index:collateral_symbol_idx" json:"symbol"`
	ShareSymbol string `sql:"size:20;unique_index:collateral_share_idx" json:"share_symbol"`
	// asset id of the paired lending pool
	PairedAssetID    string          `sql:"size:36" json:"paired_asset_id"`
	TotalCollateral  decimal.Decimal `sql:"type:decimal(32,16)" json:"total_collateral"`
	TotalShares      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_shares"`
	InitExchangeRate decimal.Decimal `sql:"type:decimal(20,8);default:1" json:"init_exchange_rate"`
	// max fraction of collateral value borrowable, (0, 0.9]
	DebtRatioMax decimal.Decimal `sql:"type:decimal(20,8)" json:"debt_ratio_max"`
	// value multiplier awarded to a liquidator per unit of debt repaid, (1, 1.5]
	LiquidationIncentive decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_incentive"`
	// additional protocol cut taken from seized collateral, [0, 0.1]
	LiquidationFee decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_fee"`
	// last oracle quote, in borrow asset units per collateral unit
	Price          decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	PriceUpdatedAt time.Time       `json:"price_updated_at"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Penalty combined value extracted from collateral per unit of debt repaid
func (p *CollateralPool) Penalty() decimal.Decimal {
	return p.LiquidationIncentive.Add(p.LiquidationFee)
}

// ICollateralPoolStore collateral pool store interface
type ICollateralPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *CollateralPool) error
	Find(ctx context.Context, assetID string) (*CollateralPool, error)
	FindByPaired(ctx context.Context, pairedAssetID string) (*CollateralPool, error)
	All(ctx context.Context) ([]*CollateralPool, error)
	Update(ctx context.Context, tx *db.DB, pool *CollateralPool) error
}

// ICollateralService collateral pool service interface
type ICollateralService interface {
	CurExchangeRate(pool *CollateralPool) decimal.Decimal
	Deposit(ctx context.Context, tx *db.DB, pool *CollateralPool, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Redeem burns shares and releases collateral; a debtor may not redeem
	// past the point where health would exceed 1
	Redeem(ctx context.Context, tx *db.DB, pool *CollateralPool, lending *LendingPool, userID string, shares decimal.Decimal) (decimal.Decimal, error)
}
