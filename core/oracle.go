package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	AssetID  string          `json:"asset_id,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceOracleService oracle price service interface
type IPriceOracleService interface {
	// GetUnderlyingPrice current price of the collateral asset in borrow
	// asset units, from the pool record; fails closed on a stale or
	// non-positive quote
	GetUnderlyingPrice(ctx context.Context, pool *CollateralPool) (decimal.Decimal, error)
	// PullPriceTicker fetches a fresh quote from the oracle endpoint
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
}
