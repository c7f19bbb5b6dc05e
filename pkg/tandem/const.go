package tandem

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds in an interest year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// DeadShares shares minted to the dead holder on the very first deposit of a pool
	DeadShares = decimal.New(1, -4)
	// ReserveFactorMax must not exceed this value
	ReserveFactorMax = decimal.NewFromFloat(0.5)
	// DebtRatioMax hard upper bound of a collateral pool's debt ratio
	DebtRatioMax = decimal.NewFromFloat(0.9)
	// LiquidationIncentiveMin must be strictly greater than this value
	LiquidationIncentiveMin = decimal.NewFromInt(1)
	// LiquidationIncentiveMax must not exceed this value
	LiquidationIncentiveMax = decimal.NewFromFloat(1.5)
	// LiquidationFeeMax must not exceed this value
	LiquidationFeeMax = decimal.NewFromFloat(0.1)
	// KinkMax utilization kink upper bound
	KinkMax = decimal.NewFromInt(1)
	// MaxPrecision max precision of index and debt math
	MaxPrecision int32 = 16
	// AmountPrecision precision of share and asset amounts
	AmountPrecision int32 = 8
)
