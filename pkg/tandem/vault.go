package tandem

import (
	"tandem/pkg/number"

	"github.com/shopspring/decimal"
)

// GetExchangeRate exchange rate
// exchange_rate = (total_cash + total_borrows) / total_shares
func GetExchangeRate(totalCash, totalBorrows, totalShares, initExchangeRate decimal.Decimal) decimal.Decimal {
	if !totalShares.IsPositive() {
		return initExchangeRate
	}

	return number.DivFloor(totalCash.Add(totalBorrows), totalShares, MaxPrecision)
}

// SharesFromAssets shares minted for a deposit, floored in the pool's favor
func SharesFromAssets(assets, exchangeRate decimal.Decimal) decimal.Decimal {
	if !exchangeRate.IsPositive() {
		return decimal.Zero
	}

	return number.DivFloor(assets, exchangeRate, AmountPrecision)
}

// AssetsFromShares assets released for a burn, floored in the pool's favor
func AssetsFromShares(shares, exchangeRate decimal.Decimal) decimal.Decimal {
	return shares.Mul(exchangeRate).Truncate(AmountPrecision)
}
