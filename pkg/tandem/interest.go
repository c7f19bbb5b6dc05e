package tandem

import (
	"tandem/pkg/number"

	"github.com/shopspring/decimal"
)

// UtilizationRate utilization rate
// utilization_rate = total_borrows / (total_cash + total_borrows)
func UtilizationRate(cash, borrows decimal.Decimal) decimal.Decimal {
	total := cash.Add(borrows)
	if !total.IsPositive() {
		return decimal.Zero
	}

	return number.DivFloor(borrows, total, MaxPrecision)
}

// GetBorrowRatePerSecond borrow rate per second from the kink curve
func GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.IsZero() || utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(perSecond(multiplier)).Add(perSecond(baseRate)).Truncate(MaxPrecision)
	}

	normalRate := kink.Mul(perSecond(multiplier)).Add(perSecond(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(perSecond(jumpMultiplier)).Add(normalRate).Truncate(MaxPrecision)
}

// GetSupplyRatePerSecond supply rate per second
func GetSupplyRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	rateToPool := borrowRate.Mul(decimal.New(1, 0).Sub(reserveFactor))
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

func perSecond(annualRate decimal.Decimal) decimal.Decimal {
	return number.DivFloor(annualRate, SecondsPerYear, MaxPrecision)
}
