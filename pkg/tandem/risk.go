package tandem

import (
	"tandem/pkg/number"

	"github.com/shopspring/decimal"
)

// CollateralValue value of collateral shares in borrow asset units
func CollateralValue(shares, exchangeRate, price decimal.Decimal) decimal.Decimal {
	return shares.Mul(exchangeRate).Mul(price).Truncate(MaxPrecision)
}

// BorrowCapacity the maximum debt value a collateral position can carry
// capacity = collateral_value * debt_ratio_max / (liquidation_incentive + liquidation_fee)
func BorrowCapacity(collateralValue, debtRatioMax, liquidationIncentive, liquidationFee decimal.Decimal) decimal.Decimal {
	penalty := liquidationIncentive.Add(liquidationFee)
	if !penalty.IsPositive() {
		return decimal.Zero
	}

	return number.DivFloor(collateralValue.Mul(debtRatioMax), penalty, MaxPrecision)
}

// AccountHealth ratio of debt value to borrow capacity.
// A position is solvent while health <= 1; liquidation requires health
// strictly greater than 1 (capacity strictly below debt).
func AccountHealth(debtValue, capacity decimal.Decimal) decimal.Decimal {
	if !debtValue.IsPositive() {
		return decimal.Zero
	}

	if !capacity.IsPositive() {
		// owing anything against zero capacity is insolvent outright
		return decimal.New(1, MaxPrecision)
	}

	return number.DivCeil(debtValue, capacity, MaxPrecision)
}

// SeizeShares collateral shares worth repay_amount * (incentive + fee)
// at the given exchange rate and oracle price, floored
func SeizeShares(repayAmount, liquidationIncentive, liquidationFee, exchangeRate, price decimal.Decimal) decimal.Decimal {
	sharePrice := exchangeRate.Mul(price)
	if !sharePrice.IsPositive() {
		return decimal.Zero
	}

	seizedValue := repayAmount.Mul(liquidationIncentive.Add(liquidationFee))
	return number.DivFloor(seizedValue, sharePrice, AmountPrecision)
}

// FeeShares the protocol's cut of a seizure, floored
func FeeShares(repayAmount, liquidationFee, exchangeRate, price decimal.Decimal) decimal.Decimal {
	sharePrice := exchangeRate.Mul(price)
	if !sharePrice.IsPositive() {
		return decimal.Zero
	}

	return number.DivFloor(repayAmount.Mul(liquidationFee), sharePrice, AmountPrecision)
}
