package tandem

import (
	"testing"

	"tandem/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, UtilizationRate(number.Decimal("50"), number.Decimal("50")).Equal(number.Decimal("0.5")))
	assert.True(t, UtilizationRate(decimal.Zero, number.Decimal("100")).Equal(decimal.New(1, 0)))
}

func TestGetBorrowRatePerSecond(t *testing.T) {
	// multiplier chosen so the per-second slope is exactly 1e-8
	multiplier := number.Decimal("0.31536")
	jump := number.Decimal("3.1536")
	kink := number.Decimal("0.8")

	t.Run("below kink", func(t *testing.T) {
		rate := GetBorrowRatePerSecond(number.Decimal("0.5"), decimal.Zero, multiplier, jump, kink)
		assert.True(t, rate.Equal(number.Decimal("0.000000005")), "got %s", rate)
	})

	t.Run("at kink", func(t *testing.T) {
		rate := GetBorrowRatePerSecond(kink, decimal.Zero, multiplier, jump, kink)
		assert.True(t, rate.Equal(number.Decimal("0.000000008")), "got %s", rate)
	})

	t.Run("above kink the jump slope applies", func(t *testing.T) {
		rate := GetBorrowRatePerSecond(number.Decimal("0.9"), decimal.Zero, multiplier, jump, kink)
		assert.True(t, rate.Equal(number.Decimal("0.000000018")), "got %s", rate)
	})

	t.Run("base rate floors the curve", func(t *testing.T) {
		base := number.Decimal("0.031536")
		rate := GetBorrowRatePerSecond(decimal.Zero, base, multiplier, jump, kink)
		assert.True(t, rate.Equal(number.Decimal("0.000000001")), "got %s", rate)
	})
}

func TestGetSupplyRatePerSecond(t *testing.T) {
	multiplier := number.Decimal("0.31536")
	kink := number.Decimal("0.8")
	util := number.Decimal("0.5")

	t.Run("without reserves supply rate is utilization times borrow rate", func(t *testing.T) {
		rate := GetSupplyRatePerSecond(util, decimal.Zero, multiplier, decimal.Zero, kink, decimal.Zero)
		assert.True(t, rate.Equal(number.Decimal("0.0000000025")), "got %s", rate)
	})

	t.Run("reserve factor skims the pool's cut", func(t *testing.T) {
		rate := GetSupplyRatePerSecond(util, decimal.Zero, multiplier, decimal.Zero, kink, number.Decimal("0.2"))
		assert.True(t, rate.Equal(number.Decimal("0.000000002")), "got %s", rate)
	})
}
