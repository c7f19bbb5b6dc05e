package tandem

import (
	"testing"

	"tandem/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBorrowCapacity(t *testing.T) {
	// 2000 shares at rate 1 and price 50, ratio 0.8, incentive 1.05
	value := CollateralValue(number.Decimal("2000"), decimal.New(1, 0), number.Decimal("50"))
	assert.True(t, value.Equal(number.Decimal("100000")), "got %s", value)

	capacity := BorrowCapacity(value, number.Decimal("0.8"), number.Decimal("1.05"), decimal.Zero)
	// 100000 * 0.8 / 1.05
	assert.True(t, capacity.Equal(number.Decimal("76190.4761904761904761")), "got %s", capacity)
}

func TestAccountHealth(t *testing.T) {
	t.Run("no debt is perfectly healthy", func(t *testing.T) {
		assert.True(t, AccountHealth(decimal.Zero, number.Decimal("100")).IsZero())
	})

	t.Run("debt without capacity is insolvent", func(t *testing.T) {
		h := AccountHealth(number.Decimal("1"), decimal.Zero)
		assert.True(t, h.GreaterThan(decimal.New(1, 0)))
	})

	t.Run("health one at exact parity stays solvent", func(t *testing.T) {
		h := AccountHealth(number.Decimal("100"), number.Decimal("100"))
		assert.True(t, h.Equal(decimal.New(1, 0)))
	})

	t.Run("health rounds up against the borrower", func(t *testing.T) {
		h := AccountHealth(number.Decimal("100.0000000000000000001"), number.Decimal("100"))
		assert.True(t, h.GreaterThan(decimal.New(1, 0)))
	})
}

func TestSeizeShares(t *testing.T) {
	// repay 1000 at incentive 1.05 + fee 0.02, share price 50
	seized := SeizeShares(number.Decimal("1000"), number.Decimal("1.05"), number.Decimal("0.02"), decimal.New(1, 0), number.Decimal("50"))
	assert.True(t, seized.Equal(number.Decimal("21.4")), "got %s", seized)

	fee := FeeShares(number.Decimal("1000"), number.Decimal("0.02"), decimal.New(1, 0), number.Decimal("50"))
	assert.True(t, fee.Equal(number.Decimal("0.4")), "got %s", fee)

	// the liquidator's net take stays worth more than the repayment
	liquidatorShares := seized.Sub(fee)
	take := liquidatorShares.Mul(number.Decimal("50"))
	assert.True(t, take.GreaterThan(number.Decimal("1000")), "got %s", take)
}

func TestSeizeSharesZeroPrice(t *testing.T) {
	seized := SeizeShares(number.Decimal("1000"), number.Decimal("1.05"), number.Decimal("0.02"), decimal.New(1, 0), decimal.Zero)
	assert.True(t, seized.IsZero())
}
