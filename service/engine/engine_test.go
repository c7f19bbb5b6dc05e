package engine

import (
	"testing"
	"time"

	"tandem/core"
	"tandem/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDeadline(t *testing.T) {
	e := &engine{}

	assert.Nil(t, e.checkDeadline(time.Time{}))
	assert.Nil(t, e.checkDeadline(time.Now().Add(time.Minute)))
	assert.Equal(t, core.ErrExpired, e.checkDeadline(time.Now().Add(-time.Second)))
}

func TestResizeLegs(t *testing.T) {
	lending := &core.LendingPool{AssetID: "borrow-asset"}
	collateral := &core.CollateralPool{AssetID: "collateral-asset"}

	t.Run("increase settles the borrowed funds out and the proceeds in", func(t *testing.T) {
		legs := resizeLegs(core.ResizeIncrease, "u1", "t1", lending, collateral, &core.Resize{
			DebtDelta: number.Decimal("10000"),
			Converted: number.Decimal("200"),
		})
		require.Len(t, legs, 2)

		assert.True(t, legs[0].out)
		assert.Equal(t, lending.AssetID, legs[0].assetID)
		assert.True(t, legs[0].amount.Equal(number.Decimal("10000")))
		assert.Equal(t, core.ActionServiceResize, legs[0].action[core.ActionKeyService])

		assert.False(t, legs[1].out)
		assert.Equal(t, collateral.AssetID, legs[1].assetID)
		assert.True(t, legs[1].amount.Equal(number.Decimal("200")))
	})

	t.Run("decrease settles the proceeds in and the remainder out", func(t *testing.T) {
		legs := resizeLegs(core.ResizeDecrease, "u1", "t1", lending, collateral, &core.Resize{
			DebtDelta: number.Decimal("10000"),
			Converted: number.Decimal("20000"),
			Returned:  number.Decimal("10000"),
		})
		require.Len(t, legs, 2)

		assert.False(t, legs[0].out)
		assert.Equal(t, lending.AssetID, legs[0].assetID)
		assert.True(t, legs[0].amount.Equal(number.Decimal("20000")))

		assert.True(t, legs[1].out)
		assert.Equal(t, lending.AssetID, legs[1].assetID)
		assert.True(t, legs[1].amount.Equal(number.Decimal("10000")))
		assert.Equal(t, core.ActionServiceResizeReturn, legs[1].action[core.ActionKeyService])
	})
}

func TestApplyParams(t *testing.T) {
	lending := &core.LendingPool{
		ReserveFactor: number.Decimal("0.1"),
		Kink:          number.Decimal("0.8"),
	}
	collateral := &core.CollateralPool{
		DebtRatioMax:         number.Decimal("0.8"),
		LiquidationIncentive: number.Decimal("1.05"),
		LiquidationFee:       number.Decimal("0.02"),
	}

	t.Run("zero fields stay unchanged", func(t *testing.T) {
		require.Nil(t, applyParams(lending, collateral, core.RiskParams{
			ReserveFactor: number.Decimal("0.2"),
		}))

		assert.True(t, lending.ReserveFactor.Equal(number.Decimal("0.2")))
		assert.True(t, collateral.DebtRatioMax.Equal(number.Decimal("0.8")))
		assert.True(t, collateral.LiquidationIncentive.Equal(number.Decimal("1.05")))
	})

	t.Run("bounds enforced", func(t *testing.T) {
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			DebtRatioMax: number.Decimal("0.95"),
		}))
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			LiquidationIncentive: number.Decimal("1.6"),
		}))
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			LiquidationIncentive: number.Decimal("1"),
		}))
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			LiquidationFee: number.Decimal("0.2"),
		}))
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			ReserveFactor: number.Decimal("0.6"),
		}))
		assert.Equal(t, core.ErrParamOutOfRange, applyParams(lending, collateral, core.RiskParams{
			Kink: number.Decimal("1.1"),
		}))
	})

	t.Run("valid update applies", func(t *testing.T) {
		require.Nil(t, applyParams(lending, collateral, core.RiskParams{
			DebtRatioMax:         number.Decimal("0.75"),
			LiquidationIncentive: number.Decimal("1.1"),
			Kink:                 number.Decimal("0.9"),
		}))

		assert.True(t, collateral.DebtRatioMax.Equal(number.Decimal("0.75")))
		assert.True(t, collateral.LiquidationIncentive.Equal(number.Decimal("1.1")))
		assert.True(t, lending.Kink.Equal(number.Decimal("0.9")))
	})
}
