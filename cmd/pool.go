package cmd

import (
	"strings"
	"time"

	"tandem/core"
	"tandem/pkg/tandem"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var createPoolsCmd = &cobra.Command{
	Use:     "create-pools",
	Aliases: []string{"cp"},
	Short:   "create the paired lending and collateral pools",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		pools := providePoolStore(database)
		collaterals := provideCollateralStore(database)

		symbol := strings.ToUpper(mustString(cmd, "symbol"))
		collateralSymbol := strings.ToUpper(mustString(cmd, "collateral-symbol"))

		lending := &core.LendingPool{
			AssetID:          cfg.App.BorrowAssetID,
			Symbol:           symbol,
			ShareSymbol:      "i" + symbol,
			InitExchangeRate: decimalFlag(cmd, "init-exchange-rate"),
			ReserveFactor:    decimalFlag(cmd, "reserve-factor"),
			BaseRate:         decimalFlag(cmd, "base-rate"),
			Multiplier:       decimalFlag(cmd, "multiplier"),
			JumpMultiplier:   decimalFlag(cmd, "jump-multiplier"),
			Kink:             decimalFlag(cmd, "kink"),
			BorrowIndex:      decimal.New(1, 0),
			AccruedAt:        time.Now(),
		}

		collateral := &core.CollateralPool{
			AssetID:              cfg.App.CollateralAssetID,
			Symbol:               collateralSymbol,
			ShareSymbol:          "i" + collateralSymbol,
			PairedAssetID:        cfg.App.BorrowAssetID,
			InitExchangeRate:     decimalFlag(cmd, "init-exchange-rate"),
			DebtRatioMax:         decimalFlag(cmd, "debt-ratio-max"),
			LiquidationIncentive: decimalFlag(cmd, "liquidation-incentive"),
			LiquidationFee:       decimalFlag(cmd, "liquidation-fee"),
		}

		if lending.ReserveFactor.GreaterThan(tandem.ReserveFactorMax) ||
			collateral.DebtRatioMax.GreaterThan(tandem.DebtRatioMax) ||
			collateral.LiquidationIncentive.LessThanOrEqual(tandem.LiquidationIncentiveMin) ||
			collateral.LiquidationIncentive.GreaterThan(tandem.LiquidationIncentiveMax) ||
			collateral.LiquidationFee.GreaterThan(tandem.LiquidationFeeMax) ||
			lending.Kink.GreaterThan(tandem.KinkMax) {
			cmd.PrintErrln("risk parameter out of range")
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			if err := pools.Save(ctx, tx, lending); err != nil {
				return err
			}

			return collaterals.Save(ctx, tx, collateral)
		})
		if err != nil {
			cmd.PrintErrln("create pools error:", err)
			return
		}

		cmd.Println("pools created:", lending.Symbol, "/", collateral.Symbol)
	},
}

var setParamsCmd = &cobra.Command{
	Use:     "set-params",
	Aliases: []string{"sp"},
	Short:   "update risk parameters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		eng := provideEngine(database)
		admin := mustString(cmd, "admin")

		params := core.RiskParams{
			DebtRatioMax:         decimalFlag(cmd, "debt-ratio-max"),
			LiquidationIncentive: decimalFlag(cmd, "liquidation-incentive"),
			LiquidationFee:       decimalFlag(cmd, "liquidation-fee"),
			ReserveFactor:        decimalFlag(cmd, "reserve-factor"),
			BaseRate:             decimalFlag(cmd, "base-rate"),
			Multiplier:           decimalFlag(cmd, "multiplier"),
			JumpMultiplier:       decimalFlag(cmd, "jump-multiplier"),
			Kink:                 decimalFlag(cmd, "kink"),
		}

		if err := eng.UpdateRiskParams(ctx, admin, params, time.Time{}); err != nil {
			cmd.PrintErrln("update params error:", err)
			return
		}

		cmd.Println("params updated")
	},
}

func mustString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil || v == "" {
		panic("missing flag: " + name)
	}

	return v
}

func decimalFlag(cmd *cobra.Command, name string) decimal.Decimal {
	v, _ := cmd.Flags().GetString(name)
	return decimal.NewFromFloat(cast.ToFloat64(v))
}

func init() {
	rootCmd.AddCommand(createPoolsCmd)
	rootCmd.AddCommand(setParamsCmd)

	createPoolsCmd.Flags().String("symbol", "", "borrow asset symbol")
	createPoolsCmd.Flags().String("collateral-symbol", "", "collateral asset symbol")
	createPoolsCmd.Flags().String("init-exchange-rate", "1", "initial exchange rate")
	createPoolsCmd.Flags().String("reserve-factor", "0.1", "reserve factor")
	createPoolsCmd.Flags().String("base-rate", "0.02", "base rate per year")
	createPoolsCmd.Flags().String("multiplier", "0.2", "rate multiplier per year")
	createPoolsCmd.Flags().String("jump-multiplier", "2", "jump multiplier per year")
	createPoolsCmd.Flags().String("kink", "0.8", "utilization kink")
	createPoolsCmd.Flags().String("debt-ratio-max", "0.8", "max debt ratio")
	createPoolsCmd.Flags().String("liquidation-incentive", "1.05", "liquidation incentive")
	createPoolsCmd.Flags().String("liquidation-fee", "0.02", "liquidation fee")

	setParamsCmd.Flags().String("admin", "", "admin user id")
	setParamsCmd.Flags().String("debt-ratio-max", "", "max debt ratio")
	setParamsCmd.Flags().String("liquidation-incentive", "", "liquidation incentive")
	setParamsCmd.Flags().String("liquidation-fee", "", "liquidation fee")
	setParamsCmd.Flags().String("reserve-factor", "", "reserve factor")
	setParamsCmd.Flags().String("base-rate", "", "base rate per year")
	setParamsCmd.Flags().String("multiplier", "", "rate multiplier per year")
	setParamsCmd.Flags().String("jump-multiplier", "", "jump multiplier per year")
	setParamsCmd.Flags().String("kink", "", "utilization kink")
}
