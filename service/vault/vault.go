package vault

import (
	"context"

	"tandem/core"
	"tandem/pkg/tandem"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// State the share-accounting view of one pool, shared by the lending and
// collateral vaults. Totals are mutated in place; the caller persists the
// pool record.
type State struct {
	ShareSymbol  string
	TotalShares  *decimal.Decimal
	TotalAssets  *decimal.Decimal
	ExchangeRate decimal.Decimal
}

// Mint credits shares for a deposit at the pre-deposit exchange rate,
// floored in the pool's favor. The very first mint of a pool burns a small
// fixed slice to the dead holder so a lone depositor cannot steer the
// initial exchange rate by donation.
func Mint(ctx context.Context, tx *db.DB, shares core.IShareStore, state *State, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	minted := tandem.SharesFromAssets(amount, state.ExchangeRate)
	if !minted.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	credited := minted
	if !state.TotalShares.IsPositive() {
		credited = minted.Sub(tandem.DeadShares)
		if !credited.IsPositive() {
			return decimal.Zero, core.ErrInvalidAmount
		}

		if err := shares.Add(ctx, tx, core.DeadHolderID, state.ShareSymbol, tandem.DeadShares); err != nil {
			return decimal.Zero, err
		}
	}

	if err := shares.Add(ctx, tx, userID, state.ShareSymbol, credited); err != nil {
		return decimal.Zero, err
	}

	*state.TotalShares = state.TotalShares.Add(minted)
	*state.TotalAssets = state.TotalAssets.Add(amount)

	return credited, nil
}

// Burn releases assets for a share burn at the pre-burn exchange rate,
// floored in the pool's favor.
func Burn(ctx context.Context, tx *db.DB, shares core.IShareStore, state *State, userID string, burned decimal.Decimal) (decimal.Decimal, error) {
	if !burned.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	balance, err := shares.Find(ctx, userID, state.ShareSymbol)
	if err != nil {
		return decimal.Zero, err
	}

	if burned.GreaterThan(balance.Shares) {
		return decimal.Zero, core.ErrInsufficientShares
	}

	assets := tandem.AssetsFromShares(burned, state.ExchangeRate)
	if !assets.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	if err := shares.Add(ctx, tx, userID, state.ShareSymbol, burned.Neg()); err != nil {
		return decimal.Zero, err
	}

	*state.TotalShares = state.TotalShares.Sub(burned)
	*state.TotalAssets = state.TotalAssets.Sub(assets)

	return assets, nil
}

// Move transfers shares between holders without touching pool totals, used
// by liquidation seizure.
func Move(ctx context.Context, tx *db.DB, shares core.IShareStore, shareSymbol, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	balance, err := shares.Find(ctx, from, shareSymbol)
	if err != nil {
		return err
	}

	if amount.GreaterThan(balance.Shares) {
		return core.ErrInsufficientShares
	}

	if err := shares.Add(ctx, tx, from, shareSymbol, amount.Neg()); err != nil {
		return err
	}

	return shares.Add(ctx, tx, to, shareSymbol, amount)
}
