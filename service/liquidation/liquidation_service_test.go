package liquidation

import (
	"context"
	"testing"
	"time"

	"tandem/core"
	"tandem/pkg/number"
	accountservice "tandem/service/account"
	collateralservice "tandem/service/collateral"
	lendingservice "tandem/service/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memShareStore struct {
	balances map[string]decimal.Decimal
}

func (s *memShareStore) Find(ctx context.Context, userID, shareSymbol string) (*core.Share, error) {
	return &core.Share{UserID: userID, ShareSymbol: shareSymbol, Shares: s.balances[userID+"/"+shareSymbol]}, nil
}

func (s *memShareStore) FindByUser(ctx context.Context, userID string) ([]*core.Share, error) {
	return nil, nil
}

func (s *memShareStore) Add(ctx context.Context, tx *db.DB, userID, shareSymbol string, delta decimal.Decimal) error {
	key := userID + "/" + shareSymbol
	s.balances[key] = s.balances[key].Add(delta)
	return nil
}

func (s *memShareStore) Sum(ctx context.Context, shareSymbol string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memBorrowStore struct {
	rows map[string]*core.Borrow
}

func (s *memBorrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	s.rows[borrow.UserID+"/"+borrow.AssetID] = borrow
	return nil
}

func (s *memBorrowStore) Find(ctx context.Context, userID, assetID string) (*core.Borrow, error) {
	if b, ok := s.rows[userID+"/"+assetID]; ok {
		clone := *b
		return &clone, nil
	}
	return &core.Borrow{UserID: userID, AssetID: assetID}, nil
}

func (s *memBorrowStore) FindByUser(ctx context.Context, userID string) ([]*core.Borrow, error) {
	var out []*core.Borrow
	for _, b := range s.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memBorrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	s.rows[borrow.UserID+"/"+borrow.AssetID] = borrow
	return nil
}

func (s *memBorrowStore) All(ctx context.Context) ([]*core.Borrow, error) { return nil, nil }

func (s *memBorrowStore) Users(ctx context.Context) ([]string, error) { return nil, nil }

type fixedOracle struct {
	price decimal.Decimal
}

func (o *fixedOracle) GetUnderlyingPrice(ctx context.Context, pool *core.CollateralPool) (decimal.Decimal, error) {
	return o.price, nil
}

func (o *fixedOracle) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	return &core.PriceTicker{AssetID: assetID, Price: o.price}, nil
}

// converts at the oracle price with no slippage
type mirrorSwap struct {
	price decimal.Decimal
}

func (s *mirrorSwap) Convert(ctx context.Context, fromAsset, toAsset string, amount, minOut decimal.Decimal) (decimal.Decimal, error) {
	out := amount.Mul(s.price)
	if out.LessThan(minOut) {
		return decimal.Zero, core.ErrBelowMinOut
	}
	return out, nil
}

type fixture struct {
	shares     *memShareStore
	borrows    *memBorrowStore
	svc        core.ILiquidationService
	lending    *core.LendingPool
	collateral *core.CollateralPool
}

func newFixture(price string) *fixture {
	shares := &memShareStore{balances: make(map[string]decimal.Decimal)}
	borrows := &memBorrowStore{rows: make(map[string]*core.Borrow)}
	oracle := &fixedOracle{price: number.Decimal(price)}
	swapz := &mirrorSwap{price: number.Decimal(price)}

	lendingz := lendingservice.New(shares, borrows)
	accountz := accountservice.New(shares, borrows, oracle)
	collateralz := collateralservice.New(shares, accountz)

	lending := &core.LendingPool{
		ID:          1,
		AssetID:     "aa0a9d1d-6b31-4828-9b24-e69b1bb43b27",
		ShareSymbol: "iUSD",
		TotalCash:   number.Decimal("10000"),
		BorrowIndex: decimal.New(1, 0),
	}
	collateral := &core.CollateralPool{
		ID:                   1,
		AssetID:              "ba2b6b5f-54f1-43a1-b917-b0dcbc9a4d05",
		ShareSymbol:          "iBTC",
		TotalCollateral:      number.Decimal("2000"),
		TotalShares:          number.Decimal("2000"),
		InitExchangeRate:     decimal.New(1, 0),
		DebtRatioMax:         number.Decimal("0.8"),
		LiquidationIncentive: number.Decimal("1.05"),
		LiquidationFee:       number.Decimal("0.02"),
	}

	return &fixture{
		shares:     shares,
		borrows:    borrows,
		svc:        New(shares, accountz, lendingz, collateralz, oracle, swapz),
		lending:    lending,
		collateral: collateral,
	}
}

func (f *fixture) underwaterBorrower(user string) {
	f.shares.balances[user+"/iBTC"] = number.Decimal("2000")
	f.borrows.rows[user+"/"+f.lending.AssetID] = &core.Borrow{
		ID: 1, UserID: user, AssetID: f.lending.AssetID,
		Principal: number.Decimal("40000"), InterestIndex: decimal.New(1, 0),
	}
	f.lending.TotalBorrows = number.Decimal("40000")
}

func TestLiquidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture("25")
	f.underwaterBorrower("alice")

	result, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "lqd", "alice", number.Decimal("1000"), false, decimal.Zero)
	require.Nil(t, err)

	assert.True(t, result.RepaidAmount.Equal(number.Decimal("1000")))
	assert.True(t, result.RefundAmount.IsZero())
	// 1000 * 1.07 / 25 = 42.8 seized, 0.8 of it fee
	assert.True(t, result.SeizedShares.Equal(number.Decimal("42")), "got %s", result.SeizedShares)
	assert.True(t, result.FeeShares.Equal(number.Decimal("0.8")), "got %s", result.FeeShares)

	assert.True(t, f.shares.balances["lqd/iBTC"].Equal(number.Decimal("42")))
	assert.True(t, f.shares.balances[core.ReserveHolderID+"/iBTC"].Equal(number.Decimal("0.8")))
	assert.True(t, f.shares.balances["alice/iBTC"].Equal(number.Decimal("1957.2")))

	assert.True(t, f.lending.TotalBorrows.Equal(number.Decimal("39000")))
	assert.True(t, f.lending.TotalCash.Equal(number.Decimal("11000")))

	assert.True(t, result.ShortfallAfter.IsPositive())
}

func TestLiquidateOverRepayRefunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture("25")
	f.underwaterBorrower("alice")

	result, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "lqd", "alice", number.Decimal("50000"), false, decimal.Zero)
	require.Nil(t, err)

	assert.True(t, result.RepaidAmount.Equal(number.Decimal("40000")), "got %s", result.RepaidAmount)
	assert.True(t, result.RefundAmount.Equal(number.Decimal("10000")), "got %s", result.RefundAmount)
}

func TestLiquidateSwapOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture("25")
	f.underwaterBorrower("alice")

	result, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "lqd", "alice", number.Decimal("1000"), true, number.Decimal("1000"))
	require.Nil(t, err)

	// 42 shares redeemed at rate 1 and converted at 25
	assert.True(t, result.SwappedOut.Equal(number.Decimal("1050")), "got %s", result.SwappedOut)
	assert.True(t, f.shares.balances["lqd/iBTC"].IsZero())
}

func TestLiquidateGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("self liquidation", func(t *testing.T) {
		f := newFixture("25")
		f.underwaterBorrower("alice")
		_, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "alice", "alice", number.Decimal("1"), false, decimal.Zero)
		assert.Equal(t, core.ErrCannotLiquidateSelf, err)
	})

	t.Run("healthy borrower", func(t *testing.T) {
		f := newFixture("50")
		f.underwaterBorrower("alice") // at price 50 the same position is solvent
		_, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "lqd", "alice", number.Decimal("1"), false, decimal.Zero)
		assert.Equal(t, core.ErrNotLiquidatable, err)
	})

	t.Run("zero amount", func(t *testing.T) {
		f := newFixture("25")
		f.underwaterBorrower("alice")
		_, err := f.svc.Liquidate(ctx, nil, f.lending, f.collateral, "lqd", "alice", decimal.Zero, false, decimal.Zero)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})
}
