package position

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
	next uint64
}

func (s *memBorrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	s.next++
	borrow.ID = s.next
	clone := *borrow
	s.rows[borrow.UserID+"/"+borrow.AssetID] = &clone
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
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memBorrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	clone := *borrow
	s.rows[borrow.UserID+"/"+borrow.AssetID] = &clone
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

type mirrorSwap struct {
	price decimal.Decimal
}

// converts both directions at the oracle price with no slippage
func (s *mirrorSwap) Convert(ctx context.Context, fromAsset, toAsset string, amount, minOut decimal.Decimal) (decimal.Decimal, error) {
	var out decimal.Decimal
	if fromAsset == "aa0a9d1d-6b31-4828-9b24-e69b1bb43b27" {
		out = amount.Div(s.price).Truncate(8)
	} else {
		out = amount.Mul(s.price)
	}

	if out.LessThan(minOut) {
		return decimal.Zero, core.ErrBelowMinOut
	}
	return out, nil
}

type fixture struct {
	shares     *memShareStore
	borrows    *memBorrowStore
	svc        core.IPositionService
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
		TotalCash:   number.Decimal("100000"),
		TotalShares: number.Decimal("100000"),
		BorrowIndex: decimal.New(1, 0),
	}
	collateral := &core.CollateralPool{
		ID:                   1,
		AssetID:              "ba2b6b5f-54f1-43a1-b917-b0dcbc9a4d05",
		ShareSymbol:          "iBTC",
		TotalCollateral:      number.Decimal("1000"),
		TotalShares:          number.Decimal("1000"),
		InitExchangeRate:     decimal.New(1, 0),
		DebtRatioMax:         number.Decimal("0.8"),
		LiquidationIncentive: number.Decimal("1.05"),
	}

	return &fixture{
		shares:     shares,
		borrows:    borrows,
		svc:        New(shares, accountz, lendingz, collateralz, swapz),
		lending:    lending,
		collateral: collateral,
	}
}

func TestIncrease(t *testing.T) {
	ctx := context.Background()
	f := newFixture("50")

	// alice starts with collateral worth 50000
	f.shares.balances["alice/iBTC"] = number.Decimal("1000")
	f.collateral.TotalCollateral = number.Decimal("2000")
	f.collateral.TotalShares = number.Decimal("2000")

	result, err := f.svc.Increase(ctx, nil, f.lending, f.collateral, "alice", number.Decimal("10000"), decimal.Zero)
	require.Nil(t, err)

	// 10000 borrowed, converted to 200 collateral units, deposited
	assert.True(t, result.DebtDelta.Equal(number.Decimal("10000")))
	assert.True(t, result.ShareDelta.Equal(number.Decimal("200")), "got %s", result.ShareDelta)
	assert.True(t, f.shares.balances["alice/iBTC"].Equal(number.Decimal("1200")))
	assert.True(t, f.lending.TotalBorrows.Equal(number.Decimal("10000")))
	assert.True(t, result.Health.LessThanOrEqual(decimal.New(1, 0)))
}

func TestIncreaseBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture("50")

	// 10 shares back a reckless borrow
	f.shares.balances["alice/iBTC"] = number.Decimal("10")
	f.collateral.TotalCollateral = number.Decimal("1010")
	f.collateral.TotalShares = number.Decimal("1010")

	_, err := f.svc.Increase(ctx, nil, f.lending, f.collateral, "alice", number.Decimal("50000"), decimal.Zero)
	assert.Equal(t, core.ErrUnhealthy, err)
}

func TestDecrease(t *testing.T) {
	ctx := context.Background()
	f := newFixture("50")

	// leveraged position: 1200 shares, 10000 debt
	f.shares.balances["alice/iBTC"] = number.Decimal("1200")
	f.collateral.TotalCollateral = number.Decimal("2200")
	f.collateral.TotalShares = number.Decimal("2200")
	f.borrows.rows["alice/"+f.lending.AssetID] = &core.Borrow{
		ID: 1, UserID: "alice", AssetID: f.lending.AssetID,
		Principal: number.Decimal("10000"), InterestIndex: decimal.New(1, 0),
	}
	f.lending.TotalBorrows = number.Decimal("10000")
	f.lending.TotalCash = number.Decimal("90000")

	// burn 400 shares -> 20000 borrow asset -> repay 10000, return 10000
	result, err := f.svc.Decrease(ctx, nil, f.lending, f.collateral, "alice", number.Decimal("400"), decimal.Zero)
	require.Nil(t, err)

	assert.True(t, result.DebtDelta.Equal(number.Decimal("10000")), "got %s", result.DebtDelta)
	assert.True(t, result.Returned.Equal(number.Decimal("10000")), "got %s", result.Returned)
	assert.True(t, f.shares.balances["alice/iBTC"].Equal(number.Decimal("800")))
	assert.True(t, f.lending.TotalBorrows.IsZero())

	borrow, err := f.borrows.Find(ctx, "alice", f.lending.AssetID)
	require.Nil(t, err)
	assert.True(t, borrow.Principal.IsZero())
}

func TestDecreaseWithoutDebtReturnsAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture("50")

	f.shares.balances["alice/iBTC"] = number.Decimal("100")
	f.collateral.TotalCollateral = number.Decimal("1100")
	f.collateral.TotalShares = number.Decimal("1100")

	result, err := f.svc.Decrease(ctx, nil, f.lending, f.collateral, "alice", number.Decimal("100"), decimal.Zero)
	require.Nil(t, err)

	assert.True(t, result.DebtDelta.IsZero())
	assert.True(t, result.Returned.Equal(number.Decimal("5000")), "got %s", result.Returned)
}
