package lending

import (
	"context"
	"testing"
	"time"

	"tandem/core"
	"tandem/pkg/number"
	"tandem/pkg/tandem"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memShareStore struct {
	balances map[string]decimal.Decimal
}

func newMemShareStore() *memShareStore {
	return &memShareStore{balances: make(map[string]decimal.Decimal)}
}

func (s *memShareStore) Find(ctx context.Context, userID, shareSymbol string) (*core.Share, error) {
	return &core.Share{
		UserID:      userID,
		ShareSymbol: shareSymbol,
		Shares:      s.balances[userID+"/"+shareSymbol],
	}, nil
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
	total := decimal.Zero
	for _, v := range s.balances {
		total = total.Add(v)
	}
	return total, nil
}

type memBorrowStore struct {
	rows map[string]*core.Borrow
	next uint64
}

func newMemBorrowStore() *memBorrowStore {
	return &memBorrowStore{rows: make(map[string]*core.Borrow)}
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

func (s *memBorrowStore) All(ctx context.Context) ([]*core.Borrow, error) {
	var out []*core.Borrow
	for _, b := range s.rows {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memBorrowStore) Users(ctx context.Context) ([]string, error) {
	var out []string
	for _, b := range s.rows {
		if b.Principal.IsPositive() {
			out = append(out, b.UserID)
		}
	}
	return out, nil
}

func testPool() *core.LendingPool {
	return &core.LendingPool{
		ID:               1,
		AssetID:          "aa0a9d1d-6b31-4828-9b24-e69b1bb43b27",
		Symbol:           "USD",
		ShareSymbol:      "iUSD",
		BorrowIndex:      decimal.New(1, 0),
		InitExchangeRate: decimal.New(1, 0),
		AccruedAt:        time.Unix(1700000000, 0),
	}
}

func TestDepositFirstMint(t *testing.T) {
	ctx := context.Background()
	shares := newMemShareStore()
	s := New(shares, newMemBorrowStore())

	pool := testPool()
	minted, err := s.Deposit(ctx, nil, pool, "alice", number.Decimal("100"))
	require.Nil(t, err)

	// the very first mint burns the dead slice to the dead holder
	assert.True(t, minted.Equal(number.Decimal("100").Sub(tandem.DeadShares)), "got %s", minted)
	assert.True(t, shares.balances[core.DeadHolderID+"/iUSD"].Equal(tandem.DeadShares))
	assert.True(t, pool.TotalShares.Equal(number.Decimal("100")))
	assert.True(t, pool.TotalCash.Equal(number.Decimal("100")))

	// the second deposit mints in full
	minted, err = s.Deposit(ctx, nil, pool, "bob", number.Decimal("50"))
	require.Nil(t, err)
	assert.True(t, minted.Equal(number.Decimal("50")), "got %s", minted)
}

func TestAccrueInterestOneYear(t *testing.T) {
	ctx := context.Background()
	shares := newMemShareStore()
	s := New(shares, newMemBorrowStore())

	at := time.Unix(1700000000, 0)
	pool := testPool()
	pool.TotalCash = number.Decimal("5000")
	pool.TotalBorrows = number.Decimal("5000")
	pool.TotalShares = number.Decimal("10000")
	pool.Multiplier = number.Decimal("0.31536") // 1e-8 per second
	pool.Kink = number.Decimal("0.8")
	pool.ReserveFactor = number.Decimal("0.1")
	pool.AccruedAt = at

	require.Nil(t, s.AccrueInterest(ctx, nil, pool, at.Add(365*24*time.Hour)))

	// util 0.5 -> 5e-9/s -> 0.15768 over the year
	assert.True(t, pool.TotalBorrows.Equal(number.Decimal("5788.4")), "got %s", pool.TotalBorrows)
	assert.True(t, pool.BorrowIndex.Equal(number.Decimal("1.15768")), "got %s", pool.BorrowIndex)

	// the reserve cut arrives as shares worth one tenth of the interest
	reserveShares := shares.balances[core.ReserveHolderID+"/iUSD"]
	require.True(t, reserveShares.IsPositive())
	assert.True(t, pool.TotalShares.Equal(number.Decimal("10000").Add(reserveShares)))

	// post-mint, not pre-mint: dilution must not eat into the cut
	rate := s.CurExchangeRate(pool)
	value := reserveShares.Mul(rate)
	assert.True(t, value.LessThanOrEqual(number.Decimal("78.84")), "got %s", value)
	assert.True(t, value.GreaterThan(number.Decimal("78.8399999")), "got %s", value)

	// the same instant again is a no-op
	borrowsBefore := pool.TotalBorrows
	require.Nil(t, s.AccrueInterest(ctx, nil, pool, at.Add(365*24*time.Hour)))
	assert.True(t, pool.TotalBorrows.Equal(borrowsBefore))
}

func TestBorrowRepayCycle(t *testing.T) {
	ctx := context.Background()
	shares := newMemShareStore()
	borrows := newMemBorrowStore()
	s := New(shares, borrows)

	pool := testPool()
	pool.TotalCash = number.Decimal("1000")
	pool.TotalShares = number.Decimal("1000")

	require.Nil(t, s.Borrow(ctx, nil, pool, "alice", number.Decimal("500")))
	assert.True(t, pool.TotalCash.Equal(number.Decimal("500")))
	assert.True(t, pool.TotalBorrows.Equal(number.Decimal("500")))

	// overpayment refunds
	applied, refund, err := s.Repay(ctx, nil, pool, "alice", number.Decimal("600"))
	require.Nil(t, err)
	assert.True(t, applied.Equal(number.Decimal("500")), "got %s", applied)
	assert.True(t, refund.Equal(number.Decimal("100")), "got %s", refund)
	assert.True(t, pool.TotalCash.Equal(number.Decimal("1000")))
	assert.True(t, pool.TotalBorrows.IsZero())

	borrow, err := borrows.Find(ctx, "alice", pool.AssetID)
	require.Nil(t, err)
	assert.True(t, borrow.Principal.IsZero())
}

func TestBorrowExceedingCash(t *testing.T) {
	pool := testPool()
	pool.TotalCash = number.Decimal("100")

	s := New(newMemShareStore(), newMemBorrowStore())
	err := s.Borrow(context.Background(), nil, pool, "alice", number.Decimal("101"))
	assert.Equal(t, core.ErrInsufficientLiquidity, err)
}

func TestRedeemLiquidityGate(t *testing.T) {
	ctx := context.Background()
	shares := newMemShareStore()
	s := New(shares, newMemBorrowStore())

	pool := testPool()
	pool.TotalCash = number.Decimal("100")
	pool.TotalBorrows = number.Decimal("900")
	pool.TotalShares = number.Decimal("1000")
	shares.balances["alice/iUSD"] = number.Decimal("1000")

	_, err := s.Redeem(ctx, nil, pool, "alice", number.Decimal("200"))
	assert.Equal(t, core.ErrInsufficientLiquidity, err)

	released, err := s.Redeem(ctx, nil, pool, "alice", number.Decimal("100"))
	require.Nil(t, err)
	assert.True(t, released.Equal(number.Decimal("100")), "got %s", released)
	assert.True(t, pool.TotalCash.IsZero())
}

func TestRepayWithoutBorrow(t *testing.T) {
	pool := testPool()
	s := New(newMemShareStore(), newMemBorrowStore())
	_, _, err := s.Repay(context.Background(), nil, pool, "alice", number.Decimal("10"))
	assert.Equal(t, core.ErrBorrowNotFound, err)
}
