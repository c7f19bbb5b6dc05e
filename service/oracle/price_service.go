package oracle

import (
	"context"
	"fmt"
	"time"

	"tandem/core"
	"tandem/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// PriceService oracle price service
type PriceService struct {
	cfg    *core.Oracle
	quotes gcache.Cache
	sf     singleflight.Group
}

// New new oracle price service
func New(cfg *core.Oracle) core.IPriceOracleService {
	capacity := cfg.CacheCapacity
	if capacity <= 0 {
		capacity = 64
	}

	return &PriceService{
		cfg:    cfg,
		quotes: gcache.New(capacity).LRU().Build(),
	}
}

// GetUnderlyingPrice current price of the collateral asset in borrow asset
// units. Fails closed when the pool has no usable quote.
func (s *PriceService) GetUnderlyingPrice(ctx context.Context, pool *core.CollateralPool) (decimal.Decimal, error) {
	if !pool.Price.IsPositive() {
		return decimal.Zero, core.ErrOracleUnavailable
	}

	if s.cfg.MaxPriceAge > 0 && time.Since(pool.PriceUpdatedAt) > s.cfg.MaxPriceAge {
		return decimal.Zero, core.ErrOracleUnavailable
	}

	return pool.Price, nil
}

// PullPriceTicker pull a fresh quote from the oracle endpoint
func (s *PriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	key := fmt.Sprintf("%s-%d", assetID, t.UTC().Unix())
	if cached, err := s.quotes.Get(key); err == nil {
		return cached.(*core.PriceTicker), nil
	}

	ticker, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.pull(ctx, assetID, t)
	})
	if err != nil {
		return nil, err
	}

	_ = s.quotes.SetWithExpire(key, ticker, time.Minute)
	return ticker.(*core.PriceTicker), nil
}

func (s *PriceService) pull(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.cfg.EndPoint, assetID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, core.ErrOracleUnavailable
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, core.ErrOracleUnavailable
	}

	if !ticker.Price.IsPositive() {
		return nil, core.ErrOracleUnavailable
	}

	return &ticker, nil
}
