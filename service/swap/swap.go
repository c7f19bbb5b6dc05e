package swap

import (
	"context"
	"fmt"

	"tandem/core"
	"tandem/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type swapService struct {
	cfg *core.Swap
}

// New new asset conversion client backed by an external aggregator
func New(cfg *core.Swap) core.ISwapService {
	return &swapService{cfg: cfg}
}

func (s *swapService) Convert(ctx context.Context, fromAsset, toAsset string, amount, minOut decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "swap")

	url := fmt.Sprintf("%s/api/swap", s.cfg.EndPoint)
	resp, err := resthttp.Request(ctx).SetBody(map[string]interface{}{
		"from_asset": fromAsset,
		"to_asset":   toAsset,
		"amount":     amount,
		"min_out":    minOut,
	}).Post(url)
	if err != nil {
		log.WithError(err).Errorln("swap request failed")
		return decimal.Zero, err
	}

	var result struct {
		AmountOut decimal.Decimal `json:"amount_out"`
	}
	if err := resthttp.ParseResponse(resp, &result); err != nil {
		log.WithError(err).Errorln("swap response invalid")
		return decimal.Zero, err
	}

	// never trust the aggregator past the caller's bound
	if result.AmountOut.LessThan(minOut) {
		return decimal.Zero, core.ErrBelowMinOut
	}

	return result.AmountOut.Truncate(8), nil
}
