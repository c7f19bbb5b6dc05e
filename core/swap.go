package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ISwapService opaque asset conversion. The engine never assumes the quote
// is fair, only that the output is no worse than minOut.
type ISwapService interface {
	Convert(ctx context.Context, fromAsset, toAsset string, amount, minOut decimal.Decimal) (decimal.Decimal, error)
}
