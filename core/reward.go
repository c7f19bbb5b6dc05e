package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IRewardNotifier fire-and-forget notification on every share balance
// change. Failures must never block the originating operation.
type IRewardNotifier interface {
	ShareChanged(ctx context.Context, userID, shareSymbol string, delta, balance decimal.Decimal)
}
