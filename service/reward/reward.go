package reward

import (
	"context"
	"fmt"

	"tandem/core"
	"tandem/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type rewardNotifier struct {
	cfg *core.Reward
}

// New new reward tracker notifier. Notifications are best effort; a failed
// delivery is logged and dropped so it can never block the pool operation
// it follows.
func New(cfg *core.Reward) core.IRewardNotifier {
	return &rewardNotifier{cfg: cfg}
}

func (s *rewardNotifier) ShareChanged(ctx context.Context, userID, shareSymbol string, delta, balance decimal.Decimal) {
	if s.cfg.EndPoint == "" {
		return
	}

	log := logger.FromContext(ctx).WithField("service", "reward")

	url := fmt.Sprintf("%s/api/share-events", s.cfg.EndPoint)
	_, err := resthttp.Request(ctx).SetBody(map[string]interface{}{
		"user_id":      userID,
		"share_symbol": shareSymbol,
		"delta":        delta,
		"balance":      balance,
	}).Post(url)
	if err != nil {
		log.WithError(err).Infoln("share event dropped")
	}
}
