package authz

import (
	"context"
	"fmt"

	"tandem/core"
	"tandem/pkg/resthttp"

	"github.com/shopspring/decimal"
)

type authzService struct {
	cfg *core.Authz
}

// New new pre-authorization client. Fails closed: any transport or decode
// error counts as not authorized.
func New(cfg *core.Authz) core.IAuthorizer {
	return &authzService{cfg: cfg}
}

func (s *authzService) IsAuthorized(ctx context.Context, owner, asset string, amount decimal.Decimal) (bool, error) {
	url := fmt.Sprintf("%s/api/allowances?owner=%s&asset=%s&amount=%s", s.cfg.EndPoint, owner, asset, amount)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return false, err
	}

	var result struct {
		Authorized bool `json:"authorized"`
	}
	if err := resthttp.ParseResponse(resp, &result); err != nil {
		return false, err
	}

	return result.Authorized, nil
}
