package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config tandem config
type Config struct {
	App    App       `json:"app"`
	DB     db.Config `json:"db"`
	Oracle Oracle    `json:"oracle"`
	Swap   Swap      `json:"swap"`
	Authz  Authz     `json:"authz"`
	Reward Reward    `json:"reward"`
	Admins []string  `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Port     int    `json:"port"`
	Location string `json:"location"`
	// the one paired market this deployment serves
	BorrowAssetID     string `json:"borrow_asset_id" valid:"uuid,required"`
	CollateralAssetID string `json:"collateral_asset_id" valid:"uuid,required"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point"`
	// quotes older than this fail closed
	MaxPriceAge time.Duration `json:"max_price_age"`
	// oracle quote cache capacity
	CacheCapacity int `json:"cache_capacity"`
}

// Swap asset conversion aggregator config
type Swap struct {
	EndPoint string `json:"end_point"`
}

// Authz pre-authorization endpoint config
type Authz struct {
	EndPoint string `json:"end_point"`
}

// Reward reward tracker config
type Reward struct {
	EndPoint string `json:"end_point"`
}
