package account

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type accountStore struct {
	db *db.DB
}

// New new liquidity snapshot store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LiquiditySnapshot{})
		if err := tx.AutoMigrate(core.LiquiditySnapshot{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) SaveLiquidity(ctx context.Context, userID string, liquidity, shortfall decimal.Decimal) error {
	return s.db.Tx(func(tx *db.DB) error {
		var snapshot core.LiquiditySnapshot
		err := tx.Update().Where("user_id=?", userID).First(&snapshot).Error
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}

			snapshot = core.LiquiditySnapshot{
				UserID:    userID,
				Liquidity: liquidity,
				Shortfall: shortfall,
			}
			return tx.Update().Create(&snapshot).Error
		}

		version := snapshot.Version
		snapshot.Liquidity = liquidity
		snapshot.Shortfall = shortfall
		snapshot.Version++
		return tx.Update().Model(core.LiquiditySnapshot{}).
			Where("user_id=? and version=?", userID, version).
			Updates(map[string]interface{}{
				"liquidity": liquidity,
				"shortfall": shortfall,
				"version":   snapshot.Version,
			}).Error
	})
}

func (s *accountStore) FindLiquidity(ctx context.Context, userID string) (*core.LiquiditySnapshot, error) {
	var snapshot core.LiquiditySnapshot
	if err := s.db.View().Where("user_id=?", userID).First(&snapshot).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &snapshot, nil
		}
		return nil, err
	}

	return &snapshot, nil
}

func (s *accountStore) ListUnderwater(ctx context.Context) ([]*core.LiquiditySnapshot, error) {
	var snapshots []*core.LiquiditySnapshot
	if err := s.db.View().Where("shortfall > 0").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}
