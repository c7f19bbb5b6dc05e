package collateral

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral pool store
func New(db *db.DB) core.ICollateralPoolStore {
	return &collateralStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.CollateralPool{})
		if err := tx.AutoMigrate(core.CollateralPool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Save(ctx context.Context, tx *db.DB, pool *core.CollateralPool) error {
	return tx.Update().Where("asset_id=?", pool.AssetID).FirstOrCreate(pool).Error
}

func (s *collateralStore) Find(ctx context.Context, assetID string) (*core.CollateralPool, error) {
	var pool core.CollateralPool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &pool, nil
		}
		return nil, err
	}

	return &pool, nil
}

func (s *collateralStore) FindByPaired(ctx context.Context, pairedAssetID string) (*core.CollateralPool, error) {
	var pool core.CollateralPool
	if err := s.db.View().Where("paired_asset_id=?", pairedAssetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &pool, nil
		}
		return nil, err
	}

	return &pool, nil
}

func (s *collateralStore) All(ctx context.Context) ([]*core.CollateralPool, error) {
	var pools []*core.CollateralPool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}

func (s *collateralStore) Update(ctx context.Context, tx *db.DB, pool *core.CollateralPool) error {
	version := pool.Version
	pool.Version++
	updated := tx.Update().Model(core.CollateralPool{}).
		Where("asset_id=? and version=?", pool.AssetID, version).
		Updates(pool)
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
