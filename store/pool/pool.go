package pool

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new lending pool store
func New(db *db.DB) core.ILendingPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.LendingPool{})
		if err := tx.AutoMigrate(core.LendingPool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.LendingPool) error {
	return tx.Update().Where("asset_id=?", pool.AssetID).FirstOrCreate(pool).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.LendingPool, error) {
	var pool core.LendingPool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &pool, nil
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) FindBySymbol(ctx context.Context, symbol string) (*core.LendingPool, error) {
	var pool core.LendingPool
	if err := s.db.View().Where("symbol=?", symbol).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &pool, nil
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.LendingPool, error) {
	var pools []*core.LendingPool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.LendingPool) error {
	version := pool.Version
	pool.Version++
	updated := tx.Update().Model(core.LendingPool{}).
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
