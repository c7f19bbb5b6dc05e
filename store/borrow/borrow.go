package borrow

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.IBorrowStore {
	return &borrowStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Borrow{})
		if err := tx.AutoMigrate(core.Borrow{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	return tx.Update().Where("user_id=? and asset_id=?", borrow.UserID, borrow.AssetID).FirstOrCreate(borrow).Error
}

func (s *borrowStore) Find(ctx context.Context, userID, assetID string) (*core.Borrow, error) {
	var borrow core.Borrow
	if err := s.db.View().Where("user_id=? and asset_id=?", userID, assetID).First(&borrow).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &borrow, nil
		}
		return nil, err
	}

	return &borrow, nil
}

func (s *borrowStore) FindByUser(ctx context.Context, userID string) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Where("user_id=?", userID).Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	version := borrow.Version
	borrow.Version++
	updated := tx.Update().Model(core.Borrow{}).
		Where("user_id=? and asset_id=? and version=?", borrow.UserID, borrow.AssetID, version).
		Updates(borrow)
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *borrowStore) All(ctx context.Context) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) Users(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.View().Model(core.Borrow{}).
		Where("principal > 0").
		Pluck("distinct user_id", &users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
