package share

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type shareStore struct {
	db *db.DB
}

// New new share store
func New(db *db.DB) core.IShareStore {
	return &shareStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Share{})
		if err := tx.AutoMigrate(core.Share{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *shareStore) Find(ctx context.Context, userID, shareSymbol string) (*core.Share, error) {
	var share core.Share
	if err := s.db.View().Where("user_id=? and share_symbol=?", userID, shareSymbol).First(&share).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			share.UserID = userID
			share.ShareSymbol = shareSymbol
			share.Shares = decimal.Zero
			return &share, nil
		}
		return nil, err
	}

	return &share, nil
}

func (s *shareStore) FindByUser(ctx context.Context, userID string) ([]*core.Share, error) {
	var shares []*core.Share
	if err := s.db.View().Where("user_id=?", userID).Find(&shares).Error; err != nil {
		return nil, err
	}

	return shares, nil
}

func (s *shareStore) Add(ctx context.Context, tx *db.DB, userID, shareSymbol string, delta decimal.Decimal) error {
	var share core.Share
	err := tx.Update().Where("user_id=? and share_symbol=?", userID, shareSymbol).First(&share).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		share = core.Share{
			UserID:      userID,
			ShareSymbol: shareSymbol,
			Shares:      delta,
		}
		return tx.Update().Create(&share).Error
	}

	version := share.Version
	share.Shares = share.Shares.Add(delta)
	share.Version++
	updated := tx.Update().Model(core.Share{}).
		Where("user_id=? and share_symbol=? and version=?", userID, shareSymbol, version).
		Updates(map[string]interface{}{"shares": share.Shares, "version": share.Version})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *shareStore) Sum(ctx context.Context, shareSymbol string) (decimal.Decimal, error) {
	var result struct {
		Sum decimal.Decimal
	}
	if err := s.db.View().Model(core.Share{}).
		Select("coalesce(sum(shares), 0) as sum").
		Where("share_symbol=?", shareSymbol).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}

	return result.Sum, nil
}
