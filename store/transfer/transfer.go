package transfer

import (
	"context"

	"tandem/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transferStore struct {
	db *db.DB
}

// New new transfer journal store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Where("trace_id=?", transfer.TraceID).FirstOrCreate(transfer).Error
}

func (s *transferStore) FindByTrace(ctx context.Context, traceID string) (*core.Transfer, error) {
	var transfer core.Transfer
	if err := s.db.View().Where("trace_id=?", traceID).First(&transfer).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &transfer, nil
		}
		return nil, err
	}

	return &transfer, nil
}

func (s *transferStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().
		Where("id > ?", fromID).
		Order("id").
		Limit(limit).
		Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}

func (s *transferStore) ListByUser(ctx context.Context, userID string, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().
		Where("user_id=?", userID).
		Order("id desc").
		Limit(limit).
		Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}
