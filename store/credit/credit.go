package credit

import (
	"context"
	"errors"

	"pledge/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type creditStore struct {
	db *db.DB
}

// New new credit record store
func New(db *db.DB) core.ICreditStore {
	return &creditStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()

		if err := tx.AutoMigrate(core.CreditRecord{}).Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.CreditEvent{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *creditStore) Create(ctx context.Context, record *core.CreditRecord) error {
	if record.Deposits == nil {
		record.Deposits = core.AssetAmounts{}
	}
	if record.Collateral == nil {
		record.Collateral = core.AssetAmounts{}
	}

	return s.db.Update().Where("user_id=?", record.UserID).FirstOrCreate(record).Error
}

func (s *creditStore) Find(ctx context.Context, userID string) (*core.CreditRecord, error) {
	if userID == "" {
		return nil, errors.New("invalid user_id")
	}

	var record core.CreditRecord
	if err := s.db.View().Where("user_id=?", userID).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnknownUser
		}
		return nil, err
	}

	return &record, nil
}

func (s *creditStore) Update(ctx context.Context, tx *db.DB, record *core.CreditRecord) error {
	version := record.Version
	record.Version++

	r := tx.Update().Model(core.CreditRecord{}).Where("user_id=? and version=?", record.UserID, version).
		Updates(map[string]interface{}{
			"deposits":     record.Deposits,
			"collateral":   record.Collateral,
			"credit_score": record.CreditScore,
			"version":      record.Version,
		})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *creditStore) CreateEvent(ctx context.Context, tx *db.DB, event *core.CreditEvent) error {
	return tx.Update().Create(event).Error
}

func (s *creditStore) ListEvents(ctx context.Context, userID string, limit int) ([]*core.CreditEvent, error) {
	var events []*core.CreditEvent
	if err := s.db.View().Where("user_id=?", userID).Order("id ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
