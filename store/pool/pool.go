package pool

import (
	"context"
	"errors"

	"pledge/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Where("asset_id=?", pool.AssetID).FirstOrCreate(pool).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	if assetID == "" {
		return nil, errors.New("invalid asset_id")
	}

	var pool core.Pool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnknownAsset
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) FindBySymbol(ctx context.Context, symbol string) (*core.Pool, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	var pool core.Pool
	if err := s.db.View().Where("symbol=?", symbol).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnknownAsset
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *poolStore) AllAsMap(ctx context.Context) (map[string]*core.Pool, error) {
	pools, e := s.All(ctx)
	if e != nil {
		return nil, e
	}

	maps := make(map[string]*core.Pool)

	for _, p := range pools {
		maps[p.AssetID] = p
	}

	return maps, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++

	r := tx.Update().Model(core.Pool{}).Where("asset_id=? and version=?", pool.AssetID, version).Updates(pool)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
