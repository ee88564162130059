package credit

import (
	"context"
	"fmt"

	"pledge/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a credit store with a read-through LRU cache
func Cache(store core.ICreditStore) core.ICreditStore {
	return &cacheCreditStore{
		ICreditStore: store,
		cache:        gcache.New(2048).LRU().Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheCreditStore struct {
	core.ICreditStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheCreditStore) Create(ctx context.Context, record *core.CreditRecord) error {
	if err := s.ICreditStore.Create(ctx, record); err != nil {
		return err
	}
	s.cache.Set(s.userKey(record.UserID), record)
	return nil
}

func (s *cacheCreditStore) Find(ctx context.Context, userID string) (*core.CreditRecord, error) {
	if v, err := s.cache.Get(s.userKey(userID)); err == nil {
		if record, ok := v.(*core.CreditRecord); ok {
			return record, nil
		}
	}

	v, err, _ := s.sf.Do(s.userKey(userID), func() (interface{}, error) {
		record, err := s.ICreditStore.Find(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(s.userKey(userID), record)
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.CreditRecord), nil
}

func (s *cacheCreditStore) Update(ctx context.Context, tx *db.DB, record *core.CreditRecord) error {
	// the tx may still roll back; drop the entry instead of caching the
	// uncommitted record
	s.cache.Remove(s.userKey(record.UserID))
	return s.ICreditStore.Update(ctx, tx, record)
}

func (s *cacheCreditStore) userKey(userID string) string {
	return fmt.Sprintf("credit:user:%s", userID)
}
