package accrual

import (
	"context"
	"sync"
	"time"

	"pledge/core"
	"pledge/pkg/concurrency"
	"pledge/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker advances pool interest indices on a fixed schedule so quotes and
// health checks stay close to the true accrued state even on idle pools.
type Worker struct {
	worker.BaseJob
	db        *db.DB
	poolStore core.IPoolStore
	poolSrv   core.IPoolService
}

// New new accrual worker
func New(cfg *core.Config, db *db.DB, poolStore core.IPoolStore, poolSrv core.IPoolService) *Worker {
	job := Worker{
		db:        db,
		poolStore: poolStore,
		poolSrv:   poolSrv,
	}

	l, _ := time.LoadLocation(cfg.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.BaseJob.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.RunCron(ctx)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	pools, err := w.poolStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("pools.All")
		return err
	}

	now := time.Now()
	golimit := concurrency.NewGoLimit(concurrency.DefaultMax)
	wg := sync.WaitGroup{}

	for _, p := range pools {
		golimit.Add()
		wg.Add(1)

		go func(pool *core.Pool) {
			defer golimit.Done()
			defer wg.Done()

			if err := w.accruePool(ctx, pool, now); err != nil {
				log.WithError(err).Errorln("accrue pool:", pool.AssetID)
			}
		}(p)
	}

	wg.Wait()

	return nil
}

func (w *Worker) accruePool(ctx context.Context, pool *core.Pool, now time.Time) error {
	if err := w.poolSrv.AccrueIndices(ctx, pool, now); err != nil {
		return err
	}

	// a concurrent writer already advanced the pool; next round catches up
	if err := w.poolStore.Update(ctx, w.db, pool); err != nil && err != db.ErrOptimisticLock {
		return err
	}

	return nil
}
