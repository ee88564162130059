package priceoracle

import (
	"context"
	"fmt"
	"time"

	"pledge/core"
	"pledge/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker polls the configured price feed endpoint on a fixed schedule
type Worker struct {
	worker.BaseJob
	priceSrv core.IPriceService
}

// New new price oracle worker
func New(cfg *core.Config, priceSrv core.IPriceService) *Worker {
	job := Worker{
		priceSrv: priceSrv,
	}

	l, _ := time.LoadLocation(cfg.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))

	interval := cfg.PriceFeed.Interval
	if interval <= 0 {
		interval = 10
	}

	spec := fmt.Sprintf("@every %ds", interval)
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
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	if err := w.priceSrv.PullPrices(ctx); err != nil {
		log.WithError(err).Errorln("pull prices")
		return err
	}

	return nil
}
