package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Worker runs a background loop until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}

// Run run the cron until ctx is cancelled
func (job *BaseJob) RunCron(ctx context.Context) error {
	job.Cron.Start()
	<-ctx.Done()
	job.Cron.Stop()
	return ctx.Err()
}

// TickWorker ticks the work func, backing off after an idle or failed round.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

func (w *TickWorker) StartTick(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = time.Second
	}

	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := fn(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}

			timer.Reset(dur)
		}
	}
}
