package scanner

import (
	"context"

	"pledge/core"
	"pledge/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "scanner_checkpoint"

	limit = 200
)

// Scanner sweeps active loans for liquidation candidates. The cursor is
// checkpointed so a restart resumes the sweep instead of rescanning from
// the start of the table.
type Scanner struct {
	worker.TickWorker
	property property.Store
	riskSrv  core.IRiskService
}

// New new scanner worker
func New(property property.Store, riskSrv core.IRiskService) *Scanner {
	return &Scanner{
		property: property,
		riskSrv:  riskSrv,
	}
}

// Run run worker
func (w *Scanner) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "scanner")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Scanner) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	cursor := uint64(v.Int64())

	ids, next, err := w.riskSrv.ScanBadLoans(ctx, cursor, limit)
	if err != nil {
		log.WithError(err).Errorln("risk.ScanBadLoans")
		return err
	}

	for _, id := range ids {
		log.WithField("loan_id", id).Infoln("loan below liquidation threshold")
	}

	if err := w.property.Save(ctx, checkpointKey, int64(next)); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
