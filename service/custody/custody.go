package custody

import (
	"context"

	"pledge/core"

	"github.com/fox-one/pkg/logger"
)

// custodyService is the boundary to the external asset ledger. Instructions
// handed over here are already committed core state; the ledger is trusted
// to execute them. This implementation acknowledges and logs, a deployment
// plugs in its own.
type custodyService struct{}

// New new custody service
func New() core.ICustodyService {
	return &custodyService{}
}

func (s *custodyService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	logger.FromContext(ctx).WithField("service", "custody").
		WithField("trace", transfer.TraceID).
		Infof("transfer %s %s: %s -> %s", transfer.Amount, transfer.AssetID, transfer.Source, transfer.Destination)

	return nil
}
