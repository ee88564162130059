package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// VaultAccountID pseudo account for assets held by the protocol
	VaultAccountID = "vault"
)

// Transfer a required transfer instruction for the external asset ledger.
// Written in the same db transaction as the core state mutation so both
// commit or abort together; the cashier drains them to the custody layer.
type Transfer struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID     string          `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id,omitempty"`
	AssetID     string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount      decimal.Decimal `sql:"type:decimal(32,16)" json:"amount,omitempty"`
	Source      string          `sql:"size:36" json:"source,omitempty"`
	Destination string          `sql:"size:36" json:"destination,omitempty"`
	Memo        string          `sql:"size:140" json:"memo,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
	Delete(ctx context.Context, tx *db.DB, ids ...uint64) error
}

// ICustodyService external asset ledger seam. The custody layer is trusted
// to execute instructions atomically with the core's committed state.
type ICustodyService interface {
	HandleTransfer(ctx context.Context, transfer *Transfer) error
}
