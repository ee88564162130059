package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Price unit price of an asset, written by the trusted feed only
type Price struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;unique_index:price_asset_idx" json:"asset_id"`
	Price     decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, price *Price) error
	Find(ctx context.Context, assetID string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
}

// IPriceService price feed boundary. Read-only to the core; SetPrice is the
// privileged demo setter.
type IPriceService interface {
	GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
	SetPrice(ctx context.Context, assetID string, price decimal.Decimal) error
	// PullPrices refreshes prices from the configured external endpoint
	PullPrices(ctx context.Context) error
}
