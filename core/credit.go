package core

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AssetAmounts per-asset balances stored as a json column
type AssetAmounts map[string]decimal.Decimal

// Scan implements sql.Scanner
func (m *AssetAmounts) Scan(value interface{}) error {
	if value == nil {
		*m = AssetAmounts{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("asset amounts: unsupported column type")
	}

	if len(data) == 0 {
		*m = AssetAmounts{}
		return nil
	}

	return json.Unmarshal(data, m)
}

// Value implements driver.Valuer
func (m AssetAmounts) Value() (driver.Value, error) {
	if m == nil {
		m = AssetAmounts{}
	}
	return json.Marshal(m)
}

// Get amount for asset, zero when absent
func (m AssetAmounts) Get(assetID string) decimal.Decimal {
	if v, ok := m[assetID]; ok {
		return v
	}
	return decimal.Zero
}

// Add amount for asset
func (m AssetAmounts) Add(assetID string, amount decimal.Decimal) {
	m[assetID] = m.Get(assetID).Add(amount)
}

// Sub amount for asset; removes the key when it reaches zero
func (m AssetAmounts) Sub(assetID string, amount decimal.Decimal) {
	v := m.Get(assetID).Sub(amount)
	if v.IsZero() {
		delete(m, assetID)
		return
	}
	m[assetID] = v
}

// CreditRecord permanent, non-transferable per-user record. The owner is
// fixed at registration; score and balances mutate only through protocol
// operations, never from the user side.
type CreditRecord struct {
	ID         uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID     string       `sql:"size:36;unique_index:credit_user_idx" json:"user_id"`
	Deposits   AssetAmounts `sql:"type:text" json:"deposits"`
	Collateral AssetAmounts `sql:"type:text" json:"collateral"`
	// 信用分, 只增不减
	CreditScore int64     `sql:"default:0" json:"credit_score"`
	Version     int64     `sql:"default:0" json:"version"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// CreditEvent one repayment event; rows form the ordered repayment history
type CreditEvent struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:36;index:credit_event_user_idx" json:"user_id"`
	LoanID    string          `sql:"size:36" json:"loan_id"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Repaid    decimal.Decimal `sql:"type:decimal(32,16)" json:"repaid"`
	Remaining decimal.Decimal `sql:"type:decimal(32,16)" json:"remaining"`
	// 本次授予的信用分
	ScoreDelta     int64     `sql:"default:0" json:"score_delta"`
	ViaLiquidation bool      `sql:"default:false" json:"via_liquidation"`
	CreatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ICreditStore credit record store interface
type ICreditStore interface {
	Create(ctx context.Context, record *CreditRecord) error
	Find(ctx context.Context, userID string) (*CreditRecord, error)
	Update(ctx context.Context, tx *db.DB, record *CreditRecord) error
	CreateEvent(ctx context.Context, tx *db.DB, event *CreditEvent) error
	ListEvents(ctx context.Context, userID string, limit int) ([]*CreditEvent, error)
}

// CreditTier one row of the repayment scoring table
type CreditTier struct {
	// 剩余比例上限, 还款后 remaining/origination <= RemainingAtMost 即触发
	RemainingAtMost decimal.Decimal `json:"remaining_at_most"`
	Award           int64           `json:"award"`
}

// IScoreService credit scorer interface. Triggered only on repayment
// events; the score is monotonically non-decreasing.
type IScoreService interface {
	// OnRepayment awards score per the tier table, each tier at most once
	// per loan, and appends the credit event inside the caller's tx.
	// Returns the awarded delta.
	OnRepayment(ctx context.Context, tx *db.DB, record *CreditRecord, loan *Loan, repaid decimal.Decimal, viaLiquidation bool) (int64, error)
}
