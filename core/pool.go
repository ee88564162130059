package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool per-asset aggregate ledger
type Pool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:pool_asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:pool_symbol_idx" json:"symbol"`
	// 总存入量，含已累计利息
	TotalSupply decimal.Decimal `sql:"type:decimal(32,16)" json:"total_supply"`
	// 总借出量，含已累计利息
	TotalBorrowed decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed"`
	// 协议保留金，属于 TotalSupply 的一部分
	Reserves      decimal.Decimal `sql:"type:decimal(32,16)" json:"reserves"`
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// 存款利息累计指数
	LiquidityIndex decimal.Decimal `sql:"type:decimal(28,16);default:1" json:"liquidity_index"`
	// 借款利息累计指数
	BorrowIndex decimal.Decimal `sql:"type:decimal(28,16);default:1" json:"borrow_index"`
	// 基础年利率
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// 利用率斜率 per year
	Multiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	// 超过拐点后的斜率 per year
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	// 拐点利用率
	Kink decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	// 最大借贷价值比, 默认 0.75
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// 清算阈值基准
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// 清算奖励因子, 默认 0.05
	LiquidationIncentive decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_incentive"`
	LastAccruedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_accrued_at"`
	Version              int64           `sql:"default:0" json:"version"`
	CreatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Liquidity available liquidity = total_supply - total_borrowed
func (p *Pool) Liquidity() decimal.Decimal {
	return p.TotalSupply.Sub(p.TotalBorrowed)
}

// UtilizationRate fraction of supply currently borrowed, 0 for an empty pool
func (p *Pool) UtilizationRate() decimal.Decimal {
	if p.TotalSupply.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return p.TotalBorrowed.Div(p.TotalSupply).Truncate(16)
}

// Deposit increases total supply
func (p *Pool) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	p.TotalSupply = p.TotalSupply.Add(amount)
	return nil
}

// Withdraw decreases total supply; fails when the amount exceeds available liquidity
func (p *Pool) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(p.Liquidity()) {
		return ErrInsufficientLiquidity
	}

	p.TotalSupply = p.TotalSupply.Sub(amount)
	return nil
}

// Borrow increases total borrowed; fails when the amount exceeds available liquidity
func (p *Pool) Borrow(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(p.Liquidity()) {
		return ErrInsufficientLiquidity
	}

	p.TotalBorrowed = p.TotalBorrowed.Add(amount)
	return nil
}

// Repay decreases total borrowed by min(amount, total_borrowed)
func (p *Pool) Repay(amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(amount, p.TotalBorrowed)
	p.TotalBorrowed = p.TotalBorrowed.Sub(applied)
	return applied
}

// IPoolStore pool store interface
type IPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, assetID string) (*Pool, error)
	FindBySymbol(ctx context.Context, symbol string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	AllAsMap(ctx context.Context) (map[string]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// IPoolService pool service interface
type IPoolService interface {
	// AccrueIndices compounds the liquidity/borrow indices over the time
	// elapsed since the last accrual. Must run before any rate-sensitive
	// read or mutation; calling twice at the same timestamp is a no-op.
	AccrueIndices(ctx context.Context, pool *Pool, now time.Time) error
	CurUtilizationRate(ctx context.Context, pool *Pool) (decimal.Decimal, error)
	CurBorrowRate(ctx context.Context, pool *Pool) (decimal.Decimal, error)
	CurSupplyRate(ctx context.Context, pool *Pool) (decimal.Decimal, error)
}
