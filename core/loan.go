package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// LoanStatusOpen open loan
	LoanStatusOpen = "OPEN"
	// LoanStatusPartiallyLiquidated loan that survived a partial liquidation
	LoanStatusPartiallyLiquidated = "PARTIALLY_LIQUIDATED"
	// LoanStatusClosed fully repaid or fully liquidated
	LoanStatusClosed = "CLOSED"
)

// Loan a single borrow position
type Loan struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	LoanID     string `sql:"size:36;unique_index:loan_trace_idx" json:"loan_id"`
	BorrowerID string `sql:"size:36;index:loan_borrower_idx" json:"borrower_id"`
	// 贷款凭证持有人, 可转让; 触发操作按持有人校验
	HolderID          string          `sql:"size:36" json:"holder_id"`
	CollateralAssetID string          `sql:"size:36" json:"collateral_asset_id"`
	CollateralAmount  decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral_amount"`
	DebtAssetID       string          `sql:"size:36" json:"debt_asset_id"`
	Principal         decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	AccruedInterest   decimal.Decimal `sql:"type:decimal(32,16)" json:"accrued_interest"`
	// 借款时的债务池 borrow_index, 懒惰计息用
	InterestIndex decimal.Decimal `sql:"type:decimal(28,16);default:1" json:"interest_index"`
	// 借款总额基准, 信用分档位按剩余比例计算
	OriginationBalance decimal.Decimal `sql:"type:decimal(32,16)" json:"origination_balance"`
	RateAtOrigination  decimal.Decimal `sql:"type:decimal(20,16)" json:"rate_at_origination"`
	// 已授予的最深信用档位
	ScoredTier int       `sql:"default:0" json:"scored_tier"`
	Status     string    `sql:"size:24;default:'OPEN'" json:"status"`
	Version    int64     `sql:"default:0" json:"version"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Balance outstanding debt = principal + accrued interest
func (l *Loan) Balance() decimal.Decimal {
	return l.Principal.Add(l.AccruedInterest)
}

// Active reports whether the loan still carries debt
func (l *Loan) Active() bool {
	return l.Status == LoanStatusOpen || l.Status == LoanStatusPartiallyLiquidated
}

// Accrue grows the outstanding interest against the debt pool's borrow
// index. balance = balance * pool.borrow_index / loan.interest_index;
// the growth lands on accrued interest, principal is untouched.
func (l *Loan) Accrue(borrowIndex decimal.Decimal) {
	if !borrowIndex.IsPositive() {
		return
	}

	if !l.InterestIndex.IsPositive() {
		l.InterestIndex = borrowIndex
		return
	}

	if borrowIndex.Equal(l.InterestIndex) {
		return
	}

	balance := l.Balance().Mul(borrowIndex).Div(l.InterestIndex).
		Shift(16).Ceil().Shift(-16)
	l.AccruedInterest = balance.Sub(l.Principal)
	l.InterestIndex = borrowIndex
}

// ReduceDebt applies a repayment, interest first, then principal.
// Returns the amounts taken off interest and principal.
func (l *Loan) ReduceDebt(amount decimal.Decimal) (interestPaid, principalPaid decimal.Decimal) {
	interestPaid = decimal.Min(amount, l.AccruedInterest)
	l.AccruedInterest = l.AccruedInterest.Sub(interestPaid)

	principalPaid = decimal.Min(amount.Sub(interestPaid), l.Principal)
	l.Principal = l.Principal.Sub(principalPaid)
	return
}

// ILoanStore loan store interface
type ILoanStore interface {
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	Find(ctx context.Context, loanID string) (*Loan, error)
	FindByUser(ctx context.Context, userID string) ([]*Loan, error)
	// ListActive pages loans with outstanding debt ordered by row id,
	// starting strictly after fromID
	ListActive(ctx context.Context, fromID uint64, limit int) ([]*Loan, error)
	Update(ctx context.Context, tx *db.DB, loan *Loan) error
}
