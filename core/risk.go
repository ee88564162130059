package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// LoanRisk risk metrics of one loan at current prices. HasDebt is false
// when the debt value is zero, in which case the loan is treated as
// infinitely healthy and HealthFactor is meaningless.
type LoanRisk struct {
	LoanID               string          `json:"loan_id"`
	CollateralValue      decimal.Decimal `json:"collateral_value"`
	DebtValue            decimal.Decimal `json:"debt_value"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	MaxLoanToValue       decimal.Decimal `json:"max_loan_to_value"`
	HealthFactor         decimal.Decimal `json:"health_factor"`
	HasDebt              bool            `json:"has_debt"`
	Liquidatable         bool            `json:"liquidatable"`
	// 按健康因子档位允许清算的最大还款额
	MaxRepay decimal.Decimal `json:"max_repay"`
}

// IRiskService central risk decision point. Pure given loan, pools, prices
// and the borrower's credit score.
type IRiskService interface {
	LoanRisk(ctx context.Context, loan *Loan) (*LoanRisk, error)
	// CheckBorrow gates a new or additional borrow: the resulting
	// debt_value/collateral_value must stay within the credit-adjusted
	// max loan-to-value. Returns ErrExceedsMaxBorrow on violation.
	CheckBorrow(ctx context.Context, loan *Loan, addPrincipal decimal.Decimal) error
	// ScanBadLoans pages loan ids whose current health factor <= 1,
	// recomputed on demand. Restartable via the returned cursor; a zero
	// next cursor means the sweep is complete.
	ScanBadLoans(ctx context.Context, cursor uint64, limit int) ([]string, uint64, error)
}
