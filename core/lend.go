package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// LiquidationResult outcome of a liquidation
type LiquidationResult struct {
	LoanID           string          `json:"loan_id"`
	LiquidatorID     string          `json:"liquidator_id"`
	Repaid           decimal.Decimal `json:"repaid"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	CollateralSeized decimal.Decimal `json:"collateral_seized"`
	// 抵押不足以覆盖计算出的清算量时的缺口, 坏账信号
	Shortfall        decimal.Decimal `json:"shortfall"`
	PreHealthFactor  decimal.Decimal `json:"pre_health_factor"`
	PostHealthFactor decimal.Decimal `json:"post_health_factor"`
	Status           string          `json:"status"`
}

// ILendService protocol operation handlers. Every call executes as one
// atomic unit against the pools, loan and credit record it touches.
type ILendService interface {
	RegisterUser(ctx context.Context) (*CreditRecord, error)
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	// Pledge moves a deposit balance into the collateral balance
	Pledge(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	// Unpledge moves unlocked collateral back to the deposit balance
	Unpledge(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	// Borrow opens a loan against posted collateral
	Borrow(ctx context.Context, userID, collateralAssetID string, collateralAmount decimal.Decimal, debtAssetID string, amount decimal.Decimal) (*Loan, error)
	// BorrowMore draws additional debt on an open loan
	BorrowMore(ctx context.Context, userID, loanID string, amount decimal.Decimal) (*Loan, error)
	// Repay pays a loan down, interest first. Amounts above the balance
	// are refunded, the overpay is returned.
	Repay(ctx context.Context, userID, loanID string, amount decimal.Decimal) (decimal.Decimal, error)
	// TransferLoan reassigns the loan document holder
	TransferLoan(ctx context.Context, holderID, loanID, newHolderID string) error
}

// ILiquidationService liquidation engine
type ILiquidationService interface {
	Liquidate(ctx context.Context, loanID, liquidatorID string, repayAmount decimal.Decimal) (*LiquidationResult, error)
}
