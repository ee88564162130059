package views

import (
	"pledge/core"

	"github.com/shopspring/decimal"
)

// Loan loan view with current balance and risk metrics
type Loan struct {
	core.Loan
	Balance decimal.Decimal `json:"balance"`
	Risk    *core.LoanRisk  `json:"risk,omitempty"`
}
