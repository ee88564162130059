package views

import (
	"pledge/core"

	"github.com/shopspring/decimal"
)

// Pool pool view with derived rates
type Pool struct {
	core.Pool
	Liquidity       decimal.Decimal `json:"liquidity"`
	UtilizationRate decimal.Decimal `json:"utilization_rate"`
	SupplyAPY       decimal.Decimal `json:"supply_apy"`
	BorrowAPY       decimal.Decimal `json:"borrow_apy"`
}
