package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrUnknownAsset no pool for the asset
	ErrUnknownAsset ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrUnknownLoan no loan
	ErrUnknownLoan ErrorCode = 100102
	// ErrUnknownUser no credit record
	ErrUnknownUser ErrorCode = 100103
	// ErrInsufficientCollateral insufficient posted collateral
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrInsufficientLiquidity insufficient pool liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrInsufficientBalance insufficient deposit balance
	ErrInsufficientBalance ErrorCode = 100106
	// ErrExceedsMaxBorrow requested borrow pushes loan-to-value over the limit
	ErrExceedsMaxBorrow ErrorCode = 100107
	// ErrNotLiquidatable loan health factor above one
	ErrNotLiquidatable ErrorCode = 100108
	// ErrExceedsLiquidationLimit repay amount above the close-factor cap
	ErrExceedsLiquidationLimit ErrorCode = 100109
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100110
	// ErrLoanNotOpen loan already closed
	ErrLoanNotOpen ErrorCode = 100111
	// ErrSeizureShortfall collateral could not cover the computed seizure; bad-debt signal
	ErrSeizureShortfall ErrorCode = 100112
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
