package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDepositWithdrawRoundTrip(t *testing.T) {
	pool := &Pool{
		TotalSupply:   decimal.NewFromInt(10000),
		TotalBorrowed: decimal.NewFromInt(2000),
	}

	before := pool.TotalSupply
	require.Nil(t, pool.Deposit(decimal.NewFromInt(300)))
	require.Nil(t, pool.Withdraw(decimal.NewFromInt(300)))
	assert.True(t, pool.TotalSupply.Equal(before), "deposit then withdraw must restore total supply")
}

func TestPoolBorrowRespectsLiquidity(t *testing.T) {
	pool := &Pool{
		TotalSupply:   decimal.NewFromInt(10000),
		TotalBorrowed: decimal.NewFromInt(9000),
	}

	assert.Equal(t, ErrInsufficientLiquidity, pool.Borrow(decimal.NewFromInt(1001)))
	require.Nil(t, pool.Borrow(decimal.NewFromInt(1000)))
	assert.True(t, pool.TotalBorrowed.LessThanOrEqual(pool.TotalSupply))
}

func TestPoolWithdrawRespectsLiquidity(t *testing.T) {
	pool := &Pool{
		TotalSupply:   decimal.NewFromInt(5000),
		TotalBorrowed: decimal.NewFromInt(4000),
	}

	assert.Equal(t, ErrInsufficientLiquidity, pool.Withdraw(decimal.NewFromInt(1500)))
	assert.Equal(t, ErrInvalidAmount, pool.Withdraw(decimal.Zero))
}

func TestPoolRepayCapsAtBorrowed(t *testing.T) {
	pool := &Pool{
		TotalSupply:   decimal.NewFromInt(5000),
		TotalBorrowed: decimal.NewFromInt(100),
	}

	applied := pool.Repay(decimal.NewFromInt(150))
	assert.Equal(t, "100", applied.String())
	assert.True(t, pool.TotalBorrowed.IsZero())
}

func TestLoanReduceDebtInterestFirst(t *testing.T) {
	loan := &Loan{
		Principal:       decimal.NewFromInt(1000),
		AccruedInterest: decimal.NewFromInt(50),
	}

	interestPaid, principalPaid := loan.ReduceDebt(decimal.NewFromInt(200))
	assert.Equal(t, "50", interestPaid.String())
	assert.Equal(t, "150", principalPaid.String())
	assert.Equal(t, "850", loan.Principal.String())
	assert.True(t, loan.AccruedInterest.IsZero())
}

func TestLoanAccrue(t *testing.T) {
	loan := &Loan{
		Principal:     decimal.NewFromInt(1000),
		InterestIndex: decimal.New(1, 0),
	}

	loan.Accrue(decimal.NewFromFloat(1.1))
	assert.Equal(t, "100", loan.AccruedInterest.String())
	assert.Equal(t, "1.1", loan.InterestIndex.String())

	// same index again is a no-op
	loan.Accrue(decimal.NewFromFloat(1.1))
	assert.Equal(t, "100", loan.AccruedInterest.String())
}
