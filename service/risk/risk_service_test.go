package risk

import (
	"testing"

	"pledge/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthFactorBoundary(t *testing.T) {
	// collateral 10000, debt 9000, threshold 0.9 sits exactly on the boundary
	hf := HealthFactor(decimal.NewFromInt(10000), decimal.NewFromInt(9000), decimal.NewFromFloat(0.9))
	assert.Equal(t, "1", hf.String())
	assert.True(t, hf.LessThanOrEqual(decimal.New(1, 0)), "boundary loan is eligible for liquidation")
}

func TestHealthFactorZeroDebt(t *testing.T) {
	hf := HealthFactor(decimal.NewFromInt(10000), decimal.Zero, decimal.NewFromFloat(0.9))
	assert.True(t, hf.IsZero(), "zero-debt loans carry no meaningful health factor")
}

func TestMaxRepayCutoffs(t *testing.T) {
	balance := decimal.NewFromInt(1000)

	// hf in (0.5, 1]: half the balance
	assert.Equal(t, "500", MaxRepay(balance, decimal.NewFromFloat(0.9)).String())
	assert.Equal(t, "500", MaxRepay(balance, decimal.NewFromFloat(0.51)).String())

	// hf <= 0.5: the whole balance
	assert.Equal(t, "1000", MaxRepay(balance, decimal.NewFromFloat(0.5)).String())
	assert.Equal(t, "1000", MaxRepay(balance, decimal.NewFromFloat(0.4)).String())
}

func TestCheckLoanToValue(t *testing.T) {
	maxLTV := decimal.NewFromFloat(0.75)
	collateral := decimal.NewFromInt(10000)

	// borrowing 7500 against 10000 at 75% is allowed
	assert.Nil(t, CheckLoanToValue(collateral, decimal.NewFromInt(7500), maxLTV))

	// one more unit crosses the limit
	assert.Equal(t, core.ErrExceedsMaxBorrow, CheckLoanToValue(collateral, decimal.NewFromInt(7501), maxLTV))

	// no collateral, no borrow
	assert.Equal(t, core.ErrExceedsMaxBorrow, CheckLoanToValue(decimal.Zero, decimal.NewFromInt(1), maxLTV))
}

func TestCreditModifiers(t *testing.T) {
	assert.True(t, CollateralModifier(0).IsZero())
	assert.Equal(t, "0.05", CollateralModifier(100).String())
	assert.Equal(t, "0.1", CollateralModifier(200).String())
	assert.Equal(t, "0.15", CollateralModifier(350).String())

	assert.True(t, InterestModifier(99).IsZero())
	assert.Equal(t, "0.02", InterestModifier(200).String())
}

func TestCreditRelaxesThresholdAndLTV(t *testing.T) {
	base := decimal.NewFromFloat(0.8)
	factor := decimal.NewFromFloat(0.75)

	baseline := LiquidationThreshold(base, 0)
	relaxed := LiquidationThreshold(base, 200)
	assert.Equal(t, "0.8", baseline.String())
	assert.Equal(t, "0.9", relaxed.String())

	// the relaxed threshold keeps the same loan healthier
	collateral := decimal.NewFromInt(10000)
	debt := decimal.NewFromInt(8500)
	assert.True(t, HealthFactor(collateral, debt, relaxed).GreaterThan(HealthFactor(collateral, debt, baseline)))

	// and the borrow limit loosens the same way
	assert.Equal(t, "0.85", MaxLoanToValue(factor, 200).String())

	// capped below 1
	assert.Equal(t, "0.95", LiquidationThreshold(decimal.NewFromFloat(0.92), 300).String())
}
