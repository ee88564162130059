package liquidation

import (
	"testing"

	"pledge/core"
	"pledge/pkg/number"
	"pledge/service/risk"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeizure(t *testing.T) {
	bonus := number.Decimal("0.05")

	// repay 100 debt @ 1 against collateral @ 2 => 52.5 collateral
	seized, shortfall := Seizure(
		number.Decimal("100"),
		decimal.New(1, 0),
		decimal.New(2, 0),
		bonus,
		number.Decimal("1000"),
	)
	assert.True(t, seized.Equal(number.Decimal("52.5")), seized.String())
	assert.True(t, shortfall.IsZero())
}

func TestSeizureCappedAtCollateral(t *testing.T) {
	seized, shortfall := Seizure(
		number.Decimal("100"),
		decimal.New(1, 0),
		decimal.New(1, 0),
		number.Decimal("0.05"),
		number.Decimal("80"),
	)
	assert.True(t, seized.Equal(number.Decimal("80")), seized.String())
	assert.True(t, shortfall.Equal(number.Decimal("25")), shortfall.String())
}

// A capped partial liquidation must leave the loan healthier than it found it.
func TestLiquidationImprovesHealth(t *testing.T) {
	loan := &core.Loan{
		Status:           core.LoanStatusOpen,
		CollateralAmount: number.Decimal("1000"),
		Principal:        number.Decimal("700"),
		AccruedInterest:  number.Decimal("20"),
	}

	collateralPrice := decimal.New(1, 0)
	debtPrice := decimal.New(1, 0)
	threshold := number.Decimal("0.7")

	pre := risk.HealthFactor(
		loan.CollateralAmount.Mul(collateralPrice),
		loan.Balance().Mul(debtPrice),
		threshold,
	)
	require.True(t, pre.LessThanOrEqual(decimal.New(1, 0)), pre.String())

	repay := risk.MaxRepay(loan.Balance(), pre)
	assert.True(t, repay.Equal(number.Decimal("360")), repay.String())

	seized, shortfall := Seizure(repay, debtPrice, collateralPrice, number.Decimal("0.05"), loan.CollateralAmount)
	require.True(t, shortfall.IsZero())

	interestPaid, principalPaid := loan.ReduceDebt(repay)
	assert.True(t, interestPaid.Equal(number.Decimal("20")), interestPaid.String())
	assert.True(t, principalPaid.Equal(number.Decimal("340")), principalPaid.String())

	loan.CollateralAmount = loan.CollateralAmount.Sub(seized)

	post := risk.HealthFactor(
		loan.CollateralAmount.Mul(collateralPrice),
		loan.Balance().Mul(debtPrice),
		threshold,
	)
	assert.True(t, post.GreaterThan(pre), "pre %s post %s", pre, post)
}

// Below the deep water mark the whole balance may be repaid in one call,
// and covering it closes the loan even when collateral falls short.
func TestDeepWaterFullLiquidation(t *testing.T) {
	loan := &core.Loan{
		Status:           core.LoanStatusOpen,
		CollateralAmount: number.Decimal("300"),
		Principal:        number.Decimal("800"),
	}

	threshold := number.Decimal("0.8")
	pre := risk.HealthFactor(
		loan.CollateralAmount,
		loan.Balance(),
		threshold,
	)
	require.True(t, pre.LessThan(number.Decimal("0.5")), pre.String())

	repay := risk.MaxRepay(loan.Balance(), pre)
	assert.True(t, repay.Equal(loan.Balance()))

	seized, shortfall := Seizure(repay, decimal.New(1, 0), decimal.New(1, 0), number.Decimal("0.05"), loan.CollateralAmount)
	assert.True(t, seized.Equal(loan.CollateralAmount))
	assert.True(t, shortfall.IsPositive())

	loan.ReduceDebt(repay)
	assert.True(t, loan.Balance().IsZero())
}

// The seized collateral lands on the liquidator's record and nowhere else:
// the debt pool's supply is untouched and only the borrowed total shrinks.
func TestSettleCreditsSeizureOnce(t *testing.T) {
	loan := &core.Loan{
		LoanID:            "loan-1",
		Status:            core.LoanStatusOpen,
		CollateralAssetID: "btc",
		DebtAssetID:       "usd",
		CollateralAmount:  number.Decimal("1000"),
		Principal:         number.Decimal("700"),
		AccruedInterest:   number.Decimal("20"),
	}
	debtPool := &core.Pool{
		AssetID:       "usd",
		TotalSupply:   number.Decimal("10000"),
		TotalBorrowed: number.Decimal("720"),
	}
	borrower := &core.CreditRecord{UserID: "alice", Collateral: core.AssetAmounts{}}
	liquidator := &core.CreditRecord{UserID: "bob", Collateral: core.AssetAmounts{}}

	result, err := settle(
		loan, debtPool, borrower, liquidator, "bob",
		number.Decimal("360"),
		decimal.New(1, 0),
		decimal.New(1, 0),
		number.Decimal("0.05"),
		number.Decimal("0.7"),
	)
	require.NoError(t, err)

	assert.True(t, result.CollateralSeized.Equal(number.Decimal("378")), result.CollateralSeized.String())
	assert.True(t, liquidator.Collateral.Get("btc").Equal(result.CollateralSeized))
	assert.True(t, borrower.Collateral.Get("btc").IsZero())
	assert.True(t, debtPool.TotalSupply.Equal(number.Decimal("10000")))
	assert.True(t, debtPool.TotalBorrowed.Equal(number.Decimal("360")))
	assert.Equal(t, core.LoanStatusPartiallyLiquidated, loan.Status)
	assert.True(t, result.PostHealthFactor.GreaterThan(result.PreHealthFactor))
}

// Once collateral value falls under debt value plus the bonus, no partial
// repayment can raise the health factor, so the call is refused outright.
func TestPartialLiquidationMustImproveHealth(t *testing.T) {
	loan := &core.Loan{
		LoanID:            "loan-2",
		Status:            core.LoanStatusOpen,
		CollateralAssetID: "btc",
		DebtAssetID:       "usd",
		CollateralAmount:  number.Decimal("1000"),
		Principal:         number.Decimal("1500"),
	}
	debtPool := &core.Pool{
		AssetID:       "usd",
		TotalSupply:   number.Decimal("10000"),
		TotalBorrowed: number.Decimal("1500"),
	}
	borrower := &core.CreditRecord{UserID: "alice", Collateral: core.AssetAmounts{}}
	liquidator := &core.CreditRecord{UserID: "bob", Collateral: core.AssetAmounts{}}

	threshold := number.Decimal("0.9")
	pre := risk.HealthFactor(loan.CollateralAmount, loan.Balance(), threshold)
	require.True(t, pre.Equal(number.Decimal("0.6")), pre.String())

	repay := risk.MaxRepay(loan.Balance(), pre)
	require.True(t, repay.Equal(number.Decimal("750")), repay.String())

	_, err := settle(
		loan, debtPool, borrower, liquidator, "bob",
		repay,
		decimal.New(1, 0),
		decimal.New(1, 0),
		number.Decimal("0.05"),
		threshold,
	)
	assert.Equal(t, core.ErrNotLiquidatable, err)

	// the refusal leaves every entity exactly as loaded
	assert.True(t, loan.Balance().Equal(number.Decimal("1500")))
	assert.True(t, loan.CollateralAmount.Equal(number.Decimal("1000")))
	assert.True(t, debtPool.TotalBorrowed.Equal(number.Decimal("1500")))
	assert.True(t, liquidator.Collateral.Get("btc").IsZero())
	assert.Equal(t, core.LoanStatusOpen, loan.Status)
}

// Deep under water only a full repayment goes through; it closes the loan,
// hands the liquidator all remaining collateral and reports the shortfall.
func TestSettleClosesDeepWaterLoan(t *testing.T) {
	loan := &core.Loan{
		LoanID:            "loan-3",
		Status:            core.LoanStatusOpen,
		CollateralAssetID: "btc",
		DebtAssetID:       "usd",
		CollateralAmount:  number.Decimal("300"),
		Principal:         number.Decimal("800"),
	}
	debtPool := &core.Pool{
		AssetID:       "usd",
		TotalSupply:   number.Decimal("10000"),
		TotalBorrowed: number.Decimal("800"),
	}
	borrower := &core.CreditRecord{UserID: "alice", Collateral: core.AssetAmounts{}}
	liquidator := &core.CreditRecord{UserID: "bob", Collateral: core.AssetAmounts{}}

	result, err := settle(
		loan, debtPool, borrower, liquidator, "bob",
		number.Decimal("800"),
		decimal.New(1, 0),
		decimal.New(1, 0),
		number.Decimal("0.05"),
		number.Decimal("0.8"),
	)
	require.NoError(t, err)

	assert.Equal(t, core.LoanStatusClosed, loan.Status)
	assert.True(t, loan.Balance().IsZero())
	assert.True(t, result.CollateralSeized.Equal(number.Decimal("300")))
	assert.True(t, result.Shortfall.Equal(number.Decimal("540")), result.Shortfall.String())
	assert.True(t, liquidator.Collateral.Get("btc").Equal(number.Decimal("300")))
	assert.True(t, borrower.Collateral.Get("btc").IsZero())
}
