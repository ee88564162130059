package risk

import (
	"github.com/shopspring/decimal"
)

// Credit score tiers. A better score relaxes the liquidation threshold and
// the max loan-to-value, and discounts the borrow rate at origination.
var (
	scoreTiers = []int64{300, 200, 100}

	collateralModifiers = map[int64]decimal.Decimal{
		100: decimal.NewFromFloat(0.05),
		200: decimal.NewFromFloat(0.10),
		300: decimal.NewFromFloat(0.15),
	}

	interestModifiers = map[int64]decimal.Decimal{
		100: decimal.NewFromFloat(0.01),
		200: decimal.NewFromFloat(0.02),
		300: decimal.NewFromFloat(0.03),
	}

	// thresholds never reach 1, a loan must keep some buffer over its debt
	maxThreshold = decimal.NewFromFloat(0.95)
)

// CollateralModifier credit-score relaxation applied to the liquidation
// threshold and the max loan-to-value
func CollateralModifier(score int64) decimal.Decimal {
	for _, tier := range scoreTiers {
		if score >= tier {
			return collateralModifiers[tier]
		}
	}
	return decimal.Zero
}

// InterestModifier credit-score discount off the borrow rate at origination
func InterestModifier(score int64) decimal.Decimal {
	for _, tier := range scoreTiers {
		if score >= tier {
			return interestModifiers[tier]
		}
	}
	return decimal.Zero
}

// LiquidationThreshold credit-adjusted liquidation threshold
func LiquidationThreshold(base decimal.Decimal, score int64) decimal.Decimal {
	return decimal.Min(base.Add(CollateralModifier(score)), maxThreshold)
}

// MaxLoanToValue credit-adjusted max loan-to-value
func MaxLoanToValue(collateralFactor decimal.Decimal, score int64) decimal.Decimal {
	return decimal.Min(collateralFactor.Add(CollateralModifier(score)), maxThreshold)
}
