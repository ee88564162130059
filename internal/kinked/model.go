package kinked

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// CloseFactorNormal max fraction of the debt a liquidator may repay while health factor stays above the deep cutoff
	CloseFactorNormal = decimal.NewFromFloat(0.5)
	// DeepWaterHealthFactor below this the whole debt may be repaid
	DeepWaterHealthFactor = decimal.NewFromFloat(0.5)
	// LiquidationIncentiveMin must be no less than this value
	LiquidationIncentiveMin = decimal.NewFromFloat(0.01)
	// LiquidationIncentiveMax must be no greater than this value
	LiquidationIncentiveMax = decimal.NewFromFloat(0.9)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// UtilizationRate utilization rate
// utilization_rate = pool.total_borrowed / pool.total_supply
func UtilizationRate(supply, borrowed decimal.Decimal) decimal.Decimal {
	if supply.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrowed.Div(supply).Truncate(MaxPrecision)
}

// BorrowRate annual borrow rate for a given utilization.
// Continuous piecewise-linear: below the kink the rate climbs from base with
// slope multiplier; above the kink the excess utilization climbs with the
// jump multiplier on top of the rate at the kink.
func BorrowRate(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(multiplier).Add(baseRate).Truncate(MaxPrecision)
	}

	normalRate := kink.Mul(multiplier).Add(baseRate)
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(jumpMultiplier).Add(normalRate).Truncate(MaxPrecision)
}

// SupplyRate annual supply rate
// supply_rate = borrow_rate * utilization_rate * (1 - reserve_factor)
func SupplyRate(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := BorrowRate(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GrowthFactor index growth over elapsed seconds at the given annual rate.
// Returns 1 when no time elapsed, which keeps accrual idempotent within a
// single timestamp. The rate multiplies before dividing so a whole year at
// 5% grows the index by exactly 0.05 instead of a truncated per-second rate
// scaled back up.
func GrowthFactor(annualRate decimal.Decimal, elapsedSeconds int64) decimal.Decimal {
	if elapsedSeconds <= 0 {
		return decimal.New(1, 0)
	}

	delta := annualRate.Mul(decimal.NewFromInt(elapsedSeconds)).
		Div(SecondsPerYear).
		Truncate(MaxPrecision)
	return decimal.New(1, 0).Add(delta)
}
