package kinked

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseRate       = decimal.NewFromFloat(0.025)
	multiplier     = decimal.NewFromFloat(0.2)
	jumpMultiplier = decimal.NewFromFloat(3)
	kink           = decimal.NewFromFloat(0.8)
	reserveFactor  = decimal.NewFromFloat(0.1)
)

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(decimal.Zero, decimal.Zero).IsZero(), "empty pool should have zero utilization")

	u := UtilizationRate(decimal.NewFromInt(10000), decimal.NewFromInt(7500))
	assert.Equal(t, "0.75", u.String())
}

func TestBorrowRateMonotonic(t *testing.T) {
	prev := decimal.NewFromInt(-1)
	for i := 0; i <= 100; i++ {
		u := decimal.NewFromInt(int64(i)).Div(decimal.NewFromInt(100))
		rate := BorrowRate(u, baseRate, multiplier, jumpMultiplier, kink)
		require.True(t, rate.GreaterThanOrEqual(prev), "borrow rate must be non-decreasing at u=%s", u)
		prev = rate
	}
}

func TestBorrowRateContinuousAtKink(t *testing.T) {
	eps := decimal.NewFromFloat(0.000001)

	below := BorrowRate(kink.Sub(eps), baseRate, multiplier, jumpMultiplier, kink)
	at := BorrowRate(kink, baseRate, multiplier, jumpMultiplier, kink)
	above := BorrowRate(kink.Add(eps), baseRate, multiplier, jumpMultiplier, kink)

	assert.True(t, at.Sub(below).LessThan(decimal.NewFromFloat(0.0001)))
	assert.True(t, above.Sub(at).LessThan(decimal.NewFromFloat(0.0001)))
}

func TestSupplyRateBelowBorrowRate(t *testing.T) {
	u := decimal.NewFromFloat(0.9)
	borrowRate := BorrowRate(u, baseRate, multiplier, jumpMultiplier, kink)
	supplyRate := SupplyRate(u, baseRate, multiplier, jumpMultiplier, kink, reserveFactor)

	assert.True(t, supplyRate.LessThan(borrowRate))
	expected := borrowRate.Mul(u).Mul(decimal.NewFromInt(1).Sub(reserveFactor)).Truncate(MaxPrecision)
	assert.Equal(t, expected.String(), supplyRate.String())
}

func TestGrowthFactor(t *testing.T) {
	assert.Equal(t, "1", GrowthFactor(baseRate, 0).String(), "no elapsed time means no growth")

	year := GrowthFactor(decimal.NewFromFloat(0.05), 31536000)
	assert.Equal(t, "1.05", year.String())

	half := GrowthFactor(decimal.NewFromFloat(0.05), 15768000)
	assert.Equal(t, "1.025", half.String())
}
