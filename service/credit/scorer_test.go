package credit

import (
	"testing"

	"pledge/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestAwardTiers(t *testing.T) {
	tiers := defaultTiers(5)
	origination := number.Decimal("1000")

	// first repayment down to 70% crosses only the 75% tier
	delta, tier := Award(tiers, origination, number.Decimal("700"), 0)
	assert.Equal(t, int64(5), delta)
	assert.Equal(t, 1, tier)

	// paying down to 10% crosses the 50% and 25% tiers at once
	delta, tier = Award(tiers, origination, number.Decimal("100"), tier)
	assert.Equal(t, int64(10), delta)
	assert.Equal(t, 3, tier)

	// full repayment pays the final tier
	delta, tier = Award(tiers, origination, number.Decimal("0"), tier)
	assert.Equal(t, int64(5), delta)
	assert.Equal(t, 4, tier)
}

func TestAwardTierOnlyOnce(t *testing.T) {
	tiers := defaultTiers(5)
	origination := number.Decimal("1000")

	delta, tier := Award(tiers, origination, number.Decimal("600"), 0)
	assert.Equal(t, int64(5), delta)

	// repeated small repayments inside the same tier award nothing
	delta, tier = Award(tiers, origination, number.Decimal("590"), tier)
	assert.Equal(t, int64(0), delta)
	assert.Equal(t, 1, tier)

	delta, _ = Award(tiers, origination, number.Decimal("510"), tier)
	assert.Equal(t, int64(0), delta)
}

func TestAwardFullRepaymentFromScratch(t *testing.T) {
	tiers := defaultTiers(5)

	// one-shot full repayment collects every tier
	delta, tier := Award(tiers, number.Decimal("1000"), number.Decimal("0"), 0)
	assert.Equal(t, int64(20), delta)
	assert.Equal(t, 4, tier)
}

func TestAwardZeroOrigination(t *testing.T) {
	tiers := defaultTiers(5)

	delta, tier := Award(tiers, number.Decimal("0"), number.Decimal("0"), 0)
	assert.Equal(t, int64(0), delta)
	assert.Equal(t, 0, tier)
}
