package pool

import (
	"context"
	"time"

	"pledge/core"
	"pledge/internal/kinked"

	"github.com/shopspring/decimal"
)

type poolService struct{}

// New new pool service
func New() core.IPoolService {
	return &poolService{}
}

func (s *poolService) CurUtilizationRate(ctx context.Context, pool *core.Pool) (decimal.Decimal, error) {
	return kinked.UtilizationRate(pool.TotalSupply, pool.TotalBorrowed), nil
}

func (s *poolService) CurBorrowRate(ctx context.Context, pool *core.Pool) (decimal.Decimal, error) {
	u := kinked.UtilizationRate(pool.TotalSupply, pool.TotalBorrowed)
	return kinked.BorrowRate(u, pool.BaseRate, pool.Multiplier, pool.JumpMultiplier, pool.Kink), nil
}

func (s *poolService) CurSupplyRate(ctx context.Context, pool *core.Pool) (decimal.Decimal, error) {
	u := kinked.UtilizationRate(pool.TotalSupply, pool.TotalBorrowed)
	return kinked.SupplyRate(u, pool.BaseRate, pool.Multiplier, pool.JumpMultiplier, pool.Kink, pool.ReserveFactor), nil
}

// AccrueIndices compounds borrow interest over the elapsed seconds since
// the last accrual. The interest lands on total_borrowed and, in full, on
// total_supply (the reserve share stays inside the pool as reserves), so
// total_borrowed <= total_supply survives accrual even at full utilization.
func (s *poolService) AccrueIndices(ctx context.Context, pool *core.Pool, now time.Time) error {
	elapsed := int64(now.Sub(pool.LastAccruedAt).Seconds())
	if elapsed <= 0 {
		return nil
	}

	u := kinked.UtilizationRate(pool.TotalSupply, pool.TotalBorrowed)
	borrowRate := kinked.BorrowRate(u, pool.BaseRate, pool.Multiplier, pool.JumpMultiplier, pool.Kink)
	supplyRate := kinked.SupplyRate(u, pool.BaseRate, pool.Multiplier, pool.JumpMultiplier, pool.Kink, pool.ReserveFactor)

	borrowGrowth := kinked.GrowthFactor(borrowRate, elapsed)
	supplyGrowth := kinked.GrowthFactor(supplyRate, elapsed)

	if !pool.BorrowIndex.IsPositive() {
		pool.BorrowIndex = decimal.New(1, 0)
	}
	if !pool.LiquidityIndex.IsPositive() {
		pool.LiquidityIndex = decimal.New(1, 0)
	}

	interest := pool.TotalBorrowed.Mul(borrowGrowth.Sub(decimal.New(1, 0))).Truncate(kinked.MaxPrecision)

	pool.BorrowIndex = pool.BorrowIndex.Mul(borrowGrowth).Truncate(kinked.MaxPrecision)
	pool.LiquidityIndex = pool.LiquidityIndex.Mul(supplyGrowth).Truncate(kinked.MaxPrecision)
	pool.TotalBorrowed = pool.TotalBorrowed.Add(interest)
	pool.TotalSupply = pool.TotalSupply.Add(interest)
	pool.Reserves = pool.Reserves.Add(interest.Mul(pool.ReserveFactor)).Truncate(kinked.MaxPrecision)
	pool.LastAccruedAt = now

	return nil
}
