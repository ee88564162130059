package pool

import (
	"context"
	"testing"
	"time"

	"pledge/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t time.Time) *core.Pool {
	return &core.Pool{
		AssetID:        "btc",
		TotalSupply:    decimal.NewFromInt(10000),
		TotalBorrowed:  decimal.NewFromInt(5000),
		ReserveFactor:  decimal.NewFromFloat(0.1),
		LiquidityIndex: decimal.New(1, 0),
		BorrowIndex:    decimal.New(1, 0),
		BaseRate:       decimal.NewFromFloat(0.025),
		Multiplier:     decimal.NewFromFloat(0.2),
		JumpMultiplier: decimal.NewFromFloat(3),
		Kink:           decimal.NewFromFloat(0.8),
		LastAccruedAt:  t,
	}
}

func TestAccrueIndicesIdempotent(t *testing.T) {
	ctx := context.Background()
	srv := New()

	genesis := time.Now()
	now := genesis.Add(time.Hour)

	pool := newTestPool(genesis)
	require.Nil(t, srv.AccrueIndices(ctx, pool, now))

	borrowIndex := pool.BorrowIndex
	supply := pool.TotalSupply
	borrowed := pool.TotalBorrowed

	// second accrual at the same timestamp must change nothing
	require.Nil(t, srv.AccrueIndices(ctx, pool, now))
	assert.True(t, pool.BorrowIndex.Equal(borrowIndex))
	assert.True(t, pool.TotalSupply.Equal(supply))
	assert.True(t, pool.TotalBorrowed.Equal(borrowed))
}

func TestAccrueIndicesKeepsInvariant(t *testing.T) {
	ctx := context.Background()
	srv := New()

	genesis := time.Now()
	pool := newTestPool(genesis)
	// fully utilized pool with a reserve factor is the worst case
	pool.TotalBorrowed = pool.TotalSupply

	require.Nil(t, srv.AccrueIndices(ctx, pool, genesis.Add(24*time.Hour)))
	assert.True(t, pool.TotalBorrowed.LessThanOrEqual(pool.TotalSupply),
		"total borrowed must never exceed total supply")
	assert.True(t, pool.Reserves.IsPositive())
}

func TestAccrueIndicesGrowsDebt(t *testing.T) {
	ctx := context.Background()
	srv := New()

	genesis := time.Now()
	pool := newTestPool(genesis)

	require.Nil(t, srv.AccrueIndices(ctx, pool, genesis.Add(365*24*time.Hour)))

	assert.True(t, pool.BorrowIndex.GreaterThan(decimal.New(1, 0)))
	assert.True(t, pool.TotalBorrowed.GreaterThan(decimal.NewFromInt(5000)))
	// u=0.5 below the kink: rate = 0.025 + 0.5*0.2 = 0.125 over one year
	expected := decimal.NewFromInt(5000).Mul(decimal.NewFromFloat(1.125))
	diff := pool.TotalBorrowed.Sub(expected).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "got %s", pool.TotalBorrowed)
}
