package credit

import (
	"context"

	"pledge/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// DefaultCeiling score ceiling applied when the config leaves it unset
const DefaultCeiling = 800

// DefaultTierAward score awarded per repayment tier
const DefaultTierAward = 5

// defaultTiers remaining-balance tiers relative to the origination balance,
// ordered deepest last; each tier pays out at most once per loan
func defaultTiers(award int64) []core.CreditTier {
	return []core.CreditTier{
		{RemainingAtMost: decimal.NewFromFloat(0.75), Award: award},
		{RemainingAtMost: decimal.NewFromFloat(0.50), Award: award},
		{RemainingAtMost: decimal.NewFromFloat(0.25), Award: award},
		{RemainingAtMost: decimal.Zero, Award: award},
	}
}

type scoreService struct {
	creditStore core.ICreditStore
	tiers       []core.CreditTier
	ceiling     int64
}

// New new score service
func New(creditStore core.ICreditStore, cfg core.Credit) core.IScoreService {
	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	award := cfg.TierAward
	if award <= 0 {
		award = DefaultTierAward
	}

	return &scoreService{
		creditStore: creditStore,
		tiers:       defaultTiers(award),
		ceiling:     ceiling,
	}
}

// Award score for tiers newly reached by this repayment. tier indexes are
// 1-based; scoredTier is the deepest tier already paid out on the loan.
func Award(tiers []core.CreditTier, originationBalance, remaining decimal.Decimal, scoredTier int) (int64, int) {
	if !originationBalance.IsPositive() {
		return 0, scoredTier
	}

	fraction := remaining.Div(originationBalance)

	var delta int64
	tier := scoredTier
	for i, t := range tiers {
		idx := i + 1
		if idx <= scoredTier {
			continue
		}
		if fraction.LessThanOrEqual(t.RemainingAtMost) {
			delta += t.Award
			tier = idx
		}
	}

	return delta, tier
}

func (s *scoreService) OnRepayment(ctx context.Context, tx *db.DB, record *core.CreditRecord, loan *core.Loan, repaid decimal.Decimal, viaLiquidation bool) (int64, error) {
	delta, tier := Award(s.tiers, loan.OriginationBalance, loan.Balance(), loan.ScoredTier)
	loan.ScoredTier = tier

	if delta > 0 {
		score := record.CreditScore + delta
		if score > s.ceiling {
			score = s.ceiling
			delta = score - record.CreditScore
		}
		record.CreditScore = score
	}

	event := &core.CreditEvent{
		UserID:         record.UserID,
		LoanID:         loan.LoanID,
		AssetID:        loan.DebtAssetID,
		Repaid:         repaid,
		Remaining:      loan.Balance(),
		ScoreDelta:     delta,
		ViaLiquidation: viaLiquidation,
	}

	if err := s.creditStore.CreateEvent(ctx, tx, event); err != nil {
		return 0, err
	}

	return delta, nil
}
