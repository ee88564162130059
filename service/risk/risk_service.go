package risk

import (
	"context"
	"time"

	"pledge/core"
	"pledge/internal/kinked"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type riskService struct {
	poolStore   core.IPoolStore
	loanStore   core.ILoanStore
	creditStore core.ICreditStore
	priceSrv    core.IPriceService
	poolSrv     core.IPoolService
}

// New new risk service
func New(
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	priceSrv core.IPriceService,
	poolSrv core.IPoolService,
) core.IRiskService {
	return &riskService{
		poolStore:   poolStore,
		loanStore:   loanStore,
		creditStore: creditStore,
		priceSrv:    priceSrv,
		poolSrv:     poolSrv,
	}
}

// HealthFactor health_factor = collateral_value * threshold / debt_value.
// Only defined for positive debt. A debt-free loan has no health factor at
// all rather than an infinite one; callers must branch on HasDebt (or check
// debtValue themselves) before reading the returned zero as distress.
func HealthFactor(collateralValue, debtValue, threshold decimal.Decimal) decimal.Decimal {
	if !debtValue.IsPositive() {
		return decimal.Zero
	}

	return collateralValue.Mul(threshold).Div(debtValue).Truncate(kinked.MaxPrecision)
}

// MaxRepay liquidatable fraction of the debt, hard cutoffs: half the
// balance while health factor stays above 0.5, the whole balance below.
func MaxRepay(balance, healthFactor decimal.Decimal) decimal.Decimal {
	if healthFactor.GreaterThan(kinked.DeepWaterHealthFactor) {
		return balance.Mul(kinked.CloseFactorNormal).Truncate(kinked.MaxPrecision)
	}

	return balance
}

// CheckLoanToValue gates a borrow against the credit-adjusted max LTV
func CheckLoanToValue(collateralValue, debtValue, maxLTV decimal.Decimal) error {
	if !collateralValue.IsPositive() {
		return core.ErrExceedsMaxBorrow
	}

	if debtValue.Div(collateralValue).GreaterThan(maxLTV) {
		return core.ErrExceedsMaxBorrow
	}

	return nil
}

func (s *riskService) LoanRisk(ctx context.Context, loan *core.Loan) (*core.LoanRisk, error) {
	collateralPool, err := s.poolStore.Find(ctx, loan.CollateralAssetID)
	if err != nil {
		return nil, err
	}

	debtPool, err := s.poolStore.Find(ctx, loan.DebtAssetID)
	if err != nil {
		return nil, err
	}

	record, err := s.creditStore.Find(ctx, loan.BorrowerID)
	if err != nil {
		return nil, err
	}

	return s.loanRisk(ctx, loan, collateralPool, debtPool, record.CreditScore, time.Now())
}

// loanRisk computes risk against a lazily accrued view of the loan without
// persisting anything. Pools and loan are copied first.
func (s *riskService) loanRisk(ctx context.Context, loan *core.Loan, collateralPool, debtPool *core.Pool, score int64, now time.Time) (*core.LoanRisk, error) {
	pool := *debtPool
	if err := s.poolSrv.AccrueIndices(ctx, &pool, now); err != nil {
		return nil, err
	}

	l := *loan
	l.Accrue(pool.BorrowIndex)

	collateralPrice, err := s.priceSrv.GetPrice(ctx, loan.CollateralAssetID)
	if err != nil {
		return nil, err
	}

	debtPrice, err := s.priceSrv.GetPrice(ctx, loan.DebtAssetID)
	if err != nil {
		return nil, err
	}

	threshold := LiquidationThreshold(collateralPool.LiquidationThreshold, score)
	maxLTV := MaxLoanToValue(collateralPool.CollateralFactor, score)

	collateralValue := l.CollateralAmount.Mul(collateralPrice).Truncate(kinked.MaxPrecision)
	debtValue := l.Balance().Mul(debtPrice).Truncate(kinked.MaxPrecision)

	risk := &core.LoanRisk{
		LoanID:               loan.LoanID,
		CollateralValue:      collateralValue,
		DebtValue:            debtValue,
		LiquidationThreshold: threshold,
		MaxLoanToValue:       maxLTV,
		HasDebt:              debtValue.IsPositive(),
	}

	if !risk.HasDebt {
		return risk, nil
	}

	risk.HealthFactor = HealthFactor(collateralValue, debtValue, threshold)
	risk.Liquidatable = risk.HealthFactor.LessThanOrEqual(decimal.New(1, 0))
	if risk.Liquidatable {
		risk.MaxRepay = MaxRepay(l.Balance(), risk.HealthFactor)
	}

	return risk, nil
}

func (s *riskService) CheckBorrow(ctx context.Context, loan *core.Loan, addPrincipal decimal.Decimal) error {
	collateralPool, err := s.poolStore.Find(ctx, loan.CollateralAssetID)
	if err != nil {
		return err
	}

	record, err := s.creditStore.Find(ctx, loan.BorrowerID)
	if err != nil {
		return err
	}

	collateralPrice, err := s.priceSrv.GetPrice(ctx, loan.CollateralAssetID)
	if err != nil {
		return err
	}

	debtPrice, err := s.priceSrv.GetPrice(ctx, loan.DebtAssetID)
	if err != nil {
		return err
	}

	collateralValue := loan.CollateralAmount.Mul(collateralPrice).Truncate(kinked.MaxPrecision)
	debtValue := loan.Balance().Add(addPrincipal).Mul(debtPrice).Truncate(kinked.MaxPrecision)
	maxLTV := MaxLoanToValue(collateralPool.CollateralFactor, record.CreditScore)

	return CheckLoanToValue(collateralValue, debtValue, maxLTV)
}

func (s *riskService) ScanBadLoans(ctx context.Context, cursor uint64, limit int) ([]string, uint64, error) {
	if limit <= 0 {
		limit = 100
	}

	loans, err := s.loanStore.ListActive(ctx, cursor, limit)
	if err != nil {
		return nil, 0, err
	}

	if len(loans) == 0 {
		return nil, 0, nil
	}

	now := time.Now()
	pools, err := s.poolStore.AllAsMap(ctx)
	if err != nil {
		return nil, 0, err
	}

	log := logger.FromContext(ctx).WithField("operation", "scan_bad_loans")

	var bad []string
	for _, loan := range loans {
		// an active loan referencing an unlisted asset never heals on
		// retry, so it stops the scan instead of hiding behind a skip
		collateralPool, ok := pools[loan.CollateralAssetID]
		if !ok {
			log.WithField("loan", loan.LoanID).Errorln("no pool for collateral asset", loan.CollateralAssetID)
			return nil, 0, core.ErrUnknownAsset
		}
		debtPool, ok := pools[loan.DebtAssetID]
		if !ok {
			log.WithField("loan", loan.LoanID).Errorln("no pool for debt asset", loan.DebtAssetID)
			return nil, 0, core.ErrUnknownAsset
		}

		record, err := s.creditStore.Find(ctx, loan.BorrowerID)
		if err != nil {
			log.WithError(err).WithField("loan", loan.LoanID).Errorln("find credit record, loan skipped")
			continue
		}

		risk, err := s.loanRisk(ctx, loan, collateralPool, debtPool, record.CreditScore, now)
		if err != nil {
			log.WithError(err).WithField("loan", loan.LoanID).Errorln("compute loan risk, loan skipped")
			continue
		}

		if risk.Liquidatable {
			bad = append(bad, loan.LoanID)
		}
	}

	return bad, loans[len(loans)-1].ID, nil
}
