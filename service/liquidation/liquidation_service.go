package liquidation

import (
	"context"
	"time"

	"pledge/core"
	"pledge/internal/kinked"
	"pledge/pkg/number"
	"pledge/service/risk"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type liquidationService struct {
	db            *db.DB
	poolStore     core.IPoolStore
	loanStore     core.ILoanStore
	creditStore   core.ICreditStore
	transferStore core.ITransferStore
	poolSrv       core.IPoolService
	riskSrv       core.IRiskService
	scoreSrv      core.IScoreService
	priceSrv      core.IPriceService
}

// New new liquidation service
func New(
	db *db.DB,
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	transferStore core.ITransferStore,
	poolSrv core.IPoolService,
	riskSrv core.IRiskService,
	scoreSrv core.IScoreService,
	priceSrv core.IPriceService,
) core.ILiquidationService {
	return &liquidationService{
		db:            db,
		poolStore:     poolStore,
		loanStore:     loanStore,
		creditStore:   creditStore,
		transferStore: transferStore,
		poolSrv:       poolSrv,
		riskSrv:       riskSrv,
		scoreSrv:      scoreSrv,
		priceSrv:      priceSrv,
	}
}

// Seizure computes the collateral owed to the liquidator.
// seized = repay * price_debt / price_collateral * (1 + bonus), capped at
// the loan's collateral; the uncovered remainder comes back as shortfall.
func Seizure(repay, debtPrice, collateralPrice, bonus, collateral decimal.Decimal) (seized, shortfall decimal.Decimal) {
	seized = repay.Mul(debtPrice).Div(collateralPrice).
		Mul(decimal.New(1, 0).Add(bonus)).
		Truncate(kinked.MaxPrecision)

	if seized.GreaterThan(collateral) {
		shortfall = seized.Sub(collateral)
		seized = collateral
	}

	return
}

// settle applies a liquidation to the loaded entities. The seized collateral
// is credited exactly once, onto the liquidator's record; the record keeps an
// in-pool claim backed by the collateral the borrower pledged, so no asset
// leaves the vault on the seize side.
//
// A partial liquidation must leave the loan strictly healthier. That holds
// exactly while collateral value still exceeds debt value plus the bonus;
// below that line only a full repayment (which closes the loan) is accepted.
func settle(loan *core.Loan, debtPool *core.Pool, borrower, liquidator *core.CreditRecord, liquidatorID string, repayAmount, debtPrice, collateralPrice, bonus, threshold decimal.Decimal) (*core.LiquidationResult, error) {
	collateralValue := loan.CollateralAmount.Mul(collateralPrice)
	debtValue := loan.Balance().Mul(debtPrice)

	preHealth := risk.HealthFactor(collateralValue, debtValue, threshold)
	if !debtValue.IsPositive() || preHealth.GreaterThan(decimal.New(1, 0)) {
		return nil, core.ErrNotLiquidatable
	}

	if repayAmount.GreaterThan(risk.MaxRepay(loan.Balance(), preHealth)) {
		return nil, core.ErrExceedsLiquidationLimit
	}

	if repayAmount.LessThan(loan.Balance()) &&
		!collateralValue.GreaterThan(debtValue.Mul(decimal.New(1, 0).Add(bonus))) {
		return nil, core.ErrNotLiquidatable
	}

	seized, shortfall := Seizure(repayAmount, debtPrice, collateralPrice, bonus, loan.CollateralAmount)

	interestPaid, principalPaid := loan.ReduceDebt(repayAmount)
	loan.CollateralAmount = number.NonNegative(loan.CollateralAmount.Sub(seized))
	debtPool.Repay(repayAmount)

	if loan.Balance().IsZero() {
		loan.Status = core.LoanStatusClosed
		// whatever collateral survives the seizure unlocks to the borrower
		if loan.CollateralAmount.IsPositive() {
			borrower.Collateral.Add(loan.CollateralAssetID, loan.CollateralAmount)
			loan.CollateralAmount = decimal.Zero
		}
	} else {
		loan.Status = core.LoanStatusPartiallyLiquidated
	}

	liquidator.Collateral.Add(loan.CollateralAssetID, seized)

	result := &core.LiquidationResult{
		LoanID:           loan.LoanID,
		LiquidatorID:     liquidatorID,
		Repaid:           repayAmount,
		InterestPaid:     interestPaid,
		PrincipalPaid:    principalPaid,
		CollateralSeized: seized,
		Shortfall:        shortfall,
		PreHealthFactor:  preHealth,
		Status:           loan.Status,
	}

	postCollateralValue := loan.CollateralAmount.Mul(collateralPrice)
	postDebtValue := loan.Balance().Mul(debtPrice)
	result.PostHealthFactor = risk.HealthFactor(postCollateralValue, postDebtValue, threshold)

	return result, nil
}

func (s *liquidationService) Liquidate(ctx context.Context, loanID, liquidatorID string, repayAmount decimal.Decimal) (*core.LiquidationResult, error) {
	log := logger.FromContext(ctx).WithField("operation", "liquidate")

	if !repayAmount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !loan.Active() {
		return nil, core.ErrNotLiquidatable
	}

	borrower, err := s.creditStore.Find(ctx, loan.BorrowerID)
	if err != nil {
		return nil, err
	}

	// self liquidation touches a single credit row
	liquidator := borrower
	if liquidatorID != loan.BorrowerID {
		if liquidator, err = s.creditStore.Find(ctx, liquidatorID); err != nil {
			return nil, err
		}
	}

	debtPool, err := s.poolStore.Find(ctx, loan.DebtAssetID)
	if err != nil {
		return nil, err
	}

	collateralPool, err := s.poolStore.Find(ctx, loan.CollateralAssetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, debtPool, now); err != nil {
		return nil, err
	}
	loan.Accrue(debtPool.BorrowIndex)

	collateralPrice, err := s.priceSrv.GetPrice(ctx, loan.CollateralAssetID)
	if err != nil {
		return nil, err
	}

	debtPrice, err := s.priceSrv.GetPrice(ctx, loan.DebtAssetID)
	if err != nil {
		return nil, err
	}

	threshold := risk.LiquidationThreshold(collateralPool.LiquidationThreshold, borrower.CreditScore)

	result, err := settle(loan, debtPool, borrower, liquidator, liquidatorID, repayAmount, debtPrice, collateralPrice, collateralPool.LiquidationIncentive, threshold)
	if err != nil {
		return nil, err
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if _, err := s.scoreSrv.OnRepayment(ctx, tx, borrower, loan, repayAmount, true); err != nil {
			return err
		}

		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			return err
		}

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}

		if err := s.creditStore.Update(ctx, tx, borrower); err != nil {
			return err
		}

		if liquidator != borrower {
			if err := s.creditStore.Update(ctx, tx, liquidator); err != nil {
				return err
			}
		}

		// the seize side settles in-record only, so the sole instruction
		// for custody is the liquidator's repayment into the vault
		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     foxuuid.Modify(loanID, "liquidate-repay-"+liquidatorID),
			AssetID:     loan.DebtAssetID,
			Amount:      repayAmount,
			Source:      liquidatorID,
			Destination: core.VaultAccountID,
			Memo:        "liquidation repay",
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Shortfall.IsPositive() {
		// bad debt: the collateral could not cover the computed seizure
		log.WithField("code", core.ErrSeizureShortfall).
			Warnf("loan %s shortfall %s %s", loanID, result.Shortfall, loan.CollateralAssetID)
	}

	return result, nil
}
