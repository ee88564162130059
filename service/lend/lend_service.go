package lend

import (
	"context"
	"fmt"
	"time"

	"pledge/core"
	"pledge/pkg/id"
	"pledge/pkg/number"
	"pledge/service/risk"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type lendService struct {
	db            *db.DB
	poolStore     core.IPoolStore
	loanStore     core.ILoanStore
	creditStore   core.ICreditStore
	transferStore core.ITransferStore
	poolSrv       core.IPoolService
	riskSrv       core.IRiskService
	scoreSrv      core.IScoreService
}

// New new lend service
func New(
	db *db.DB,
	poolStore core.IPoolStore,
	loanStore core.ILoanStore,
	creditStore core.ICreditStore,
	transferStore core.ITransferStore,
	poolSrv core.IPoolService,
	riskSrv core.IRiskService,
	scoreSrv core.IScoreService,
) core.ILendService {
	return &lendService{
		db:            db,
		poolStore:     poolStore,
		loanStore:     loanStore,
		creditStore:   creditStore,
		transferStore: transferStore,
		poolSrv:       poolSrv,
		riskSrv:       riskSrv,
		scoreSrv:      scoreSrv,
	}
}

func (s *lendService) RegisterUser(ctx context.Context) (*core.CreditRecord, error) {
	record := &core.CreditRecord{
		UserID:     id.GenUUIDString(),
		Deposits:   core.AssetAmounts{},
		Collateral: core.AssetAmounts{},
	}

	if err := s.creditStore.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *lendService) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Find(ctx, assetID)
	if err != nil {
		return err
	}

	record, err := s.creditStore.Find(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, pool, now); err != nil {
		return err
	}

	if err := pool.Deposit(amount); err != nil {
		return err
	}

	record.Deposits.Add(assetID, amount)

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.creditStore.Update(ctx, tx, record); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     id.TraceIDFrom(fmt.Sprintf("deposit-%s-%s-%d", userID, assetID, now.UnixNano())),
			AssetID:     assetID,
			Amount:      amount,
			Source:      userID,
			Destination: core.VaultAccountID,
			Memo:        "deposit",
		})
	})
}

func (s *lendService) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	pool, err := s.poolStore.Find(ctx, assetID)
	if err != nil {
		return err
	}

	record, err := s.creditStore.Find(ctx, userID)
	if err != nil {
		return err
	}

	if record.Deposits.Get(assetID).LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, pool, now); err != nil {
		return err
	}

	if err := pool.Withdraw(amount); err != nil {
		return err
	}

	record.Deposits.Sub(assetID, amount)

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		if err := s.creditStore.Update(ctx, tx, record); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     id.TraceIDFrom(fmt.Sprintf("withdraw-%s-%s-%d", userID, assetID, now.UnixNano())),
			AssetID:     assetID,
			Amount:      amount,
			Source:      core.VaultAccountID,
			Destination: userID,
			Memo:        "withdraw",
		})
	})
}

func (s *lendService) Pledge(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if _, err := s.poolStore.Find(ctx, assetID); err != nil {
		return err
	}

	record, err := s.creditStore.Find(ctx, userID)
	if err != nil {
		return err
	}

	if record.Deposits.Get(assetID).LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	record.Deposits.Sub(assetID, amount)
	record.Collateral.Add(assetID, amount)

	return s.db.Tx(func(tx *db.DB) error {
		return s.creditStore.Update(ctx, tx, record)
	})
}

func (s *lendService) Unpledge(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	record, err := s.creditStore.Find(ctx, userID)
	if err != nil {
		return err
	}

	if record.Collateral.Get(assetID).LessThan(amount) {
		return core.ErrInsufficientCollateral
	}

	record.Collateral.Sub(assetID, amount)
	record.Deposits.Add(assetID, amount)

	return s.db.Tx(func(tx *db.DB) error {
		return s.creditStore.Update(ctx, tx, record)
	})
}

func (s *lendService) Borrow(ctx context.Context, userID, collateralAssetID string, collateralAmount decimal.Decimal, debtAssetID string, amount decimal.Decimal) (*core.Loan, error) {
	if !amount.IsPositive() || !collateralAmount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if _, err := s.poolStore.Find(ctx, collateralAssetID); err != nil {
		return nil, err
	}

	debtPool, err := s.poolStore.Find(ctx, debtAssetID)
	if err != nil {
		return nil, err
	}

	record, err := s.creditStore.Find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if record.Collateral.Get(collateralAssetID).LessThan(collateralAmount) {
		return nil, core.ErrInsufficientCollateral
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, debtPool, now); err != nil {
		return nil, err
	}

	borrowRate, err := s.poolSrv.CurBorrowRate(ctx, debtPool)
	if err != nil {
		return nil, err
	}
	rate := number.NonNegative(borrowRate.Sub(risk.InterestModifier(record.CreditScore)))

	loan := &core.Loan{
		LoanID:             id.GenUUIDString(),
		BorrowerID:         userID,
		HolderID:           userID,
		CollateralAssetID:  collateralAssetID,
		CollateralAmount:   collateralAmount,
		DebtAssetID:        debtAssetID,
		Principal:          amount,
		AccruedInterest:    decimal.Zero,
		InterestIndex:      debtPool.BorrowIndex,
		OriginationBalance: amount,
		RateAtOrigination:  rate,
		Status:             core.LoanStatusOpen,
	}

	// gate before any mutation
	if err := s.riskSrv.CheckBorrow(ctx, loan, decimal.Zero); err != nil {
		return nil, err
	}

	if err := debtPool.Borrow(amount); err != nil {
		return nil, err
	}

	// the pledged collateral moves into the loan
	record.Collateral.Sub(collateralAssetID, collateralAmount)

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			return err
		}

		if err := s.creditStore.Update(ctx, tx, record); err != nil {
			return err
		}

		if err := s.loanStore.Create(ctx, tx, loan); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     foxuuid.Modify(loan.LoanID, "borrow"),
			AssetID:     debtAssetID,
			Amount:      amount,
			Source:      core.VaultAccountID,
			Destination: userID,
			Memo:        "borrow",
		})
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

func (s *lendService) BorrowMore(ctx context.Context, userID, loanID string, amount decimal.Decimal) (*core.Loan, error) {
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.HolderID != userID {
		return nil, core.ErrOperationForbidden
	}

	if !loan.Active() {
		return nil, core.ErrLoanNotOpen
	}

	debtPool, err := s.poolStore.Find(ctx, loan.DebtAssetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, debtPool, now); err != nil {
		return nil, err
	}
	loan.Accrue(debtPool.BorrowIndex)

	if err := s.riskSrv.CheckBorrow(ctx, loan, amount); err != nil {
		return nil, err
	}

	if err := debtPool.Borrow(amount); err != nil {
		return nil, err
	}

	loan.Principal = loan.Principal.Add(amount)
	loan.OriginationBalance = loan.OriginationBalance.Add(amount)

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			return err
		}

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     id.TraceIDFrom(fmt.Sprintf("borrow-more-%s-%d", loanID, now.UnixNano())),
			AssetID:     loan.DebtAssetID,
			Amount:      amount,
			Source:      core.VaultAccountID,
			Destination: userID,
			Memo:        "borrow",
		})
	})
	if err != nil {
		return nil, err
	}

	return loan, nil
}

// Repay accepts payment from any user, not just the loan holder. Repayment
// only ever shrinks the debt, so third parties may pay down a loan they do
// not hold; userID decides which account funds the transfer and any refund.
// Holder checks apply to the operations that can worsen the position,
// BorrowMore and TransferLoan.
func (s *lendService) Repay(ctx context.Context, userID, loanID string, amount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("operation", "repay")

	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	if !loan.Active() {
		return decimal.Zero, core.ErrLoanNotOpen
	}

	debtPool, err := s.poolStore.Find(ctx, loan.DebtAssetID)
	if err != nil {
		return decimal.Zero, err
	}

	record, err := s.creditStore.Find(ctx, loan.BorrowerID)
	if err != nil {
		return decimal.Zero, err
	}

	now := time.Now()
	if err := s.poolSrv.AccrueIndices(ctx, debtPool, now); err != nil {
		return decimal.Zero, err
	}
	loan.Accrue(debtPool.BorrowIndex)

	applied := decimal.Min(amount, loan.Balance())
	refund := amount.Sub(applied)

	loan.ReduceDebt(applied)
	debtPool.Repay(applied)

	closed := loan.Balance().IsZero()
	if closed {
		loan.Status = core.LoanStatusClosed
		// collateral unlocks back to the record
		record.Collateral.Add(loan.CollateralAssetID, loan.CollateralAmount)
		loan.CollateralAmount = decimal.Zero
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if _, err := s.scoreSrv.OnRepayment(ctx, tx, record, loan, applied, false); err != nil {
			return err
		}

		if err := s.poolStore.Update(ctx, tx, debtPool); err != nil {
			return err
		}

		if err := s.loanStore.Update(ctx, tx, loan); err != nil {
			return err
		}

		if err := s.creditStore.Update(ctx, tx, record); err != nil {
			return err
		}

		if err := s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:     id.TraceIDFrom(fmt.Sprintf("repay-%s-%d", loanID, now.UnixNano())),
			AssetID:     loan.DebtAssetID,
			Amount:      applied,
			Source:      userID,
			Destination: core.VaultAccountID,
			Memo:        "repay",
		}); err != nil {
			return err
		}

		if refund.IsPositive() {
			if err := s.transferStore.Create(ctx, tx, &core.Transfer{
				TraceID:     id.TraceIDFrom(fmt.Sprintf("repay-refund-%s-%d", loanID, now.UnixNano())),
				AssetID:     loan.DebtAssetID,
				Amount:      refund,
				Source:      core.VaultAccountID,
				Destination: userID,
				Memo:        "repay refund",
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	if closed {
		log.Infoln("loan closed:", loanID)
	}

	return refund, nil
}

func (s *lendService) TransferLoan(ctx context.Context, holderID, loanID, newHolderID string) error {
	loan, err := s.loanStore.Find(ctx, loanID)
	if err != nil {
		return err
	}

	if loan.HolderID != holderID {
		return core.ErrOperationForbidden
	}

	if _, err := s.creditStore.Find(ctx, newHolderID); err != nil {
		return err
	}

	loan.HolderID = newHolderID

	return s.db.Tx(func(tx *db.DB) error {
		return s.loanStore.Update(ctx, tx, loan)
	})
}
