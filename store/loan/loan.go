package loan

import (
	"context"
	"errors"

	"pledge/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.ILoanStore {
	return &loanStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	return tx.Update().Where("loan_id=?", loan.LoanID).FirstOrCreate(loan).Error
}

func (s *loanStore) Find(ctx context.Context, loanID string) (*core.Loan, error) {
	if loanID == "" {
		return nil, errors.New("invalid loan_id")
	}

	var loan core.Loan
	if err := s.db.View().Where("loan_id=?", loanID).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnknownLoan
		}
		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) FindByUser(ctx context.Context, userID string) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("borrower_id=?", userID).Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *loanStore) ListActive(ctx context.Context, fromID uint64, limit int) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().
		Where("id > ? and status in (?)", fromID, []string{core.LoanStatusOpen, core.LoanStatusPartiallyLiquidated}).
		Order("id ASC").
		Limit(limit).
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (s *loanStore) Update(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	version := loan.Version
	loan.Version++

	r := tx.Update().Model(core.Loan{}).Where("loan_id=? and version=?", loan.LoanID, version).Updates(loan)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
