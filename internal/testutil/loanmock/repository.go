package loanmock

import (
	"context"
	"time"

	domain "creditpool/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Loan) error
	SaveFn                  func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn           func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn  func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetActiveByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByStatusFn          func(ctx context.Context, st domain.Status) ([]domain.Loan, error)
	ListOverdueActiveFn     func(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
	SumPrincipalByStatusFn  func(ctx context.Context, st domain.Status) (decimal.Decimal, error)
	SumFeesByStatusesFn     func(ctx context.Context, sts ...domain.Status) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	if m.GetActiveByBorrowerIDFn != nil {
		return m.GetActiveByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, st domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, st)
	}
	return nil, nil
}

func (m *Repo) ListOverdueActive(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	if m.ListOverdueActiveFn != nil {
		return m.ListOverdueActiveFn(ctx, asOf)
	}
	return nil, nil
}

func (m *Repo) SumPrincipalByStatus(ctx context.Context, st domain.Status) (decimal.Decimal, error) {
	if m.SumPrincipalByStatusFn != nil {
		return m.SumPrincipalByStatusFn(ctx, st)
	}
	return decimal.Zero, nil
}

func (m *Repo) SumFeesByStatuses(ctx context.Context, sts ...domain.Status) (decimal.Decimal, error) {
	if m.SumFeesByStatusesFn != nil {
		return m.SumFeesByStatusesFn(ctx, sts...)
	}
	return decimal.Zero, nil
}
