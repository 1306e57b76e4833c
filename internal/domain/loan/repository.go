package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the rest of the enclosing
	// transaction. Only meaningful inside uow.WithinLoanTx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)

	GetActiveByBorrowerID(ctx context.Context, borrowerID string) (*Loan, error)
	ListByStatus(ctx context.Context, st Status) ([]Loan, error)
	ListOverdueActive(ctx context.Context, asOf time.Time) ([]Loan, error)

	// Aggregates for the pool projection.
	SumPrincipalByStatus(ctx context.Context, st Status) (decimal.Decimal, error)
	SumFeesByStatuses(ctx context.Context, sts ...Status) (decimal.Decimal, error)
}
