package uow

import (
	"context"

	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Loans        loan.Repository
	Transactions transaction.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one DB transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. The
	// status re-check inside fn is what makes concurrent fund/repay
	// single-winner: the loser sees the already-transitioned status.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
