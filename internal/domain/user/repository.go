package user

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByPlatformID(ctx context.Context, platformID string) (*User, error)
	Save(ctx context.Context, u *User) error

	// AddBalance applies balance = balance + amount as a single SQL
	// statement. Never read-modify-write in application code.
	AddBalance(ctx context.Context, userID string, amount decimal.Decimal) error
	// DebitBalance applies balance = balance - amount guarded by
	// balance >= amount in the same statement. Returns false when the
	// guard rejects the debit.
	DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (bool, error)

	AddCapacity(ctx context.Context, userID string, delta decimal.Decimal) error
	SetBlocked(ctx context.Context, userID string, blocked bool) error

	// SumPositiveBalances feeds the pool projection.
	SumPositiveBalances(ctx context.Context) (decimal.Decimal, error)
}
