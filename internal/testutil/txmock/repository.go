package txmock

import (
	"context"

	domain "creditpool/internal/domain/transaction"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies transaction.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, t *domain.Transaction) error
	GetByIdempotencyKeyFn func(ctx context.Context, key string) (*domain.Transaction, error)
	GetByExternalTxIDFn   func(ctx context.Context, externalTxID string) (*domain.Transaction, error)
	ListByUserIDFn        func(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	if m.GetByIdempotencyKeyFn != nil {
		return m.GetByIdempotencyKeyFn(ctx, key)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByExternalTxID(ctx context.Context, externalTxID string) (*domain.Transaction, error) {
	if m.GetByExternalTxIDFn != nil {
		return m.GetByExternalTxIDFn(ctx, externalTxID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID, limit)
	}
	return nil, nil
}
