package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByIdempotencyKey(ctx context.Context, key string) (*Transaction, error)
	GetByExternalTxID(ctx context.Context, externalTxID string) (*Transaction, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]Transaction, error)
}
