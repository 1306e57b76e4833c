package mysql

import (
	"context"

	txDomain "creditpool/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) GetByExternalTxID(ctx context.Context, externalTxID string) (*txDomain.Transaction, error) {
	var out txDomain.Transaction
	res := r.db.WithContext(ctx).Where("external_tx_id = ?", externalTxID).First(&out)
	return &out, res.Error
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
