package mysql

import (
	"context"

	userDomain "creditpool/internal/domain/user"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetByPlatformID(ctx context.Context, platformID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("platform_id = ?", platformID).First(&out)
	return &out, res.Error
}

// AddBalance mutates the balance in a single statement so concurrent
// credits never lose updates.
func (r *UserRepository) AddBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// DebitBalance guards the decrement with balance >= amount in the same
// statement; a false return means the guard rejected it.
func (r *UserRepository) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *UserRepository) AddCapacity(ctx context.Context, userID string, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("capacity", gorm.Expr("capacity + ?", delta)).Error
}

func (r *UserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("blocked", blocked).Error
}

func (r *UserRepository) SumPositiveBalances(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("balance > 0").
		Row().Scan(&total)
	return total, err
}
