package usermock

import (
	"context"

	domain "creditpool/internal/domain/user"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, u *domain.User) error
	GetByUserIDFn         func(ctx context.Context, userID string) (*domain.User, error)
	GetByPlatformIDFn     func(ctx context.Context, platformID string) (*domain.User, error)
	SaveFn                func(ctx context.Context, u *domain.User) error
	AddBalanceFn          func(ctx context.Context, userID string, amount decimal.Decimal) error
	DebitBalanceFn        func(ctx context.Context, userID string, amount decimal.Decimal) (bool, error)
	AddCapacityFn         func(ctx context.Context, userID string, delta decimal.Decimal) error
	SetBlockedFn          func(ctx context.Context, userID string, blocked bool) error
	SumPositiveBalancesFn func(ctx context.Context) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPlatformID(ctx context.Context, platformID string) (*domain.User, error) {
	if m.GetByPlatformIDFn != nil {
		return m.GetByPlatformIDFn(ctx, platformID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) AddBalance(ctx context.Context, userID string, amount decimal.Decimal) error {
	if m.AddBalanceFn != nil {
		return m.AddBalanceFn(ctx, userID, amount)
	}
	return nil
}

func (m *Repo) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (bool, error) {
	if m.DebitBalanceFn != nil {
		return m.DebitBalanceFn(ctx, userID, amount)
	}
	return true, nil
}

func (m *Repo) AddCapacity(ctx context.Context, userID string, delta decimal.Decimal) error {
	if m.AddCapacityFn != nil {
		return m.AddCapacityFn(ctx, userID, delta)
	}
	return nil
}

func (m *Repo) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	if m.SetBlockedFn != nil {
		return m.SetBlockedFn(ctx, userID, blocked)
	}
	return nil
}

func (m *Repo) SumPositiveBalances(ctx context.Context) (decimal.Decimal, error) {
	if m.SumPositiveBalancesFn != nil {
		return m.SumPositiveBalancesFn(ctx)
	}
	return decimal.Zero, nil
}
