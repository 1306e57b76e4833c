package walletmock

import (
	"context"

	domain "creditpool/internal/domain/wallet"

	"github.com/shopspring/decimal"
)

var _ domain.Gateway = (*Gateway)(nil)

// Gateway is a function-backed mock that satisfies wallet.Gateway.
// Unset transfer fields succeed with a canned external tx id; unset
// balance lookups report BalanceUnknown (the "skip check" sentinel).
type Gateway struct {
	TransferUserToBotFn func(ctx context.Context, fromPlatformID string, amount decimal.Decimal, idemKey string) (*domain.TransferResult, error)
	TransferBotToUserFn func(ctx context.Context, toPlatformID string, amount decimal.Decimal, idemKey string) (*domain.TransferResult, error)
	UserBalanceFn       func(ctx context.Context, platformID string) (decimal.Decimal, error)
}

func (m *Gateway) TransferUserToBot(ctx context.Context, fromPlatformID string, amount decimal.Decimal, idemKey string) (*domain.TransferResult, error) {
	if m.TransferUserToBotFn != nil {
		return m.TransferUserToBotFn(ctx, fromPlatformID, amount, idemKey)
	}
	return &domain.TransferResult{ExternalTxID: "ext-" + idemKey}, nil
}

func (m *Gateway) TransferBotToUser(ctx context.Context, toPlatformID string, amount decimal.Decimal, idemKey string) (*domain.TransferResult, error) {
	if m.TransferBotToUserFn != nil {
		return m.TransferBotToUserFn(ctx, toPlatformID, amount, idemKey)
	}
	return &domain.TransferResult{ExternalTxID: "ext-" + idemKey}, nil
}

func (m *Gateway) UserBalance(ctx context.Context, platformID string) (decimal.Decimal, error) {
	if m.UserBalanceFn != nil {
		return m.UserBalanceFn(ctx, platformID)
	}
	return domain.BalanceUnknown, nil
}
