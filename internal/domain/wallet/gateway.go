package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceUnknown is the sentinel the platform returns when it cannot
// report a wallet balance. Callers must treat it as "skip the check",
// never as a failure.
var BalanceUnknown = decimal.NewFromInt(-1)

// TransferResult is the successful outcome of an external transfer.
type TransferResult struct {
	ExternalTxID string
	BalanceAfter *decimal.Decimal // platform may omit it
}

// Gateway moves real tokens between bot custody and external user
// wallets. Every transfer is idempotent under the caller-supplied key:
// retrying with the same key executes the movement at most once.
//
// Implementations must reject amounts below the platform minimum before
// attempting any network I/O, and must bound each call with a timeout.
type Gateway interface {
	TransferUserToBot(ctx context.Context, fromPlatformID string, amount decimal.Decimal, idemKey string) (*TransferResult, error)
	TransferBotToUser(ctx context.Context, toPlatformID string, amount decimal.Decimal, idemKey string) (*TransferResult, error)
	// UserBalance may return BalanceUnknown with a nil error.
	UserBalance(ctx context.Context, platformID string) (decimal.Decimal, error)
}
