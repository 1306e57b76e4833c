package ledger

import (
	"context"
	"errors"
	"strings"

	"creditpool/internal/domain/errs"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/uow"
	"creditpool/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit pulls tokens from the user's external wallet into bot custody
// and credits the custodial balance. External transfer first; the local
// credit and the transfer record commit together afterwards.
func (u *Usecase) Deposit(ctx context.Context, in DepositInput) (*TransactionDTO, error) {
	if in.Amount.LessThan(u.policy.MinTransfer) {
		return nil, errs.Validation("minimum deposit amount is %s tokens", u.policy.MinTransfer.StringFixed(0))
	}

	usr, err := u.users.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = transaction.SourceManual
	}

	txID := id.NewID32()
	idemKey := "deposit:" + txID
	res, err := u.gw.TransferUserToBot(ctx, usr.PlatformID, in.Amount, idemKey)
	if err != nil {
		return nil, &errs.GatewayTransferError{Step: "deposit", Reason: err.Error()}
	}

	rec := &transaction.Transaction{
		TxID:           txID,
		UserID:         usr.UserID,
		Type:           transaction.TypeDeposit,
		Direction:      transaction.DirectionUserToBot,
		Amount:         in.Amount,
		Status:         transaction.StatusCompleted,
		Description:    "Deposit " + in.Amount.StringFixed(0) + " tokens",
		ExternalTxID:   res.ExternalTxID,
		IdempotencyKey: idemKey,
		Source:         source,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Transactions.Create(ctx, rec); err != nil {
			return err
		}
		return r.Users.AddBalance(ctx, usr.UserID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	u.reconcile(ctx)
	return txDTO(rec), nil
}

// Withdraw pays custody out to the user's external wallet. The guarded
// debit runs after the external transfer succeeded; a failed transfer
// leaves the custodial balance untouched.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*TransactionDTO, error) {
	if in.Amount.LessThan(u.policy.MinTransfer) {
		return nil, errs.Validation("minimum withdrawal amount is %s tokens", u.policy.MinTransfer.StringFixed(0))
	}

	usr, err := u.users.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, err
	}
	if usr.Balance.LessThan(in.Amount) {
		return nil, &errs.InsufficientBalanceError{Required: in.Amount, Available: usr.Balance}
	}

	txID := id.NewID32()
	idemKey := "withdraw:" + txID
	res, err := u.gw.TransferBotToUser(ctx, usr.PlatformID, in.Amount, idemKey)
	if err != nil {
		return nil, &errs.GatewayTransferError{Step: "withdraw", Reason: err.Error()}
	}

	rec := &transaction.Transaction{
		TxID:           txID,
		UserID:         usr.UserID,
		Type:           transaction.TypeWithdraw,
		Direction:      transaction.DirectionBotToUser,
		Amount:         in.Amount,
		Status:         transaction.StatusCompleted,
		Description:    "Withdraw " + in.Amount.StringFixed(0) + " tokens",
		ExternalTxID:   res.ExternalTxID,
		IdempotencyKey: idemKey,
		Source:         transaction.SourceManual,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ok, err := r.Users.DebitBalance(ctx, usr.UserID, in.Amount)
		if err != nil {
			return err
		}
		if !ok {
			cur, gerr := r.Users.GetByUserID(ctx, usr.UserID)
			avail := decimal.Zero
			if gerr == nil {
				avail = cur.Balance
			}
			return &errs.InsufficientBalanceError{Required: in.Amount, Available: avail}
		}
		return r.Transactions.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	u.reconcile(ctx)
	return txDTO(rec), nil
}

// RecordDepositWebhook ingests a platform notification that tokens were
// sent to the bot. The external transaction id deduplicates redeliveries;
// replays return the already-recorded transaction.
func (u *Usecase) RecordDepositWebhook(ctx context.Context, in WebhookDeposit) (*TransactionDTO, error) {
	if in.ExternalTxID == "" || in.PlatformID == "" {
		return nil, errs.Validation("webhook payload missing transaction or user id")
	}
	if !strings.EqualFold(in.Status, "completed") {
		return nil, nil // not final yet, nothing to record
	}
	if !in.Amount.IsPositive() {
		return nil, errs.Validation("webhook amount must be positive")
	}

	existing, err := u.txs.GetByExternalTxID(ctx, in.ExternalTxID)
	switch {
	case err == nil:
		return txDTO(existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	usr, err := u.users.GetByPlatformID(ctx, in.PlatformID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, err
	}

	rec := &transaction.Transaction{
		TxID:           id.NewID32(),
		UserID:         usr.UserID,
		Type:           transaction.TypeDeposit,
		Direction:      transaction.DirectionUserToBot,
		Amount:         in.Amount,
		Status:         transaction.StatusCompleted,
		Description:    "Deposit " + in.Amount.StringFixed(0) + " tokens",
		ExternalTxID:   in.ExternalTxID,
		IdempotencyKey: "webhook:" + in.ExternalTxID,
		Source:         transaction.SourcePlatform,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Transactions.Create(ctx, rec); err != nil {
			return err
		}
		return r.Users.AddBalance(ctx, usr.UserID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	u.reconcile(ctx)
	return txDTO(rec), nil
}
