package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	txDomain "creditpool/internal/domain/transaction"

	"gorm.io/gorm"
)

func seedTx(t *testing.T, repo *TransactionRepository, txID, userID, idemKey, extID string) *txDomain.Transaction {
	t.Helper()
	tr := &txDomain.Transaction{
		TxID:           txID,
		UserID:         userID,
		Type:           txDomain.TypeDeposit,
		Direction:      txDomain.DirectionUserToBot,
		Amount:         mustDec(t, "1000"),
		Status:         txDomain.StatusCompleted,
		IdempotencyKey: idemKey,
		ExternalTxID:   extID,
		Source:         txDomain.SourceManual,
	}
	if err := repo.Create(context.Background(), tr); err != nil {
		t.Fatalf("seed tx: %v", err)
	}
	return tr
}

func TestTransactionRepository_Lookups(t *testing.T) {
	repo := NewTransactionRepository(testDB(t))
	ctx := context.Background()
	user := "11111111111111111111111111111111"

	seedTx(t, repo, "t0000000000000000000000000000001", user, "deposit:k1", "ext-1")

	got, err := repo.GetByIdempotencyKey(ctx, "deposit:k1")
	if err != nil {
		t.Fatalf("GetByIdempotencyKey: %v", err)
	}
	if got.TxID != "t0000000000000000000000000000001" {
		t.Fatalf("got %+v", got)
	}

	got, err = repo.GetByExternalTxID(ctx, "ext-1")
	if err != nil {
		t.Fatalf("GetByExternalTxID: %v", err)
	}
	if got.IdempotencyKey != "deposit:k1" {
		t.Fatalf("got %+v", got)
	}

	if _, err := repo.GetByExternalTxID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestTransactionRepository_IdempotencyKeyUnique(t *testing.T) {
	repo := NewTransactionRepository(testDB(t))
	user := "11111111111111111111111111111111"
	seedTx(t, repo, "t0000000000000000000000000000001", user, "fund:loan1:borrower", "ext-1")

	dup := &txDomain.Transaction{
		TxID:           "t0000000000000000000000000000002",
		UserID:         user,
		Type:           txDomain.TypeLoanDisburse,
		Direction:      txDomain.DirectionBotToUser,
		Amount:         mustDec(t, "1000"),
		Status:         txDomain.StatusCompleted,
		IdempotencyKey: "fund:loan1:borrower",
		Source:         txDomain.SourcePlatform,
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Fatal("duplicate idempotency key accepted; retries could double-record")
	}
}

func TestTransactionRepository_ListByUserID(t *testing.T) {
	repo := NewTransactionRepository(testDB(t))
	ctx := context.Background()
	user := "11111111111111111111111111111111"

	for i := 1; i <= 12; i++ {
		seedTx(t, repo,
			fmt.Sprintf("t00000000000000000000000000000%02d", i),
			user,
			fmt.Sprintf("deposit:k%d", i),
			fmt.Sprintf("ext-%d", i))
	}
	seedTx(t, repo, "t0000000000000000000000000000099", "22222222222222222222222222222222", "deposit:other", "ext-99")

	got, err := repo.ListByUserID(ctx, user, 10)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10 (limit)", len(got))
	}
	for _, tr := range got {
		if tr.UserID != user {
			t.Fatalf("foreign row in listing: %+v", tr)
		}
	}
	// newest first
	if got[0].TxID != "t0000000000000000000000000000012" {
		t.Fatalf("first = %q, want the latest", got[0].TxID)
	}
}
