package mysql

import (
	"context"
	"errors"
	"testing"

	userDomain "creditpool/internal/domain/user"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, repo *UserRepository, userID, platformID, balance string) *userDomain.User {
	t.Helper()
	u := &userDomain.User{
		UserID:     userID,
		PlatformID: platformID,
		Username:   "u-" + platformID,
		Balance:    mustDec(t, balance),
		Capacity:   userDomain.DefaultCapacity,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserRepository_Lookups(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	seedUser(t, repo, "11111111111111111111111111111111", "plat-1", "2500")

	got, err := repo.GetByUserID(ctx, "11111111111111111111111111111111")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.PlatformID != "plat-1" || !got.Balance.Equal(mustDec(t, "2500")) {
		t.Fatalf("got %+v", got)
	}

	got, err = repo.GetByPlatformID(ctx, "plat-1")
	if err != nil {
		t.Fatalf("GetByPlatformID: %v", err)
	}
	if got.UserID != "11111111111111111111111111111111" {
		t.Fatalf("got %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, "22222222222222222222222222222222"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing user err = %v, want ErrRecordNotFound", err)
	}
}

func TestUserRepository_BalanceMutations(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "11111111111111111111111111111111", "plat-1", "1000")

	if err := repo.AddBalance(ctx, u.UserID, mustDec(t, "250.50")); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, u.UserID)
	if !got.Balance.Equal(mustDec(t, "1250.50")) {
		t.Fatalf("balance = %s, want 1250.50", got.Balance)
	}

	ok, err := repo.DebitBalance(ctx, u.UserID, mustDec(t, "1250.50"))
	if err != nil || !ok {
		t.Fatalf("DebitBalance full = (%v, %v), want (true, nil)", ok, err)
	}
	got, _ = repo.GetByUserID(ctx, u.UserID)
	if !got.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", got.Balance)
	}

	// the guard rejects overdrafts in the statement itself
	ok, err = repo.DebitBalance(ctx, u.UserID, mustDec(t, "0.01"))
	if err != nil {
		t.Fatalf("DebitBalance guard: %v", err)
	}
	if ok {
		t.Fatal("overdraft debit reported success")
	}
	got, _ = repo.GetByUserID(ctx, u.UserID)
	if !got.Balance.IsZero() {
		t.Fatalf("balance after rejected debit = %s, want 0", got.Balance)
	}
}

func TestUserRepository_CapacityAndBlocking(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()
	u := seedUser(t, repo, "11111111111111111111111111111111", "plat-1", "0")

	if err := repo.AddCapacity(ctx, u.UserID, mustDec(t, "-10000")); err != nil {
		t.Fatalf("AddCapacity: %v", err)
	}
	if err := repo.SetBlocked(ctx, u.UserID, true); err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, u.UserID)
	if !got.Capacity.Equal(mustDec(t, "90000")) {
		t.Fatalf("capacity = %s, want 90000", got.Capacity)
	}
	if !got.Blocked {
		t.Fatal("user not blocked")
	}
}

func TestUserRepository_SumPositiveBalances(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	total, err := repo.SumPositiveBalances(ctx)
	if err != nil {
		t.Fatalf("SumPositiveBalances empty: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("empty sum = %s, want 0", total)
	}

	seedUser(t, repo, "11111111111111111111111111111111", "plat-1", "1000.25")
	seedUser(t, repo, "22222222222222222222222222222222", "plat-2", "2000")
	seedUser(t, repo, "33333333333333333333333333333333", "plat-3", "0")

	total, err = repo.SumPositiveBalances(ctx)
	if err != nil {
		t.Fatalf("SumPositiveBalances: %v", err)
	}
	if !total.Equal(mustDec(t, "3000.25")) {
		t.Fatalf("sum = %s, want 3000.25", total)
	}
}

func TestUserRepository_UniquePlatformID(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "11111111111111111111111111111111", "plat-1", "0")
	dup := &userDomain.User{
		UserID:     "22222222222222222222222222222222",
		PlatformID: "plat-1",
		Capacity:   decimal.Zero,
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Fatal("duplicate platform id accepted")
	}
}
