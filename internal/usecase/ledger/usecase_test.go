package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"creditpool/internal/domain/errs"
	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/uow"
	"creditpool/internal/domain/user"
	"creditpool/internal/testutil/loanmock"
	"creditpool/internal/testutil/txmock"
	"creditpool/internal/testutil/uowmock"
	"creditpool/internal/testutil/usermock"
	"creditpool/internal/testutil/walletmock"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	borrowerID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	lenderID   = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	loanID     = "cccccccccccccccccccccccccccccccc"
)

type fixture struct {
	users *usermock.Repo
	loans *loanmock.Repo
	txs   *txmock.Repo
	gw    *walletmock.Gateway
	uc    *Usecase
}

func newFixture() *fixture {
	f := &fixture{
		users: &usermock.Repo{},
		loans: &loanmock.Repo{},
		txs:   &txmock.Repo{},
		gw:    &walletmock.Gateway{},
	}
	repos := uow.Repos{Users: f.users, Loans: f.loans, Transactions: f.txs}
	u := uowmock.Passthrough(repos, func(ctx context.Context, id string) (*loan.Loan, error) {
		return f.loans.GetByLoanID(ctx, id)
	})
	f.uc = NewUsecase(f.users, f.loans, f.txs, u, f.gw, nil, DefaultPolicy())
	f.uc.now = func() time.Time { return testNow }
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testBorrower() *user.User {
	return &user.User{
		UserID:     borrowerID,
		PlatformID: "platform-borrower",
		Username:   "borrower",
		Balance:    dec("20000"),
		Capacity:   user.DefaultCapacity,
	}
}

func testLender() *user.User {
	return &user.User{
		UserID:     lenderID,
		PlatformID: "platform-lender",
		Username:   "lender",
		Balance:    dec("50000"),
		Capacity:   user.DefaultCapacity,
	}
}

// activeTestLoan is 15000 @ 4.85% over one 30-day month, started 10 days
// before testNow.
func activeTestLoan() *loan.Loan {
	start := testNow.AddDate(0, 0, -10)
	return &loan.Loan{
		LoanID:            loanID,
		BorrowerID:        borrowerID,
		LenderID:          lenderID,
		Principal:         dec("15000"),
		FeeFlat:           dec("5000"),
		AnnualRatePercent: dec("4.85"),
		TermUnit:          loan.TermMonth,
		TermQuantity:      1,
		TermDays:          30,
		DueDate:           start.AddDate(0, 0, 30),
		StartDate:         &start,
		Status:            loan.StatusActive,
		Interest:          dec("59.79"),
		TotalRepay:        dec("15059.79"),
	}
}

func TestFindOrCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("existing account is returned as-is", func(t *testing.T) {
		f := newFixture()
		f.users.GetByPlatformIDFn = func(_ context.Context, pid string) (*user.User, error) {
			if pid != "platform-borrower" {
				t.Fatalf("looked up %q", pid)
			}
			return testBorrower(), nil
		}
		f.users.CreateFn = func(context.Context, *user.User) error {
			t.Fatal("Create must not run for an existing account")
			return nil
		}
		dto, err := f.uc.FindOrCreateUser(ctx, "platform-borrower", "ignored")
		if err != nil {
			t.Fatalf("FindOrCreateUser: %v", err)
		}
		if dto.UserID != borrowerID {
			t.Fatalf("UserID = %q, want %q", dto.UserID, borrowerID)
		}
	})

	t.Run("first contact creates with default capacity", func(t *testing.T) {
		f := newFixture()
		var created *user.User
		f.users.CreateFn = func(_ context.Context, u *user.User) error {
			created = u
			return nil
		}
		dto, err := f.uc.FindOrCreateUser(ctx, "platform-new", "newbie")
		if err != nil {
			t.Fatalf("FindOrCreateUser: %v", err)
		}
		if created == nil {
			t.Fatal("Create was not called")
		}
		if len(created.UserID) != 32 {
			t.Fatalf("UserID length = %d, want 32", len(created.UserID))
		}
		if !created.Capacity.Equal(user.DefaultCapacity) {
			t.Fatalf("Capacity = %s, want %s", created.Capacity, user.DefaultCapacity)
		}
		if dto.PlatformID != "platform-new" || dto.Username != "newbie" {
			t.Fatalf("dto = %+v", dto)
		}
	})
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetUser(context.Background(), borrowerID)
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestTransactionHistory(t *testing.T) {
	f := newFixture()
	var gotLimit int
	f.txs.ListByUserIDFn = func(_ context.Context, uid string, limit int) ([]transaction.Transaction, error) {
		gotLimit = limit
		if uid != borrowerID {
			t.Fatalf("listed for %q", uid)
		}
		return []transaction.Transaction{
			{TxID: "t1", UserID: uid, Type: transaction.TypeDeposit, Amount: dec("2000")},
			{TxID: "t2", UserID: uid, Type: transaction.TypeWithdraw, Amount: dec("500")},
		}, nil
	}
	out, err := f.uc.TransactionHistory(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("TransactionHistory: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if gotLimit != 10 {
		t.Fatalf("limit = %d, want 10", gotLimit)
	}
	if out[0].TxID != "t1" || out[1].Type != string(transaction.TypeWithdraw) {
		t.Fatalf("unexpected history: %+v", out)
	}
}

func TestGetActiveLoanForUser(t *testing.T) {
	f := newFixture()
	f.loans.GetActiveByBorrowerIDFn = func(_ context.Context, bid string) (*loan.Loan, error) {
		return activeTestLoan(), nil
	}
	dto, err := f.uc.GetActiveLoanForUser(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("GetActiveLoanForUser: %v", err)
	}
	// day 10 of 30: live accrual shows in the real-time figures
	if !dto.TotalDue.Equal(dec("15019.93")) {
		t.Fatalf("TotalDue = %s, want 15019.93", dto.TotalDue)
	}
	if dto.ElapsedDays != 10 || dto.TotalTermDays != 30 {
		t.Fatalf("elapsed/total = %d/%d, want 10/30", dto.ElapsedDays, dto.TotalTermDays)
	}
}
