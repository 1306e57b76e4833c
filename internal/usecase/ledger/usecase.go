package ledger

import (
	"context"
	"errors"
	"log"
	"time"

	"creditpool/internal/domain/errs"
	"creditpool/internal/domain/loan"
	poolDomain "creditpool/internal/domain/pool"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/uow"
	"creditpool/internal/domain/user"
	"creditpool/internal/domain/wallet"
	"creditpool/pkg/id"

	"gorm.io/gorm"
)

// Reconciler is notified after every balance- or status-mutating
// operation so pool reads stay at most one operation stale.
type Reconciler interface {
	Recompute(ctx context.Context) (*poolDomain.Snapshot, error)
}

// Usecase is the loan ledger engine: sole writer of loan status and user
// balances, orchestrating the store, the interest math and the external
// wallet gateway. Every operation keeps custody conservation intact:
// external transfer first, local commit second, never the reverse.
type Usecase struct {
	users  user.Repository
	loans  loan.Repository
	txs    transaction.Repository
	uow    uow.UnitOfWork
	gw     wallet.Gateway
	pool   Reconciler // optional
	policy Policy

	now func() time.Time
}

func NewUsecase(
	users user.Repository,
	loans loan.Repository,
	txs transaction.Repository,
	tx uow.UnitOfWork,
	gw wallet.Gateway,
	pool Reconciler,
	policy Policy,
) *Usecase {
	return &Usecase{
		users:  users,
		loans:  loans,
		txs:    txs,
		uow:    tx,
		gw:     gw,
		pool:   pool,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) reconcile(ctx context.Context) {
	if u.pool == nil {
		return
	}
	if _, err := u.pool.Recompute(ctx); err != nil {
		log.Printf("ledger: pool recompute failed: %v", err)
	}
}

// FindOrCreateUser registers a platform account on first interaction.
func (u *Usecase) FindOrCreateUser(ctx context.Context, platformID, username string) (*UserDTO, error) {
	existing, err := u.users.GetByPlatformID(ctx, platformID)
	switch {
	case err == nil:
		return userDTO(existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	nu := &user.User{
		UserID:     id.NewID32(),
		PlatformID: platformID,
		Username:   username,
		Capacity:   user.DefaultCapacity,
	}
	if err := u.users.Create(ctx, nu); err != nil {
		return nil, err
	}
	return userDTO(nu), nil
}

func (u *Usecase) GetUser(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, err
	}
	return userDTO(usr), nil
}

func (u *Usecase) GetLoanByID(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan")
		}
		return nil, err
	}
	return loanDTO(l, u.now()), nil
}

func (u *Usecase) GetActiveLoanForUser(ctx context.Context, borrowerID string) (*LoanDTO, error) {
	l, err := u.loans.GetActiveByBorrowerID(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("active loan")
		}
		return nil, err
	}
	return loanDTO(l, u.now()), nil
}

func (u *Usecase) ListPendingLoans(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.ListByStatus(ctx, loan.StatusPending)
	if err != nil {
		return nil, err
	}
	now := u.now()
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *loanDTO(&ls[i], now))
	}
	return out, nil
}

func (u *Usecase) TransactionHistory(ctx context.Context, userID string) ([]TransactionDTO, error) {
	ts, err := u.txs.ListByUserID(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(ts))
	for i := range ts {
		out = append(out, *txDTO(&ts[i]))
	}
	return out, nil
}

func userDTO(usr *user.User) *UserDTO {
	return &UserDTO{
		UserID:     usr.UserID,
		PlatformID: usr.PlatformID,
		Username:   usr.Username,
		Balance:    usr.Balance,
		Capacity:   usr.Capacity,
		Blocked:    usr.Blocked,
	}
}
