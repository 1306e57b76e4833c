package pool

import (
	"context"
	"sync"
	"time"

	"creditpool/internal/domain/loan"
	poolDomain "creditpool/internal/domain/pool"
	"creditpool/internal/domain/user"
)

// Usecase derives the pool snapshot from authoritative user and loan
// state. There is no stored pool counter anywhere: available balance is
// the sum of positive custodial balances, loaned is the principal of
// active loans, fees come from active and completed loans. That keeps the
// projection drift-free by construction.
type Usecase struct {
	users user.Repository
	loans loan.Repository

	mu   sync.RWMutex
	last *poolDomain.Snapshot
}

func NewUsecase(users user.Repository, loans loan.Repository) *Usecase {
	return &Usecase{users: users, loans: loans}
}

// Recompute rebuilds the snapshot from live data and caches it for
// display reads. Mutating paths never consult the cache.
func (u *Usecase) Recompute(ctx context.Context) (*poolDomain.Snapshot, error) {
	available, err := u.users.SumPositiveBalances(ctx)
	if err != nil {
		return nil, err
	}
	loaned, err := u.loans.SumPrincipalByStatus(ctx, loan.StatusActive)
	if err != nil {
		return nil, err
	}
	fees, err := u.loans.SumFeesByStatuses(ctx, loan.StatusActive, loan.StatusCompleted)
	if err != nil {
		return nil, err
	}

	s := &poolDomain.Snapshot{
		AvailableBalance: available,
		LoanedAmount:     loaned,
		FeesCollected:    fees,
		TotalCustody:     available.Add(fees),
		ComputedAt:       time.Now().UTC(),
	}

	u.mu.Lock()
	u.last = s
	u.mu.Unlock()
	return s, nil
}

// Snapshot returns the cached projection, recomputing when none exists
// yet. Display-only; at most one operation stale.
func (u *Usecase) Snapshot(ctx context.Context) (*poolDomain.Snapshot, error) {
	u.mu.RLock()
	last := u.last
	u.mu.RUnlock()
	if last != nil {
		return last, nil
	}
	return u.Recompute(ctx)
}
