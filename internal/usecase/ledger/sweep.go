package ledger

import (
	"context"
	"log"

	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/uow"
)

// SweepOverdueLoans walks every active loan past its due date and
// records a missed payment. Two strikes block the borrower and default
// the loan; a single overdue pass never defaults anyone on its own.
// Per-loan failures are logged and skipped so one bad row cannot stall
// the sweep.
func (u *Usecase) SweepOverdueLoans(ctx context.Context) (*SweepResult, error) {
	overdue, err := u.loans.ListOverdueActive(ctx, u.now())
	if err != nil {
		return nil, err
	}

	res := &SweepResult{Checked: len(overdue)}
	for i := range overdue {
		loanID := overdue[i].LoanID
		var struck, defaulted bool
		err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, ll *loan.Loan) error {
			if ll.Status != loan.StatusActive {
				return nil // repaid between listing and locking
			}
			ll.MissedPayments++

			if err := r.Users.AddCapacity(ctx, ll.BorrowerID, u.policy.MissedPenalty.Neg()); err != nil {
				return err
			}

			if ll.MissedPayments >= u.policy.DefaultStrikes {
				if err := r.Users.SetBlocked(ctx, ll.BorrowerID, true); err != nil {
					return err
				}
				ll.Status = loan.StatusDefaulted
				defaulted = true
			}
			if err := r.Loans.Save(ctx, ll); err != nil {
				return err
			}
			struck = true
			return nil
		})
		if err != nil {
			log.Printf("ledger: overdue sweep of loan %s failed: %v", loanID, err)
			continue
		}
		if struck {
			res.Struck++
		}
		if defaulted {
			res.Defaulted++
		}
	}

	if res.Struck > 0 {
		u.reconcile(ctx)
	}
	return res, nil
}
