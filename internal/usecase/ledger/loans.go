package ledger

import (
	"context"
	"errors"

	"creditpool/internal/domain/errs"
	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/transaction"
	"creditpool/internal/domain/uow"
	"creditpool/internal/domain/wallet"
	"creditpool/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateLoanRequest validates the terms, locks in the full-term interest
// figures and queues the loan as pending for someone to fund.
func (u *Usecase) CreateLoanRequest(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.Principal.LessThan(u.policy.MinLoanAmount) {
		return nil, errs.Validation("minimum loan amount is %s tokens", u.policy.MinLoanAmount.StringFixed(0))
	}
	if in.TermQuantity < 1 || in.TermQuantity > u.policy.MaxTermQuantity {
		return nil, errs.Validation("term quantity must be between 1 and %d", u.policy.MaxTermQuantity)
	}
	termDays := loan.TermDaysOf(in.TermUnit, in.TermQuantity)
	if termDays == 0 {
		return nil, errs.Validation("term unit must be week or month")
	}
	if !in.AnnualRatePercent.IsPositive() || in.AnnualRatePercent.GreaterThan(u.policy.MaxAnnualRate) {
		return nil, errs.Validation("annual rate must be in (0, %s]", u.policy.MaxAnnualRate.StringFixed(0))
	}
	if in.FeeFlat.IsNegative() {
		return nil, errs.Validation("fee must not be negative")
	}
	// the disbursement (principal - fee) has to clear the platform's
	// minimum transfer or funding could never succeed
	if in.Principal.Sub(in.FeeFlat).LessThan(u.policy.MinTransfer) {
		return nil, errs.Validation("principal minus fee must be at least %s tokens", u.policy.MinTransfer.StringFixed(0))
	}

	borrower, err := u.users.GetByUserID(ctx, in.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("borrower")
		}
		return nil, err
	}
	if borrower.Blocked {
		return nil, errs.Conflict("borrower is blocked from taking loans")
	}

	maxPrincipal := borrower.Capacity.Mul(u.policy.CapacityShare)
	if in.Principal.GreaterThan(maxPrincipal) {
		return nil, errs.Validation("maximum loan amount is %s tokens (%s%% of capacity)",
			maxPrincipal.StringFixed(0), u.policy.CapacityShare.Mul(decimal.NewFromInt(100)).StringFixed(0))
	}

	_, err = u.loans.GetActiveByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, errs.Conflict("borrower already has an active loan")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	now := u.now()
	interest := loan.FullTermInterest(in.Principal, in.AnnualRatePercent, termDays)
	l := &loan.Loan{
		LoanID:            id.NewID32(),
		BorrowerID:        in.BorrowerID,
		Principal:         in.Principal,
		FeeFlat:           in.FeeFlat,
		AnnualRatePercent: in.AnnualRatePercent,
		TermUnit:          in.TermUnit,
		TermQuantity:      in.TermQuantity,
		TermDays:          termDays,
		DueDate:           now.AddDate(0, 0, termDays),
		Status:            loan.StatusPending,
		Interest:          interest,
		TotalRepay:        in.Principal.Add(interest),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return loanDTO(l, now), nil
}

// FundLoan moves the discounted principal to the borrower's external
// wallet, then commits the local side: lender debit, lender assignment,
// pending -> active. The external disbursement runs first under a
// per-loan idempotency key; if it fails, nothing local has changed. Two
// concurrent calls share the key, so the platform executes the payout
// once and the row lock decides which caller's commit wins.
func (u *Usecase) FundLoan(ctx context.Context, in FundLoanInput) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan")
		}
		return nil, err
	}
	if l.Status != loan.StatusPending {
		return nil, errs.Conflict("loan is not pending")
	}
	if l.BorrowerID == in.LenderID {
		return nil, errs.Conflict("cannot fund your own loan")
	}

	lender, err := u.users.GetByUserID(ctx, in.LenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("lender")
		}
		return nil, err
	}
	if lender.Blocked {
		return nil, errs.Conflict("lender is blocked")
	}
	if lender.Balance.LessThan(l.Principal) {
		return nil, &errs.InsufficientBalanceError{Required: l.Principal, Available: lender.Balance}
	}

	borrower, err := u.users.GetByUserID(ctx, l.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("borrower")
		}
		return nil, err
	}

	// best-effort external wallet check; unknown means skip, never fail
	if bal, err := u.gw.UserBalance(ctx, lender.PlatformID); err == nil && !bal.Equal(wallet.BalanceUnknown) {
		if bal.LessThan(l.Principal) {
			return nil, &errs.InsufficientBalanceError{Required: l.Principal, Available: bal}
		}
	}

	disburse := l.Principal.Sub(l.FeeFlat)
	idemKey := "fund:" + l.LoanID + ":borrower"
	res, err := u.gw.TransferBotToUser(ctx, borrower.PlatformID, disburse, idemKey)
	if err != nil {
		return nil, &errs.GatewayTransferError{Step: "disburse", Reason: err.Error()}
	}

	now := u.now()
	var out *LoanDTO
	err = u.uow.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, ll *loan.Loan) error {
		if ll.Status != loan.StatusPending {
			return errs.Conflict("loan is no longer pending")
		}
		ok, err := r.Users.DebitBalance(ctx, in.LenderID, ll.Principal)
		if err != nil {
			return err
		}
		if !ok {
			cur, gerr := r.Users.GetByUserID(ctx, in.LenderID)
			avail := decimal.Zero
			if gerr == nil {
				avail = cur.Balance
			}
			return &errs.InsufficientBalanceError{Required: ll.Principal, Available: avail}
		}

		ll.LenderID = in.LenderID
		ll.StartDate = &now
		ll.ApprovedAt = &now
		ll.Status = loan.StatusActive
		if err := r.Loans.Save(ctx, ll); err != nil {
			return err
		}

		if err := r.Transactions.Create(ctx, &transaction.Transaction{
			TxID:           id.NewID32(),
			UserID:         ll.BorrowerID,
			Type:           transaction.TypeLoanDisburse,
			Direction:      transaction.DirectionBotToUser,
			Amount:         disburse,
			Status:         transaction.StatusCompleted,
			Description:    "Loan disbursement " + ll.LoanID,
			ExternalTxID:   res.ExternalTxID,
			IdempotencyKey: idemKey,
			Source:         transaction.SourcePlatform,
		}); err != nil {
			return err
		}

		out = loanDTO(ll, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.reconcile(ctx)
	return out, nil
}

// RepayLoan settles an active loan in full at the real-time due amount:
// external payout to the lender first, then borrower debit and
// active -> completed under the row lock. A gateway failure leaves the
// loan active and the borrower's custody untouched, so the call is
// safely retryable.
func (u *Usecase) RepayLoan(ctx context.Context, in RepayLoanInput) (*RepayResult, error) {
	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan")
		}
		return nil, err
	}
	if l.Status != loan.StatusActive {
		return nil, errs.Conflict("loan is not active")
	}
	if l.BorrowerID != in.BorrowerID {
		return nil, errs.Conflict("only the borrower can repay this loan")
	}

	borrower, err := u.users.GetByUserID(ctx, in.BorrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("borrower")
		}
		return nil, err
	}

	now := u.now()
	totalDue, accrued := loan.RepayAmount(l, now)
	if borrower.Balance.LessThan(totalDue) {
		return nil, &errs.InsufficientBalanceError{Required: totalDue, Available: borrower.Balance}
	}

	lender, err := u.users.GetByUserID(ctx, l.LenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("lender")
		}
		return nil, err
	}

	idemKey := "repay:" + l.LoanID + ":lender"
	res, err := u.gw.TransferBotToUser(ctx, lender.PlatformID, totalDue, idemKey)
	if err != nil {
		return nil, &errs.GatewayTransferError{Step: "repay", Reason: err.Error()}
	}

	var out *RepayResult
	err = u.uow.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, ll *loan.Loan) error {
		if ll.Status != loan.StatusActive {
			return errs.Conflict("loan is no longer active")
		}
		ok, err := r.Users.DebitBalance(ctx, in.BorrowerID, totalDue)
		if err != nil {
			return err
		}
		if !ok {
			cur, gerr := r.Users.GetByUserID(ctx, in.BorrowerID)
			avail := decimal.Zero
			if gerr == nil {
				avail = cur.Balance
			}
			return &errs.InsufficientBalanceError{Required: totalDue, Available: avail}
		}

		ll.PaidAmount = totalDue
		ll.RepaidAt = &now
		ll.Status = loan.StatusCompleted
		if err := r.Loans.Save(ctx, ll); err != nil {
			return err
		}

		if err := r.Users.AddCapacity(ctx, ll.BorrowerID, u.policy.CompletionBonus); err != nil {
			return err
		}

		if err := r.Transactions.Create(ctx, &transaction.Transaction{
			TxID:           id.NewID32(),
			UserID:         ll.BorrowerID,
			Type:           transaction.TypeLoanRepayment,
			Direction:      transaction.DirectionBotToUser,
			Amount:         totalDue,
			Status:         transaction.StatusCompleted,
			Description:    "Loan repayment " + ll.LoanID,
			ExternalTxID:   res.ExternalTxID,
			IdempotencyKey: idemKey,
			Source:         transaction.SourcePlatform,
		}); err != nil {
			return err
		}

		out = &RepayResult{
			Loan:             loanDTO(ll, now),
			TotalDue:         totalDue,
			PrincipalPortion: totalDue.Sub(accrued),
			InterestPortion:  accrued,
			Fee:              ll.FeeFlat,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.reconcile(ctx)
	return out, nil
}
