package ledger

import (
	"time"

	"creditpool/internal/domain/loan"
	"creditpool/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

// Policy bundles the ledger's numeric rules. Defaults mirror the
// platform's published terms.
type Policy struct {
	MinLoanAmount   decimal.Decimal
	MinTransfer     decimal.Decimal
	MaxAnnualRate   decimal.Decimal // percent
	MaxTermQuantity int
	CapacityShare   decimal.Decimal // lendable fraction of capacity
	CompletionBonus decimal.Decimal // capacity gain on on-time payoff
	MissedPenalty   decimal.Decimal // capacity loss per missed payment
	DefaultStrikes  int             // missed payments before default
}

func DefaultPolicy() Policy {
	return Policy{
		MinLoanAmount:   decimal.NewFromInt(1000),
		MinTransfer:     decimal.NewFromInt(1000),
		MaxAnnualRate:   decimal.NewFromInt(200),
		MaxTermQuantity: loan.MaxTermQuantity,
		CapacityShare:   decimal.NewFromFloat(0.5),
		CompletionBonus: decimal.NewFromInt(5000),
		MissedPenalty:   decimal.NewFromInt(10_000),
		DefaultStrikes:  2,
	}
}

type CreateLoanInput struct {
	BorrowerID        string
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermUnit          loan.TermUnit
	TermQuantity      int
	FeeFlat           decimal.Decimal
}

type FundLoanInput struct {
	LoanID   string
	LenderID string
}

type RepayLoanInput struct {
	LoanID     string
	BorrowerID string
}

type DepositInput struct {
	UserID string
	Amount decimal.Decimal
	Source transaction.Source
}

type WithdrawInput struct {
	UserID string
	Amount decimal.Decimal
}

// WebhookDeposit is a platform-side notification that tokens arrived in
// bot custody. ExternalTxID is the dedup handle.
type WebhookDeposit struct {
	ExternalTxID string
	PlatformID   string
	Amount       decimal.Decimal
	Status       string
}

// LoanDTO carries the stored loan plus the real-time figures every
// surface displays. TotalDue/AccruedInterest come from the same
// calculation repay charges, so quotes and charges cannot diverge.
type LoanDTO struct {
	LoanID            string          `json:"loan_id"`
	BorrowerID        string          `json:"borrower_id"`
	LenderID          string          `json:"lender_id,omitempty"`
	Principal         decimal.Decimal `json:"principal"`
	FeeFlat           decimal.Decimal `json:"fee_flat"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermUnit          string          `json:"term_unit"`
	TermQuantity      int             `json:"term_quantity"`
	TermDays          int             `json:"term_days"`
	DueDate           time.Time       `json:"due_date"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	RepaidAt          *time.Time      `json:"repaid_at,omitempty"`
	Status            string          `json:"status"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	MissedPayments    int             `json:"missed_payments"`
	Interest          decimal.Decimal `json:"interest"`
	TotalRepay        decimal.Decimal `json:"total_repay"`
	CreatedAt         time.Time       `json:"created_at"`

	TotalDue        decimal.Decimal `json:"total_due"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
	ElapsedDays     int             `json:"elapsed_days"`
	TotalTermDays   int             `json:"total_term_days"`
}

type RepayResult struct {
	Loan             *LoanDTO        `json:"loan"`
	TotalDue         decimal.Decimal `json:"total_due"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	Fee              decimal.Decimal `json:"fee"`
}

type SweepResult struct {
	Checked   int `json:"checked"`
	Struck    int `json:"struck"`
	Defaulted int `json:"defaulted"`
}

type TransactionDTO struct {
	TxID         string          `json:"tx_id"`
	UserID       string          `json:"user_id"`
	Type         string          `json:"type"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Description  string          `json:"description,omitempty"`
	ExternalTxID string          `json:"external_tx_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type UserDTO struct {
	UserID     string          `json:"user_id"`
	PlatformID string          `json:"platform_id"`
	Username   string          `json:"username"`
	Balance    decimal.Decimal `json:"balance"`
	Capacity   decimal.Decimal `json:"capacity"`
	Blocked    bool            `json:"blocked"`
}

func loanDTO(l *loan.Loan, now time.Time) *LoanDTO {
	due, accrued := loan.RepayAmount(l, now)
	a := loan.Accrue(l.Principal, l.AnnualRatePercent, l.AccrualStart(), l.DueDate, now)
	return &LoanDTO{
		LoanID:            l.LoanID,
		BorrowerID:        l.BorrowerID,
		LenderID:          l.LenderID,
		Principal:         l.Principal,
		FeeFlat:           l.FeeFlat,
		AnnualRatePercent: l.AnnualRatePercent,
		TermUnit:          string(l.TermUnit),
		TermQuantity:      l.TermQuantity,
		TermDays:          l.TermDays,
		DueDate:           l.DueDate,
		StartDate:         l.StartDate,
		RepaidAt:          l.RepaidAt,
		Status:            string(l.Status),
		PaidAmount:        l.PaidAmount,
		MissedPayments:    l.MissedPayments,
		Interest:          l.Interest,
		TotalRepay:        l.TotalRepay,
		CreatedAt:         l.CreatedAt,
		TotalDue:          due,
		AccruedInterest:   accrued,
		ElapsedDays:       a.ElapsedDays,
		TotalTermDays:     a.TotalTermDays,
	}
}

func txDTO(t *transaction.Transaction) *TransactionDTO {
	return &TransactionDTO{
		TxID:         t.TxID,
		UserID:       t.UserID,
		Type:         string(t.Type),
		Direction:    string(t.Direction),
		Amount:       t.Amount,
		Status:       string(t.Status),
		Description:  t.Description,
		ExternalTxID: t.ExternalTxID,
		CreatedAt:    t.CreatedAt,
	}
}
