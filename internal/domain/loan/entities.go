package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending Status = "pending"
	// StatusApproved is reserved for a manual approval step between
	// pending and active. Nothing transitions into it today.
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

type TermUnit string

const (
	TermWeek  TermUnit = "week"
	TermMonth TermUnit = "month"
)

const (
	DaysPerWeek     = 7
	DaysPerMonth    = 30
	MaxTermQuantity = 24
)

// TermDaysOf converts a term into whole days. Unknown units yield 0 and
// must be rejected by validation before a loan is created.
func TermDaysOf(unit TermUnit, quantity int) int {
	switch unit {
	case TermWeek:
		return quantity * DaysPerWeek
	case TermMonth:
		return quantity * DaysPerMonth
	}
	return 0
}

// Loan is a single peer-to-peer loan. LenderID stays empty until the loan
// is funded and is set exactly once. Interest and TotalRepay are the
// full-term figures locked in at creation; early payoff is computed live
// from StartDate (see interest.go).
type Loan struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID            string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID        string          `gorm:"size:32;index:idx_loans_borrower_status" json:"borrower_id"`
	LenderID          string          `gorm:"size:32;index" json:"lender_id,omitempty"`
	Principal         decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	FeeFlat           decimal.Decimal `gorm:"type:decimal(18,2)" json:"fee_flat"`
	AnnualRatePercent decimal.Decimal `gorm:"type:decimal(6,2)" json:"annual_rate_percent"`
	TermUnit          TermUnit        `gorm:"size:8" json:"term_unit"`
	TermQuantity      int             `json:"term_quantity"`
	TermDays          int             `json:"term_days"`
	DueDate           time.Time       `json:"due_date"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
	RepaidAt          *time.Time      `json:"repaid_at,omitempty"`
	Status            Status          `gorm:"size:16;index:idx_loans_borrower_status" json:"status"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"paid_amount"`
	MissedPayments    int             `json:"missed_payments"`
	Interest          decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest"`
	TotalRepay        decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_repay"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// AccrualStart is the instant interest starts running. Falls back to
// CreatedAt for records funded before StartDate existed.
func (l *Loan) AccrualStart() time.Time {
	if l.StartDate != nil {
		return *l.StartDate
	}
	return l.CreatedAt
}
