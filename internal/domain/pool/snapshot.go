package pool

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a derived view of aggregate custody, recomputed on demand
// from live user and loan data. It is never an independent write target:
// no mutating decision may be based on it.
type Snapshot struct {
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LoanedAmount     decimal.Decimal `json:"loaned_amount"`
	FeesCollected    decimal.Decimal `json:"fees_collected"`
	TotalCustody     decimal.Decimal `json:"total_custody"`
	ComputedAt       time.Time       `json:"computed_at"`
}
