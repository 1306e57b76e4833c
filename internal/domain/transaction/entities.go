package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDeposit       Type = "deposit"
	TypeWithdraw      Type = "withdraw"
	TypeLoanDisburse  Type = "loan_disburse"
	TypeLoanRepayment Type = "loan_repayment"
)

type Direction string

const (
	DirectionUserToBot Direction = "user_to_bot"
	DirectionBotToUser Direction = "bot_to_user"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Source string

const (
	SourcePlatform Source = "platform"
	SourceManual   Source = "manual"
)

// Transaction records one executed transfer step. IdempotencyKey is
// unique at the DB level: a retried step can never produce a second row,
// which is what makes every logical transfer at-most-once.
type Transaction struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	TxID           string          `gorm:"size:32;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	UserID         string          `gorm:"size:32;index" json:"user_id"`
	Type           Type            `gorm:"size:16" json:"type"`
	Direction      Direction       `gorm:"size:16" json:"direction"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Status         Status          `gorm:"size:16" json:"status"`
	Description    string          `gorm:"size:255" json:"description,omitempty"`
	ExternalTxID   string          `gorm:"size:128;index" json:"external_tx_id,omitempty"`
	IdempotencyKey string          `gorm:"size:128;uniqueIndex:ux_transactions_idem_key" json:"idempotency_key"`
	Source         Source          `gorm:"size:16" json:"source"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
