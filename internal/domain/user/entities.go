package user

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCapacity is the credit capacity every user starts with.
var DefaultCapacity = decimal.NewFromInt(100_000)

// User holds the custodial side of an account: Balance is what the bot
// keeps in custody for the user, not the user's external wallet balance.
// The ledger engine is the only writer of Balance; the >=0 invariant is
// enforced there (guarded debits), never by the store.
type User struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	UserID     string          `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	PlatformID string          `gorm:"size:64;uniqueIndex:ux_users_platform_id" json:"platform_id"`
	Username   string          `gorm:"size:128" json:"username"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	Capacity   decimal.Decimal `gorm:"type:decimal(18,2)" json:"capacity"`
	Blocked    bool            `gorm:"default:false" json:"blocked"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
