package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment claim
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusVerified  PaymentStatus = "verified"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment represents a buyer's claim that they paid for a product.
// Transaction IDs are stored uppercase and are unique across all payments;
// the unique index is the authoritative duplicate guard, the service-level
// pre-check only exists to give a friendlier error without a write attempt.
//
// Timestamps are assigned explicitly by the lifecycle operations, never by
// database hooks, so every mutation is visible in the operation's contract.
type Payment struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID         string          `gorm:"column:transaction_id;uniqueIndex;not null;size:64" json:"transaction_id"`
	Amount                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PlayerID              string          `gorm:"not null;size:64;index" json:"player_id"`
	ProductID             string          `gorm:"not null;size:32" json:"product_id"`
	ProductName           string          `gorm:"size:200" json:"product_name"`
	Diamonds              int             `gorm:"default:0" json:"diamonds"`
	Price                 decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Status                PaymentStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	WalletNumber          string          `gorm:"size:20" json:"wallet_number"`
	NotificationSent      bool            `gorm:"default:false" json:"notification_sent"`
	NotificationMessageID string          `gorm:"size:32" json:"notification_message_id"`
	FailedReason          string          `gorm:"size:200" json:"failed_reason,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	VerifiedAt            *time.Time      `json:"verified_at,omitempty"`
	CompletedAt           *time.Time      `json:"completed_at,omitempty"`
	FailedAt              *time.Time      `json:"failed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
