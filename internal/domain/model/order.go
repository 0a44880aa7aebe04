package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery state of a fulfilled order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order links a completed payment to the product that was handed over.
// Orders are written once by the delivery path and never mutated afterwards.
type Order struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_number"`
	PaymentID         int64           `gorm:"not null;index" json:"payment_id"`
	PlayerID          string          `gorm:"not null;size:64;index" json:"player_id"`
	ProductID         string          `gorm:"not null;size:32" json:"product_id"`
	ProductName       string          `gorm:"size:200" json:"product_name"`
	Diamonds          int             `gorm:"default:0" json:"diamonds"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Status            OrderStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	DeliveryMethod    string          `gorm:"size:20;default:'manual'" json:"delivery_method"`
	DeliveredBy       string          `gorm:"size:64" json:"delivered_by,omitempty"`
	DeliveryNotes     string          `gorm:"size:500" json:"delivery_notes,omitempty"`
	EstimatedDelivery int             `gorm:"default:60" json:"estimated_delivery"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}
