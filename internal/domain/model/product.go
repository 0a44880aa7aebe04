package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry the storefront sells. The string ID (p1, p2, ...)
// is the identifier clients reference in payment claims; CategoryName is
// denormalized from the owning category at write time so listings never join.
// Products are soft-deleted through IsActive.
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID    string          `gorm:"column:product_id;uniqueIndex;not null;size:32" json:"id"`
	CategoryID   string          `gorm:"not null;size:32;index" json:"category_id"`
	CategoryName string          `gorm:"not null;size:100" json:"category_name"`
	Name         string          `gorm:"not null;size:200" json:"name"`
	Diamonds     int             `gorm:"not null;default:0" json:"diamonds"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Bonus        string          `gorm:"size:100" json:"bonus,omitempty"`
	Tag          string          `gorm:"size:50" json:"tag,omitempty"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}
