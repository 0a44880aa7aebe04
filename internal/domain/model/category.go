package model

import "time"

// Category groups catalog products for the storefront. Soft-deleted through
// IsActive like products.
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	CategoryID  string    `gorm:"column:category_id;uniqueIndex;not null;size:32" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Badge       string    `gorm:"size:50" json:"badge,omitempty"`
	Description string    `gorm:"size:200" json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}
