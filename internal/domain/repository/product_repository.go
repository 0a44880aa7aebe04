package repository

import (
	"context"

	"github.com/robotopup/backend/internal/domain/model"
)

// ProductRepository persists catalog products. Lookups only see active
// products; deletion is a soft delete through the is_active flag.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]*model.Product, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]*model.Product, error)
	GetActiveByProductID(ctx context.Context, productID string) (*model.Product, error)
	GetByProductID(ctx context.Context, productID string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, productID string) error
	// ReplaceAll wipes the catalog and loads the given products, used by seeding.
	ReplaceAll(ctx context.Context, products []*model.Product) error
}
