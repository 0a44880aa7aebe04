package repository

import (
	"context"

	"github.com/robotopup/backend/internal/domain/model"
)

// CategoryRepository persists catalog categories.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*model.Category, error)
	GetByCategoryID(ctx context.Context, categoryID string) (*model.Category, error)
	GetByCategoryIDOrName(ctx context.Context, categoryID, name string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	SoftDelete(ctx context.Context, categoryID string) error
	ReplaceAll(ctx context.Context, categories []*model.Category) error
}
