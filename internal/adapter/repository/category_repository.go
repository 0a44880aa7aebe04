package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
)

type categoryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new GORM-backed category repository
func NewCategoryRepository(db *gorm.DB, logger *zap.Logger) repository.CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByCategoryID(ctx context.Context, categoryID string) (*model.Category, error) {
	var category model.Category

	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) GetByCategoryIDOrName(ctx context.Context, categoryID, name string) (*model.Category, error) {
	var category model.Category

	err := r.db.WithContext(ctx).
		Where("category_id = ? OR name = ?", categoryID, name).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		r.logger.Error("Failed to create category",
			zap.String("category_id", category.CategoryID),
			zap.Error(err))
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *categoryRepository) SoftDelete(ctx context.Context, categoryID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("category_id = ?", categoryID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to soft-delete category: %w", err)
	}
	return nil
}

func (r *categoryRepository) ReplaceAll(ctx context.Context, categories []*model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
			return fmt.Errorf("failed to clear categories: %w", err)
		}
		if len(categories) == 0 {
			return nil
		}
		if err := tx.Create(categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		return nil
	})
}
