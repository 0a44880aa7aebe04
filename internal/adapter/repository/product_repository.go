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

type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new GORM-backed product repository
func NewProductRepository(db *gorm.DB, logger *zap.Logger) repository.ProductRepository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) ListActive(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&products).Error
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) ListActiveByCategory(ctx context.Context, categoryID string) ([]*model.Product, error) {
	var products []*model.Product

	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("price ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetActiveByProductID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product

	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) GetByProductID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product

	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	if err != nil {
		r.logger.Error("Failed to create product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Save(product).Error
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, productID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to soft-delete product: %w", err)
	}
	return nil
}

// ReplaceAll wipes the catalog and loads the given products inside one
// transaction so a failed seed never leaves a half-empty store.
func (r *productRepository) ReplaceAll(ctx context.Context, products []*model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if len(products) == 0 {
			return nil
		}
		if err := tx.Create(products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		return nil
	})
}
