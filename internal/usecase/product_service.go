package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
)

// ProductService manages the storefront catalog. Catalog data is reference
// data from the payment lifecycle's point of view: payments denormalize the
// product at claim time and never read it back.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new catalog service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListProducts returns all active products ordered by price.
func (s *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// GetProduct returns one active product by its catalog ID.
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.GetActiveByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domainErrors.ErrProductNotFound
	}
	return product, nil
}

// ListProductsByCategory returns active products within one category.
func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID string) ([]*model.Product, error) {
	return s.productRepo.ListActiveByCategory(ctx, categoryID)
}

// ListCategories returns all active categories ordered by name.
func (s *ProductService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// CreateProductInput describes a new catalog product.
type CreateProductInput struct {
	ProductID  string
	CategoryID string
	Name       string
	Diamonds   int
	Price      decimal.Decimal
	Bonus      string
	Tag        string
}

// CreateProduct adds a product, denormalizing the category name at write time.
func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	existing, err := s.productRepo.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainErrors.ErrProductExists
	}

	category, err := s.categoryRepo.GetByCategoryID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domainErrors.ErrCategoryNotFound
	}

	now := time.Now()
	product := &model.Product{
		ProductID:    in.ProductID,
		CategoryID:   in.CategoryID,
		CategoryName: category.Name,
		Name:         in.Name,
		Diamonds:     in.Diamonds,
		Price:        in.Price,
		Bonus:        in.Bonus,
		Tag:          in.Tag,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput carries partial product updates; nil fields are left
// untouched.
type UpdateProductInput struct {
	CategoryID *string
	Name       *string
	Diamonds   *int
	Price      *decimal.Decimal
	Bonus      *string
	Tag        *string
	IsActive   *bool
}

// UpdateProduct applies a partial update, refreshing the denormalized
// category name when the category changes.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, in UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domainErrors.ErrProductNotFound
	}

	if in.CategoryID != nil {
		category, err := s.categoryRepo.GetByCategoryID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domainErrors.ErrCategoryNotFound
		}
		product.CategoryID = *in.CategoryID
		product.CategoryName = category.Name
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Diamonds != nil {
		product.Diamonds = *in.Diamonds
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Bonus != nil {
		product.Bonus = *in.Bonus
	}
	if in.Tag != nil {
		product.Tag = *in.Tag
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.GetByProductID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domainErrors.ErrProductNotFound
	}
	return s.productRepo.SoftDelete(ctx, productID)
}

// CreateCategoryInput describes a new catalog category.
type CreateCategoryInput struct {
	CategoryID  string
	Name        string
	Badge       string
	Description string
}

// CreateCategory adds a category, rejecting duplicate IDs and names.
func (s *ProductService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*model.Category, error) {
	existing, err := s.categoryRepo.GetByCategoryIDOrName(ctx, in.CategoryID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainErrors.ErrCategoryExists
	}

	now := time.Now()
	category := &model.Category{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Badge:       in.Badge,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategoryInput carries partial category updates.
type UpdateCategoryInput struct {
	Name        *string
	Badge       *string
	Description *string
	IsActive    *bool
}

// UpdateCategory applies a partial update to a category.
func (s *ProductService) UpdateCategory(ctx context.Context, categoryID string, in UpdateCategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.GetByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domainErrors.ErrCategoryNotFound
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Badge != nil {
		category.Badge = *in.Badge
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes a category.
func (s *ProductService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.GetByCategoryID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domainErrors.ErrCategoryNotFound
	}
	return s.categoryRepo.SoftDelete(ctx, categoryID)
}

// SeedCatalog resets the catalog to the default storefront data. One-shot
// admin operation; it wipes whatever is there.
func (s *ProductService) SeedCatalog(ctx context.Context) (categories int, products int, err error) {
	cats, prods := DefaultCatalog()

	if err := s.categoryRepo.ReplaceAll(ctx, cats); err != nil {
		return 0, 0, err
	}
	if err := s.productRepo.ReplaceAll(ctx, prods); err != nil {
		return 0, 0, err
	}

	s.logger.Info("Catalog seeded",
		zap.Int("categories", len(cats)),
		zap.Int("products", len(prods)))

	return len(cats), len(prods), nil
}
