package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/usecase"
)

// ProductHandler exposes the storefront catalog.
type ProductHandler struct {
	catalog *usecase.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new catalog handler
func NewProductHandler(catalog *usecase.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch products", nil)
	}
	return respond(c, http.StatusOK, "", echo.Map{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to fetch product", zap.Error(err))
			return respondError(c, status, "Failed to fetch product", nil)
		}
		return respondError(c, status, "Product not found", err)
	}
	return respond(c, http.StatusOK, "", product)
}

// ListProductsByCategory handles GET /api/products/category/:categoryId
func (h *ProductHandler) ListProductsByCategory(c echo.Context) error {
	products, err := h.catalog.ListProductsByCategory(c.Request().Context(), c.Param("categoryId"))
	if err != nil {
		h.logger.Error("Failed to list products by category", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch products", nil)
	}
	return respond(c, http.StatusOK, "", echo.Map{
		"products": products,
		"count":    len(products),
	})
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch categories", nil)
	}
	return respond(c, http.StatusOK, "", echo.Map{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateProductRequest describes a new product.
type CreateProductRequest struct {
	ProductID  string  `json:"id" validate:"required"`
	CategoryID string  `json:"categoryId" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Diamonds   int     `json:"diamonds"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Bonus      string  `json:"bonus"`
	Tag        string  `json:"tag"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "ID, category, name and price are required", err)
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		ProductID:  req.ProductID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Diamonds:   req.Diamonds,
		Price:      decimal.NewFromFloat(req.Price),
		Bonus:      req.Bonus,
		Tag:        req.Tag,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to create product", zap.Error(err))
			return respondError(c, status, "Failed to create product", nil)
		}
		return respondError(c, status, "Failed to create product", err)
	}

	return respond(c, http.StatusCreated, "Product created", product)
}

// UpdateProductRequest carries partial product changes.
type UpdateProductRequest struct {
	CategoryID *string  `json:"categoryId"`
	Name       *string  `json:"name"`
	Diamonds   *int     `json:"diamonds"`
	Price      *float64 `json:"price"`
	Bonus      *string  `json:"bonus"`
	Tag        *string  `json:"tag"`
	IsActive   *bool    `json:"isActive"`
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	in := usecase.UpdateProductInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Diamonds:   req.Diamonds,
		Bonus:      req.Bonus,
		Tag:        req.Tag,
		IsActive:   req.IsActive,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		in.Price = &price
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to update product", zap.Error(err))
			return respondError(c, status, "Failed to update product", nil)
		}
		return respondError(c, status, "Failed to update product", err)
	}

	return respond(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to delete product", zap.Error(err))
			return respondError(c, status, "Failed to delete product", nil)
		}
		return respondError(c, status, "Product not found", err)
	}
	return respond(c, http.StatusOK, "Product deactivated", nil)
}

// CreateCategoryRequest describes a new category.
type CreateCategoryRequest struct {
	CategoryID  string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Badge       string `json:"badge"`
	Description string `json:"description"`
}

// CreateCategory handles POST /api/categories
func (h *ProductHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "ID and name are required", err)
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Badge:       req.Badge,
		Description: req.Description,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to create category", zap.Error(err))
			return respondError(c, status, "Failed to create category", nil)
		}
		return respondError(c, status, "Failed to create category", err)
	}

	return respond(c, http.StatusCreated, "Category created", category)
}

// UpdateCategoryRequest carries partial category changes.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Badge       *string `json:"badge"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateCategory handles PUT /api/categories/:id
func (h *ProductHandler) UpdateCategory(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	category, err := h.catalog.UpdateCategory(c.Request().Context(), c.Param("id"), usecase.UpdateCategoryInput{
		Name:        req.Name,
		Badge:       req.Badge,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to update category", zap.Error(err))
			return respondError(c, status, "Failed to update category", nil)
		}
		return respondError(c, status, "Failed to update category", err)
	}

	return respond(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *ProductHandler) DeleteCategory(c echo.Context) error {
	err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to delete category", zap.Error(err))
			return respondError(c, status, "Failed to delete category", nil)
		}
		return respondError(c, status, "Category not found", err)
	}
	return respond(c, http.StatusOK, "Category deactivated", nil)
}

// SeedCatalog handles POST /api/products/seed
func (h *ProductHandler) SeedCatalog(c echo.Context) error {
	categories, products, err := h.catalog.SeedCatalog(c.Request().Context())
	if err != nil {
		h.logger.Error("Catalog seed failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to seed catalog", nil)
	}
	return respond(c, http.StatusOK, "Catalog seeded", echo.Map{
		"categories": categories,
		"products":   products,
	})
}
