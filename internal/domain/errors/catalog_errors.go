package errors

import "errors"

var (
	// ErrProductNotFound indicates that no active product matches the given ID
	ErrProductNotFound = errors.New("product not found")

	// ErrProductExists indicates that a product with the given ID already exists
	ErrProductExists = errors.New("product ID already exists")

	// ErrCategoryNotFound indicates that no category matches the given ID
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists indicates that a category with the given ID or name already exists
	ErrCategoryExists = errors.New("category already exists")
)
