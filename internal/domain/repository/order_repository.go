package repository

import (
	"context"

	"github.com/robotopup/backend/internal/domain/model"
)

// OrderRepository persists fulfillment records written by the delivery path.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	ListByPaymentID(ctx context.Context, paymentID int64) ([]*model.Order, error)
}
