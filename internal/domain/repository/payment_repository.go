package repository

import (
	"context"

	"github.com/robotopup/backend/internal/domain/model"
)

// PaymentRepository persists payment claims. Create must enforce the
// transaction-ID uniqueness constraint at the storage layer and surface a
// violation as errors.ErrDuplicateTransaction.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
	// UpdateNotification records the outcome of the outbound notification
	// without touching any lifecycle field.
	UpdateNotification(ctx context.Context, id int64, sent bool, messageID string) error
	List(ctx context.Context, limit int) ([]*model.Payment, error)
}
