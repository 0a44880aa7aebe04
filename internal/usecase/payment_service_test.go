package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/notify"
	"github.com/robotopup/backend/internal/usecase"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateNotification(ctx context.Context, id int64, sent bool, messageID string) error {
	args := m.Called(ctx, id, sent, messageID)
	return args.Error(0)
}

func (m *MockPaymentRepository) List(ctx context.Context, limit int) ([]*model.Payment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByPaymentID(ctx context.Context, paymentID int64) ([]*model.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendPaymentNotification(ctx context.Context, note notify.PaymentNote) notify.Result {
	args := m.Called(ctx, note)
	return args.Get(0).(notify.Result)
}

func (m *MockNotifier) SendDeliveryConfirmation(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName)
	return args.Get(0).(notify.Result)
}

func (m *MockNotifier) SendDeliveredUpdate(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName)
	return args.Get(0).(notify.Result)
}

func (m *MockNotifier) SendFailedUpdate(ctx context.Context, transactionID, playerID, productName, reason string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName, reason)
	return args.Get(0).(notify.Result)
}

func (m *MockNotifier) SendMessage(ctx context.Context, chatID int64, text string) notify.Result {
	args := m.Called(ctx, chatID, text)
	return args.Get(0).(notify.Result)
}

func newPaymentService(paymentRepo *MockPaymentRepository, orderRepo *MockOrderRepository, notifier *MockNotifier) *usecase.PaymentService {
	return usecase.NewPaymentService(paymentRepo, orderRepo, notifier, zap.NewNop(), "01700000000")
}

func TestPaymentService_SubmitPayment(t *testing.T) {
	ctx := context.Background()

	validInput := func() usecase.SubmitPaymentInput {
		return usecase.SubmitPaymentInput{
			TransactionID: "abc123",
			Amount:        decimal.NewFromInt(150),
			PlayerID:      "P1",
			ProductID:     "p3",
			ProductName:   "240 Diamond",
			Diamonds:      240,
		}
	}

	t.Run("verifies payment and sends notification", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, orderRepo, notifier)

		paymentRepo.On("GetByTransactionID", ctx, "ABC123").Return(nil, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Payment).ID = 7
			}).Return(nil)
		notifier.On("SendPaymentNotification", ctx, mock.MatchedBy(func(note notify.PaymentNote) bool {
			return note.TransactionID == "ABC123" &&
				note.PlayerID == "P1" &&
				note.Diamonds == 240 &&
				note.ProductType == model.ProductTypeDiamond
		})).Return(notify.Result{Sent: true, MessageID: "42"})
		paymentRepo.On("UpdateNotification", ctx, int64(7), true, "42").Return(nil)

		result, err := service.SubmitPayment(ctx, validInput())

		assert.NoError(t, err)
		assert.Equal(t, "ABC123", result.Payment.TransactionID)
		assert.Equal(t, model.PaymentStatusVerified, result.Payment.Status)
		assert.NotNil(t, result.Payment.VerifiedAt)
		assert.Equal(t, model.ProductTypeDiamond, result.ProductType)
		assert.True(t, result.NotificationSent)
		assert.True(t, result.Payment.NotificationSent)
		assert.Equal(t, "42", result.Payment.NotificationMessageID)
		assert.Equal(t, "01700000000", result.Payment.WalletNumber)

		paymentRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("rejects duplicate transaction ID regardless of case", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		paymentRepo.On("GetByTransactionID", ctx, "ABC123").
			Return(&model.Payment{ID: 1, TransactionID: "ABC123"}, nil)

		in := validInput()
		in.TransactionID = "  abc123 "
		result, err := service.SubmitPayment(ctx, in)

		assert.ErrorIs(t, err, domainErrors.ErrDuplicateTransaction)
		assert.Nil(t, result)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a storage-level duplicate from the unique index", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		paymentRepo.On("GetByTransactionID", ctx, "ABC123").Return(nil, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).
			Return(domainErrors.ErrDuplicateTransaction)

		result, err := service.SubmitPayment(ctx, validInput())

		assert.ErrorIs(t, err, domainErrors.ErrDuplicateTransaction)
		assert.Nil(t, result)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		service := newPaymentService(new(MockPaymentRepository), new(MockOrderRepository), new(MockNotifier))

		for _, mutate := range []func(*usecase.SubmitPaymentInput){
			func(in *usecase.SubmitPaymentInput) { in.TransactionID = "   " },
			func(in *usecase.SubmitPaymentInput) { in.PlayerID = "" },
			func(in *usecase.SubmitPaymentInput) { in.ProductID = "" },
			func(in *usecase.SubmitPaymentInput) { in.Amount = decimal.NewFromFloat(0.5) },
		} {
			in := validInput()
			mutate(&in)
			_, err := service.SubmitPayment(ctx, in)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidPayment)
		}
	})

	t.Run("applies product name and price defaults", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), notifier)

		paymentRepo.On("GetByTransactionID", ctx, "TX9").Return(nil, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).Return(nil)
		notifier.On("SendPaymentNotification", ctx, mock.Anything).
			Return(notify.Result{Sent: false, Error: "chat unavailable"})

		result, err := service.SubmitPayment(ctx, usecase.SubmitPaymentInput{
			TransactionID: "tx9",
			Amount:        decimal.NewFromInt(99),
			PlayerID:      "P2",
			ProductID:     "p1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Free Fire Diamond Pack", result.Payment.ProductName)
		assert.True(t, result.Payment.Price.Equal(decimal.NewFromInt(99)))
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), notifier)

		paymentRepo.On("GetByTransactionID", ctx, "ABC123").Return(nil, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).Return(nil)
		notifier.On("SendPaymentNotification", ctx, mock.Anything).
			Return(notify.Result{Sent: false, Error: "timeout"})

		result, err := service.SubmitPayment(ctx, validInput())

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusVerified, result.Payment.Status)
		assert.False(t, result.NotificationSent)
		assert.Equal(t, "timeout", result.NotificationErr)
		paymentRepo.AssertNotCalled(t, "UpdateNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_MarkDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("completes the payment and writes an order record", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, orderRepo, notifier)

		payment := &model.Payment{
			ID:            3,
			TransactionID: "TX3",
			PlayerID:      "P1",
			ProductID:     "p2",
			ProductName:   "115 Diamond",
			Diamonds:      115,
			Amount:        decimal.NewFromInt(85),
			Status:        model.PaymentStatusVerified,
		}

		paymentRepo.On("GetByID", ctx, int64(3)).Return(payment, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		orderRepo.On("Create", ctx, mock.MatchedBy(func(order *model.Order) bool {
			return order.PaymentID == 3 &&
				order.Status == model.OrderStatusDelivered &&
				order.DeliveryMethod == "manual" &&
				order.DeliveredBy == "admin" &&
				order.DeliveredAt != nil
		})).Return(nil)
		notifier.On("SendDeliveryConfirmation", ctx, "TX3", "P1", "115 Diamond").
			Return(notify.Result{Sent: true, MessageID: "55"})

		updated, notification, err := service.MarkDelivered(ctx, 3, usecase.MarkDeliveredInput{
			Notes:       "done",
			DeliveredBy: "admin",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, updated.Status)
		assert.NotNil(t, updated.CompletedAt)
		assert.True(t, notification.Sent)
		orderRepo.AssertExpectations(t)
	})

	t.Run("returns not found for unknown payment ID", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		paymentRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

		_, _, err := service.MarkDelivered(ctx, 99, usecase.MarkDeliveredInput{})

		assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
	})

	t.Run("order write failure keeps the payment completed", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		orderRepo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, orderRepo, notifier)

		payment := &model.Payment{ID: 4, TransactionID: "TX4", Status: model.PaymentStatusVerified}
		paymentRepo.On("GetByID", ctx, int64(4)).Return(payment, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		orderRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)
		notifier.On("SendDeliveryConfirmation", ctx, "TX4", "", "").
			Return(notify.Result{Sent: true})

		updated, _, err := service.MarkDelivered(ctx, 4, usecase.MarkDeliveredInput{})

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, updated.Status)
	})
}

func TestPaymentService_OperatorTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("marks delivered by transaction ID", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), notifier)

		payment := &model.Payment{ID: 1, TransactionID: "TX1", PlayerID: "P1", ProductName: "Weekly"}
		paymentRepo.On("GetByTransactionID", ctx, "TX1").Return(payment, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		notifier.On("SendDeliveredUpdate", ctx, "TX1", "P1", "Weekly").
			Return(notify.Result{Sent: true})

		updated, err := service.MarkDeliveredByTransactionID(ctx, "tx1")

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, updated.Status)
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("marks failed with the default reason", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), notifier)

		payment := &model.Payment{ID: 2, TransactionID: "TX2", PlayerID: "P2", ProductName: "Monthly"}
		paymentRepo.On("GetByTransactionID", ctx, "TX2").Return(payment, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		notifier.On("SendFailedUpdate", ctx, "TX2", "P2", "Monthly", "Manual cancellation").
			Return(notify.Result{Sent: true})

		updated, err := service.MarkFailedByTransactionID(ctx, "TX2", "")

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, updated.Status)
		assert.Equal(t, "Manual cancellation", updated.FailedReason)
		assert.NotNil(t, updated.FailedAt)
	})

	t.Run("last transition wins", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		notifier := new(MockNotifier)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), notifier)

		payment := &model.Payment{ID: 5, TransactionID: "TX5"}
		paymentRepo.On("GetByTransactionID", ctx, "TX5").Return(payment, nil)
		paymentRepo.On("Update", ctx, payment).Return(nil)
		notifier.On("SendDeliveredUpdate", ctx, "TX5", "", "").Return(notify.Result{Sent: true})
		notifier.On("SendFailedUpdate", ctx, "TX5", "", "", "refunded").Return(notify.Result{Sent: true})

		_, err := service.MarkDeliveredByTransactionID(ctx, "TX5")
		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, payment.Status)

		updated, err := service.MarkFailedByTransactionID(ctx, "TX5", "refunded")
		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, updated.Status)
		// The completion stamp survives; only the status reflects the last call.
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("unknown transaction ID returns not found", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		paymentRepo.On("GetByTransactionID", ctx, "NOPE").Return(nil, nil)

		_, err := service.MarkFailedByTransactionID(ctx, "nope", "whatever")
		assert.ErrorIs(t, err, domainErrors.ErrPaymentNotFound)
	})
}

func TestPaymentService_QueryAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("status lookup normalizes the transaction ID", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		payment := &model.Payment{ID: 1, TransactionID: "ABC123", Status: model.PaymentStatusVerified}
		paymentRepo.On("GetByTransactionID", ctx, "ABC123").Return(payment, nil)

		found, err := service.QueryStatus(ctx, "  abc123  ")

		assert.NoError(t, err)
		assert.Equal(t, payment, found)
	})

	t.Run("list clamps the limit", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := newPaymentService(paymentRepo, new(MockOrderRepository), new(MockNotifier))

		paymentRepo.On("List", ctx, 50).Return([]*model.Payment{}, nil).Once()
		paymentRepo.On("List", ctx, 500).Return([]*model.Payment{}, nil).Once()

		_, err := service.ListPayments(ctx, 0)
		assert.NoError(t, err)

		_, err = service.ListPayments(ctx, 9999)
		assert.NoError(t, err)

		paymentRepo.AssertExpectations(t)
	})
}
