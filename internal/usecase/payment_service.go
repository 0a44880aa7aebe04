package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/notify"
	"github.com/robotopup/backend/internal/domain/repository"
)

// PaymentService drives the payment lifecycle: verification of incoming
// claims, operator-side status transitions and the best-effort operator
// notification fired after each transition.
//
// Every transition commits to storage before its notification is attempted,
// so a gateway outage can never lose a status change, only the operator's
// visibility of it. Status transitions themselves are read-modify-write with
// last-write-wins semantics; the relay is low-volume and human-operated, so
// concurrent transitions on one payment are not guarded against.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	notifier     notify.Notifier
	logger       *zap.Logger
	walletNumber string
}

// NewPaymentService creates a new payment lifecycle service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	notifier notify.Notifier,
	logger *zap.Logger,
	walletNumber string,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		notifier:     notifier,
		logger:       logger,
		walletNumber: walletNumber,
	}
}

// SubmitPaymentInput is a client-asserted payment claim. Amounts are not
// verified against any financial rail; the operator cross-checks them against
// the wallet's SMS confirmations before delivering.
type SubmitPaymentInput struct {
	TransactionID string
	Amount        decimal.Decimal
	PlayerID      string
	ProductID     string
	ProductName   string
	Diamonds      int
	Price         decimal.Decimal
}

// SubmitPaymentResult bundles the persisted payment with the outcome of the
// notification attempt. NotificationSent being false never implies the
// submission failed.
type SubmitPaymentResult struct {
	Payment          *model.Payment
	ProductType      model.ProductType
	NotificationSent bool
	NotificationErr  string
}

// SubmitPayment validates and persists a payment claim as verified, then
// notifies the operator. Submission and verification are the same event:
// there is no unverified intake step in front of this call.
func (s *PaymentService) SubmitPayment(ctx context.Context, in SubmitPaymentInput) (*SubmitPaymentResult, error) {
	transactionID := strings.ToUpper(strings.TrimSpace(in.TransactionID))

	if transactionID == "" || in.PlayerID == "" || in.ProductID == "" {
		return nil, domainErrors.ErrInvalidPayment
	}
	if in.Amount.LessThan(decimal.NewFromInt(1)) {
		return nil, domainErrors.ErrInvalidPayment
	}

	// Pre-check so the common duplicate path answers without a write attempt.
	// The unique index on transaction_id remains the authoritative guard for
	// two submissions racing past this lookup.
	existing, err := s.paymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainErrors.ErrDuplicateTransaction
	}

	productName := in.ProductName
	if productName == "" {
		productName = "Free Fire Diamond Pack"
	}
	price := in.Price
	if price.IsZero() {
		price = in.Amount
	}

	now := time.Now()
	payment := &model.Payment{
		TransactionID: transactionID,
		Amount:        in.Amount,
		PlayerID:      in.PlayerID,
		ProductID:     in.ProductID,
		ProductName:   productName,
		Diamonds:      in.Diamonds,
		Price:         price,
		Status:        model.PaymentStatusVerified,
		WalletNumber:  s.walletNumber,
		CreatedAt:     now,
		VerifiedAt:    &now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, domainErrors.ErrDuplicateTransaction) {
			return nil, domainErrors.ErrDuplicateTransaction
		}
		return nil, err
	}

	productType := model.ClassifyProduct(payment.ProductName, payment.Diamonds)

	s.logger.Info("Payment verified",
		zap.String("transaction_id", payment.TransactionID),
		zap.String("player_id", payment.PlayerID),
		zap.String("product_type", string(productType)),
		zap.String("amount", payment.Amount.String()),
	)

	result := s.notifier.SendPaymentNotification(ctx, notify.PaymentNote{
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		PlayerID:      payment.PlayerID,
		ProductName:   payment.ProductName,
		Diamonds:      payment.Diamonds,
		ProductType:   productType,
	})

	if result.Sent {
		payment.NotificationSent = true
		payment.NotificationMessageID = result.MessageID
		if err := s.paymentRepo.UpdateNotification(ctx, payment.ID, true, result.MessageID); err != nil {
			s.logger.Warn("Failed to record notification state",
				zap.String("transaction_id", payment.TransactionID),
				zap.Error(err))
		}
	} else {
		s.logger.Warn("Operator notification failed",
			zap.String("transaction_id", payment.TransactionID),
			zap.String("reason", result.Error))
	}

	return &SubmitPaymentResult{
		Payment:          payment,
		ProductType:      productType,
		NotificationSent: result.Sent,
		NotificationErr:  result.Error,
	}, nil
}

// MarkDeliveredInput carries optional fulfillment metadata supplied by the
// operator when closing an order.
type MarkDeliveredInput struct {
	Notes       string
	DeliveredBy string
}

// MarkDelivered completes a payment by internal ID, writes the fulfillment
// order record and fires a best-effort delivery confirmation. Re-invoking on
// an already completed payment simply re-stamps CompletedAt.
func (s *PaymentService) MarkDelivered(ctx context.Context, paymentID int64, in MarkDeliveredInput) (*model.Payment, notify.Result, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, notify.Result{}, err
	}
	if payment == nil {
		return nil, notify.Result{}, domainErrors.ErrPaymentNotFound
	}

	now := time.Now()
	payment.Status = model.PaymentStatusCompleted
	payment.CompletedAt = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, notify.Result{}, err
	}

	// The order record trails the status change; losing it keeps the payment
	// correct, so a write failure here is logged rather than propagated.
	order := &model.Order{
		OrderNumber:       uuid.New(),
		PaymentID:         payment.ID,
		PlayerID:          payment.PlayerID,
		ProductID:         payment.ProductID,
		ProductName:       payment.ProductName,
		Diamonds:          payment.Diamonds,
		Amount:            payment.Amount,
		Status:            model.OrderStatusDelivered,
		DeliveryMethod:    "manual",
		DeliveredBy:       in.DeliveredBy,
		DeliveryNotes:     in.Notes,
		EstimatedDelivery: 60,
		DeliveredAt:       &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Warn("Failed to write order record",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
	}

	result := s.notifier.SendDeliveryConfirmation(ctx, payment.TransactionID, payment.PlayerID, payment.ProductName)
	if !result.Sent {
		s.logger.Warn("Delivery confirmation failed",
			zap.String("transaction_id", payment.TransactionID),
			zap.String("reason", result.Error))
	}

	s.logger.Info("Payment marked delivered",
		zap.Int64("payment_id", payment.ID),
		zap.String("transaction_id", payment.TransactionID))

	return payment, result, nil
}

// MarkDeliveredByTransactionID is the operator-channel variant of
// MarkDelivered, keyed by transaction ID.
func (s *PaymentService) MarkDeliveredByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	payment, err := s.getByNormalizedTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.Status = model.PaymentStatusCompleted
	payment.CompletedAt = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	result := s.notifier.SendDeliveredUpdate(ctx, payment.TransactionID, payment.PlayerID, payment.ProductName)
	if !result.Sent {
		s.logger.Warn("Delivered update failed",
			zap.String("transaction_id", payment.TransactionID),
			zap.String("reason", result.Error))
	}

	return payment, nil
}

// MarkFailedByTransactionID marks a payment failed with a free-form reason.
func (s *PaymentService) MarkFailedByTransactionID(ctx context.Context, transactionID, reason string) (*model.Payment, error) {
	payment, err := s.getByNormalizedTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Manual cancellation"
	}

	now := time.Now()
	payment.Status = model.PaymentStatusFailed
	payment.FailedAt = &now
	payment.FailedReason = reason

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	result := s.notifier.SendFailedUpdate(ctx, payment.TransactionID, payment.PlayerID, payment.ProductName, reason)
	if !result.Sent {
		s.logger.Warn("Failed update notification failed",
			zap.String("transaction_id", payment.TransactionID),
			zap.String("reason", result.Error))
	}

	return payment, nil
}

// QueryStatus looks a payment up by transaction ID without mutating anything.
func (s *PaymentService) QueryStatus(ctx context.Context, transactionID string) (*model.Payment, error) {
	return s.getByNormalizedTransactionID(ctx, transactionID)
}

// ListPayments returns the most recent payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, limit int) ([]*model.Payment, error) {
	if limit < 1 {
		limit = 50
	} else if limit > 500 {
		limit = 500
	}
	return s.paymentRepo.List(ctx, limit)
}

func (s *PaymentService) getByNormalizedTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	transactionID = strings.ToUpper(strings.TrimSpace(transactionID))
	if transactionID == "" {
		return nil, domainErrors.ErrPaymentNotFound
	}

	payment, err := s.paymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domainErrors.ErrPaymentNotFound
	}
	return payment, nil
}
