package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/usecase"
)

// PaymentHandler maps the payment REST surface onto the lifecycle service.
type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// VerifyPaymentRequest is the client-submitted payment claim. Field names
// mirror what the storefront app sends.
type VerifyPaymentRequest struct {
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gte=1"`
	PlayerID      string  `json:"playerId" validate:"required"`
	ProductID     string  `json:"productId" validate:"required"`
	ProductName   string  `json:"productName"`
	Diamonds      int     `json:"diamonds"`
	Price         float64 `json:"price"`
}

// VerifyPayment handles POST /api/payments/verify
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest,
			"Transaction ID, Amount, Player ID and Product ID are required", err)
	}

	result, err := h.payments.SubmitPayment(c.Request().Context(), usecase.SubmitPaymentInput{
		TransactionID: req.TransactionID,
		Amount:        decimal.NewFromFloat(req.Amount),
		PlayerID:      req.PlayerID,
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		Diamonds:      req.Diamonds,
		Price:         decimal.NewFromFloat(req.Price),
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Payment verification failed", zap.Error(err))
			return respondError(c, status, "Payment verification failed", nil)
		}
		return respondError(c, status, "Payment verification failed", err)
	}

	message := "Payment verified successfully!"
	if result.NotificationSent {
		message += " Operator notification sent."
	}

	return respond(c, http.StatusCreated, message, echo.Map{
		"id":                    result.Payment.ID,
		"transactionId":         result.Payment.TransactionID,
		"amount":                result.Payment.Amount,
		"playerId":              result.Payment.PlayerID,
		"productName":           result.Payment.ProductName,
		"diamonds":              result.Payment.Diamonds,
		"status":                result.Payment.Status,
		"verifiedAt":            result.Payment.VerifiedAt,
		"productType":           result.ProductType,
		"notificationSent":      result.NotificationSent,
		"notificationMessageId": result.Payment.NotificationMessageID,
	})
}

// DeliverRequest carries optional fulfillment metadata.
type DeliverRequest struct {
	Notes       string `json:"notes"`
	DeliveredBy string `json:"deliveredBy"`
}

// Deliver handles POST /api/payments/:id/deliver
func (h *PaymentHandler) Deliver(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid payment ID", err)
	}

	var req DeliverRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	payment, notification, err := h.payments.MarkDelivered(c.Request().Context(), id, usecase.MarkDeliveredInput{
		Notes:       req.Notes,
		DeliveredBy: req.DeliveredBy,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Delivery update failed", zap.Int64("payment_id", id), zap.Error(err))
			return respondError(c, status, "Failed to update delivery status", nil)
		}
		return respondError(c, status, "Payment not found", err)
	}

	message := "Order delivered!"
	if notification.Sent {
		message += " Operator notification sent."
	}

	return respond(c, http.StatusOK, message, payment)
}

// List handles GET /api/payments
func (h *PaymentHandler) List(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid limit parameter", err)
		}
		limit = parsed
	}

	payments, err := h.payments.ListPayments(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list payments", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch payments", nil)
	}

	return respond(c, http.StatusOK, "", echo.Map{
		"payments": payments,
		"count":    len(payments),
	})
}

// Status handles GET /api/payments/status/:transactionId
func (h *PaymentHandler) Status(c echo.Context) error {
	payment, err := h.payments.QueryStatus(c.Request().Context(), c.Param("transactionId"))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Status lookup failed", zap.Error(err))
			return respondError(c, status, "Failed to fetch payment", nil)
		}
		return respondError(c, status, "Payment not found", err)
	}

	return respond(c, http.StatusOK, "", payment)
}
