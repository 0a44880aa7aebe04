package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	handlers "github.com/robotopup/backend/internal/adapter/handler/http"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/notify"
	"github.com/robotopup/backend/internal/usecase"
)

type stubPaymentRepo struct {
	mock.Mock
}

func (m *stubPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *stubPaymentRepo) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *stubPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *stubPaymentRepo) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *stubPaymentRepo) UpdateNotification(ctx context.Context, id int64, sent bool, messageID string) error {
	args := m.Called(ctx, id, sent, messageID)
	return args.Error(0)
}

func (m *stubPaymentRepo) List(ctx context.Context, limit int) ([]*model.Payment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

type stubOrderRepo struct {
	mock.Mock
}

func (m *stubOrderRepo) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *stubOrderRepo) ListByPaymentID(ctx context.Context, paymentID int64) ([]*model.Order, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

type stubNotifier struct {
	mock.Mock
}

func (m *stubNotifier) SendPaymentNotification(ctx context.Context, note notify.PaymentNote) notify.Result {
	args := m.Called(ctx, note)
	return args.Get(0).(notify.Result)
}

func (m *stubNotifier) SendDeliveryConfirmation(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName)
	return args.Get(0).(notify.Result)
}

func (m *stubNotifier) SendDeliveredUpdate(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName)
	return args.Get(0).(notify.Result)
}

func (m *stubNotifier) SendFailedUpdate(ctx context.Context, transactionID, playerID, productName, reason string) notify.Result {
	args := m.Called(ctx, transactionID, playerID, productName, reason)
	return args.Get(0).(notify.Result)
}

func (m *stubNotifier) SendMessage(ctx context.Context, chatID int64, text string) notify.Result {
	args := m.Called(ctx, chatID, text)
	return args.Get(0).(notify.Result)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	t.Run("returns 201 with the verified payment", func(t *testing.T) {
		paymentRepo := new(stubPaymentRepo)
		notifier := new(stubNotifier)
		service := usecase.NewPaymentService(paymentRepo, new(stubOrderRepo), notifier, zap.NewNop(), "01700000000")
		handler := handlers.NewPaymentHandler(service, zap.NewNop())

		paymentRepo.On("GetByTransactionID", mock.Anything, "ABC123").Return(nil, nil)
		paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Payment).ID = 11 }).Return(nil)
		notifier.On("SendPaymentNotification", mock.Anything, mock.Anything).
			Return(notify.Result{Sent: true, MessageID: "9"})
		paymentRepo.On("UpdateNotification", mock.Anything, int64(11), true, "9").Return(nil)

		c, rec := newTestContext(t, http.MethodPost, "/api/payments/verify",
			`{"transactionId":"abc123","amount":150,"playerId":"P1","productId":"p2","productName":"240 Diamond","diamonds":240}`)

		require.NoError(t, handler.VerifyPayment(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		body := decodeEnvelope(t, rec)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "ABC123", data["transactionId"])
		assert.Equal(t, "verified", data["status"])
		assert.Equal(t, "diamond", data["productType"])
		assert.Equal(t, true, data["notificationSent"])
	})

	t.Run("returns 400 when required fields are missing", func(t *testing.T) {
		handler := handlers.NewPaymentHandler(
			usecase.NewPaymentService(new(stubPaymentRepo), new(stubOrderRepo), new(stubNotifier), zap.NewNop(), ""),
			zap.NewNop())

		c, rec := newTestContext(t, http.MethodPost, "/api/payments/verify",
			`{"amount":150,"playerId":"P1"}`)

		require.NoError(t, handler.VerifyPayment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeEnvelope(t, rec)
		assert.Equal(t, false, body["success"])
	})

	t.Run("returns 409 on a duplicate transaction", func(t *testing.T) {
		paymentRepo := new(stubPaymentRepo)
		handler := handlers.NewPaymentHandler(
			usecase.NewPaymentService(paymentRepo, new(stubOrderRepo), new(stubNotifier), zap.NewNop(), ""),
			zap.NewNop())

		paymentRepo.On("GetByTransactionID", mock.Anything, "ABC123").
			Return(&model.Payment{ID: 1, TransactionID: "ABC123"}, nil)

		c, rec := newTestContext(t, http.MethodPost, "/api/payments/verify",
			`{"transactionId":"ABC123","amount":150,"playerId":"P1","productId":"p2"}`)

		require.NoError(t, handler.VerifyPayment(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPaymentHandler_Status(t *testing.T) {
	t.Run("returns 404 for an unknown transaction", func(t *testing.T) {
		paymentRepo := new(stubPaymentRepo)
		handler := handlers.NewPaymentHandler(
			usecase.NewPaymentService(paymentRepo, new(stubOrderRepo), new(stubNotifier), zap.NewNop(), ""),
			zap.NewNop())

		paymentRepo.On("GetByTransactionID", mock.Anything, "NOPE").Return(nil, nil)

		c, rec := newTestContext(t, http.MethodGet, "/", "")
		c.SetPath("/api/payments/status/:transactionId")
		c.SetParamNames("transactionId")
		c.SetParamValues("nope")

		require.NoError(t, handler.Status(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns the payment", func(t *testing.T) {
		paymentRepo := new(stubPaymentRepo)
		handler := handlers.NewPaymentHandler(
			usecase.NewPaymentService(paymentRepo, new(stubOrderRepo), new(stubNotifier), zap.NewNop(), ""),
			zap.NewNop())

		paymentRepo.On("GetByTransactionID", mock.Anything, "ABC123").
			Return(&model.Payment{ID: 1, TransactionID: "ABC123", Status: model.PaymentStatusCompleted}, nil)

		c, rec := newTestContext(t, http.MethodGet, "/", "")
		c.SetPath("/api/payments/status/:transactionId")
		c.SetParamNames("transactionId")
		c.SetParamValues("ABC123")

		require.NoError(t, handler.Status(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := decodeEnvelope(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "completed", data["status"])
	})
}
