package notify

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/robotopup/backend/internal/domain/model"
)

// Result is the outcome of one outbound notification attempt. Delivery is
// best-effort: transport failures and gateway rejections are carried here as
// data instead of errors so callers can commit their own state regardless.
type Result struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PaymentNote carries everything the gateway needs to format a new-payment
// notification for the operator.
type PaymentNote struct {
	TransactionID string
	Amount        decimal.Decimal
	PlayerID      string
	ProductName   string
	Diamonds      int
	ProductType   model.ProductType
}

// Notifier relays formatted messages to the human operator. Implementations
// must never return an error: every failure mode is reported through Result.
type Notifier interface {
	// SendPaymentNotification tells the operator about a freshly verified
	// payment, including the redemption code for manual fulfillment.
	SendPaymentNotification(ctx context.Context, note PaymentNote) Result

	// SendDeliveryConfirmation announces that an order was handed over.
	SendDeliveryConfirmation(ctx context.Context, transactionID, playerID, productName string) Result

	// SendDeliveredUpdate broadcasts an operator-side delivered transition.
	SendDeliveredUpdate(ctx context.Context, transactionID, playerID, productName string) Result

	// SendFailedUpdate broadcasts an operator-side failed transition with its reason.
	SendFailedUpdate(ctx context.Context, transactionID, playerID, productName, reason string) Result

	// SendMessage delivers free-form text to an arbitrary chat, used by the
	// operator command channel to answer bot commands.
	SendMessage(ctx context.Context, chatID int64, text string) Result
}
