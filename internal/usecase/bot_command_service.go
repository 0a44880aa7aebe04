package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/notify"
)

// BotCommandService handles free-text operator commands arriving through the
// bot webhook. Replies go back through the notification gateway; command
// handling itself never fails the webhook, Telegram would retry otherwise.
type BotCommandService struct {
	payments *PaymentService
	notifier notify.Notifier
	location *time.Location
	logger   *zap.Logger
}

// NewBotCommandService creates a new operator command handler
func NewBotCommandService(
	payments *PaymentService,
	notifier notify.Notifier,
	location *time.Location,
	logger *zap.Logger,
) *BotCommandService {
	if location == nil {
		location = time.UTC
	}
	return &BotCommandService{
		payments: payments,
		notifier: notifier,
		location: location,
		logger:   logger,
	}
}

// HandleMessage dispatches one inbound chat message. Unknown commands are
// ignored silently, matching how the operator chat behaves for normal talk.
func (s *BotCommandService) HandleMessage(ctx context.Context, chatID int64, text string) {
	switch {
	case text == "/start":
		s.notifier.SendMessage(ctx, chatID,
			"🤖 <b>Robo TopUp System</b>\n\n"+
				"This bot delivers admin notifications only.\n"+
				"New payments will be announced here.\n\n"+
				"Use /status &lt;transaction id&gt; to check an order.")

	case strings.HasPrefix(text, "/status"):
		s.handleStatus(ctx, chatID, text)

	default:
		s.logger.Debug("Ignoring chat message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text))
	}
}

func (s *BotCommandService) handleStatus(ctx context.Context, chatID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		s.notifier.SendMessage(ctx, chatID, "Usage: /status &lt;transaction id&gt;")
		return
	}
	transactionID := parts[1]

	payment, err := s.payments.QueryStatus(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentNotFound) {
			s.notifier.SendMessage(ctx, chatID,
				fmt.Sprintf("❌ Transaction ID not found: %s", transactionID))
			return
		}
		s.logger.Error("Status lookup failed",
			zap.String("transaction_id", transactionID),
			zap.Error(err))
		s.notifier.SendMessage(ctx, chatID, "⚠️ Status lookup failed, try again later.")
		return
	}

	s.notifier.SendMessage(ctx, chatID, s.formatStatus(payment))
}

func (s *BotCommandService) formatStatus(p *model.Payment) string {
	statusEmoji := "⏳"
	switch p.Status {
	case model.PaymentStatusCompleted:
		statusEmoji = "✅"
	case model.PaymentStatusFailed:
		statusEmoji = "❌"
	}

	return fmt.Sprintf(
		"📊 <b>Order Status</b>\n\n"+
			"📌 Transaction: %s\n"+
			"🎮 Player: %s\n"+
			"💵 Amount: %s৳\n"+
			"📦 Product: %s\n"+
			"%s Status: %s\n"+
			"⏰ Time: %s",
		p.TransactionID,
		p.PlayerID,
		p.Amount.String(),
		p.ProductName,
		statusEmoji,
		p.Status,
		p.CreatedAt.In(s.location).Format("02 Jan 2006 03:04 PM"),
	)
}
