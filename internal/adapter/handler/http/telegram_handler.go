package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/infrastructure/telegram"
	"github.com/robotopup/backend/internal/usecase"
)

// TelegramHandler terminates the bot webhook and exposes the operator-channel
// admin endpoints (manual status transitions, webhook management).
type TelegramHandler struct {
	commands *usecase.BotCommandService
	payments *usecase.PaymentService
	bot      *telegram.Client
	logger   *zap.Logger
}

// NewTelegramHandler creates a new Telegram webhook handler
func NewTelegramHandler(
	commands *usecase.BotCommandService,
	payments *usecase.PaymentService,
	bot *telegram.Client,
	logger *zap.Logger,
) *TelegramHandler {
	return &TelegramHandler{
		commands: commands,
		payments: payments,
		bot:      bot,
		logger:   logger,
	}
}

// webhookUpdate is the subset of the Bot API Update object the relay reads.
type webhookUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// Webhook handles POST /api/telegram/webhook. It always answers 200 with
// {"ok":true}; any other status would make Telegram redeliver the update.
func (h *TelegramHandler) Webhook(c echo.Context) error {
	var update webhookUpdate
	if err := c.Bind(&update); err != nil {
		h.logger.Warn("Unparseable webhook update", zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}

	if update.Message != nil && update.Message.Text != "" {
		h.commands.HandleMessage(c.Request().Context(), update.Message.Chat.ID, update.Message.Text)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// MarkDelivered handles POST /api/telegram/mark-delivered/:transactionId
func (h *TelegramHandler) MarkDelivered(c echo.Context) error {
	payment, err := h.payments.MarkDeliveredByTransactionID(c.Request().Context(), c.Param("transactionId"))
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Mark-delivered failed", zap.Error(err))
			return respondError(c, status, "Failed to update payment", nil)
		}
		return respondError(c, status, "Payment not found", err)
	}
	return respond(c, http.StatusOK, "Payment marked as delivered", payment)
}

// MarkFailedRequest carries the optional failure reason.
type MarkFailedRequest struct {
	Reason string `json:"reason"`
}

// MarkFailed handles POST /api/telegram/mark-failed/:transactionId
func (h *TelegramHandler) MarkFailed(c echo.Context) error {
	var req MarkFailedRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	payment, err := h.payments.MarkFailedByTransactionID(c.Request().Context(), c.Param("transactionId"), req.Reason)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Mark-failed failed", zap.Error(err))
			return respondError(c, status, "Failed to update payment", nil)
		}
		return respondError(c, status, "Payment not found", err)
	}
	return respond(c, http.StatusOK, "Payment marked as failed", payment)
}

// SetWebhookRequest optionally overrides the webhook URL; when empty the URL
// is derived from the incoming request's host.
type SetWebhookRequest struct {
	URL string `json:"url"`
}

// SetWebhook handles POST /api/telegram/set-webhook
func (h *TelegramHandler) SetWebhook(c echo.Context) error {
	var req SetWebhookRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	url := req.URL
	if url == "" {
		scheme := c.Scheme()
		if forwarded := c.Request().Header.Get("X-Forwarded-Proto"); forwarded != "" {
			scheme = forwarded
		}
		url = fmt.Sprintf("%s://%s/api/telegram/webhook", scheme, c.Request().Host)
	}

	if err := h.bot.SetWebhook(c.Request().Context(), url); err != nil {
		h.logger.Error("setWebhook failed", zap.String("url", url), zap.Error(err))
		return respondError(c, http.StatusBadGateway, "Failed to register webhook", err)
	}

	return respond(c, http.StatusOK, "Webhook registered", echo.Map{"url": url})
}

// WebhookInfo handles GET /api/telegram/webhook-info
func (h *TelegramHandler) WebhookInfo(c echo.Context) error {
	info, err := h.bot.GetWebhookInfo(c.Request().Context())
	if err != nil {
		h.logger.Error("getWebhookInfo failed", zap.Error(err))
		return respondError(c, http.StatusBadGateway, "Failed to fetch webhook info", err)
	}
	return respond(c, http.StatusOK, "", info)
}

// BotInfo handles GET /api/telegram/me
func (h *TelegramHandler) BotInfo(c echo.Context) error {
	info, err := h.bot.GetMe(c.Request().Context())
	if err != nil {
		h.logger.Error("getMe failed", zap.Error(err))
		return respondError(c, http.StatusBadGateway, "Failed to reach Bot API", err)
	}
	return respond(c, http.StatusOK, "", info)
}
