package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/domain/notify"
)

const defaultBaseURL = "https://api.telegram.org"

// Config holds the bot credentials and formatting knobs for the gateway.
type Config struct {
	BotToken    string
	AdminChatID int64
	// BaseURL overrides the Bot API endpoint, used by tests.
	BaseURL string
	// CodePrefix is prepended to redemption codes, e.g. "Ktp".
	CodePrefix string
	// Timeout bounds each outbound API call.
	Timeout time.Duration
	// Location localizes timestamps embedded in messages.
	Location *time.Location
}

// Client talks to the Telegram Bot API. All notify.Notifier methods are
// best-effort: transport errors, timeouts and ok:false responses come back as
// notify.Result values, never as errors, so lifecycle operations can commit
// their state regardless of operator visibility.
type Client struct {
	baseURL     string
	botToken    string
	adminChatID int64
	codePrefix  string
	location    *time.Location
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Bot API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	codePrefix := cfg.CodePrefix
	if codePrefix == "" {
		codePrefix = "Ktp"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &Client{
		baseURL:     baseURL,
		botToken:    cfg.BotToken,
		adminChatID: cfg.AdminChatID,
		codePrefix:  codePrefix,
		location:    location,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// apiResponse is the Bot API envelope shared by every method.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

type messageResult struct {
	MessageID int64 `json:"message_id"`
}

// call posts one Bot API method and decodes the envelope. A non-nil error
// covers transport and decoding failures; ok:false comes back in the envelope.
func (c *Client) call(ctx context.Context, method string, payload interface{}) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var out apiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s response (status %d): %w", method, resp.StatusCode, err)
	}
	return &out, nil
}

// sendText delivers one HTML-formatted message and converts every failure
// mode into a notify.Result.
func (c *Client) sendText(ctx context.Context, chatID int64, text string) notify.Result {
	resp, err := c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		c.logger.Warn("Telegram sendMessage failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return notify.Result{Sent: false, Error: err.Error()}
	}
	if !resp.OK {
		c.logger.Warn("Telegram rejected sendMessage",
			zap.Int64("chat_id", chatID),
			zap.String("description", resp.Description))
		return notify.Result{Sent: false, Error: resp.Description}
	}

	var msg messageResult
	_ = json.Unmarshal(resp.Result, &msg)

	return notify.Result{Sent: true, MessageID: strconv.FormatInt(msg.MessageID, 10)}
}

// SendMessage delivers free-form text to an arbitrary chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) notify.Result {
	return c.sendText(ctx, chatID, text)
}

// SendPaymentNotification announces a freshly verified payment to the
// operator chat, including the redemption code for manual fulfillment.
func (c *Client) SendPaymentNotification(ctx context.Context, note notify.PaymentNote) notify.Result {
	result := c.sendText(ctx, c.adminChatID, c.paymentMessage(note))
	if result.Sent {
		c.logger.Info("Payment notification sent",
			zap.String("transaction_id", note.TransactionID),
			zap.String("message_id", result.MessageID))
	}
	return result
}

// SendDeliveryConfirmation announces that an order was handed over.
func (c *Client) SendDeliveryConfirmation(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	return c.sendText(ctx, c.adminChatID, c.deliveryMessage(transactionID, playerID, productName))
}

// SendDeliveredUpdate broadcasts an operator-side delivered transition.
func (c *Client) SendDeliveredUpdate(ctx context.Context, transactionID, playerID, productName string) notify.Result {
	return c.sendText(ctx, c.adminChatID, c.deliveredUpdateMessage(transactionID, playerID, productName))
}

// SendFailedUpdate broadcasts an operator-side failed transition.
func (c *Client) SendFailedUpdate(ctx context.Context, transactionID, playerID, productName, reason string) notify.Result {
	return c.sendText(ctx, c.adminChatID, c.failedUpdateMessage(transactionID, playerID, productName, reason))
}

// EditMessageText rewrites a previously sent message in place, keyed by the
// message ID returned from the original send.
func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID string, text string) notify.Result {
	id, err := strconv.ParseInt(messageID, 10, 64)
	if err != nil {
		return notify.Result{Sent: false, Error: fmt.Sprintf("invalid message ID %q", messageID)}
	}

	resp, err := c.call(ctx, "editMessageText", map[string]interface{}{
		"chat_id":                  chatID,
		"message_id":               id,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return notify.Result{Sent: false, Error: err.Error()}
	}
	if !resp.OK {
		return notify.Result{Sent: false, Error: resp.Description}
	}
	return notify.Result{Sent: true, MessageID: messageID}
}

// BotInfo describes the authenticated bot account.
type BotInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// GetMe verifies the bot token by fetching the bot account.
func (c *Client) GetMe(ctx context.Context) (*BotInfo, error) {
	resp, err := c.call(ctx, "getMe", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("getMe rejected: %s", resp.Description)
	}

	var info BotInfo
	if err := json.Unmarshal(resp.Result, &info); err != nil {
		return nil, fmt.Errorf("failed to parse bot info: %w", err)
	}
	return &info, nil
}

// SetWebhook registers the given URL for update delivery.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	resp, err := c.call(ctx, "setWebhook", map[string]interface{}{"url": url})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("setWebhook rejected: %s", resp.Description)
	}
	return nil
}

// WebhookInfo describes the currently registered webhook.
type WebhookInfo struct {
	URL                  string `json:"url"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	MaxConnections       int    `json:"max_connections,omitempty"`
	IPAddress            string `json:"ip_address,omitempty"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
}

// GetWebhookInfo fetches the current webhook registration.
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	resp, err := c.call(ctx, "getWebhookInfo", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("getWebhookInfo rejected: %s", resp.Description)
	}

	var info WebhookInfo
	if err := json.Unmarshal(resp.Result, &info); err != nil {
		return nil, fmt.Errorf("failed to parse webhook info: %w", err)
	}
	return &info, nil
}
