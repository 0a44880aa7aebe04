package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/robotopup/backend/internal/domain/model"
	"github.com/robotopup/backend/internal/domain/repository"
	"github.com/robotopup/backend/internal/usecase"
)

// SmsHandler exposes the device-relay SMS intake and the operator's browse,
// search and housekeeping endpoints.
type SmsHandler struct {
	sms    *usecase.SmsService
	logger *zap.Logger
}

// NewSmsHandler creates a new SMS handler
func NewSmsHandler(sms *usecase.SmsService, logger *zap.Logger) *SmsHandler {
	return &SmsHandler{sms: sms, logger: logger}
}

// ReceiveSmsRequest is the payload a relay device posts.
type ReceiveSmsRequest struct {
	Sender    string `json:"sender"`
	Message   string `json:"message" validate:"required"`
	Timestamp string `json:"timestamp"`
	DeviceID  string `json:"deviceId"`
}

// Receive handles POST /api/sms/receive
func (h *SmsHandler) Receive(c echo.Context) error {
	var req ReceiveSmsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Message body is required", err)
	}

	in := usecase.ReceiveSmsInput{
		Sender:   req.Sender,
		Message:  req.Message,
		DeviceID: req.DeviceID,
	}
	if req.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			in.Timestamp = &ts
		}
	}

	sms, err := h.sms.Receive(c.Request().Context(), in)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to store SMS", zap.Error(err))
			return respondError(c, status, "Failed to store SMS", nil)
		}
		return respondError(c, status, "Failed to store SMS", err)
	}

	return respond(c, http.StatusCreated, "SMS stored", echo.Map{
		"id":       sms.ID,
		"sender":   sms.Sender,
		"deviceId": sms.DeviceID,
		"status":   sms.Status,
	})
}

// List handles GET /api/sms
func (h *SmsHandler) List(c echo.Context) error {
	filter := repository.SmsFilter{
		DeviceID: c.QueryParam("deviceId"),
		Sender:   c.QueryParam("sender"),
		Status:   model.SmsStatus(c.QueryParam("status")),
	}

	if raw := c.QueryParam("startDate"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartDate = &ts
		}
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndDate = &ts
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Limit = parsed
		}
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.sms.List(c.Request().Context(), filter, page)
	if err != nil {
		h.logger.Error("Failed to list SMS", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch SMS messages", nil)
	}

	return respond(c, http.StatusOK, "", result)
}

// Stats handles GET /api/sms/stats
func (h *SmsHandler) Stats(c echo.Context) error {
	stats, err := h.sms.Stats(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to aggregate SMS stats", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch SMS stats", nil)
	}
	return respond(c, http.StatusOK, "", stats)
}

// Search handles GET /api/sms/search
func (h *SmsHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return respondError(c, http.StatusBadRequest, "Search query is required", nil)
	}

	items, err := h.sms.Search(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("SMS search failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Search failed", nil)
	}

	return respond(c, http.StatusOK, "", echo.Map{
		"messages": items,
		"count":    len(items),
	})
}

// Get handles GET /api/sms/:id
func (h *SmsHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid SMS ID", err)
	}

	sms, err := h.sms.Get(c.Request().Context(), id)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to fetch SMS", zap.Error(err))
			return respondError(c, status, "Failed to fetch SMS", nil)
		}
		return respondError(c, status, "SMS not found", err)
	}

	return respond(c, http.StatusOK, "", sms)
}

// UpdateSmsStatusRequest carries partial SMS status changes.
type UpdateSmsStatusRequest struct {
	Status    *model.SmsStatus `json:"status"`
	Forwarded *bool            `json:"forwarded"`
	Notes     *string          `json:"notes"`
}

// UpdateStatus handles PATCH /api/sms/:id/status
func (h *SmsHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid SMS ID", err)
	}

	var req UpdateSmsStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	sms, err := h.sms.UpdateStatus(c.Request().Context(), id, usecase.UpdateStatusInput{
		Status:    req.Status,
		Forwarded: req.Forwarded,
		Notes:     req.Notes,
	})
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to update SMS status", zap.Error(err))
			return respondError(c, status, "Failed to update SMS", nil)
		}
		return respondError(c, status, "SMS not found", err)
	}

	return respond(c, http.StatusOK, "SMS updated", sms)
}

// Delete handles DELETE /api/sms/:id
func (h *SmsHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid SMS ID", err)
	}

	sms, err := h.sms.Delete(c.Request().Context(), id)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to delete SMS", zap.Error(err))
			return respondError(c, status, "Failed to delete SMS", nil)
		}
		return respondError(c, status, "SMS not found", err)
	}

	return respond(c, http.StatusOK, "SMS deleted", echo.Map{"id": sms.ID})
}

// ClearAll handles DELETE /api/sms
func (h *SmsHandler) ClearAll(c echo.Context) error {
	deleted, err := h.sms.ClearAll(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to clear SMS collection", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to clear SMS messages", nil)
	}
	return respond(c, http.StatusOK, "SMS collection cleared", echo.Map{"deleted": deleted})
}
