package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/robotopup/backend/internal/domain/errors"
)

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, status int, message string, err error) error {
	body := envelope{
		Success: false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
	}
	return c.JSON(status, body)
}

// statusForError maps domain errors onto HTTP status codes; anything
// unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrPaymentNotFound),
		errors.Is(err, domainErrors.ErrProductNotFound),
		errors.Is(err, domainErrors.ErrCategoryNotFound),
		errors.Is(err, domainErrors.ErrSmsNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidPayment),
		errors.Is(err, domainErrors.ErrInvalidSms),
		errors.Is(err, domainErrors.ErrProductExists),
		errors.Is(err, domainErrors.ErrCategoryExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
