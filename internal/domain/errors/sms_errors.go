package errors

import "errors"

var (
	// ErrSmsNotFound indicates that no SMS record matches the given ID
	ErrSmsNotFound = errors.New("sms not found")

	// ErrInvalidSms indicates an inbound SMS is missing its message body
	ErrInvalidSms = errors.New("sms message is required")
)
