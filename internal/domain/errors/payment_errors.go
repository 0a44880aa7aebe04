package errors

import "errors"

var (
	// ErrDuplicateTransaction indicates a payment with the same transaction ID already exists
	ErrDuplicateTransaction = errors.New("transaction ID already exists")

	// ErrPaymentNotFound indicates that no payment matches the given ID or transaction ID
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidPayment indicates a payment claim is missing a required field
	ErrInvalidPayment = errors.New("invalid payment claim")
)
