package ledger

import "errors"

// ErrInvalidAmount is returned when a transaction amount is zero or negative.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrUnknownType is returned when a transaction type is not one of the
// static classifications.
var ErrUnknownType = errors.New("unknown transaction type")

// ErrUnauthorized is returned when a non-admin account attempts an
// admin-gated transition. It is distinct from every business-rule failure.
var ErrUnauthorized = errors.New("admin privileges required")

// ErrPaymentMethodUnverified is returned when a withdrawal names a payment
// method that has not been verified.
var ErrPaymentMethodUnverified = errors.New("payment method not verified")
