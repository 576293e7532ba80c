package storage

import (
	"context"

	"github.com/casey/gridline/pkg/models"
)

// PaymentMethodStore defines the interface for external funding sources.
type PaymentMethodStore interface {
	// GetPaymentMethod retrieves a payment method by its ID.
	GetPaymentMethod(ctx context.Context, methodID string) (*models.PaymentMethod, error)

	// VerifyPaymentMethod marks a payment method as verified.
	VerifyPaymentMethod(ctx context.Context, methodID string) error

	// UpdateLastUsed stamps the payment method's last-used time.
	UpdateLastUsed(ctx context.Context, methodID string) error
}
