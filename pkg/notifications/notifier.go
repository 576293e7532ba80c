// Package notifications carries user-facing signals out of the core.
// Notifications are fire-and-forget: services log a failed send and move on,
// and no primary operation ever blocks or fails on one.
package notifications

import "context"

// Priority orders notifications for the delivery layer.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// Notification types understood by the delivery layer.
const (
	TypeDepositCompleted    = "DEPOSIT_COMPLETED"
	TypeWithdrawalCompleted = "WITHDRAWAL_COMPLETED"
	TypeTransactionFailed   = "TRANSACTION_FAILED"
	TypeSquaresPurchased    = "SQUARES_PURCHASED"
	TypeGridLocked          = "GRID_LOCKED"
	TypeSquaresWinner       = "SQUARES_WINNER"
	TypeSquaresRefunded     = "SQUARES_REFUNDED"
	TypeStuckTransactions   = "STUCK_TRANSACTIONS"
)

// Notification is one outbound user signal.
type Notification struct {
	UserID    string   `json:"user_id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Priority  Priority `json:"priority"`
	ActionRef string   `json:"action_ref,omitempty"`
}

// Notifier defines the interface for delivering notifications.
type Notifier interface {
	CreateNotification(ctx context.Context, n Notification) error
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// CreateNotification does nothing.
func (n *NoOpNotifier) CreateNotification(ctx context.Context, _ Notification) error {
	return nil
}
