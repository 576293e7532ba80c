// Package ledger owns every balance change in the system. All mutation goes
// through a transaction record with a before/after audit trail; nothing else
// in the codebase writes balances.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/money"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/storage"
	"github.com/google/uuid"
)

// Service is the ledger: it creates transactions, classifies them as credit
// or debit, and applies immediate balance effects through the store's atomic
// operations.
type Service struct {
	Store    storage.TransactionStore
	Accounts storage.AccountStore
	Methods  storage.PaymentMethodStore
	Notifier notifications.Notifier
}

// NewService creates a new ledger Service.
func NewService(store storage.TransactionStore, accounts storage.AccountStore, methods storage.PaymentMethodStore, notifier notifications.Notifier) *Service {
	return &Service{Store: store, Accounts: accounts, Methods: methods, Notifier: notifier}
}

// CreateParams describes an immediate (already-final) balance change.
type CreateParams struct {
	UserID    string
	Type      models.TransactionType
	Amount    int64
	RelatedID string
	Reason    string
	AdminID   string
}

// CreateTransaction validates, classifies, and atomically applies an
// immediate transaction. A debit that would go negative returns
// storage.ErrInsufficientFunds with nothing written.
func (s *Service) CreateTransaction(ctx context.Context, p CreateParams) (*models.Transaction, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, p.Type)
	}

	tx := &models.Transaction{
		Id:        uuid.New().String(),
		UserId:    p.UserID,
		Type:      p.Type,
		Amount:    p.Amount,
		RelatedId: p.RelatedID,
		Reason:    p.Reason,
		AdminId:   p.AdminID,
	}

	created, err := s.Store.CreateCompletedTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s transaction: %w", p.Type, err)
	}

	return created, nil
}

// CreateDeposit opens a PENDING deposit against a payment method. No balance
// effect until an admin completes it.
func (s *Service) CreateDeposit(ctx context.Context, userID string, amount int64, methodID string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := s.Methods.GetPaymentMethod(ctx, methodID); err != nil {
		return nil, fmt.Errorf("failed to look up payment method: %w", err)
	}

	tx := &models.Transaction{
		Id:        uuid.New().String(),
		UserId:    userID,
		Type:      models.Deposit,
		Amount:    amount,
		RelatedId: methodID,
	}

	return s.Store.CreatePendingTransaction(ctx, tx)
}

// CreateWithdrawal opens a PENDING withdrawal. It requires a verified payment
// method and a sufficient balance at request time; sufficiency is re-checked
// against the live balance at completion, since the balance may drift while
// the request sits in the queue.
func (s *Service) CreateWithdrawal(ctx context.Context, userID string, amount int64, methodID string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	method, err := s.Methods.GetPaymentMethod(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payment method: %w", err)
	}
	if !method.Verified {
		return nil, ErrPaymentMethodUnverified
	}

	account, err := s.Accounts.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account for withdrawal: %w", err)
	}
	if account.Balance < amount {
		return nil, storage.ErrInsufficientFunds
	}

	tx := &models.Transaction{
		Id:        uuid.New().String(),
		UserId:    userID,
		Type:      models.Withdrawal,
		Amount:    amount,
		RelatedId: methodID,
	}

	return s.Store.CreatePendingTransaction(ctx, tx)
}

// NewSquaresDebit builds the consolidated purchase debit the squares engine
// hands to the store. The engine never writes balances itself; its records
// are built here so classification stays in one place.
func (s *Service) NewSquaresDebit(userID, gameID string, amount int64) *models.Transaction {
	return &models.Transaction{
		Id:        uuid.New().String(),
		UserId:    userID,
		Type:      models.SquaresPurchaseType,
		Amount:    amount,
		RelatedId: gameID,
	}
}

// NewPayoutCredit builds a period-payout credit. The ID is deterministic per
// (game, period), so a retried settlement cannot double-credit.
func (s *Service) NewPayoutCredit(userID, gameID string, period models.Period, amount int64) *models.Transaction {
	return &models.Transaction{
		Id:        fmt.Sprintf("payout#%s#%s", gameID, period),
		UserId:    userID,
		Type:      models.SquaresPayoutType,
		Amount:    amount,
		RelatedId: gameID,
	}
}

// RefundBuyer issues one aggregated refund to a buyer of a cancelled game.
// The deterministic ID makes a retried cancellation run idempotent: the
// second attempt fails the store's duplicate condition and is skipped.
func (s *Service) RefundBuyer(ctx context.Context, userID, gameID string, amount int64, reason string) (*models.Transaction, error) {
	tx := &models.Transaction{
		Id:        fmt.Sprintf("refund#%s#%s", gameID, userID),
		UserId:    userID,
		Type:      models.SquaresRefundType,
		Amount:    amount,
		RelatedId: gameID,
		Reason:    reason,
	}

	created, err := s.Store.CreateCompletedTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.Notify(ctx, notifications.Notification{
		UserID:   userID,
		Type:     notifications.TypeSquaresRefunded,
		Title:    "Game cancelled",
		Message:  fmt.Sprintf("Your squares were refunded %s: %s", money.FormatCents(amount), reason),
		Priority: notifications.PriorityNormal,
	})

	return created, nil
}

// Notify delivers a notification without ever failing the caller.
func (s *Service) Notify(ctx context.Context, n notifications.Notification) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.CreateNotification(ctx, n); err != nil {
		slog.Error("failed to send notification", "type", n.Type, "user_id", n.UserID, "error", err)
	}
}
