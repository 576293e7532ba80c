package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/casey/gridline/pkg/metrics"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/money"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/storage"
	"github.com/google/uuid"
)

// ApprovalWorkflow is the admin-facing extension of the ledger: it verifies
// and settles pending deposits and withdrawals. Every operation is gated on
// the caller's role and rejects with ErrUnauthorized, which is distinct from
// every business-rule failure.
type ApprovalWorkflow struct {
	Store    storage.TransactionStore
	Accounts storage.AccountStore
	Methods  storage.PaymentMethodStore
	Notifier notifications.Notifier
}

// NewApprovalWorkflow creates a new ApprovalWorkflow.
func NewApprovalWorkflow(store storage.TransactionStore, accounts storage.AccountStore, methods storage.PaymentMethodStore, notifier notifications.Notifier) *ApprovalWorkflow {
	return &ApprovalWorkflow{Store: store, Accounts: accounts, Methods: methods, Notifier: notifier}
}

// requireAdmin resolves the admin account and checks its role.
func (w *ApprovalWorkflow) requireAdmin(ctx context.Context, adminID string) error {
	admin, err := w.Accounts.GetAccount(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to resolve admin account: %w", err)
	}
	if !admin.Role.IsAdmin() {
		return fmt.Errorf("account %s: %w", adminID, ErrUnauthorized)
	}
	return nil
}

// CompleteTransaction settles a pending deposit or withdrawal against the
// live balance. actualAmount, when positive, is the fee-adjusted net actually
// moved; the difference from the requested amount is recorded as the fee.
// A withdrawal whose live balance no longer covers it is flipped to FAILED
// with a reason instead of completing; the returned record reports the final
// status either way.
func (w *ApprovalWorkflow) CompleteTransaction(ctx context.Context, txID, adminID string, actualAmount int64) (*models.Transaction, error) {
	if err := w.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	tx, err := w.Store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	settleAmount := tx.Amount
	if actualAmount > 0 {
		// The fee-adjusted amount can only shave the request; anything
		// above it would record a negative fee.
		if actualAmount > tx.Amount {
			return nil, fmt.Errorf("actual amount %s exceeds requested %s: %w",
				money.FormatCents(actualAmount), money.FormatCents(tx.Amount), ErrInvalidAmount)
		}
		settleAmount = actualAmount
	}

	settled, err := w.Store.CompleteTransaction(ctx, txID, settleAmount, adminID)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) && !tx.Type.IsCredit() {
			return w.failForInsufficientFunds(ctx, tx, adminID)
		}
		return nil, fmt.Errorf("failed to complete transaction: %w", err)
	}
	metrics.TransactionsSettled.WithLabelValues(string(settled.Type), string(settled.Status)).Inc()

	if settled.Type == models.Deposit {
		w.verifyMethodOnFirstDeposit(ctx, settled)
	}

	w.notifySettled(ctx, settled)
	return settled, nil
}

// failForInsufficientFunds records the failed settlement attempt. The
// transaction is a terminal FAILED, not an error to the admin: the balance
// drifted between request and settlement, which is an expected outcome.
func (w *ApprovalWorkflow) failForInsufficientFunds(ctx context.Context, tx *models.Transaction, adminID string) (*models.Transaction, error) {
	reason := fmt.Sprintf("insufficient funds at settlement: balance below %s", money.FormatCents(tx.Amount))
	if err := w.Store.UpdateTransactionStatus(ctx, tx.Id, tx.Status, models.FAILED, reason, adminID); err != nil {
		return nil, fmt.Errorf("failed to mark transaction FAILED: %w", err)
	}
	tx.Status = models.FAILED
	tx.Reason = reason
	tx.AdminId = adminID
	metrics.TransactionsSettled.WithLabelValues(string(tx.Type), string(models.FAILED)).Inc()

	w.notify(ctx, notifications.Notification{
		UserID:    tx.UserId,
		Type:      notifications.TypeTransactionFailed,
		Title:     "Withdrawal failed",
		Message:   reason,
		Priority:  notifications.PriorityHigh,
		ActionRef: tx.Id,
	})
	return tx, nil
}

// verifyMethodOnFirstDeposit auto-verifies the deposit's payment method the
// first time a deposit through it completes, and stamps its last use.
// Best-effort: the settlement has already landed.
func (w *ApprovalWorkflow) verifyMethodOnFirstDeposit(ctx context.Context, tx *models.Transaction) {
	if tx.RelatedId == "" {
		return
	}
	method, err := w.Methods.GetPaymentMethod(ctx, tx.RelatedId)
	if err != nil {
		return
	}
	if !method.Verified {
		if err := w.Methods.VerifyPaymentMethod(ctx, method.Id); err != nil {
			return
		}
	}
	_ = w.Methods.UpdateLastUsed(ctx, method.Id)
}

// CreateAdjustment applies a manual correction immediately, with the acting
// admin stamped on the record. Gated like every other workflow operation.
func (w *ApprovalWorkflow) CreateAdjustment(ctx context.Context, p CreateParams) (*models.Transaction, error) {
	if err := w.requireAdmin(ctx, p.AdminID); err != nil {
		return nil, err
	}
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
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

	created, err := w.Store.CreateCompletedTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to create adjustment: %w", err)
	}
	metrics.TransactionsSettled.WithLabelValues(string(created.Type), string(created.Status)).Inc()

	return created, nil
}

// MarkProcessing moves a PENDING transaction into PROCESSING.
func (w *ApprovalWorkflow) MarkProcessing(ctx context.Context, txID, adminID string) error {
	if err := w.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return w.Store.UpdateTransactionStatus(ctx, txID, models.PENDING, models.PROCESSING, "", adminID)
}

// RejectTransaction moves a pending transaction to FAILED with a reason.
func (w *ApprovalWorkflow) RejectTransaction(ctx context.Context, txID, adminID, reason string) error {
	if err := w.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	tx, err := w.Store.GetTransaction(ctx, txID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if tx.Status.IsTerminal() {
		return storage.ErrInvalidTransition
	}

	if err := w.Store.UpdateTransactionStatus(ctx, txID, tx.Status, models.FAILED, reason, adminID); err != nil {
		return err
	}
	metrics.TransactionsSettled.WithLabelValues(string(tx.Type), string(models.FAILED)).Inc()

	w.notify(ctx, notifications.Notification{
		UserID:    tx.UserId,
		Type:      notifications.TypeTransactionFailed,
		Title:     "Request rejected",
		Message:   reason,
		Priority:  notifications.PriorityHigh,
		ActionRef: txID,
	})
	return nil
}

// CancelTransaction cancels a still-PENDING transaction.
func (w *ApprovalWorkflow) CancelTransaction(ctx context.Context, txID, adminID, reason string) error {
	if err := w.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	return w.Store.UpdateTransactionStatus(ctx, txID, models.PENDING, models.CANCELLED, reason, adminID)
}

func (w *ApprovalWorkflow) notifySettled(ctx context.Context, tx *models.Transaction) {
	title := "Deposit completed"
	notificationType := notifications.TypeDepositCompleted
	if tx.Type == models.Withdrawal {
		title = "Withdrawal completed"
		notificationType = notifications.TypeWithdrawalCompleted
	}

	message := fmt.Sprintf("%s of %s settled", tx.Type, money.FormatCents(tx.SettledAmount()))
	if tx.Fee > 0 {
		message = fmt.Sprintf("%s (%s fee)", message, money.FormatCents(tx.Fee))
	}

	w.notify(ctx, notifications.Notification{
		UserID:    tx.UserId,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Priority:  notifications.PriorityNormal,
		ActionRef: tx.Id,
	})
}

func (w *ApprovalWorkflow) notify(ctx context.Context, n notifications.Notification) {
	if w.Notifier == nil {
		return
	}
	if err := w.Notifier.CreateNotification(ctx, n); err != nil {
		slog.Error("failed to send notification", "type", n.Type, "user_id", n.UserID, "error", err)
	}
}
