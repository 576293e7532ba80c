package storage

import (
	"context"
	"time"

	"github.com/casey/gridline/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves all transactions for a specific user.
	ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)

	// GetStuckTransactions retrieves transactions that have sat in PENDING
	// for longer than the specified duration.
	GetStuckTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// TransactionManager defines the interface for writing transactions.
// Balance effects are atomic with the records that describe them.
type TransactionManager interface {
	// CreateCompletedTransaction writes a transaction record and applies its
	// balance effect in one atomic store transaction. The record's
	// BalanceBefore/BalanceAfter are fixed by an optimistic lock on the
	// account, so a concurrent balance write fails the whole operation with
	// ErrVersionConflict. A debit that would go negative fails with
	// ErrInsufficientFunds and writes nothing.
	CreateCompletedTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// CreatePendingTransaction writes a transaction record with no balance
	// effect. Deposits and withdrawals start here.
	CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// CompleteTransaction flips a PENDING or PROCESSING transaction to
	// COMPLETED and applies the credit/debit of settleAmount against the
	// live balance, atomically. An insufficient debit fails with
	// ErrInsufficientFunds and leaves the transaction untouched.
	CompleteTransaction(ctx context.Context, txID string, settleAmount int64, adminID string) (*models.Transaction, error)

	// UpdateTransactionStatus performs a status-only transition
	// (PROCESSING, FAILED, CANCELLED) conditional on the current status.
	UpdateTransactionStatus(ctx context.Context, txID string, from, to models.TransactionStatus, reason, adminID string) error
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
