package storage

import (
	"context"

	"github.com/casey/gridline/pkg/models"
)

// AccountStore defines the interface for managing accounts. Balances are
// never written through this interface; every balance change goes through a
// transaction operation so the audit trail stays single-sourced.
type AccountStore interface {
	// GetAccount retrieves an account by its user ID.
	GetAccount(ctx context.Context, userID string) (*models.Account, error)

	// CreateAccount creates a new account for a user.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// ListAccounts retrieves all accounts from the storage.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
