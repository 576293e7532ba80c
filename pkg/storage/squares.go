package storage

import (
	"context"

	"github.com/casey/gridline/pkg/models"
)

// SquaresReader defines the interface for reading squares-game data.
type SquaresReader interface {
	// GetGame retrieves a game by its ID.
	GetGame(ctx context.Context, gameID string) (*models.SquaresGame, error)

	// ListGamesByStatus retrieves all games in the given status.
	ListGamesByStatus(ctx context.Context, status models.GameStatus) ([]models.SquaresGame, error)

	// ListPurchasesByGame retrieves every purchase in a game.
	ListPurchasesByGame(ctx context.Context, gameID string) ([]models.SquaresPurchase, error)

	// ListPayoutsByGame retrieves every recorded payout for a game.
	ListPayoutsByGame(ctx context.Context, gameID string) ([]models.SquaresPayout, error)
}

// SquaresManager defines the privileged write operations on squares games.
// Every multi-record invariant is enforced inside a single atomic store
// transaction rather than by application-level scans.
type SquaresManager interface {
	// CreateGame creates a new game record.
	CreateGame(ctx context.Context, game *models.SquaresGame) (*models.SquaresGame, error)

	// UpdateGameStatus performs an optimistically-locked status transition.
	UpdateGameStatus(ctx context.Context, gameID string, from []models.GameStatus, to models.GameStatus, reason string) error

	// PurchaseSquares commits the purchase rows, the consolidated buyer
	// debit with its transaction record, and the game's pot/sold counters
	// in one atomic write. An occupied cell fails the whole batch with
	// ErrSquareTaken; an insufficient balance with ErrInsufficientFunds.
	PurchaseSquares(ctx context.Context, game *models.SquaresGame, purchases []models.SquaresPurchase, debitTx *models.Transaction) error

	// AssignNumbers persists the two axis permutations and flips the game
	// to LOCKED, conditional on numbers not yet being assigned. A second
	// call fails with ErrNumbersAssigned.
	AssignNumbers(ctx context.Context, gameID string, rowNumbers, colNumbers []int) error

	// RecordPayout writes the payout record and the winner's credit with
	// its transaction record in one atomic write, keyed per (game, period).
	// A duplicate period fails with ErrPayoutExists.
	RecordPayout(ctx context.Context, payout *models.SquaresPayout, creditTx *models.Transaction) error
}

// InvitationStore defines the interface for game invitations.
type InvitationStore interface {
	// CreateInvitation creates a pending invitation.
	CreateInvitation(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)

	// AcceptInvitation flips a pending invitation for (game, user) to
	// ACCEPTED. Returns ErrNotFound when no pending invitation exists.
	AcceptInvitation(ctx context.Context, gameID, userID string) error
}

// SquaresStore combines the reader and manager interfaces.
type SquaresStore interface {
	SquaresReader
	SquaresManager
}
