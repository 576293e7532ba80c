// Package squares runs the grid games: creation, square sales, the number
// draw, and period settlement. All money movement is delegated to the ledger;
// the engine never touches a balance directly.
package squares

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/metrics"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/money"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/scheduler"
	"github.com/casey/gridline/pkg/storage"
)

const (
	gridSize = 10

	// maxSquaresPerPurchase caps a single request well under the store's
	// transactional write limit (each square is one write item, plus the
	// debit, its record, and the game counters).
	maxSquaresPerPurchase = 20
)

var (
	ErrInvalidPrice           = errors.New("price per square must be positive")
	ErrInvalidPayoutStructure = errors.New("payout fractions must be non-negative and sum to 1.0")
	ErrInvalidCell            = errors.New("grid coordinates must be within 0-9")
	ErrDuplicateCell          = errors.New("duplicate cell in purchase request")
	ErrTooManySquares         = fmt.Errorf("at most %d squares per purchase", maxSquaresPerPurchase)
	ErrNoSquares              = errors.New("purchase must include at least one square")
	ErrInvalidPeriod          = errors.New("unknown scoring period")
	ErrInvalidScore           = errors.New("scores must be non-negative")
)

// Engine coordinates the squares game lifecycle against the store, the
// ledger, and the lock scheduler.
type Engine struct {
	Store     storage.SquaresStore
	Invites   storage.InvitationStore
	Ledger    *ledger.Service
	Scheduler scheduler.LockScheduler
	Notifier  notifications.Notifier
}

// NewEngine creates a new squares Engine.
func NewEngine(store storage.SquaresStore, invites storage.InvitationStore, ldg *ledger.Service, sched scheduler.LockScheduler, notifier notifications.Notifier) *Engine {
	return &Engine{Store: store, Invites: invites, Ledger: ldg, Scheduler: sched, Notifier: notifier}
}

// CreateGameParams describes a new game.
type CreateGameParams struct {
	Name            string
	PricePerSquare  int64
	PayoutStructure models.PayoutStructure
	EventStartTime  time.Time
	Open            bool
}

// CreateGame validates and persists a new game and schedules its grid lock
// for the event start. Games open in SETUP unless Open is set; both states
// accept purchases.
func (e *Engine) CreateGame(ctx context.Context, p CreateGameParams) (*models.SquaresGame, error) {
	if p.PricePerSquare <= 0 {
		return nil, ErrInvalidPrice
	}
	if !p.PayoutStructure.IsValid() {
		return nil, ErrInvalidPayoutStructure
	}

	status := models.GameSetup
	if p.Open {
		status = models.GameActive
	}

	game, err := e.Store.CreateGame(ctx, &models.SquaresGame{
		Name:            p.Name,
		PricePerSquare:  p.PricePerSquare,
		PayoutStructure: p.PayoutStructure,
		Status:          status,
		EventStartTime:  p.EventStartTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if e.Scheduler != nil && !p.EventStartTime.IsZero() {
		err := e.Scheduler.ScheduleGridLock(ctx, scheduler.LockRequest{
			GameID: game.Id,
			LockAt: p.EventStartTime,
		})
		if err != nil {
			// The reconciliation sweep picks up unlocked games past their
			// start time, so a scheduling failure is not fatal here.
			slog.Error("failed to schedule grid lock", "game_id", game.Id, "error", err)
		}
	}

	return game, nil
}

// OpenGame moves a SETUP game into ACTIVE.
func (e *Engine) OpenGame(ctx context.Context, gameID string) error {
	return e.Store.UpdateGameStatus(ctx, gameID, []models.GameStatus{models.GameSetup}, models.GameActive, "")
}

// Cell is one requested grid coordinate.
type Cell struct {
	Row int
	Col int
}

// PurchaseSquares sells the requested cells to one buyer as a single
// all-or-nothing operation: either every cell is claimed and the buyer is
// debited once for the total, or nothing is written. Claiming any cell that
// is already owned fails the whole request with storage.ErrSquareTaken.
func (e *Engine) PurchaseSquares(ctx context.Context, gameID, userID, ownerName string, cells []Cell) (*models.Transaction, error) {
	if len(cells) == 0 {
		return nil, ErrNoSquares
	}
	if len(cells) > maxSquaresPerPurchase {
		return nil, ErrTooManySquares
	}
	seen := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		if c.Row < 0 || c.Row >= gridSize || c.Col < 0 || c.Col >= gridSize {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, c.Row, c.Col)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrDuplicateCell, c.Row, c.Col)
		}
		seen[c] = true
	}

	game, err := e.Store.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if !game.Status.IsOpen() {
		return nil, storage.ErrGameNotOpen
	}

	total := game.PricePerSquare * int64(len(cells))
	debit := e.Ledger.NewSquaresDebit(userID, gameID, total)

	purchases := make([]models.SquaresPurchase, len(cells))
	for i, c := range cells {
		purchases[i] = models.SquaresPurchase{
			Id:        purchaseID(gameID, c.Row, c.Col),
			GameId:    gameID,
			UserId:    userID,
			OwnerName: ownerName,
			GridRow:   c.Row,
			GridCol:   c.Col,
			Amount:    game.PricePerSquare,
		}
	}

	if err := e.Store.PurchaseSquares(ctx, game, purchases, debit); err != nil {
		return nil, err
	}
	metrics.SquaresPurchased.Add(float64(len(cells)))

	// First purchase in a game accepts any outstanding invitation.
	if e.Invites != nil {
		if err := e.Invites.AcceptInvitation(ctx, gameID, userID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Error("failed to accept invitation", "game_id", gameID, "user_id", userID, "error", err)
		}
	}

	e.Ledger.Notify(ctx, notifications.Notification{
		UserID:    userID,
		Type:      notifications.TypeSquaresPurchased,
		Title:     "Squares purchased",
		Message:   fmt.Sprintf("Bought %d square(s) in %s for %s", len(cells), game.Name, money.FormatCents(total)),
		Priority:  notifications.PriorityNormal,
		ActionRef: gameID,
	})

	// A sold-out grid locks immediately instead of waiting for kickoff.
	if game.SquaresSold+len(cells) >= gridSize*gridSize {
		if err := e.LockGridAndAssignNumbers(ctx, gameID); err != nil {
			slog.Error("failed to lock sold-out grid", "game_id", gameID, "error", err)
		}
	}

	return debit, nil
}

func purchaseID(gameID string, row, col int) string {
	return fmt.Sprintf("%s#%d#%d", gameID, row, col)
}

// LockGridAndAssignNumbers draws the two axis permutations and locks the
// grid. Safe to call repeatedly: an already-assigned grid is left untouched
// and nobody is re-notified.
func (e *Engine) LockGridAndAssignNumbers(ctx context.Context, gameID string) error {
	game, err := e.Store.GetGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game.NumbersAssigned {
		return nil
	}

	rows := rand.Perm(gridSize)
	cols := rand.Perm(gridSize)

	if err := e.Store.AssignNumbers(ctx, gameID, rows, cols); err != nil {
		if errors.Is(err, storage.ErrNumbersAssigned) {
			// Lost the race to a concurrent lock; the grid has numbers.
			return nil
		}
		return fmt.Errorf("failed to assign numbers: %w", err)
	}
	metrics.GridsLocked.Inc()

	purchases, err := e.Store.ListPurchasesByGame(ctx, gameID)
	if err != nil {
		slog.Error("failed to list buyers for lock notification", "game_id", gameID, "error", err)
		return nil
	}
	notified := make(map[string]bool, len(purchases))
	for _, p := range purchases {
		if notified[p.UserId] {
			continue
		}
		notified[p.UserId] = true
		e.Ledger.Notify(ctx, notifications.Notification{
			UserID:    p.UserId,
			Type:      notifications.TypeGridLocked,
			Title:     "Grid locked",
			Message:   fmt.Sprintf("Numbers have been drawn for %s", game.Name),
			Priority:  notifications.PriorityNormal,
			ActionRef: gameID,
		})
	}

	return nil
}

// ProcessPeriodScores settles one scoring period: it resolves the winning
// cell from the scores' trailing digits, takes the period's pot fraction less
// the platform fee, and credits the winner. Settlement is idempotent per
// (game, period); a duplicate call returns the nil payout without error. An
// unassigned grid or an unowned winning cell yields no payout.
func (e *Engine) ProcessPeriodScores(ctx context.Context, gameID string, period models.Period, homeScore, awayScore int) (*models.SquaresPayout, error) {
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}
	if homeScore < 0 || awayScore < 0 {
		return nil, ErrInvalidScore
	}

	game, err := e.Store.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if !game.NumbersAssigned {
		metrics.PayoutsRecorded.WithLabelValues("no_winner").Inc()
		return nil, nil
	}

	// First processed score moves the game LOCKED -> LIVE, whether or not
	// the period pays out; a game whose early periods land on unowned cells
	// must still reach LIVE so it can be resolved. Later scores find it
	// already LIVE.
	if game.Status == models.GameLocked {
		err := e.Store.UpdateGameStatus(ctx, gameID, []models.GameStatus{models.GameLocked}, models.GameLive, "")
		if err != nil && !errors.Is(err, storage.ErrInvalidTransition) {
			slog.Error("failed to move game to LIVE", "game_id", gameID, "error", err)
		}
	}

	purchases, err := e.Store.ListPurchasesByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	winner := ResolveWinner(game.RowNumbers, game.ColNumbers, purchases, homeScore, awayScore)
	if winner == nil {
		metrics.PayoutsRecorded.WithLabelValues("no_winner").Inc()
		return nil, nil
	}

	gross := money.Fraction(game.TotalPot, game.PayoutStructure.FractionFor(period))
	net := money.ApplyPlatformFee(gross)

	payout := &models.SquaresPayout{
		Id:           payoutID(gameID, period),
		GameId:       gameID,
		Period:       period,
		PurchaseId:   winner.Id,
		WinnerUserId: winner.UserId,
		Amount:       net,
		GrossAmount:  gross,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
	}
	credit := e.Ledger.NewPayoutCredit(winner.UserId, gameID, period, net)

	if err := e.Store.RecordPayout(ctx, payout, credit); err != nil {
		if errors.Is(err, storage.ErrPayoutExists) {
			metrics.PayoutsRecorded.WithLabelValues("duplicate").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}
	metrics.PayoutsRecorded.WithLabelValues("paid").Inc()

	e.Ledger.Notify(ctx, notifications.Notification{
		UserID:    winner.UserId,
		Type:      notifications.TypeSquaresWinner,
		Title:     "You won a period!",
		Message:   fmt.Sprintf("Your square (%d,%d) won %s in %s", winner.GridRow, winner.GridCol, money.FormatCents(net), game.Name),
		Priority:  notifications.PriorityHigh,
		ActionRef: gameID,
	})

	return payout, nil
}

func payoutID(gameID string, period models.Period) string {
	return fmt.Sprintf("%s#%s", gameID, period)
}

// ResolveGame closes out a finished LIVE game.
func (e *Engine) ResolveGame(ctx context.Context, gameID string) error {
	return e.Store.UpdateGameStatus(ctx, gameID, []models.GameStatus{models.GameLive}, models.GameResolved, "")
}

// CancelGame cancels a not-yet-resolved game and refunds every buyer their
// full spend in one aggregated credit each. The status flip is the guard: a
// concurrent cancel loses the conditional write and does not double-refund.
// A crashed refund loop is safe to re-run; already-issued refunds are
// deduplicated by their deterministic transaction IDs.
func (e *Engine) CancelGame(ctx context.Context, gameID, reason string) ([]*models.Transaction, error) {
	err := e.Store.UpdateGameStatus(ctx, gameID,
		[]models.GameStatus{models.GameSetup, models.GameActive, models.GameLocked, models.GameLive},
		models.GameCancelled, reason)
	if err != nil && !errors.Is(err, storage.ErrGameNotCancellable) {
		return nil, fmt.Errorf("failed to cancel game: %w", err)
	}
	if err != nil {
		// Already CANCELLED is a retry of a crashed refund run; anything
		// else (RESOLVED) cannot be cancelled.
		game, getErr := e.Store.GetGame(ctx, gameID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to get game: %w", getErr)
		}
		if game.Status != models.GameCancelled {
			return nil, storage.ErrGameNotCancellable
		}
	}

	purchases, err := e.Store.ListPurchasesByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for refund: %w", err)
	}

	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, p := range purchases {
		if _, ok := totals[p.UserId]; !ok {
			order = append(order, p.UserId)
		}
		totals[p.UserId] += p.Amount
	}

	refunds := make([]*models.Transaction, 0, len(order))
	for _, userID := range order {
		tx, err := e.Ledger.RefundBuyer(ctx, userID, gameID, totals[userID], reason)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateTransaction) {
				continue
			}
			return refunds, fmt.Errorf("failed to refund buyer %s: %w", userID, err)
		}
		metrics.RefundsIssued.Inc()
		refunds = append(refunds, tx)
	}

	return refunds, nil
}
