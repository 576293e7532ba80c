package storage

import "errors"

// ErrInsufficientFunds is returned when an account's balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrSquareTaken is returned when a purchase targets a cell that is already owned.
var ErrSquareTaken = errors.New("square already taken")

// ErrVersionConflict is returned when an optimistic-lock condition fails because
// a concurrent writer got there first. Callers may re-read and retry.
var ErrVersionConflict = errors.New("version conflict")

// ErrInvalidTransition is returned when a status change is not allowed from the
// record's current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNumbersAssigned is returned when a grid's numbers have already been
// assigned. Lock callers treat it as success.
var ErrNumbersAssigned = errors.New("grid numbers already assigned")

// ErrPayoutExists is returned when a payout already exists for a (game, period).
// Settlement callers treat it as success.
var ErrPayoutExists = errors.New("payout already recorded for period")

// ErrGameNotOpen is returned when a purchase targets a game that is no longer
// accepting purchases.
var ErrGameNotOpen = errors.New("game not open for purchases")

// ErrGameNotCancellable is returned when a cancellation targets a game that is
// already resolved or cancelled.
var ErrGameNotCancellable = errors.New("game not in a cancellable state")

// ErrDuplicateTransaction is returned when a transaction with the same ID has
// already been written. Deterministic refund/payout IDs rely on this.
var ErrDuplicateTransaction = errors.New("transaction already exists")
