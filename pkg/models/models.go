package models

import (
	"time"
)

// Role defines the authorization level of an account.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsAdmin reports whether the role may perform admin-gated transitions.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// TransactionStatus defines the possible states of a transaction.
// Transitions only move forward: PENDING -> PROCESSING -> {COMPLETED|FAILED},
// or PENDING -> CANCELLED. Records are never deleted.
type TransactionStatus string

const (
	PENDING    TransactionStatus = "PENDING"
	PROCESSING TransactionStatus = "PROCESSING"
	COMPLETED  TransactionStatus = "COMPLETED"
	FAILED     TransactionStatus = "FAILED"
	CANCELLED  TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s TransactionStatus) IsTerminal() bool {
	return s == COMPLETED || s == FAILED || s == CANCELLED
}

// TransactionType classifies every balance-affecting operation.
type TransactionType string

const (
	Deposit             TransactionType = "DEPOSIT"
	Withdrawal          TransactionType = "WITHDRAWAL"
	BetPlaced           TransactionType = "BET_PLACED"
	BetWon              TransactionType = "BET_WON"
	BetRefund           TransactionType = "BET_REFUND"
	SquaresPurchaseType TransactionType = "SQUARES_PURCHASE"
	SquaresPayoutType   TransactionType = "SQUARES_PAYOUT"
	SquaresRefundType   TransactionType = "SQUARES_REFUND"
	AdminAdjustment     TransactionType = "ADMIN_ADJUSTMENT"
)

// creditTypes is the static classification of transaction types.
// Anything not listed here is a debit. ADMIN_ADJUSTMENT is a credit;
// debit-shaped corrections are issued as admin-completed withdrawals.
var creditTypes = map[TransactionType]bool{
	Deposit:           true,
	BetWon:            true,
	BetRefund:         true,
	SquaresPayoutType: true,
	SquaresRefundType: true,
	AdminAdjustment:   true,
}

// knownTypes holds every valid transaction type.
var knownTypes = map[TransactionType]bool{
	Deposit: true, Withdrawal: true,
	BetPlaced: true, BetWon: true, BetRefund: true,
	SquaresPurchaseType: true, SquaresPayoutType: true, SquaresRefundType: true,
	AdminAdjustment: true,
}

// IsCredit reports whether the type increases the account balance.
func (t TransactionType) IsCredit() bool {
	return creditTypes[t]
}

// IsValid reports whether the type is one of the known classifications.
func (t TransactionType) IsValid() bool {
	return knownTypes[t]
}

// Account represents a user's balance-bearing account.
// Balance is integer cents. Version is an optimistic lock counter bumped
// on every balance write.
type Account struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Role      Role      `json:"role" dynamodbav:"role"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction is the append-only audit record for a balance change.
// Amount is always a positive magnitude; the sign of the balance effect is
// determined by the static type classification. BalanceBefore/BalanceAfter
// are recorded at the moment the balance effect lands.
type Transaction struct {
	Id            string            `json:"id" dynamodbav:"id"`
	UserId        string            `json:"user_id" dynamodbav:"user_id"`
	Type          TransactionType   `json:"type" dynamodbav:"type"`
	Status        TransactionStatus `json:"status" dynamodbav:"status"`
	Amount        int64             `json:"amount" dynamodbav:"amount"`
	ActualAmount  int64             `json:"actual_amount,omitempty" dynamodbav:"actual_amount,omitempty"`
	Fee           int64             `json:"fee,omitempty" dynamodbav:"fee,omitempty"`
	BalanceBefore int64             `json:"balance_before" dynamodbav:"balance_before"`
	BalanceAfter  int64             `json:"balance_after" dynamodbav:"balance_after"`
	RelatedId     string            `json:"related_id,omitempty" dynamodbav:"related_id,omitempty"`
	Reason        string            `json:"reason,omitempty" dynamodbav:"reason,omitempty"`
	AdminId       string            `json:"admin_id,omitempty" dynamodbav:"admin_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at" dynamodbav:"created_at"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

// SettledAmount is the magnitude actually applied to the balance:
// ActualAmount when a fee-adjusted net was recorded, Amount otherwise.
func (t *Transaction) SettledAmount() int64 {
	if t.ActualAmount > 0 {
		return t.ActualAmount
	}
	return t.Amount
}

// PaymentMethod is an external funding source. Withdrawals require a
// verified method; the first completed deposit auto-verifies it.
type PaymentMethod struct {
	Id         string     `json:"id" dynamodbav:"id"`
	UserId     string     `json:"user_id" dynamodbav:"user_id"`
	Kind       string     `json:"kind" dynamodbav:"kind"`
	Verified   bool       `json:"verified" dynamodbav:"verified"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" dynamodbav:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" dynamodbav:"created_at"`
}
