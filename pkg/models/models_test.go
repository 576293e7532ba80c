package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeClassification(t *testing.T) {
	credits := []TransactionType{Deposit, BetWon, BetRefund, SquaresPayoutType, SquaresRefundType, AdminAdjustment}
	for _, tt := range credits {
		assert.True(t, tt.IsCredit(), "%s should credit", tt)
	}

	debits := []TransactionType{Withdrawal, BetPlaced, SquaresPurchaseType}
	for _, tt := range debits {
		assert.False(t, tt.IsCredit(), "%s should debit", tt)
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	assert.True(t, Deposit.IsValid())
	assert.True(t, SquaresPurchaseType.IsValid())
	assert.False(t, TransactionType("MYSTERY_MONEY").IsValid())
}

func TestTransactionStatusIsTerminal(t *testing.T) {
	assert.False(t, PENDING.IsTerminal())
	assert.False(t, PROCESSING.IsTerminal())
	assert.True(t, COMPLETED.IsTerminal())
	assert.True(t, FAILED.IsTerminal())
	assert.True(t, CANCELLED.IsTerminal())
}

func TestSettledAmount(t *testing.T) {
	tx := &Transaction{Amount: 5000}
	assert.Equal(t, int64(5000), tx.SettledAmount())

	tx.ActualAmount = 4800
	assert.Equal(t, int64(4800), tx.SettledAmount())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.False(t, RoleUser.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
}
