package models

import (
	"math"
	"time"
)

// GameStatus defines the lifecycle of a squares game.
type GameStatus string

const (
	GameSetup     GameStatus = "SETUP"
	GameActive    GameStatus = "ACTIVE"
	GameLocked    GameStatus = "LOCKED"
	GameLive      GameStatus = "LIVE"
	GameResolved  GameStatus = "RESOLVED"
	GameCancelled GameStatus = "CANCELLED"
)

// IsOpen reports whether squares may still be purchased.
func (s GameStatus) IsOpen() bool {
	return s == GameSetup || s == GameActive
}

// Period identifies a scoring checkpoint. Periods 5 and 6 are overtime and
// pay out at period 4's fraction.
type Period string

const (
	Period1 Period = "PERIOD_1"
	Period2 Period = "PERIOD_2"
	Period3 Period = "PERIOD_3"
	Period4 Period = "PERIOD_4"
	Period5 Period = "PERIOD_5"
	Period6 Period = "PERIOD_6"
)

// IsValid reports whether the period is one of PERIOD_1..PERIOD_6.
func (p Period) IsValid() bool {
	switch p {
	case Period1, Period2, Period3, Period4, Period5, Period6:
		return true
	}
	return false
}

// payoutStructureTolerance is the allowed deviation of the fraction sum
// from 1.0 at game creation.
const payoutStructureTolerance = 0.001

// PayoutStructure holds the pot fraction paid at each of the four regular
// periods. Overtime reuses Period4.
type PayoutStructure struct {
	Period1 float64 `json:"period1" dynamodbav:"period1"`
	Period2 float64 `json:"period2" dynamodbav:"period2"`
	Period3 float64 `json:"period3" dynamodbav:"period3"`
	Period4 float64 `json:"period4" dynamodbav:"period4"`
}

// IsValid reports whether the four fractions sum to 1.0 within tolerance
// and none is negative.
func (ps PayoutStructure) IsValid() bool {
	if ps.Period1 < 0 || ps.Period2 < 0 || ps.Period3 < 0 || ps.Period4 < 0 {
		return false
	}
	sum := ps.Period1 + ps.Period2 + ps.Period3 + ps.Period4
	return math.Abs(sum-1.0) <= payoutStructureTolerance
}

// FractionFor returns the pot fraction paid for the given period.
func (ps PayoutStructure) FractionFor(p Period) float64 {
	switch p {
	case Period1:
		return ps.Period1
	case Period2:
		return ps.Period2
	case Period3:
		return ps.Period3
	default:
		// Period 4 and both overtime periods.
		return ps.Period4
	}
}

// SquaresGame is a 10x10 grid wagering game. RowNumbers and ColNumbers are
// permutations of 0-9 assigned at lock time; empty until NumbersAssigned.
// Version is an optimistic lock counter bumped on every game write.
type SquaresGame struct {
	Id              string          `json:"id" dynamodbav:"id"`
	Name            string          `json:"name" dynamodbav:"name"`
	PricePerSquare  int64           `json:"price_per_square" dynamodbav:"price_per_square"`
	TotalPot        int64           `json:"total_pot" dynamodbav:"total_pot"`
	SquaresSold     int             `json:"squares_sold" dynamodbav:"squares_sold"`
	PayoutStructure PayoutStructure `json:"payout_structure" dynamodbav:"payout_structure"`
	Status          GameStatus      `json:"status" dynamodbav:"status"`
	NumbersAssigned bool            `json:"numbers_assigned" dynamodbav:"numbers_assigned"`
	RowNumbers      []int           `json:"row_numbers,omitempty" dynamodbav:"row_numbers,omitempty"`
	ColNumbers      []int           `json:"col_numbers,omitempty" dynamodbav:"col_numbers,omitempty"`
	EventStartTime  time.Time       `json:"event_start_time" dynamodbav:"event_start_time"`
	CancelReason    string          `json:"cancel_reason,omitempty" dynamodbav:"cancel_reason,omitempty"`
	Version         int64           `json:"version" dynamodbav:"version"`
	CreatedAt       time.Time       `json:"created_at" dynamodbav:"created_at"`
}

// SquaresPurchase is one owned cell. Its Id doubles as the occupancy key,
// so a conditional put enforces exclusive cell ownership at the store.
type SquaresPurchase struct {
	Id            string    `json:"id" dynamodbav:"id"`
	GameId        string    `json:"game_id" dynamodbav:"game_id"`
	UserId        string    `json:"user_id" dynamodbav:"user_id"`
	OwnerName     string    `json:"owner_name" dynamodbav:"owner_name"`
	GridRow       int       `json:"grid_row" dynamodbav:"grid_row"`
	GridCol       int       `json:"grid_col" dynamodbav:"grid_col"`
	Amount        int64     `json:"amount" dynamodbav:"amount"`
	TransactionId string    `json:"transaction_id" dynamodbav:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
}

// SquaresPayout records one settled period. Its Id is the per-(game, period)
// idempotency key. Amount is net of the platform fee.
type SquaresPayout struct {
	Id            string    `json:"id" dynamodbav:"id"`
	GameId        string    `json:"game_id" dynamodbav:"game_id"`
	Period        Period    `json:"period" dynamodbav:"period"`
	PurchaseId    string    `json:"purchase_id" dynamodbav:"purchase_id"`
	WinnerUserId  string    `json:"winner_user_id" dynamodbav:"winner_user_id"`
	Amount        int64     `json:"amount" dynamodbav:"amount"`
	GrossAmount   int64     `json:"gross_amount" dynamodbav:"gross_amount"`
	HomeScore     int       `json:"home_score" dynamodbav:"home_score"`
	AwayScore     int       `json:"away_score" dynamodbav:"away_score"`
	TransactionId string    `json:"transaction_id" dynamodbav:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
}

// InvitationStatus defines the states of a game invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

// Invitation is a pending request for a user to join a game. It is
// auto-accepted on the user's first purchase in that game.
type Invitation struct {
	Id        string           `json:"id" dynamodbav:"id"`
	GameId    string           `json:"game_id" dynamodbav:"game_id"`
	UserId    string           `json:"user_id" dynamodbav:"user_id"`
	Status    InvitationStatus `json:"status" dynamodbav:"status"`
	CreatedAt time.Time        `json:"created_at" dynamodbav:"created_at"`
}
