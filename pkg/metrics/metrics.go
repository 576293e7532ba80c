// Package metrics exposes the core's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsSettled counts admin settlements by type and outcome.
	TransactionsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridline_transactions_settled_total",
		Help: "Admin-settled transactions by type and final status.",
	}, []string{"type", "status"})

	// SquaresPurchased counts sold squares.
	SquaresPurchased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridline_squares_purchased_total",
		Help: "Squares sold across all games.",
	})

	// PayoutsRecorded counts period settlements by outcome.
	PayoutsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridline_payouts_recorded_total",
		Help: "Period settlements by outcome (paid, no_winner, duplicate).",
	}, []string{"outcome"})

	// RefundsIssued counts per-buyer refunds from cancelled games.
	RefundsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridline_refunds_issued_total",
		Help: "Per-buyer refund transactions from cancelled games.",
	})

	// GridsLocked counts grids that received their number assignment.
	GridsLocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridline_grids_locked_total",
		Help: "Grids locked with numbers assigned.",
	})
)
