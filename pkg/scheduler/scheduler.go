package scheduler

import (
	"context"
	"time"
)

// LockRequest is the message body carried by a scheduled grid lock.
type LockRequest struct {
	GameID string `json:"game_id"`
	// LockAt is the time the grid should actually lock. The consumer
	// re-enqueues the request while this is still in the future, because a
	// single SQS delay tops out at 15 minutes.
	LockAt time.Time `json:"lock_at"`
}

// LockScheduler defines the interface for a component that schedules a
// game's grid lock for the underlying event's start time.
type LockScheduler interface {
	// ScheduleGridLock enqueues a lock request to fire at req.LockAt, or as
	// close to it as the transport's delay ceiling allows.
	ScheduleGridLock(ctx context.Context, req LockRequest) error
}
