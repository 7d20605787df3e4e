package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned by DeleteNth when the position does not
// refer to any of the user's tasks.
var ErrOutOfRange = errors.New("task number out of range")

const dateLayout = "2006-01-02"

// Task is a user-owned record with a description and a date interval.
// Start/End are stored as timestamps; the command layer always supplies
// local midnight, and the today/week/month queries rely on that.
type Task struct {
	ID          int64
	UserID      int64
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

func (t Task) String() string {
	return fmt.Sprintf("%s (Start: %s, End: %s)",
		t.Description, t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout))
}

// Store holds all persisted tasks, partitioned by user id.
//
// Per-user display order is insertion order (ascending id), and DeleteNth
// addresses that same order: "delete n" removes the n-th task that a
// ListByUser call at the same moment would have shown.
type Store interface {
	// Create inserts a new task and returns it with its assigned id.
	// Field values are stored as given; validation is the caller's job.
	Create(ctx context.Context, userID int64, description string, start, end time.Time) (Task, error)

	// ListByUser returns all of the user's tasks, oldest first.
	ListByUser(ctx context.Context, userID int64) ([]Task, error)

	// DeleteNth removes and returns the task at 1-based position n in the
	// user's list. ErrOutOfRange if n <= 0 or n exceeds the list length.
	DeleteNth(ctx context.Context, userID int64, n int) (Task, error)

	// ListOverdue returns the user's tasks with end_date strictly before now.
	ListOverdue(ctx context.Context, userID int64, now time.Time) ([]Task, error)

	// ListInRange returns the user's tasks whose interval fully covers
	// [rangeStart, rangeEnd]: start_date <= rangeStart AND end_date >= rangeEnd.
	ListInRange(ctx context.Context, userID int64, rangeStart, rangeEnd time.Time) ([]Task, error)

	Close() error
}
