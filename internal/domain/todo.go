package domain

import "time"

// TimestampPrecision is the resolution at which timestamps are persisted.
// Every supported datastore stores microseconds, so values are truncated
// before being written to keep round trips exact.
const TimestampPrecision = time.Microsecond

// Todo is the single entity of the service: a task with a completion flag.
type Todo struct {
	ID        int64
	Title     string
	Completed bool

	// CreatedAt is set once on insert. UpdatedAt equals CreatedAt on insert
	// and is re-stamped on every mutation, so UpdatedAt >= CreatedAt holds.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Now returns the current UTC time at persisted precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}

// NewTodo builds an unsaved todo with both timestamps set to now.
func NewTodo(title Title, now time.Time) *Todo {
	return &Todo{
		Title:     title.String(),
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
