package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusStarted   TaskStatus = "started"
	StatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known status values. Transitions
// between statuses are deliberately unrestricted: any status may be set to
// any other, so membership is the only check.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusStarted, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of user work. Every task has exactly one owner and is only
// ever read or mutated through operations scoped by that owner's id.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskStats holds per-status counts over one user's task set.
type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Started   int `json:"started"`
	Completed int `json:"completed"`
}
