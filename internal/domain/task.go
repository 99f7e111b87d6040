package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a pending scheduled task. Completion removes the record from the
// tasks collection and appends a CompletedTask to the completed collection;
// the two lists are always disjoint.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Time        string     `json:"time"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// CompletedTask is a task that has been completed. It carries the original
// task fields with the status overwritten and a completion timestamp.
type CompletedTask struct {
	Task
	CompletedAt string `json:"completed_at"`
}

// Complete returns the completed form of the task, stamped at now.
func (t Task) Complete(now time.Time) CompletedTask {
	done := t
	done.Status = TaskStatusCompleted
	return CompletedTask{
		Task:        done,
		CompletedAt: now.Format(TimestampLayout),
	}
}

// OverdueAt reports whether the task's due date lies more than threshold
// in the past at the given instant. Unparseable dates are never overdue.
func (t Task) OverdueAt(now time.Time, threshold time.Duration) bool {
	due, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return false
	}
	return now.Sub(due) > threshold
}
