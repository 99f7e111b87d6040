package jsonstore

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// TaskRepo persists the pending and completed task collections. The two
// documents are always rewritten as a pair when a task moves between them.
type TaskRepo struct {
	pending   *Collection[domain.Task]
	completed *Collection[domain.CompletedTask]
}

func NewTaskRepo(s *Store) *TaskRepo {
	return &TaskRepo{
		pending:   NewCollection[domain.Task](s, "tasks"),
		completed: NewCollection[domain.CompletedTask](s, "completed_tasks"),
	}
}

// List returns all pending tasks in insertion order.
func (r *TaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	return r.pending.All(ctx)
}

// ListCompleted returns all completed tasks in completion order.
func (r *TaskRepo) ListCompleted(ctx context.Context) ([]domain.CompletedTask, error) {
	return r.completed.All(ctx)
}

// Append adds a pending task and returns the pending collection after the
// write.
func (r *TaskRepo) Append(ctx context.Context, task domain.Task) ([]domain.Task, error) {
	return r.pending.Update(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		return append(tasks, task), nil
	})
}

// Update applies fn to both task collections and persists them together;
// the pending and completed lists never diverge mid-write.
func (r *TaskRepo) Update(
	ctx context.Context,
	fn func(pending []domain.Task, completed []domain.CompletedTask) ([]domain.Task, []domain.CompletedTask, error),
) error {
	return UpdatePair(ctx, r.pending, r.completed, fn)
}
