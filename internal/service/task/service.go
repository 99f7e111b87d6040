package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// taskRepo defines the repository interface needed by the task service.
// Update must persist the pending and completed collections together.
type taskRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	ListCompleted(ctx context.Context) ([]domain.CompletedTask, error)
	Append(ctx context.Context, task domain.Task) ([]domain.Task, error)
	Update(ctx context.Context, fn func(pending []domain.Task, completed []domain.CompletedTask) ([]domain.Task, []domain.CompletedTask, error)) error
}

// Service implements the pending → completed task lifecycle.
type Service struct {
	log          *slog.Logger
	tasks        taskRepo
	overdueAfter time.Duration
	now          func() time.Time
}

// NewService creates a new task service instance.
func NewService(logger *slog.Logger, tasks taskRepo, cfg config.TasksConfig) *Service {
	return &Service{
		log:          logger.With("service", "task"),
		tasks:        tasks,
		overdueAfter: cfg.OverdueAfter,
		now:          time.Now,
	}
}

// AddInput holds parameters for the add-task operation.
type AddInput struct {
	Time        string
	Date        string
	Description string
}

// Validate validates the add-task input.
func (i AddInput) Validate() error {
	var errs []domain.FieldError

	if i.Time == "" {
		errs = append(errs, domain.FieldError{Field: "task_time", Message: "required"})
	}
	if i.Date == "" {
		errs = append(errs, domain.FieldError{Field: "task_date", Message: "required"})
	}
	if i.Description == "" {
		errs = append(errs, domain.FieldError{Field: "task_description", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Add appends a pending task and returns the pending collection after
// the write.
func (s *Service) Add(ctx context.Context, input AddInput) ([]domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.Append(ctx, domain.Task{
		ID:          uuid.New(),
		Time:        input.Time,
		Date:        input.Date,
		Description: input.Description,
		Status:      domain.TaskStatusPending,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "task added",
		slog.String("date", input.Date),
		slog.String("description", input.Description),
	)

	return tasks, nil
}

// CompleteResult carries both task lists after a completion.
type CompleteResult struct {
	Pending   []domain.Task
	Completed []domain.CompletedTask
}

// Complete moves the identified pending task to the completed collection,
// stamping the completion time. The transition is one-way; both documents
// are rewritten before the call returns. Returns ErrNotFound if no
// pending task has the given id.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*CompleteResult, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("task_id", "required")
	}

	var result CompleteResult
	err := s.tasks.Update(ctx, func(pending []domain.Task, completed []domain.CompletedTask) ([]domain.Task, []domain.CompletedTask, error) {
		idx := -1
		for i, t := range pending {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}

		done := pending[idx].Complete(s.now())
		pending = append(pending[:idx], pending[idx+1:]...)
		completed = append(completed, done)

		result.Pending = pending
		result.Completed = completed
		return pending, completed, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "task completed", slog.String("task_id", id.String()))

	return &result, nil
}

// List returns all pending tasks.
func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

// ListCompleted returns all completed tasks.
func (s *Service) ListCompleted(ctx context.Context) ([]domain.CompletedTask, error) {
	return s.tasks.ListCompleted(ctx)
}

// OverdueNotices returns a human-readable notice for every pending task
// whose due date lies more than the configured threshold in the past.
// Read-only; recomputed on every dashboard view.
func (s *Service) OverdueNotices(ctx context.Context) ([]string, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var notices []string
	for _, t := range tasks {
		if t.OverdueAt(now, s.overdueAfter) {
			notices = append(notices, fmt.Sprintf("Task '%s' is overdue (Due: %s)!", t.Description, t.Date))
		}
	}
	return notices, nil
}
