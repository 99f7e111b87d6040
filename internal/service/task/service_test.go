package task

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// taskRepoMem is an in-memory taskRepo good enough to exercise the
// lifecycle rules.
type taskRepoMem struct {
	pending   []domain.Task
	completed []domain.CompletedTask
}

func (m *taskRepoMem) List(context.Context) ([]domain.Task, error) { return m.pending, nil }

func (m *taskRepoMem) ListCompleted(context.Context) ([]domain.CompletedTask, error) {
	return m.completed, nil
}

func (m *taskRepoMem) Append(_ context.Context, t domain.Task) ([]domain.Task, error) {
	m.pending = append(m.pending, t)
	return m.pending, nil
}

func (m *taskRepoMem) Update(_ context.Context, fn func([]domain.Task, []domain.CompletedTask) ([]domain.Task, []domain.CompletedTask, error)) error {
	pending, completed, err := fn(m.pending, m.completed)
	if err != nil {
		return err
	}
	m.pending, m.completed = pending, completed
	return nil
}

func newTestService(repo *taskRepoMem, now time.Time) *Service {
	svc := NewService(
		slog.New(slog.NewTextHandler(os.Stderr, nil)),
		repo,
		config.TasksConfig{OverdueAfter: 24 * time.Hour},
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Add(t *testing.T) {
	t.Parallel()

	repo := &taskRepoMem{}
	svc := newTestService(repo, time.Now())

	tasks, err := svc.Add(context.Background(), AddInput{
		Time: "14:00", Date: "2026-03-01", Description: "restock shelves",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].Status != domain.TaskStatusPending {
		t.Errorf("Status = %q, want pending", tasks[0].Status)
	}
	if tasks[0].ID == uuid.Nil {
		t.Error("expected a generated id")
	}
}

func TestService_Add_MissingFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(&taskRepoMem{}, time.Now())

	_, err := svc.Add(context.Background(), AddInput{Time: "14:00"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Add = %v, want ErrValidation", err)
	}
}

func TestService_Complete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &taskRepoMem{
		pending: []domain.Task{
			{ID: uuid.New(), Description: "first", Status: domain.TaskStatusPending},
			{ID: id, Description: "second", Status: domain.TaskStatusPending},
		},
	}
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	result, err := svc.Complete(context.Background(), id)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(result.Pending) != 1 || result.Pending[0].Description != "first" {
		t.Errorf("pending after completion = %+v", result.Pending)
	}
	if len(result.Completed) != 1 {
		t.Fatalf("len(completed) = %d, want 1", len(result.Completed))
	}
	done := result.Completed[0]
	if done.ID != id || done.Status != domain.TaskStatusCompleted {
		t.Errorf("completed = %+v", done)
	}
	if done.CompletedAt != "2026-03-02 09:30:00" {
		t.Errorf("CompletedAt = %q", done.CompletedAt)
	}

	// Pending and completed lists stay disjoint.
	for _, p := range repo.pending {
		if p.ID == id {
			t.Error("completed task still present in pending list")
		}
	}
}

func TestService_Complete_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(&taskRepoMem{}, time.Now())

	_, err := svc.Complete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Complete = %v, want ErrNotFound", err)
	}
}

func TestService_Complete_NoReopen(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &taskRepoMem{
		pending: []domain.Task{{ID: id, Description: "once", Status: domain.TaskStatusPending}},
	}
	svc := newTestService(repo, time.Now())

	if _, err := svc.Complete(context.Background(), id); err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	if _, err := svc.Complete(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Complete = %v, want ErrNotFound", err)
	}
}

func TestService_OverdueNotices(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &taskRepoMem{
		pending: []domain.Task{
			{Description: "fresh", Date: "2026-03-10", Status: domain.TaskStatusPending},
			{Description: "stale", Date: "2026-03-01", Status: domain.TaskStatusPending},
		},
	}
	svc := newTestService(repo, now)

	notices, err := svc.OverdueNotices(context.Background())
	if err != nil {
		t.Fatalf("OverdueNotices: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("len(notices) = %d, want 1: %v", len(notices), notices)
	}
	want := "Task 'stale' is overdue (Due: 2026-03-01)!"
	if notices[0] != want {
		t.Errorf("notice = %q, want %q", notices[0], want)
	}
}
