package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/service/event"
	"github.com/heartmarshall/storetrack-backend/internal/service/task"
	"github.com/heartmarshall/storetrack-backend/internal/service/timeclock"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

type eventService interface {
	Add(ctx context.Context, input event.AddInput) ([]domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type taskService interface {
	Add(ctx context.Context, input task.AddInput) ([]domain.Task, error)
	Complete(ctx context.Context, id uuid.UUID) (*task.CompleteResult, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListCompleted(ctx context.Context) ([]domain.CompletedTask, error)
	OverdueNotices(ctx context.Context) ([]string, error)
}

type timeclockService interface {
	Clock(ctx context.Context, input timeclock.ClockInput) (*timeclock.ClockResult, error)
	Logs(ctx context.Context) ([]domain.StaffLog, error)
	Payroll(ctx context.Context) ([]domain.PayrollEntry, error)
	StaffNames(ctx context.Context) ([]string, error)
}

// DashboardHandler serves the dashboard view and its mutation endpoints:
// events, tasks and time-clock punches.
type DashboardHandler struct {
	events    eventService
	tasks     taskService
	timeclock timeclockService
	log       *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(events eventService, tasks taskService, tc timeclockService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		events:    events,
		tasks:     tasks,
		timeclock: tc,
		log:       logger.With("handler", "dashboard"),
	}
}

type dashboardResponse struct {
	Username       string                 `json:"username"`
	Role           string                 `json:"role"`
	Events         []domain.Event         `json:"events"`
	Tasks          []domain.Task          `json:"tasks"`
	CompletedTasks []domain.CompletedTask `json:"completed_tasks"`
	StaffLogs      []domain.StaffLog      `json:"staff_logs"`
	Payroll        []domain.PayrollEntry  `json:"payroll"`
	StaffNames     []string               `json:"staff_names"`
	Notifications  []string               `json:"notifications"`
}

// View handles GET /dashboard: the full role-scoped dashboard state.
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		handleViewError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	events, err := h.events.List(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	tasks, err := h.tasks.List(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	completed, err := h.tasks.ListCompleted(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	logs, err := h.timeclock.Logs(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	payroll, err := h.timeclock.Payroll(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	names, err := h.timeclock.StaffNames(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}
	notices, err := h.tasks.OverdueNotices(ctx)
	if err != nil {
		handleViewError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Username:       actor.Username,
		Role:           actor.Role,
		Events:         events,
		Tasks:          tasks,
		CompletedTasks: completed,
		StaffLogs:      logs,
		Payroll:        payroll,
		StaffNames:     names,
		Notifications:  notices,
	})
}

// AddEvent handles POST /add_event.
func (h *DashboardHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	events, err := h.events.Add(r.Context(), event.AddInput{
		Date:        r.PostFormValue("event_date"),
		Description: r.PostFormValue("event_description"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// AddTask handles POST /add_task.
func (h *DashboardHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	tasks, err := h.tasks.Add(r.Context(), task.AddInput{
		Time:        r.PostFormValue("task_time"),
		Date:        r.PostFormValue("task_date"),
		Description: r.PostFormValue("task_description"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// CompleteTask handles POST /complete_task. The task moves from the
// pending to the completed collection in one atomic step.
func (h *DashboardHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	id, err := uuid.Parse(r.PostFormValue("task_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	result, err := h.tasks.Complete(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":           result.Pending,
		"completed_tasks": result.Completed,
	})
}

// LogStaffTime handles POST /log_staff_time: a clock-in or clock-out
// punch, returning the scoped logs and payroll after the write.
func (h *DashboardHandler) LogStaffTime(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	result, err := h.timeclock.Clock(r.Context(), timeclock.ClockInput{
		Name:      r.PostFormValue("staff_name"),
		Direction: domain.ClockDirection(r.PostFormValue("time_type")),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"staff_logs": result.Logs,
		"payroll":    result.Payroll,
	})
}
