package timeclock

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/pkg/ctxutil"
)

// staffRepo defines the repository interface needed by the time-clock
// service. Update must persist the time-clock and payroll collections
// together.
type staffRepo interface {
	Logs(ctx context.Context) ([]domain.StaffLog, error)
	Payroll(ctx context.Context) ([]domain.PayrollEntry, error)
	Update(ctx context.Context, fn func(logs []domain.StaffLog, payroll []domain.PayrollEntry) ([]domain.StaffLog, []domain.PayrollEntry, error)) error
}

// Service implements staff clock-in/out and payroll derivation.
type Service struct {
	log        *slog.Logger
	staff      staffRepo
	hourlyRate float64
	now        func() time.Time
}

// NewService creates a new time-clock service instance.
func NewService(logger *slog.Logger, staff staffRepo, cfg config.PayrollConfig) *Service {
	return &Service{
		log:        logger.With("service", "timeclock"),
		staff:      staff,
		hourlyRate: cfg.HourlyRate,
		now:        time.Now,
	}
}

// ClockInput holds parameters for the clock operation.
type ClockInput struct {
	Name      string
	Direction domain.ClockDirection
}

// Validate validates the clock input.
func (i ClockInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "staff_name", Message: "required"})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "time_type", Message: "must be in or out"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ClockResult carries both collections after a punch.
type ClockResult struct {
	Logs    []domain.StaffLog
	Payroll []domain.PayrollEntry
}

// Clock records a time-clock punch.
//
// "in" fails while an open entry exists for the name; "out" closes the
// most recent open entry (reverse insertion-order scan) and fails when
// there is none. A close with positive worked hours appends a payroll
// entry of hours times the hourly rate, rounded to 2 decimals and dated
// today, but only when the acting session holds the manager role.
func (s *Service) Clock(ctx context.Context, input ClockInput) (*ClockResult, error) {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var result ClockResult
	err := s.staff.Update(ctx, func(logs []domain.StaffLog, payroll []domain.PayrollEntry) ([]domain.StaffLog, []domain.PayrollEntry, error) {
		openIdx := -1
		for i := len(logs) - 1; i >= 0; i-- {
			if logs[i].Name == input.Name && logs[i].IsOpen() {
				openIdx = i
				break
			}
		}

		switch input.Direction {
		case domain.ClockIn:
			if openIdx >= 0 {
				return nil, nil, domain.NewValidationError("staff_name",
					fmt.Sprintf("%s already has an open time-in", input.Name))
			}
			logs = append(logs, domain.StaffLog{
				ID:     uuid.New(),
				Name:   input.Name,
				TimeIn: now.Format(domain.TimestampLayout),
			})

		case domain.ClockOut:
			if openIdx < 0 {
				return nil, nil, domain.NewValidationError("staff_name",
					fmt.Sprintf("no open time-in found for %s", input.Name))
			}
			out := now.Format(domain.TimestampLayout)
			logs[openIdx].TimeOut = &out

			if hours := logs[openIdx].Hours(); hours > 0 && actor.IsManager() {
				payroll = append(payroll, domain.PayrollEntry{
					ID:     uuid.New(),
					Name:   input.Name,
					Amount: round2(hours * s.hourlyRate),
					Date:   now.Format(domain.DateLayout),
				})
			}
		}

		result.Logs = logs
		result.Payroll = payroll
		return logs, payroll, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "time-clock punch",
		slog.String("staff_name", input.Name),
		slog.String("direction", input.Direction.String()),
		slog.String("by", actor.Username),
	)

	result.Logs = scopeLogs(result.Logs, actor)
	result.Payroll = scopePayroll(result.Payroll, actor)
	return &result, nil
}

// Logs returns time-clock entries visible to the session: everything for
// managers, own entries only for staff.
func (s *Service) Logs(ctx context.Context) ([]domain.StaffLog, error) {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	logs, err := s.staff.Logs(ctx)
	if err != nil {
		return nil, err
	}
	return scopeLogs(logs, actor), nil
}

// Payroll returns payroll entries visible to the session, scoped the same
// way as Logs.
func (s *Service) Payroll(ctx context.Context) ([]domain.PayrollEntry, error) {
	actor, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	payroll, err := s.staff.Payroll(ctx)
	if err != nil {
		return nil, err
	}
	return scopePayroll(payroll, actor), nil
}

// StaffNames returns the distinct names appearing in the time-clock
// collection, sorted.
func (s *Service) StaffNames(ctx context.Context) ([]string, error) {
	logs, err := s.staff.Logs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(logs))
	var names []string
	for _, l := range logs {
		if _, ok := seen[l.Name]; ok {
			continue
		}
		seen[l.Name] = struct{}{}
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names, nil
}

func scopeLogs(logs []domain.StaffLog, actor ctxutil.Identity) []domain.StaffLog {
	if actor.IsManager() {
		return logs
	}
	scoped := make([]domain.StaffLog, 0, len(logs))
	for _, l := range logs {
		if l.Name == actor.Username {
			scoped = append(scoped, l)
		}
	}
	return scoped
}

func scopePayroll(payroll []domain.PayrollEntry, actor ctxutil.Identity) []domain.PayrollEntry {
	if actor.IsManager() {
		return payroll
	}
	scoped := make([]domain.PayrollEntry, 0, len(payroll))
	for _, p := range payroll {
		if p.Name == actor.Username {
			scoped = append(scoped, p)
		}
	}
	return scoped
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
