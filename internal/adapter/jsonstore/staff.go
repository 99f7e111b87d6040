package jsonstore

import (
	"context"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// StaffRepo persists time-clock entries and the derived payroll
// collection. A clock-out that generates pay rewrites both documents in
// one atomic section.
type StaffRepo struct {
	logs    *Collection[domain.StaffLog]
	payroll *Collection[domain.PayrollEntry]
}

func NewStaffRepo(s *Store) *StaffRepo {
	return &StaffRepo{
		logs:    NewCollection[domain.StaffLog](s, "staff"),
		payroll: NewCollection[domain.PayrollEntry](s, "payroll"),
	}
}

// Logs returns all time-clock entries in insertion order.
func (r *StaffRepo) Logs(ctx context.Context) ([]domain.StaffLog, error) {
	return r.logs.All(ctx)
}

// Payroll returns all payroll entries in insertion order.
func (r *StaffRepo) Payroll(ctx context.Context) ([]domain.PayrollEntry, error) {
	return r.payroll.All(ctx)
}

// Update applies fn to the time-clock and payroll collections and
// persists both before returning.
func (r *StaffRepo) Update(
	ctx context.Context,
	fn func(logs []domain.StaffLog, payroll []domain.PayrollEntry) ([]domain.StaffLog, []domain.PayrollEntry, error),
) error {
	return UpdatePair(ctx, r.logs, r.payroll, fn)
}
