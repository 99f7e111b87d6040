package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/domain"
	"github.com/heartmarshall/storetrack-backend/internal/service/auth"
	"github.com/heartmarshall/storetrack-backend/internal/service/event"
	"github.com/heartmarshall/storetrack-backend/internal/service/inventory"
	"github.com/heartmarshall/storetrack-backend/internal/service/order"
	"github.com/heartmarshall/storetrack-backend/internal/service/task"
	"github.com/heartmarshall/storetrack-backend/internal/service/timeclock"
)

type authServiceMock struct {
	LoginFunc func(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	return m.LoginFunc(ctx, input)
}

type eventServiceMock struct {
	AddFunc  func(ctx context.Context, input event.AddInput) ([]domain.Event, error)
	ListFunc func(ctx context.Context) ([]domain.Event, error)
}

func (m *eventServiceMock) Add(ctx context.Context, input event.AddInput) ([]domain.Event, error) {
	return m.AddFunc(ctx, input)
}

func (m *eventServiceMock) List(ctx context.Context) ([]domain.Event, error) {
	return m.ListFunc(ctx)
}

type taskServiceMock struct {
	AddFunc            func(ctx context.Context, input task.AddInput) ([]domain.Task, error)
	CompleteFunc       func(ctx context.Context, id uuid.UUID) (*task.CompleteResult, error)
	ListFunc           func(ctx context.Context) ([]domain.Task, error)
	ListCompletedFunc  func(ctx context.Context) ([]domain.CompletedTask, error)
	OverdueNoticesFunc func(ctx context.Context) ([]string, error)
}

func (m *taskServiceMock) Add(ctx context.Context, input task.AddInput) ([]domain.Task, error) {
	return m.AddFunc(ctx, input)
}

func (m *taskServiceMock) Complete(ctx context.Context, id uuid.UUID) (*task.CompleteResult, error) {
	return m.CompleteFunc(ctx, id)
}

func (m *taskServiceMock) List(ctx context.Context) ([]domain.Task, error) {
	return m.ListFunc(ctx)
}

func (m *taskServiceMock) ListCompleted(ctx context.Context) ([]domain.CompletedTask, error) {
	return m.ListCompletedFunc(ctx)
}

func (m *taskServiceMock) OverdueNotices(ctx context.Context) ([]string, error) {
	return m.OverdueNoticesFunc(ctx)
}

type timeclockServiceMock struct {
	ClockFunc      func(ctx context.Context, input timeclock.ClockInput) (*timeclock.ClockResult, error)
	LogsFunc       func(ctx context.Context) ([]domain.StaffLog, error)
	PayrollFunc    func(ctx context.Context) ([]domain.PayrollEntry, error)
	StaffNamesFunc func(ctx context.Context) ([]string, error)
}

func (m *timeclockServiceMock) Clock(ctx context.Context, input timeclock.ClockInput) (*timeclock.ClockResult, error) {
	return m.ClockFunc(ctx, input)
}

func (m *timeclockServiceMock) Logs(ctx context.Context) ([]domain.StaffLog, error) {
	return m.LogsFunc(ctx)
}

func (m *timeclockServiceMock) Payroll(ctx context.Context) ([]domain.PayrollEntry, error) {
	return m.PayrollFunc(ctx)
}

func (m *timeclockServiceMock) StaffNames(ctx context.Context) ([]string, error) {
	return m.StaffNamesFunc(ctx)
}

type inventoryServiceMock struct {
	AddItemFunc           func(ctx context.Context, input inventory.AddItemInput) ([]domain.InventoryItem, error)
	BorrowFunc            func(ctx context.Context, input inventory.BorrowInput) error
	ReturnFunc            func(ctx context.Context, borrowID uuid.UUID) error
	ItemsFunc             func(ctx context.Context) ([]domain.InventoryItem, error)
	BorrowsFunc           func(ctx context.Context) ([]domain.BorrowRecord, error)
	ItemNamesFunc         func(ctx context.Context) ([]string, error)
	OverdueNoticesFunc    func(ctx context.Context) ([]string, error)
	LowStockThresholdFunc func() int
}

func (m *inventoryServiceMock) AddItem(ctx context.Context, input inventory.AddItemInput) ([]domain.InventoryItem, error) {
	return m.AddItemFunc(ctx, input)
}

func (m *inventoryServiceMock) Borrow(ctx context.Context, input inventory.BorrowInput) error {
	return m.BorrowFunc(ctx, input)
}

func (m *inventoryServiceMock) Return(ctx context.Context, borrowID uuid.UUID) error {
	return m.ReturnFunc(ctx, borrowID)
}

func (m *inventoryServiceMock) Items(ctx context.Context) ([]domain.InventoryItem, error) {
	return m.ItemsFunc(ctx)
}

func (m *inventoryServiceMock) Borrows(ctx context.Context) ([]domain.BorrowRecord, error) {
	return m.BorrowsFunc(ctx)
}

func (m *inventoryServiceMock) ItemNames(ctx context.Context) ([]string, error) {
	return m.ItemNamesFunc(ctx)
}

func (m *inventoryServiceMock) OverdueNotices(ctx context.Context) ([]string, error) {
	return m.OverdueNoticesFunc(ctx)
}

func (m *inventoryServiceMock) LowStockThreshold() int {
	if m.LowStockThresholdFunc == nil {
		return 5
	}
	return m.LowStockThresholdFunc()
}

type orderServiceMock struct {
	PlaceFunc        func(ctx context.Context, input order.PlaceInput) error
	ListFunc         func(ctx context.Context) ([]domain.OrderRecord, error)
	TotalRevenueFunc func(ctx context.Context) (float64, error)
}

func (m *orderServiceMock) Place(ctx context.Context, input order.PlaceInput) error {
	return m.PlaceFunc(ctx, input)
}

func (m *orderServiceMock) List(ctx context.Context) ([]domain.OrderRecord, error) {
	return m.ListFunc(ctx)
}

func (m *orderServiceMock) TotalRevenue(ctx context.Context) (float64, error) {
	return m.TotalRevenueFunc(ctx)
}
