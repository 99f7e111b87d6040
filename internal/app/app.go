package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/storetrack-backend/internal/adapter/jsonstore"
	authpkg "github.com/heartmarshall/storetrack-backend/internal/auth"
	"github.com/heartmarshall/storetrack-backend/internal/config"
	authsvc "github.com/heartmarshall/storetrack-backend/internal/service/auth"
	eventsvc "github.com/heartmarshall/storetrack-backend/internal/service/event"
	inventorysvc "github.com/heartmarshall/storetrack-backend/internal/service/inventory"
	ordersvc "github.com/heartmarshall/storetrack-backend/internal/service/order"
	tasksvc "github.com/heartmarshall/storetrack-backend/internal/service/task"
	timeclocksvc "github.com/heartmarshall/storetrack-backend/internal/service/timeclock"
	"github.com/heartmarshall/storetrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/storetrack-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger and the JSON store, wires the services and HTTP transport,
// and serves until the context is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("data_dir", cfg.Storage.DataDir),
	)

	store, err := jsonstore.New(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("app.Run open store: %w", err)
	}

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := NewRouter(cfg, logger, store, rateLimiter)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app.Run serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app.Run shutdown: %w", err)
	}

	return nil
}

// NewRouter wires repositories, services and handlers into the HTTP
// handler tree. Shared with the e2e test harness.
func NewRouter(cfg *config.Config, logger *slog.Logger, store *jsonstore.Store, rateLimiter *middleware.RateLimiter) http.Handler {
	// Repositories.
	userRepo := jsonstore.NewUserRepo(store)
	eventRepo := jsonstore.NewEventRepo(store)
	taskRepo := jsonstore.NewTaskRepo(store)
	staffRepo := jsonstore.NewStaffRepo(store)
	inventoryRepo := jsonstore.NewInventoryRepo(store)
	orderRepo := jsonstore.NewOrderRepo(store)

	// Session manager.
	sessions := authpkg.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)

	// Services.
	authService := authsvc.NewService(logger, userRepo, sessions)
	eventService := eventsvc.NewService(logger, eventRepo)
	taskService := tasksvc.NewService(logger, taskRepo, cfg.Tasks)
	timeclockService := timeclocksvc.NewService(logger, staffRepo, cfg.Payroll)
	inventoryService := inventorysvc.NewService(logger, inventoryRepo, cfg.Inventory)
	orderService := ordersvc.NewService(logger, orderRepo)

	// Handlers.
	authHandler := rest.NewAuthHandler(authService, cfg.Auth, logger)
	dashboardHandler := rest.NewDashboardHandler(eventService, taskService, timeclockService, logger)
	inventoryHandler := rest.NewInventoryHandler(inventoryService, logger)
	orderHandler := rest.NewOrderHandler(orderService, inventoryService, logger)
	exportHandler := rest.NewExportHandler(taskService, timeclockService, inventoryService, orderService, logger)
	healthHandler := rest.NewHealthHandler(store, BuildVersion())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("POST /login", rateLimiter.Limit(cfg.Server.LoginRateLimit)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /login", authHandler.LoginForm)
	mux.HandleFunc("GET /logout", authHandler.Logout)

	mux.HandleFunc("GET /dashboard", dashboardHandler.View)
	mux.HandleFunc("POST /add_event", dashboardHandler.AddEvent)
	mux.HandleFunc("POST /add_task", dashboardHandler.AddTask)
	mux.HandleFunc("POST /complete_task", dashboardHandler.CompleteTask)
	mux.HandleFunc("POST /log_staff_time", dashboardHandler.LogStaffTime)

	mux.HandleFunc("GET /inventory", inventoryHandler.View)
	mux.HandleFunc("POST /add_item", inventoryHandler.AddItem)
	mux.HandleFunc("POST /borrow_item", inventoryHandler.BorrowItem)
	mux.HandleFunc("POST /return_item", inventoryHandler.ReturnItem)

	mux.HandleFunc("GET /orders", orderHandler.View)
	mux.HandleFunc("POST /add_order", orderHandler.AddOrder)

	mux.HandleFunc("GET /export/tasks", exportHandler.Tasks)
	mux.HandleFunc("GET /export/staff_logs", exportHandler.StaffLogs)
	mux.HandleFunc("GET /export/payroll", exportHandler.Payroll)
	mux.HandleFunc("GET /export/inventory", exportHandler.Inventory)
	mux.HandleFunc("GET /export/borrow_history", exportHandler.BorrowHistory)
	mux.HandleFunc("GET /export/orders", exportHandler.Orders)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Session(authService, cfg.Auth.CookieName),
	)(mux)
}
