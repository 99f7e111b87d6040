// Command seed bootstraps the data directory with the default manager
// account (admin/admin123). Existing accounts are left untouched. It is
// intended to be run once before the first server start.
//
// Flags:
//
//	--username  account name to create (default: admin)
//	--password  account password (default: admin123)
//	--role      account role, manager or staff (default: manager)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storetrack-backend/internal/adapter/jsonstore"
	"github.com/heartmarshall/storetrack-backend/internal/app"
	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

func main() {
	usernameFlag := flag.String("username", "admin", "account name to create")
	passwordFlag := flag.String("password", "admin123", "account password")
	roleFlag := flag.String("role", "manager", "account role (manager or staff)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	role := domain.Role(*roleFlag)
	if !role.IsValid() {
		logger.Error("invalid role", slog.String("role", *roleFlag))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := jsonstore.New(cfg.Storage, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	users := jsonstore.NewUserRepo(store)
	err = users.Append(ctx, domain.User{
		ID:       uuid.New(),
		Username: *usernameFlag,
		Password: *passwordFlag,
		Role:     role,
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		logger.Info("account already exists, nothing to do", slog.String("username", *usernameFlag))
	case err != nil:
		logger.Error("seed account", slog.String("error", err.Error()))
		os.Exit(1)
	default:
		logger.Info("account created",
			slog.String("username", *usernameFlag),
			slog.String("role", role.String()),
		)
	}
}
