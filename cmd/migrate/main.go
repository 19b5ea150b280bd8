// Command migrate creates the schema and optionally seeds an admin account.
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"account_backend/internal/config"
	"account_backend/internal/feature/auth/adapters"
	usersadapters "account_backend/internal/feature/users/adapters"
	"account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logger"
	"account_backend/internal/platform/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Fatal("failed to set up logger")
	}

	gdb, err := db.Open(cfg.DBConnection())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
	logrus.Info("migration completed")

	if !cfg.SeedAdmin() {
		return
	}

	users := usecase.NewUserUsecase(
		usersadapters.NewUserGorm(gdb),
		password.NewBcrypt(cfg.Auth.BcryptCost),
		adapters.NewTokenGorm(gdb),
	)
	view, created, err := users.SeedAdmin(ctx, usecase.CreateInput{
		Username:  cfg.Admin.Username,
		FirstName: "Admin",
		LastName:  "User",
		Email:     cfg.Admin.Email,
		Password:  cfg.Admin.Password,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to seed admin")
	}
	logrus.WithFields(logrus.Fields{"user_id": view.ID, "email": view.Email, "created": created}).Info("admin account ready")
}
