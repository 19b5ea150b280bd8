// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authhandler "account_backend/internal/feature/auth/transport/handler"
	authusecase "account_backend/internal/feature/auth/usecase"
	usersadapters "account_backend/internal/feature/users/adapters"
	usershandler "account_backend/internal/feature/users/transport/handler"
	usersusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/http/handler"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/password"
)

// Deps are the external resources and settings the application is built from.
// Redis is optional.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Container holds the wired handlers and middleware.
type Container struct {
	Users  *usershandler.UserHandler
	Auth   *authhandler.AuthHandler
	Bearer gin.HandlerFunc
	Ready  map[string]handler.Check

	// AuthUsecase is exposed for background token purging.
	AuthUsecase *authusecase.AuthUsecase
}

// NewContainer wires repositories, usecases and handlers.
func NewContainer(deps Deps) (*Container, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("di: database is required")
	}

	userRepo := usersadapters.NewUserGorm(deps.DB)
	tokenRepo := NewTokenRepository(deps.Redis, deps.DB)
	hasher := password.NewBcrypt(deps.BcryptCost)
	generator := jwtmw.NewGenerator(deps.JWTSecret)

	users := usersusecase.NewUserUsecase(userRepo, hasher, tokenRepo)
	auth := authusecase.NewAuthUsecase(userRepo, hasher, tokenRepo, generator, users, deps.TokenTTL)

	return &Container{
		Users:       usershandler.NewUserHandler(users),
		Auth:        authhandler.NewAuthHandler(auth),
		Bearer:      jwtmw.AuthRequired(generator, tokenRepo, userRepo),
		Ready:       readinessChecks(deps),
		AuthUsecase: auth,
	}, nil
}

func readinessChecks(deps Deps) map[string]handler.Check {
	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
