// Package router builds the HTTP route table.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"account_backend/internal/app/di"
	"account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/http/response"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/logger"
	"account_backend/internal/platform/metrics"
	"account_backend/internal/shared/ratelimiter"
)

// MsgTooManyAttempts is returned when a client exceeds the credential rate limit.
const MsgTooManyAttempts = "Too Many Attempts."

// Options are the optional HTTP behaviours.
type Options struct {
	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string

	// CredentialLimit caps POST /login and POST /register per client IP
	// within CredentialInterval. Zero disables the limit.
	CredentialLimit    int
	CredentialInterval time.Duration
}

func NewRouter(c *di.Container, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(), metrics.Middleware())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	credentials := func(c *gin.Context) { c.Next() }
	if opts.CredentialLimit > 0 {
		credentials = throttle(ratelimiter.NewRateLimiter(opts.CredentialLimit, opts.CredentialInterval))
	}

	// Probes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(c.Ready))
	r.GET("/metrics", metrics.Handler())

	// Public
	r.POST("/register", credentials, c.Users.Register)
	r.POST("/login", credentials, c.Auth.Login)
	r.GET("/users", c.Users.List)
	r.GET("/users/:id", c.Users.Show)

	// Bearer token required
	auth := r.Group("/")
	auth.Use(c.Bearer)
	{
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/profile", c.Auth.Profile)
		auth.PUT("/user/update", c.Auth.UpdateSelf)
		auth.PUT("/profile/update", c.Auth.UpdateSelf)
		auth.PUT("/users/:id/profile", c.Users.UpdateProfile)
	}

	// Admin only
	admin := auth.Group("/")
	admin.Use(jwtmw.AdminOnly())
	{
		admin.PUT("/users/:id", c.Users.Update)
		admin.DELETE("/users/:id", c.Users.Destroy)
	}

	return r
}

func throttle(limiter ratelimiter.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.Abort(c, http.StatusTooManyRequests, MsgTooManyAttempts)
			return
		}
		c.Next()
	}
}
