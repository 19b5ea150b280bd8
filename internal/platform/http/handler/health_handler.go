// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Health handles the /healthz liveness endpoint. HEAD gets an empty 200 and
// OPTIONS an empty 204; every other method gets {"status":"ok"}.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if status, bodyless := bodylessStatus[c.Request.Method]; bodyless {
		c.Status(status)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var bodylessStatus = map[string]int{
	http.MethodHead:    http.StatusOK,
	http.MethodOptions: http.StatusNoContent,
}

// Check probes one dependency.
type Check func(ctx context.Context) error

// readyTimeout bounds the whole readiness probe.
const readyTimeout = 2 * time.Second

// Ready handles the /readyz endpoint. It answers 503 when any check fails.
func Ready(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(gin.H, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logrus.WithError(err).WithField("check", name).Warn("readiness check failed")
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
