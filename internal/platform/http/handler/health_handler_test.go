package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func livenessEngine() *gin.Engine {
	r := gin.New()
	r.Any("/healthz", Health)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	r := livenessEngine()

	tests := []struct {
		method     string
		wantStatus int
		wantBody   bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodPost, http.StatusOK, true},
		{http.MethodPut, http.StatusOK, true},
		{http.MethodDelete, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			if !tt.wantBody {
				assert.Zero(t, w.Body.Len())
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"status": "ok"}, body)
		})
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		wantState  string
		wantChecks map[string]string
	}{
		{"no checks", map[string]Check{}, http.StatusOK, "ok", map[string]string{}},
		{"all up", map[string]Check{"db": up, "redis": up}, http.StatusOK, "ok", map[string]string{"db": "up", "redis": "up"}},
		{"one down", map[string]Check{"db": up, "redis": down}, http.StatusServiceUnavailable, "unavailable", map[string]string{"db": "up", "redis": "down"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/readyz", Ready(tt.checks))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}

func TestReady_ChecksShareDeadline(t *testing.T) {
	t.Parallel()

	var deadlineSet bool
	check := func(ctx context.Context) error {
		_, deadlineSet = ctx.Deadline()
		return nil
	}
	r := gin.New()
	r.GET("/readyz", Ready(map[string]Check{"db": check}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.True(t, deadlineSet)
}
