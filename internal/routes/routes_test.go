package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanvzd/nlw-pocket/internal/app"
	"github.com/renanvzd/nlw-pocket/internal/config"
	"github.com/renanvzd/nlw-pocket/internal/middleware"
)

func setup(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		AppEnv:               "development",
		DBDriver:             "sqlite",
		DBConnection:         filepath.Join(t.TempDir(), "routes.db") + "?_pragma=foreign_keys(1)",
		WeekStart:            time.Sunday,
		StoreBreakerFailures: 5,
		StoreBreakerTimeout:  time.Second,
		RateLimitWrites:      2,
		RateLimitWindow:      time.Minute,
	}

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close()
	})

	return SetupRoutes(a)
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h := setup(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/summary", http.StatusOK},
		{http.MethodGet, "/pending-goals", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(h, tt.method, tt.path, "")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestWritesAreRateLimited(t *testing.T) {
	h := setup(t)

	body := `{"title":"Read","desiredWeeklyFrequency":2}`
	assert.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/goals", body).Code)
	assert.Equal(t, http.StatusCreated, serve(h, http.MethodPost, "/goals", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodPost, "/goals", body).Code)

	// reads share no budget with writes
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/summary", "").Code)
}
