package routes

import (
	"net/http"

	"github.com/renanvzd/nlw-pocket/internal/app"
	"github.com/renanvzd/nlw-pocket/internal/handler"
	"github.com/renanvzd/nlw-pocket/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	summary := handler.NewSummaryHandler(app.SummaryService)
	goal := handler.NewGoalHandler(app.GoalService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", health.Health)

	// Week progress
	mux.HandleFunc("GET /summary", summary.Summary)
	mux.HandleFunc("GET /pending-goals", goal.PendingGoals)

	// Writes (rate limited per client IP)
	limit := app.RateLimiter.Limit
	mux.HandleFunc("POST /goals", limit(goal.Create))
	mux.HandleFunc("POST /completions", limit(goal.Complete))

	// 404
	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.WithRequestID, // Request ID must be first so the logger sees it
		middleware.RequestLogging,
		middleware.Recover, // Innermost so a panic is still logged with its status
	)

	return handler
}
