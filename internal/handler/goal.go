package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/renanvzd/nlw-pocket/internal/ctxkeys"
	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/renanvzd/nlw-pocket/internal/repository"
	"github.com/renanvzd/nlw-pocket/internal/service"
	"github.com/renanvzd/nlw-pocket/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type createGoalRequest struct {
	Title                  string `json:"title"`
	DesiredWeeklyFrequency int    `json:"desiredWeeklyFrequency"`
}

type completeGoalRequest struct {
	GoalID string `json:"goalId"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.Create(r.Context(), req.Title, req.DesiredWeeklyFrequency)

	var verr *validation.Error
	if errors.As(err, &verr) {
		writeError(w, r, http.StatusBadRequest, verr.Message)
		return
	}

	if err != nil {
		slog.Error("failed to create goal", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]*model.Goal{"goal": goal})
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeGoalRequest
	err := decodeJSON(w, r, &req)
	if err != nil || req.GoalID == "" {
		writeError(w, r, http.StatusBadRequest, "goalId is required")
		return
	}

	completion, err := h.goalService.Complete(r.Context(), req.GoalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		writeError(w, r, http.StatusNotFound, "Goal not found")
		return
	}

	if errors.Is(err, service.ErrGoalAlreadyCompleted) {
		writeError(w, r, http.StatusConflict, "Goal already completed this week")
		return
	}

	if err != nil {
		slog.Error("failed to complete goal", "error", err, "goal_id", req.GoalID, "request_id", ctxkeys.RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "Failed to complete goal")
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]*model.Completion{"completion": completion})
}

func (h *GoalHandler) PendingGoals(w http.ResponseWriter, r *http.Request) {
	pending, err := h.goalService.PendingGoals(r.Context())
	if err != nil {
		slog.Error("failed to get pending goals", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "Failed to load pending goals")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string][]*model.PendingGoal{"pendingGoals": pending})
}
