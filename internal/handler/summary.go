package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/renanvzd/nlw-pocket/internal/ctxkeys"
	"github.com/renanvzd/nlw-pocket/internal/model"
	"github.com/renanvzd/nlw-pocket/internal/repository"
	"github.com/renanvzd/nlw-pocket/internal/service"
)

type SummaryHandler struct {
	summaryService *service.SummaryService
}

func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

type summaryResponse struct {
	Summary *model.WeekSummary `json:"summary"`
}

func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryService.WeekSummary(r.Context())
	if errors.Is(err, repository.ErrStoreUnavailable) {
		slog.Warn("week summary rejected, store unavailable", "request_id", ctxkeys.RequestID(r.Context()))
		writeError(w, r, http.StatusServiceUnavailable, "Store temporarily unavailable")
		return
	}

	if err != nil {
		slog.Error("failed to get week summary", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
		writeError(w, r, http.StatusInternalServerError, "Failed to load week summary")
		return
	}

	writeJSON(w, r, http.StatusOK, summaryResponse{Summary: summary})
}
