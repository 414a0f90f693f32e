package handler

import (
	"net/http"
	"strconv"

	"github.com/fernhq/fern/api/internal/middleware"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// StatsHandler handles home stats, feed, and leaderboard endpoints
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Home handles GET /v1/stats/home
func (h *StatsHandler) Home(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	stats, err := h.statsService.HomeStats(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, stats, map[string]string{
		"feed":        "/v1/feed",
		"leaderboard": "/v1/leaderboard",
	})
}

// Feed handles GET /v1/feed
func (h *StatsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("cursor")
	limit := parseIntParam(r, "limit")

	page, err := h.statsService.Feed(r.Context(), cursor, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	var pagination *PaginationInfo
	if page.NextCursor != nil {
		pagination = &PaginationInfo{Cursor: *page.NextCursor, HasMore: true}
	}

	WriteCollection(w, http.StatusOK, page, pagination, nil)
}

// Leaderboard handles GET /v1/leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit")

	leaderboard, err := h.statsService.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, leaderboard, nil)
}

// parseIntParam reads a non-negative integer query parameter, 0 when absent
// or malformed
func parseIntParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
