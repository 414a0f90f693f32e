package handler

import (
	"net/http"

	"github.com/fernhq/fern/api/internal/middleware"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// TaskHandler handles daily task endpoints
type TaskHandler struct {
	taskService       *service.TaskService
	suggestionService *service.SuggestionService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService, suggestionService *service.SuggestionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		suggestionService: suggestionService,
	}
}

// Daily handles GET /v1/tasks/daily
func (h *TaskHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	batch, err := h.taskService.GetDailyTasks(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, batch, map[string]string{
		"complete": "/v1/tasks/complete",
	})
}

// Complete handles POST /v1/tasks/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CompleteTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.DailyTaskID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "dailyTaskId", Message: "dailyTaskId is required"},
		}))
		return
	}

	result, err := h.taskService.CompleteTask(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"home_stats": "/v1/stats/home",
	})
}

// Suggest handles POST /v1/suggestions
func (h *TaskHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SuggestionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	suggestion, err := h.suggestionService.Suggest(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, suggestion, nil)
}
