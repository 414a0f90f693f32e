package handler

import (
	"net/http"

	"github.com/fernhq/fern/api/internal/middleware"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// QuestionnaireHandler handles questionnaire endpoints
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireService *service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
	}
}

// Catalog handles GET /v1/questionnaire
func (h *QuestionnaireHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.questionnaireService.Catalog(), map[string]string{
		"submit": "/v1/questionnaire/submit",
	})
}

// Submit handles POST /v1/questionnaire/submit
func (h *QuestionnaireHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SubmitQuestionnaireRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.questionnaireService.Submit(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"home_stats": "/v1/stats/home",
		"tasks":      "/v1/tasks/daily",
	})
}

// Reset handles POST /v1/questionnaire/reset
func (h *QuestionnaireHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	if err := h.questionnaireService.Reset(r.Context(), userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
