package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "User not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "Not Found") {
		t.Errorf("error message should contain title, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "User not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

func TestProblemDetails_Error_EmptyDetail(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusUnauthorized,
		Title:  "Unauthorized",
		Detail: "",
	}

	errMsg := pd.Error()

	// Should still produce valid error string
	if !strings.Contains(errMsg, "401") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsContentType(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("resource")
	rec := httptest.NewRecorder()

	pd.WriteJSON(rec)

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/problem+json" {
		t.Errorf("expected application/problem+json, got %s", contentType)
	}
}

func TestProblemDetails_WriteJSON_SetsStatusCode(t *testing.T) {
	t.Parallel()

	pd := NewUnauthorizedError("access denied")
	rec := httptest.NewRecorder()

	pd.WriteJSON(rec)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestProblemDetails_WriteJSON_EncodesBody(t *testing.T) {
	t.Parallel()

	pd := NewBadRequestError("invalid input")
	rec := httptest.NewRecorder()

	pd.WriteJSON(rec)

	var decoded ProblemDetails
	if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if decoded.Title != "Bad Request" {
		t.Errorf("expected title 'Bad Request', got %q", decoded.Title)
	}
	if decoded.Detail != "invalid input" {
		t.Errorf("expected detail 'invalid input', got %q", decoded.Detail)
	}
}

// ============================================================================
// Constructor Tests - NewUnauthorizedError
// ============================================================================

func TestNewUnauthorizedError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewUnauthorizedError("token expired")

	if pd.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", pd.Status)
	}
	if pd.Title != "Unauthorized" {
		t.Errorf("expected title 'Unauthorized', got %q", pd.Title)
	}
	if pd.Detail != "token expired" {
		t.Errorf("expected detail 'token expired', got %q", pd.Detail)
	}
	if pd.Code != ErrCodeUnauthorized {
		t.Errorf("expected code %d, got %d", ErrCodeUnauthorized, pd.Code)
	}
}

// ============================================================================
// Constructor Tests - NewNotFoundError
// ============================================================================

func TestNewNotFoundError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("user")

	if pd.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", pd.Status)
	}
	if pd.Title != "Not Found" {
		t.Errorf("expected title 'Not Found', got %q", pd.Title)
	}
	if pd.Code != ErrCodeNotFound {
		t.Errorf("expected code %d, got %d", ErrCodeNotFound, pd.Code)
	}
}

func TestNewNotFoundError_FormatsResourceName(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("community")

	if !strings.Contains(pd.Detail, "community not found") {
		t.Errorf("expected detail to mention resource, got %q", pd.Detail)
	}
}

// ============================================================================
// Constructor Tests - NewValidationError
// ============================================================================

func TestNewValidationError_SingleField_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	errors := []FieldError{
		{Field: "email", Message: "invalid format"},
	}

	pd := NewValidationError(errors)

	if pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", pd.Status)
	}
	if !strings.Contains(pd.Detail, "email") {
		t.Errorf("expected detail to mention field, got %q", pd.Detail)
	}
	if len(pd.Errors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(pd.Errors))
	}
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	errors := []FieldError{
		{Field: "email", Message: "invalid format"},
		{Field: "password", Message: "too short"},
		{Field: "username", Message: "required"},
	}

	pd := NewValidationError(errors)

	if !strings.Contains(pd.Detail, "2 more errors") {
		t.Errorf("expected detail to summarize remaining errors, got %q", pd.Detail)
	}
	if len(pd.Errors) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(pd.Errors))
	}
}

func TestNewValidationError_EmptyErrors_ReturnsDefaultMessage(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{})

	if pd.Detail != "One or more fields failed validation" {
		t.Errorf("expected default detail, got %q", pd.Detail)
	}
}

// ============================================================================
// Constructor Tests - NewConflictError
// ============================================================================

func TestNewConflictError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewConflictError("email already in use")

	if pd.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", pd.Status)
	}
	if pd.Detail != "email already in use" {
		t.Errorf("expected detail 'email already in use', got %q", pd.Detail)
	}
	if pd.Code != ErrCodeConflict {
		t.Errorf("expected code %d, got %d", ErrCodeConflict, pd.Code)
	}
}

// ============================================================================
// Constructor Tests - NewInternalError
// ============================================================================

func TestNewInternalError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("database connection failed")

	if pd.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", pd.Status)
	}
	if pd.Detail != "database connection failed" {
		t.Errorf("expected detail, got %q", pd.Detail)
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("")

	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("expected default detail, got %q", pd.Detail)
	}
}

// ============================================================================
// Constructor Tests - NewBadRequestError
// ============================================================================

func TestNewBadRequestError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewBadRequestError("missing required field")

	if pd.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", pd.Status)
	}
	if pd.Detail != "missing required field" {
		t.Errorf("expected detail, got %q", pd.Detail)
	}
	if pd.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %d, got %d", ErrCodeInvalidInput, pd.Code)
	}
}

// ============================================================================
// Constructor Tests - NewBadGatewayError
// ============================================================================

func TestNewBadGatewayError_ReturnsCorrectValues(t *testing.T) {
	t.Parallel()

	pd := NewBadGatewayError("suggestion service unavailable")

	if pd.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", pd.Status)
	}
	if pd.Detail != "suggestion service unavailable" {
		t.Errorf("expected detail, got %q", pd.Detail)
	}
	if pd.Code != ErrCodeExternalAPI {
		t.Errorf("expected code %d, got %d", ErrCodeExternalAPI, pd.Code)
	}
}

// ============================================================================
// Type URI Tests
// ============================================================================

func TestConstructors_SetTypeURIs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pd   *ProblemDetails
		want string
	}{
		{"unauthorized", NewUnauthorizedError("x"), "https://api.fernhq.app/errors/unauthorized"},
		{"not_found", NewNotFoundError("x"), "https://api.fernhq.app/errors/not-found"},
		{"validation", NewValidationError(nil), "https://api.fernhq.app/errors/validation"},
		{"conflict", NewConflictError("x"), "https://api.fernhq.app/errors/conflict"},
		{"internal", NewInternalError("x"), "https://api.fernhq.app/errors/internal"},
		{"bad_request", NewBadRequestError("x"), "https://api.fernhq.app/errors/bad-request"},
		{"bad_gateway", NewBadGatewayError("x"), "https://api.fernhq.app/errors/upstream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pd.Type != tt.want {
				t.Errorf("expected type %q, got %q", tt.want, tt.pd.Type)
			}
		})
	}
}
