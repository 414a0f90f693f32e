package handler

import (
	"errors"

	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// Collected answer validation problems carry their own field details
	var answerErr *service.AnswerValidationError
	if errors.As(err, &answerErr) {
		return model.NewValidationError(answerErr.Details)
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrTaskNotFound):
		return model.NewNotFoundError("daily task")
	case errors.Is(err, service.ErrCommunityNotFound):
		return model.NewNotFoundError("community")
	case errors.Is(err, service.ErrFriendNotFound):
		return model.NewNotFoundError("user with that email")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyMember):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})

	case errors.Is(err, service.ErrUsernameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "username", Message: err.Error()}})

	case errors.Is(err, service.ErrUnsupportedVersion):
		return model.NewValidationError([]model.FieldError{{Field: "questionnaireVersion", Message: err.Error()}})

	case errors.Is(err, service.ErrCommunityNameRequired):
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: err.Error()}})

	case errors.Is(err, service.ErrCannotFriendSelf):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})

	// ===== Suggestion Service Errors → 502 =====
	case errors.Is(err, service.ErrSuggestionFailed):
		return model.NewBadGatewayError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails
// response with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
