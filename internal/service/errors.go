package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernhq/fern/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrUsernameRequired   = errors.New("username is required")
)

// ===== Questionnaire Errors =====
var (
	ErrUnsupportedVersion = errors.New("unsupported questionnaire version")
)

// ===== Task Errors =====
var (
	ErrTaskNotFound     = errors.New("daily task not found")
	ErrSuggestionFailed = errors.New("suggestion service failed")
)

// ===== Social Errors =====
var (
	ErrCommunityNotFound     = errors.New("community not found")
	ErrCommunityNameRequired = errors.New("community name is required")
	ErrFriendNotFound        = errors.New("no user found with that email")
	ErrCannotFriendSelf      = errors.New("cannot add yourself as a friend")
	ErrAlreadyMember         = errors.New("already a member of this community")
)

// AnswerValidationError reports every rejected answer in one pass. Unknown
// question ids and type/option mismatches are collected per field rather than
// failing fast, so the caller gets a complete report in one round trip.
type AnswerValidationError struct {
	Details []model.FieldError
}

func (e *AnswerValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return "answer validation failed: " + strings.Join(parts, "; ")
}
