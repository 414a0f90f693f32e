// Package model defines domain entities and data structures for the Fern API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with credentials, footprint, streaks, and daily tasks
//   - Questionnaire: The versioned carbon footprint questionnaire catalog
//   - Task: A generated daily task pending completion
//   - CompletedTask: An immutable record of a finished task, fanned out to the feed
//   - Community: A named group of users with a shared completion log
//   - DailyStat: Per-user and global per-day completion aggregates
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Community struct {
//	    ID      string   `json:"id"`
//	    Name    string   `json:"name"`
//	    Members []string `json:"members"`
//	}
//
// # Validation Constants
//
// The package defines validation constants:
//
//	const (
//	    DailyTaskCount         = 10
//	    QuestionnaireVersionV1 = "v1"
//	)
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
