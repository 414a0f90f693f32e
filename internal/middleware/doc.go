// Package middleware provides HTTP middleware for the Fern API.
//
// The middleware package contains reusable middleware components for
// authentication and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - OptionalAuth: Claims extraction without rejecting anonymous requests
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Authentication
//
// The auth middleware validates JWT tokens and extracts user information:
//
//	protected := middleware.Auth(authService)(handler)
//
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID: Returns authenticated user ID
//   - GetUserEmail: Returns authenticated user email
//   - GetClaims: Returns the full token claims
//   - GetRequestID: Returns unique request identifier
package middleware
