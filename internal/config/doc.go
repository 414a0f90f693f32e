// Package config manages application configuration for the Fern API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - SuggestionConfig: OpenRouter suggestion client settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	DB_HOST              - SurrealDB host
//	DB_PORT              - SurrealDB port
//	DB_NAMESPACE         - Database namespace
//	DB_DATABASE          - Database name
//	JWT_PRIVATE_KEY_PATH - RSA private key for token signing
//	JWT_EXPIRATION_MINS  - Token expiration in minutes
//	OPENROUTER_API_KEY   - Suggestion service credentials
//
// # Default Values
//
// Sensible defaults are provided for development; Validate enforces the
// values that production cannot run without (JWT key paths, the suggestion
// API key).
package config
