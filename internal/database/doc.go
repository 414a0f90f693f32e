// Package database provides database connectivity for the Fern API.
//
// The database package abstracts SurrealDB operations and provides
// a consistent interface for data access across the application.
//
// # Database Interface
//
// The Database interface defines core operations:
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConflict: Revision-guarded transaction aborted
//   - ErrUnavailable: Transient connectivity failure
//   - ErrConnection: Database connection failed
//
// IsRetryable classifies ErrConflict and ErrUnavailable as retryable.
//
// # Atomic Writes
//
// Multi-statement writes use AtomicBatch or TxBuilder, which wrap the
// accumulated statements in BEGIN TRANSACTION / COMMIT TRANSACTION so they
// apply all-or-nothing.
package database
