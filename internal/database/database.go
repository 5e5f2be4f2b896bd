// Package database provides the database abstraction layer for the
// Grand Line API.
//
// The Database interface abstracts SurrealDB operations so business logic
// never touches the driver directly:
//   - Query: returns multiple results (SELECT queries returning lists)
//   - QueryOne: returns a single result (SELECT by ID)
//   - Execute: no return value (CREATE/UPDATE/DELETE mutations)
//
// The backing store offers no transactions; every write is an independent
// last-write-wins operation. Callers that fan out writes (the progress
// reconciler in particular) must tolerate partial application.
//
// # Error Handling
//
// Standard errors are defined for common failure cases. Use errors.Is():
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
