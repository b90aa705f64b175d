// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task collection.
// Every call is one network round trip; callers never see a cached result.
type Service interface {
	// ListTasks returns the full collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask sends a new task title. The server assigns the id.
	CreateTask(ctx context.Context, title string) error

	// UpdateTask sends a partial update for one task.
	UpdateTask(ctx context.Context, id TaskID, patch TaskPatch) error

	// DeleteTask removes one task.
	DeleteTask(ctx context.Context, id TaskID) error
}
