// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote calls go through this interface; the store and commands never
// build HTTP requests themselves.
type Service interface {
	// ListTasks returns the tasks matching filter, in remote order.
	ListTasks(ctx context.Context, filter Filter) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id TaskID) (Task, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// UpdateTask replaces every field of the task with task.ID.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}
