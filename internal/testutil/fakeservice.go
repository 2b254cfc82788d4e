// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"todoapp/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = &service.RemoteError{Op: "get", StatusCode: 404, Err: errors.New("Not Found")}

// Call records one invocation of a FakeService method.
type Call struct {
	Method string
	Filter service.Filter
	ID     service.TaskID
	New    service.NewTask
	Task   service.Task
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListTasksErr  map[service.Filter]error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// BeforeList, when set, runs at the start of every ListTasks call
	// without holding the lock. Tests use it to hold a call in flight.
	BeforeList func(filter service.Filter)
}

// NewFakeService creates an empty FakeService. IDs start at 1.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:       1,
		ListTasksErr: make(map[service.Filter]error),
	}
}

// AddTask adds a task directly, bypassing call recording.
func (f *FakeService) AddTask(id, title, description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          service.TaskID(id),
		Title:       title,
		Description: description,
		Completed:   completed,
	})
	if n, err := strconv.Atoi(id); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns every recorded call in order.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method was called.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	f.record(Call{Method: "ListTasks", Filter: filter})
	if f.BeforeList != nil {
		f.BeforeList(filter)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.ListTasksErr[filter]; err != nil {
		return nil, err
	}

	result := []service.Task{}
	for _, t := range f.tasks {
		switch filter {
		case service.FilterCompleted:
			if !t.Completed {
				continue
			}
		case service.FilterIncomplete:
			if t.Completed {
				continue
			}
		}
		result = append(result, t)
	}
	return result, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id service.TaskID) (service.Task, error) {
	f.record(Call{Method: "GetTask", ID: id})
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.record(Call{Method: "CreateTask", New: task})
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := service.Task{
		ID:          service.TaskID(strconv.Itoa(f.nextID)),
		Title:       task.Title,
		Description: task.Description,
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.record(Call{Method: "UpdateTask", Task: task})
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks[i] = task
			return task, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
