// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"tasklist/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// Call records one Service invocation.
type Call struct {
	Op    string // "list", "create", "update", "delete"
	ID    service.TaskID
	Title string
	Patch service.TaskPatch
}

// String renders the call compactly, e.g. "update 3 done=true".
func (c Call) String() string {
	switch c.Op {
	case "create":
		return fmt.Sprintf("create %q", c.Title)
	case "update":
		if c.Patch.Done != nil {
			return fmt.Sprintf("update %s done=%t", c.ID, *c.Patch.Done)
		}
		return fmt.Sprintf("update %s", c.ID)
	case "delete":
		return fmt.Sprintf("delete %s", c.ID)
	default:
		return c.Op
	}
}

// FakeService is an in-memory implementation of service.Service for testing.
// It keeps tasks in insertion order and records every call.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	calls  []Call
	nextID int

	// Hook, when set, runs at the start of every call outside the lock.
	// Tests use it to block or reorder concurrent calls.
	Hook func(op string)

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask adds a task directly, without recording a call.
func (f *FakeService) AddTask(id service.TaskID, title string, done bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Done: done})
}

// Calls returns a copy of the recorded calls.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Call, len(f.calls))
	copy(result, f.calls)
	return result
}

// CallStrings returns the recorded calls rendered with Call.String.
func (f *FakeService) CallStrings() []string {
	calls := f.Calls()
	result := make([]string, len(calls))
	for i, c := range calls {
		result[i] = c.String()
	}
	return result
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(c Call) {
	if f.Hook != nil {
		f.Hook(c.Op)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record(Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) error {
	f.record(Call{Op: "create", Title: title})
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate an id that doesn't collide with seeded tasks
	id := service.TaskID("n" + strconv.Itoa(f.nextID))
	f.nextID++
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title})
	return nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id service.TaskID, patch service.TaskPatch) error {
	f.record(Call{Op: "update", ID: id, Patch: patch})
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Done != nil {
				f.tasks[i].Done = *patch.Done
			}
			return nil
		}
	}
	return ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.TaskID) error {
	f.record(Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return f.DeleteErr
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
