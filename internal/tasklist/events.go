package tasklist

import (
	"context"
	"fmt"

	"tasklist/internal/service"
)

// EventKind names a UI event.
type EventKind int

const (
	// EventRefresh re-fetches and re-renders the list.
	EventRefresh EventKind = iota
	// EventSubmit submits the form input.
	EventSubmit
	// EventToggle sets the completion flag of one task.
	EventToggle
	// EventDelete removes one task.
	EventDelete
)

func (k EventKind) String() string {
	switch k {
	case EventRefresh:
		return "refresh"
	case EventSubmit:
		return "submit"
	case EventToggle:
		return "toggle"
	case EventDelete:
		return "delete"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one UI event routed through the dispatch table.
type Event struct {
	Kind   EventKind
	TaskID service.TaskID
	Done   bool // new state for EventToggle
}

// Refresh returns a refresh event.
func Refresh() Event { return Event{Kind: EventRefresh} }

// Submit returns a form submission event.
func Submit() Event { return Event{Kind: EventSubmit} }

// Toggle returns the event a checkbox change produces.
func Toggle(id service.TaskID, done bool) Event {
	return Event{Kind: EventToggle, TaskID: id, Done: done}
}

// Delete returns the event a removal click produces.
func Delete(id service.TaskID) Event {
	return Event{Kind: EventDelete, TaskID: id}
}

type handler func(ctx context.Context, ev Event) error

// Action is a dispatched event running in its own goroutine.
type Action struct {
	Event Event

	done chan struct{}
	err  error
}

// Wait blocks until the action, including its re-fetch, has finished.
func (a *Action) Wait() error {
	<-a.done
	return a.err
}

// Done is closed when the action has finished.
func (a *Action) Done() <-chan struct{} {
	return a.done
}
