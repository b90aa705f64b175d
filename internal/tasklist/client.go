// Package tasklist keeps a rendered task list in step with the remote collection.
//
// Every mutation is followed by a full re-fetch; the view always shows the
// last list the server returned and nothing else. Concurrent actions are not
// ordered against each other unless Options.Serialize is set: the final render
// is whichever re-fetch finished last. A render is never mixed with another.
package tasklist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"tasklist/internal/logging"
	"tasklist/internal/service"
)

// Options tunes a Client.
type Options struct {
	// Serialize runs each mutation and its re-fetch under one lock so that
	// concurrent actions cannot interleave.
	Serialize bool

	Logger *logrus.Logger
}

// Client is the task list client. It owns no task state; the list view does.
type Client struct {
	svc   service.Service
	list  ListView
	input Input

	serialize bool
	cycle     sync.Mutex
	// renderMu keeps each Clear and its Appends together as one frame.
	renderMu sync.Mutex

	handlers map[EventKind]handler
	logger   *logrus.Entry
}

// New creates a client rendering into list and reading titles from input.
// input may be nil when the caller never submits the form.
func New(svc service.Service, list ListView, input Input, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Client{
		svc:       svc,
		list:      list,
		input:     input,
		serialize: opts.Serialize,
		logger:    logger.WithField("component", "tasklist"),
	}
	c.handlers = map[EventKind]handler{
		EventRefresh: func(ctx context.Context, ev Event) error { return c.Refresh(ctx) },
		EventSubmit:  func(ctx context.Context, ev Event) error { return c.Submit(ctx) },
		EventToggle:  func(ctx context.Context, ev Event) error { return c.Toggle(ctx, ev.TaskID, ev.Done) },
		EventDelete:  func(ctx context.Context, ev Event) error { return c.Delete(ctx, ev.TaskID) },
	}
	return c
}

// Dispatch runs the operation mapped to ev and waits for it.
func (c *Client) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.handlers[ev.Kind]
	if !ok {
		return fmt.Errorf("unknown event: %v", ev.Kind)
	}
	return h(ctx, ev)
}

// Go runs Dispatch in a new goroutine. Failures are logged as well as
// returned from Wait, since UI callers usually don't wait.
func (c *Client) Go(ctx context.Context, ev Event) *Action {
	a := &Action{Event: ev, done: make(chan struct{})}
	go func() {
		defer close(a.done)
		a.err = c.Dispatch(ctx, ev)
		if a.err != nil {
			c.logger.WithError(a.err).WithField("event", ev.Kind.String()).Error("action failed")
		}
	}()
	return a
}

// Refresh fetches the full list and replaces the view with it.
// On failure the view keeps its previous rows.
func (c *Client) Refresh(ctx context.Context) error {
	if c.serialize {
		c.cycle.Lock()
		defer c.cycle.Unlock()
	}
	return c.refresh(ctx)
}

func (c *Client) refresh(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	c.render(tasks)
	c.logger.WithField("count", len(tasks)).Debug("list rendered")
	return nil
}

func (c *Client) render(tasks []service.Task) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.list.Clear()
	for _, t := range tasks {
		c.list.Append(RowFor(t))
	}
}

// Create sends a trimmed title and re-fetches. Blank titles are dropped
// without a request.
func (c *Client) Create(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.svc.CreateTask(ctx, title)
	})
}

// Update sends a partial update and re-fetches.
func (c *Client) Update(ctx context.Context, id service.TaskID, patch service.TaskPatch) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.svc.UpdateTask(ctx, id, patch)
	})
}

// Toggle sets the completion flag of one task and re-fetches.
func (c *Client) Toggle(ctx context.Context, id service.TaskID, done bool) error {
	return c.Update(ctx, id, service.SetDone(done))
}

// Delete removes one task and re-fetches.
func (c *Client) Delete(ctx context.Context, id service.TaskID) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.svc.DeleteTask(ctx, id)
	})
}

// mutate runs one mutation, then the re-fetch. A failed mutation skips the re-fetch.
func (c *Client) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.serialize {
		c.cycle.Lock()
		defer c.cycle.Unlock()
	}
	if err := fn(ctx); err != nil {
		return err
	}
	return c.refresh(ctx)
}

// Submit handles a form submission. Blank input returns at once and leaves
// the field as it is. Otherwise the title is created, and the field is
// cleared and focused once the create cycle has finished, whatever its outcome.
func (c *Client) Submit(ctx context.Context) error {
	if c.input == nil {
		return fmt.Errorf("submit: no input attached")
	}
	title := strings.TrimSpace(c.input.Value())
	if title == "" {
		return nil
	}

	err := c.Create(ctx, title)
	c.input.Clear()
	c.input.Focus()
	return err
}
