// Package restapi implements the service.Service interface over the /api/tasks JSON API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

const (
	// CollectionPath is the collection resource path, relative to the server URL.
	CollectionPath = "/api/tasks"

	contentTypeJSON = "application/json"
)

// Client implements service.Service against a task collection server.
type Client struct {
	http    *http.Client
	base    string
	timeout time.Duration
	logger  *logrus.Logger
}

// New creates a client for cfg.Server using an instrumented transport.
func New(cfg *config.Config) *Client {
	transport := &Transport{
		Logger:  cfg.Log(),
		Metrics: cfg.Metrics,
	}
	return NewWithHTTPClient(cfg.Server, &http.Client{Transport: transport}, cfg.Timeout, cfg.Log())
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// A zero timeout leaves requests bounded only by the caller's context.
func NewWithHTTPClient(server string, httpClient *http.Client, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		http:    httpClient,
		base:    server,
		timeout: timeout,
		logger:  logger,
	}
}

// ListTasks fetches the full collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError("list tasks", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("list tasks: decode response (status %d): %w", resp.StatusCode, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("list tasks: expected a JSON array (status %d)", resp.StatusCode)
	}

	tasks := []service.Task{}
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: decode response (status %d): %w", resp.StatusCode, err)
	}
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("list tasks: task %d has no id", i)
		}
	}
	return tasks, nil
}

// CreateTask posts a new title. The response is not inspected.
func (c *Client) CreateTask(ctx context.Context, title string) error {
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.send(ctx, "create task", http.MethodPost, c.collectionURL(), body)
}

// UpdateTask puts a partial update. The response is not inspected.
func (c *Client) UpdateTask(ctx context.Context, id service.TaskID, patch service.TaskPatch) error {
	return c.send(ctx, "update task", http.MethodPut, c.itemURL(id), patch)
}

// DeleteTask deletes one task. The response is not inspected.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.send(ctx, "delete task", http.MethodDelete, c.itemURL(id), nil)
}

// send issues a mutation. Any HTTP response counts as success; only a failure
// to get a response is returned. A nil body sends no payload and no content type.
func (c *Client) send(ctx context.Context, op, method, target string, body any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(logrus.Fields{
			"component": "rest_client",
			"operation": op,
			"status":    resp.StatusCode,
		}).Warn("non-success status ignored")
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) collectionURL() string {
	return c.base + CollectionPath
}

func (c *Client) itemURL(id service.TaskID) string {
	return c.base + CollectionPath + "/" + url.PathEscape(id.String())
}

// wrapError prefixes transport errors with the operation name.
func wrapError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
