package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"tasklist/internal/service"
)

// Request is one request seen by FakeCollection.
type Request struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        string
}

// FakeCollection is an in-memory task collection served over HTTP.
// It behaves like the reference server: integer ids, newest first,
// 400 on an empty title and 404 on an unknown id.
type FakeCollection struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int
	tasks    []service.Task // ascending by id
	requests []Request

	mutationStatus int
}

// NewFakeCollection starts a FakeCollection; it is closed when the test ends.
func NewFakeCollection(t *testing.T) *FakeCollection {
	t.Helper()

	f := &FakeCollection{nextID: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", f.handleList)
	mux.HandleFunc("POST /api/tasks", f.handleCreate)
	mux.HandleFunc("PUT /api/tasks/{id}", f.handleUpdate)
	mux.HandleFunc("DELETE /api/tasks/{id}", f.handleDelete)

	f.Server = httptest.NewServer(f.recording(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server base URL.
func (f *FakeCollection) URL() string {
	return f.Server.URL
}

// Seed inserts a task directly and returns its id.
func (f *FakeCollection) Seed(title string, done bool) service.TaskID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(title, done)
}

// Tasks returns the stored tasks, oldest first.
func (f *FakeCollection) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// SetMutationStatus makes every POST, PUT and DELETE answer with status
// without touching the stored tasks. Zero restores normal handling.
func (f *FakeCollection) SetMutationStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutationStatus = status
}

// Requests returns a copy of the recorded requests.
func (f *FakeCollection) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Request, len(f.requests))
	copy(result, f.requests)
	return result
}

// RequestLines renders the recorded requests as "METHOD /path".
func (f *FakeCollection) RequestLines() []string {
	reqs := f.Requests()
	lines := make([]string, len(reqs))
	for i, r := range reqs {
		lines[i] = r.Method + " " + r.Path
	}
	return lines
}

// ResetRequests clears the request log.
func (f *FakeCollection) ResetRequests() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func (f *FakeCollection) insert(title string, done bool) service.TaskID {
	id := service.TaskID(strconv.Itoa(f.nextID))
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:        id,
		Title:     title,
		Done:      done,
		CreatedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
	return id
}

func (f *FakeCollection) recording(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Body:        string(body),
		})
		status := f.mutationStatus
		f.mu.Unlock()

		if status != 0 && r.Method != http.MethodGet {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type taskJSON struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

func toJSON(t service.Task) taskJSON {
	id, _ := strconv.Atoi(t.ID.String())
	return taskJSON{ID: id, Title: t.Title, Done: t.Done, CreatedAt: t.CreatedAt}
}

func (f *FakeCollection) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]taskJSON, 0, len(f.tasks))
	for i := len(f.tasks) - 1; i >= 0; i-- {
		result = append(result, toJSON(f.tasks[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (f *FakeCollection) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "title is required"})
		return
	}

	f.mu.Lock()
	f.insert(title, false)
	task := f.tasks[len(f.tasks)-1]
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, toJSON(task))
}

func (f *FakeCollection) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title *string `json:"title"`
		Done  *bool   `json:"done"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := service.TaskID(r.PathValue("id"))
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "title is required"})
				return
			}
			f.tasks[i].Title = title
		}
		if req.Done != nil {
			f.tasks[i].Done = *req.Done
		}
		writeJSON(w, http.StatusOK, toJSON(f.tasks[i]))
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "task not found"})
}

func (f *FakeCollection) handleDelete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := service.TaskID(r.PathValue("id"))
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "task not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
