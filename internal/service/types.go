// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TaskID is the opaque identifier assigned by the storage service.
// The textual form is kept verbatim: a JSON number stays "42", a JSON
// string stays its unquoted value.
type TaskID string

// UnmarshalJSON accepts both numeric and string identifiers.
// null and "" are rejected: an empty id would address the collection itself.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("invalid task id: null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return fmt.Errorf("invalid task id: empty")
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id: %s", data)
	}
	*id = TaskID(n.String())
	return nil
}

// String returns the identifier text.
func (id TaskID) String() string { return string(id) }

// Task represents a single task item.
type Task struct {
	ID        TaskID `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TaskPatch is a partial update. Nil fields are not sent.
type TaskPatch struct {
	Done *bool `json:"done,omitempty"`
}

// SetDone returns a patch that sets the completion flag.
func SetDone(done bool) TaskPatch {
	return TaskPatch{Done: &done}
}
