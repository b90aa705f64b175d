package service

import (
	"encoding/json"
	"testing"
)

func TestTaskID_UnmarshalNumber(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":42,"title":"Buy milk","done":true}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "42" {
		t.Errorf("expected id 42, got %q", task.ID)
	}
	if !task.Done {
		t.Error("expected done to be true")
	}
}

func TestTaskID_UnmarshalString(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":"t_abc","title":"x","done":false}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "t_abc" {
		t.Errorf("expected id t_abc, got %q", task.ID)
	}
}

func TestTaskID_UnmarshalInvalid(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":true,"title":"x"}`), &task); err == nil {
		t.Fatal("expected error for boolean id")
	}
}

func TestTaskID_UnmarshalNullOrEmpty(t *testing.T) {
	for _, body := range []string{
		`{"id":null,"title":"x"}`,
		`{"id":"","title":"x"}`,
		`[{"id":1,"title":"a"},{"id":null,"title":"b"}]`,
	} {
		var v any = &Task{}
		if body[0] == '[' {
			v = &[]Task{}
		}
		if err := json.Unmarshal([]byte(body), v); err == nil {
			t.Errorf("expected error for %s", body)
		}
	}
}

func TestTaskPatch_OnlyDoneIsSent(t *testing.T) {
	data, err := json.Marshal(SetDone(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"done":false}` {
		t.Errorf("expected {\"done\":false}, got %s", data)
	}

	data, _ = json.Marshal(TaskPatch{})
	if string(data) != `{}` {
		t.Errorf("expected empty object, got %s", data)
	}
}
