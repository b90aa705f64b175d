package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/output"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Row  int            // 1-based row number as printed by list
	ID   service.TaskID // raw id, set when ByID
	ByID bool
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrUnknownRow indicates a row number that the current list doesn't have.
var ErrUnknownRow = errors.New("task number out of range")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. With byID, the first arg is taken verbatim as a task id
// 2. Otherwise the first arg must be all digits → row number
// 3. Exactly one reference is accepted
func ParseTaskRef(args []string, byID bool) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if byID {
		return TaskRef{ID: service.TaskID(arg), ByID: true}, nil
	}

	if !isAllDigits(arg) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	if n < 1 {
		return TaskRef{}, fmt.Errorf("%w: %d", ErrUnknownRow, n)
	}
	return TaskRef{Row: n}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Resolve returns the task a reference names. Row numbers are looked up in
// a freshly fetched list; the fetch renders into view without printing it.
func (r TaskRef) Resolve(ctx context.Context, client *tasklist.Client, view *output.TextView) (tasklist.Row, error) {
	if r.ByID {
		return tasklist.Row{ID: r.ID}, nil
	}
	if err := client.Refresh(ctx); err != nil {
		return tasklist.Row{}, err
	}
	return rowAt(view, r.Row)
}

func rowAt(view *output.TextView, n int) (tasklist.Row, error) {
	row, ok := view.Row(n)
	if !ok {
		return tasklist.Row{}, fmt.Errorf("%w: %d", ErrUnknownRow, n)
	}
	return row, nil
}
