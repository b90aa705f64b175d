// Package output renders task rows for the terminal and exports task lists.
package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"tasklist/internal/tasklist"
)

// EmptyList is printed for a frame without rows.
const EmptyList = "no tasks"

// TextView is a tasklist.ListView writing to a terminal.
// Clear starts a new frame, Append adds a row to it and Flush prints it.
// The rows of the last frame stay available for row number lookups.
type TextView struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
	rows  []tasklist.Row
	dirty bool
}

// NewTextView creates a text view. A quiet view prints nothing for an empty list.
func NewTextView(w io.Writer, quiet bool) *TextView {
	return &TextView{w: w, quiet: quiet}
}

func (v *TextView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = nil
	v.dirty = true
}

func (v *TextView) Append(row tasklist.Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = append(v.rows, row)
	v.dirty = true
}

// Flush prints the current frame if it changed since the last Flush.
func (v *TextView) Flush() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.dirty {
		return
	}
	v.dirty = false

	if len(v.rows) == 0 {
		if !v.quiet {
			fmt.Fprintln(v.w, EmptyList)
		}
		return
	}
	for i, row := range v.rows {
		FormatRow(v.w, i+1, row)
	}
}

// Len returns the number of rows in the current frame.
func (v *TextView) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rows)
}

// Row returns the row printed with number n (1-based).
func (v *TextView) Row(n int) (tasklist.Row, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 || n > len(v.rows) {
		return tasklist.Row{}, false
	}
	return v.rows[n-1], true
}

// FormatRow formats one row.
// Format: "{N:>4}  [x] {TITLE}\n", with "[ ]" for open tasks.
func FormatRow(w io.Writer, num int, row tasklist.Row) {
	mark := "[ ]"
	if row.Checked {
		mark = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark, normalizeTitle(row.Title))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
