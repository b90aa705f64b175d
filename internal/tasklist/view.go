package tasklist

import "tasklist/internal/service"

// StyleDone marks the label of a completed task.
const StyleDone = "done"

// RemoveLabel is the caption of the per-row removal control.
const RemoveLabel = "Delete"

// Row is the rendered form of one task.
type Row struct {
	ID    service.TaskID
	Title string

	// Checked is the state of the toggle control.
	Checked bool

	// Style is StyleDone when the task is done, empty otherwise.
	Style string
}

// RowFor builds the row for a task.
func RowFor(t service.Task) Row {
	row := Row{ID: t.ID, Title: t.Title, Checked: t.Done}
	if t.Done {
		row.Style = StyleDone
	}
	return row
}

// ListView is the visual list container. Clear removes every row.
// Implementations must accept calls from any goroutine.
type ListView interface {
	Clear()
	Append(row Row)
}

// Input is the single text field of the submission form.
type Input interface {
	Value() string
	Clear()
	Focus()
}

// TextInput is an Input holding a plain string, for callers without a widget.
type TextInput struct {
	Text    string
	Focused bool
}

// NewTextInput returns an input preloaded with text.
func NewTextInput(text string) *TextInput {
	return &TextInput{Text: text}
}

func (in *TextInput) Value() string { return in.Text }
func (in *TextInput) Clear()        { in.Text = "" }
func (in *TextInput) Focus()        { in.Focused = true }
