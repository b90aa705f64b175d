package ui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"tasklist/internal/logging"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

// Window is the desktop task list. It is the client's list view; the
// entry is its input.
type Window struct {
	win    fyne.Window
	entry  *widget.Entry
	addBtn *widget.Button
	rows   *fyne.Container

	client *tasklist.Client
	ctx    context.Context
	logger *logrus.Entry

	// text mirrors entry.Text so actions can read it off the main goroutine
	mu   sync.Mutex
	text string

	pending sync.WaitGroup
}

// NewWindow builds the window in app a. Actions run with ctx.
func NewWindow(ctx context.Context, a fyne.App, svc service.Service, opts tasklist.Options) *Window {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	w := &Window{
		win:    a.NewWindow(WindowTitle),
		ctx:    ctx,
		logger: opts.Logger.WithField("component", "gui"),
	}
	w.client = tasklist.New(svc, w, entryInput{w}, opts)

	w.entry = widget.NewEntry()
	w.entry.SetPlaceHolder(EntryPlaceholder)
	w.entry.OnChanged = w.setText
	w.entry.OnSubmitted = func(string) { w.dispatch(tasklist.Submit()) }

	w.addBtn = widget.NewButton(AddLabel, func() { w.dispatch(tasklist.Submit()) })
	w.addBtn.Importance = widget.HighImportance

	w.rows = container.NewVBox()

	form := container.NewBorder(nil, nil, nil, w.addBtn, w.entry)
	w.win.SetContent(container.NewBorder(form, nil, nil, nil, container.NewVScroll(w.rows)))
	w.win.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	w.win.Canvas().Focus(w.entry)
	return w
}

// ShowAndRun loads the list and runs the fyne event loop until the window closes.
func (w *Window) ShowAndRun() {
	w.Load()
	w.win.ShowAndRun()
	w.Wait()
}

// Load dispatches the initial fetch.
func (w *Window) Load() {
	w.dispatch(tasklist.Refresh())
}

// Wait blocks until every action dispatched from the window has finished.
func (w *Window) Wait() {
	w.pending.Wait()
}

func (w *Window) dispatch(ev tasklist.Event) {
	w.logger.WithField("event", ev.Kind.String()).Debug("dispatch")
	w.pending.Add(1)
	action := w.client.Go(w.ctx, ev)
	go func() {
		defer w.pending.Done()
		_ = action.Wait() // logged by the client
	}()
}

// Clear implements tasklist.ListView.
func (w *Window) Clear() {
	fyne.Do(func() {
		w.rows.RemoveAll()
	})
}

// Append implements tasklist.ListView.
func (w *Window) Append(row tasklist.Row) {
	fyne.Do(func() {
		w.rows.Add(w.newRow(row))
	})
}

func (w *Window) newRow(row tasklist.Row) fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	check.SetChecked(row.Checked)
	check.OnChanged = func(done bool) {
		w.dispatch(tasklist.Toggle(row.ID, done))
	}

	label := widget.NewLabel(row.Title)
	label.Truncation = fyne.TextTruncateEllipsis
	if row.Style == tasklist.StyleDone {
		label.Importance = widget.LowImportance
		label.TextStyle = fyne.TextStyle{Italic: true}
	}

	remove := widget.NewButton(tasklist.RemoveLabel, func() {
		w.dispatch(tasklist.Delete(row.ID))
	})
	remove.Importance = widget.DangerImportance

	return container.NewBorder(nil, nil, check, remove, label)
}

func (w *Window) setText(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.text = s
}

// entryInput is the form entry seen as a tasklist.Input.
type entryInput struct {
	w *Window
}

func (in entryInput) Value() string {
	in.w.mu.Lock()
	defer in.w.mu.Unlock()
	return in.w.text
}

func (in entryInput) Clear() {
	in.w.setText("")
	fyne.Do(func() {
		in.w.entry.SetText("")
	})
}

func (in entryInput) Focus() {
	fyne.Do(func() {
		in.w.win.Canvas().Focus(in.w.entry)
	})
}
