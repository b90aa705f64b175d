package commands

import (
	"context"
	"flag"
	"io"

	"fyne.io/fyne/v2/app"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
	"tasklist/internal/ui"
)

func init() {
	Register(&GuiCmd{})
}

// GuiCmd opens the desktop window.
type GuiCmd struct {
	serialize bool
}

func (c *GuiCmd) Name() string       { return "gui" }
func (c *GuiCmd) Aliases() []string  { return nil }
func (c *GuiCmd) Synopsis() string   { return "Open the desktop window" }
func (c *GuiCmd) Usage() string      { return "tasklist gui [--serialize]" }
func (c *GuiCmd) NeedsService() bool { return true }

func (c *GuiCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.serialize, "serialize", false, "")
}

func (c *GuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}

	a := app.NewWithID(ui.AppID)
	w := ui.NewWindow(ctx, a, svc, tasklist.Options{
		Serialize: c.serialize,
		Logger:    cfg.Log(),
	})
	stop := quitOnCancel(ctx, a.Quit)
	defer stop()
	w.ShowAndRun()
	return exitcode.Success
}

// quitOnCancel calls quit when ctx is cancelled. The returned stop ends the
// watch and waits for it; after stop returns quit is never called.
func quitOnCancel(ctx context.Context, quit func()) (stop func()) {
	closed := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			quit()
		case <-closed:
		}
	}()
	return func() {
		close(closed)
		<-exited
	}
}
