package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	byID bool
}

// SetByID makes the reference a raw task id (for testing).
func (c *DoneCmd) SetByID(byID bool) {
	c.byID = byID
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "tasklist done [--id] <ref>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetDone(ctx, cfg, svc, c.byID, true, args, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct {
	byID bool
}

// SetByID makes the reference a raw task id (for testing).
func (c *UndoCmd) SetByID(byID bool) {
	c.byID = byID
}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Mark a task open again" }
func (c *UndoCmd) Usage() string      { return "tasklist undo [--id] <ref>" }
func (c *UndoCmd) NeedsService() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetDone(ctx, cfg, svc, c.byID, false, args, out, errOut)
}

// runSetDone is the shared implementation for done and undo.
func runSetDone(ctx context.Context, cfg *config.Config, svc service.Service, byID, done bool, args []string, out, errOut io.Writer) int {
	return runOnTask(ctx, cfg, svc, byID, args, out, errOut, func(row tasklist.Row) tasklist.Event {
		return tasklist.Toggle(row.ID, done)
	})
}

// runOnTask resolves a reference, dispatches the event built for it and
// prints the refreshed list.
func runOnTask(ctx context.Context, cfg *config.Config, svc service.Service, byID bool, args []string, out, errOut io.Writer, event func(tasklist.Row) tasklist.Event) int {
	ref, err := ParseTaskRef(args, byID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := newSession(cfg, svc, nil, out)
	row, err := ref.Resolve(ctx, s.client, s.view)
	if err != nil {
		if errors.Is(err, ErrUnknownRow) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return backendError(errOut, err)
	}

	if err := s.client.Dispatch(ctx, event(row)); err != nil {
		return backendError(errOut, err)
	}
	s.view.Flush()
	return exitcode.Success
}
