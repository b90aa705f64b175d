package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
// The joined arguments go through the same path as a form submission,
// so a blank title is dropped without a request.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tasklist add <title...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	input := tasklist.NewTextInput(strings.Join(args, " "))

	s := newSession(cfg, svc, input, out)
	if err := s.client.Dispatch(ctx, tasklist.Submit()); err != nil {
		return backendError(errOut, err)
	}
	s.view.Flush()
	return exitcode.Success
}
