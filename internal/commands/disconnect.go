package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&DisconnectCmd{})
}

// DisconnectCmd removes the saved server URL.
type DisconnectCmd struct{}

func (c *DisconnectCmd) Name() string       { return "disconnect" }
func (c *DisconnectCmd) Aliases() []string  { return nil }
func (c *DisconnectCmd) Synopsis() string   { return "Forget the saved server URL" }
func (c *DisconnectCmd) Usage() string      { return "tasklist disconnect [common flags]" }
func (c *DisconnectCmd) NeedsService() bool { return false }

func (c *DisconnectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DisconnectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}

	if _, ok := cfg.SavedServer(); !ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not connected")
		}
		return exitcode.Success
	}

	if err := cfg.RemoveServer(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove server: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
