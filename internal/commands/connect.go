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
	Register(&ConnectCmd{})
}

// ConnectCmd stores a server URL in the config dir as the default for later runs.
// --server and TASKLIST_SERVER still take precedence over it.
type ConnectCmd struct{}

func (c *ConnectCmd) Name() string       { return "connect" }
func (c *ConnectCmd) Aliases() []string  { return nil }
func (c *ConnectCmd) Synopsis() string   { return "Save the default server URL" }
func (c *ConnectCmd) Usage() string      { return "tasklist connect [common flags] <url>" }
func (c *ConnectCmd) NeedsService() bool { return false }

func (c *ConnectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConnectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: server url required")
		return exitcode.UserError
	}
	if !noArgs(args[1:], errOut) {
		return exitcode.UserError
	}

	server, err := config.ParseServer(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if saved, ok := cfg.SavedServer(); ok && saved == server {
		if !cfg.Quiet {
			fmt.Fprintf(out, "already connected to %s\n", server)
		}
		return exitcode.Success
	}

	if err := cfg.SaveServer(server); err != nil {
		fmt.Fprintf(errOut, "error: failed to save server: %v\n", err)
		return exitcode.UserError
	}
	cfg.Log().WithField("path", cfg.ServerPath()).Debug("server saved")

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
