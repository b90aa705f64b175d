package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)

	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-18s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  tasklist                                   List tasks
  tasklist list [common flags]
  tasklist add [common flags] <title...>
  tasklist done [common flags] [--id] <ref>
  tasklist undo [common flags] [--id] <ref>
  tasklist rm [common flags] [--id] <ref>
  tasklist shell [common flags]              Edit interactively (:x N, :rm N, :r, :q)
  tasklist gui [common flags] [--serialize]
  tasklist export [common flags] [--format json|csv|pdf] [--output <file>]
  tasklist connect [common flags] <url>      Save the default server URL
  tasklist disconnect [common flags]
  tasklist help
  tasklist version

<ref> is a row number as printed by list, or a task id with --id.

Common flags:
  --server <url>        Task service base URL (default http://localhost:8000)
  --timeout <duration>  Per-request timeout, e.g. 5s (default none)
  --config <dir>        Override config directory
  --quiet               Suppress informational output
  --debug               Print debug logs to stderr
  --metrics <file>      Write request metrics to file on exit
`
