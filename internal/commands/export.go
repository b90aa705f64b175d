package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes the current list as JSON, CSV or PDF.
type ExportCmd struct {
	format string
	output string
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the output file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Export tasks" }
func (c *ExportCmd) Usage() string      { return "tasklist export [--format json|csv|pdf] [--output <file>]" }
func (c *ExportCmd) NeedsService() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.format, "f", output.FormatJSON, "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = output.FormatJSON
	}
	// Check the format before fetching anything
	var unknown *output.ErrUnknownFormat
	if err := output.Export(io.Discard, nil, format); errors.As(err, &unknown) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	toStdout := c.output == "" || c.output == "-"
	if toStdout && format == output.FormatPDF {
		fmt.Fprintln(errOut, "error: pdf export needs --output <file>")
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return backendError(errOut, err)
	}

	if toStdout {
		if err := output.Export(out, tasks, format); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	if err := writeExport(c.output, tasks, format); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(tasks), c.output)
	}
	return exitcode.Success
}

func writeExport(path string, tasks []service.Task, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.Export(f, tasks, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
