package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

func init() {
	Register(&ShellCmd{})
}

// Shell commands. Any other line is submitted as a new task title.
const (
	shellQuit    = ":q"
	shellRefresh = ":r"
	shellToggle  = ":x"
	shellRemove  = ":rm"
)

// ShellCmd implements an interactive loop over stdin.
type ShellCmd struct {
	in io.Reader
}

// SetInput replaces stdin (for testing).
func (c *ShellCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return nil }
func (c *ShellCmd) Synopsis() string   { return "Edit the list interactively" }
func (c *ShellCmd) Usage() string      { return "tasklist shell" }
func (c *ShellCmd) NeedsService() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	logger := cfg.Log().WithField("component", "shell")

	input := tasklist.NewTextInput("")
	s := newSession(cfg, svc, input, out)
	if err := s.client.Dispatch(ctx, tasklist.Refresh()); err != nil {
		return backendError(errOut, err)
	}
	s.view.Flush()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == shellQuit {
			return exitcode.Success
		}

		ev, err := parseShellLine(line, s)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		if ev.Kind == tasklist.EventSubmit {
			input.Text = line
		}
		logger.WithField("event", ev.Kind.String()).Debug("shell command")

		if err := s.client.Dispatch(ctx, ev); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			continue
		}
		s.view.Flush()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// parseShellLine maps one input line to an event. Row numbers refer to the
// list as last printed.
func parseShellLine(line string, s *session) (tasklist.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], ":") {
		return tasklist.Submit(), nil
	}

	switch fields[0] {
	case shellRefresh:
		return tasklist.Refresh(), nil
	case shellToggle, shellRemove:
		if len(fields) != 2 {
			return tasklist.Event{}, fmt.Errorf("usage: %s <n>", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return tasklist.Event{}, fmt.Errorf("invalid task reference: %s", fields[1])
		}
		row, err := rowAt(s.view, n)
		if err != nil {
			return tasklist.Event{}, err
		}
		if fields[0] == shellToggle {
			return tasklist.Toggle(row.ID, !row.Checked), nil
		}
		return tasklist.Delete(row.ID), nil
	default:
		return tasklist.Event{}, errors.New("unknown shell command: " + fields[0])
	}
}
