package commands

import (
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

// session is a task list client rendering into a text view on out.
type session struct {
	view   *output.TextView
	client *tasklist.Client
}

func newSession(cfg *config.Config, svc service.Service, input tasklist.Input, out io.Writer) *session {
	view := output.NewTextView(out, cfg.Quiet)
	return &session{
		view:   view,
		client: tasklist.New(svc, view, input, tasklist.Options{Logger: cfg.Log()}),
	}
}

func backendError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

func noArgs(args []string, errOut io.Writer) bool {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return false
	}
	return true
}
