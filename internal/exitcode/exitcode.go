// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown row, bad flag).
	UserError = 1

	// BackendError indicates a backend/API/network error.
	BackendError = 2
)
