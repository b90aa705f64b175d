// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/logging"
	"tasklist/internal/metrics"
	"tasklist/internal/service"
)

// DefaultCommand runs when no arguments are given.
const DefaultCommand = "list"

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonFlags are accepted by every command, after the command name.
type commonFlags struct {
	opts    config.Options
	quiet   bool
	debug   bool
	metrics string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.opts.Server, "server", "", "")
	fs.StringVar(&f.opts.Timeout, "timeout", "", "")
	fs.StringVar(&f.opts.ConfigDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
	fs.StringVar(&f.metrics, "metrics", "", "")
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name := DefaultCommand
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	// Flags require a command, so a leading flag is an unknown command
	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	// A positional arg starting with - is a flag the command doesn't know
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := buildConfig(common, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Logger.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"server":  cfg.Server,
		"timeout": cfg.Timeout.String(),
	}).Debug("dispatch")

	var svc service.Service
	if cmd.NeedsService() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: backend error: no task service configured")
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	code := cmd.Run(ctx, cfg, svc, positional, out, errOut)

	if cfg.Metrics != nil {
		if err := cfg.Metrics.WriteFile(cfg.MetricsPath); err != nil {
			fmt.Fprintf(errOut, "error: write metrics: %s\n", err)
			if code == exitcode.Success {
				code = exitcode.UserError
			}
		}
	}
	return code
}

// buildConfig resolves the config and attaches the logger, plus metrics when
// a metrics file was requested.
func buildConfig(common commonFlags, errOut io.Writer) (*config.Config, error) {
	cfg, err := config.New(common.opts)
	if err != nil {
		return nil, err
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	cfg.MetricsPath = common.metrics
	cfg.Logger = logging.New(errOut, common.debug)
	if cfg.MetricsPath != "" {
		cfg.Metrics = metrics.New()
	}
	return cfg, nil
}

// describeFlagError rewrites flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return msg
}
