package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/internal/backend/restapi"
	"tasklist/internal/cli"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate keeps the environment and home config out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvServer, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOG_LEVEL", "")
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommandNeedsNoService(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		t.Fatal("factory should not be called for help")
		return nil, nil
	}

	stdout, stderr, code := run(t, factory, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	stdout, _, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "tasklist 0.1.0\n" {
		t.Errorf("expected 'tasklist 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsValue(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "list", "--server")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -server\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  [ ] Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_CommandFlags(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("abc", "Buy milk", false)

	_, _, code := run(t, testFactory(svc), "done", "--quiet", "--id", "abc")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	calls := svc.CallStrings()
	if len(calls) == 0 || calls[0] != "update abc done=true" {
		t.Errorf("unexpected calls %q", calls)
	}
}

func TestDispatcher_ConfigFromFlags(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvServer, "http://env.example:9000")
	dir := t.TempDir()

	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg
		return testutil.NewFakeService(), nil
	}

	_, _, code := run(t, factory, "list", "--server", "http://flag.example:8000/", "--timeout", "3s", "--config", dir, "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got.Server != "http://flag.example:8000" {
		t.Errorf("expected flag server, got %q", got.Server)
	}
	if got.Timeout.String() != "3s" {
		t.Errorf("expected 3s timeout, got %v", got.Timeout)
	}
	if got.Dir != dir || !got.Quiet {
		t.Errorf("unexpected config %+v", got)
	}
	if got.Logger == nil {
		t.Error("expected logger to be set")
	}
	if got.Metrics != nil {
		t.Error("expected no metrics without --metrics")
	}
}

func TestDispatcher_InvalidServer(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--server", "ftp://x")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid server url: ftp://x\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidTimeout(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--timeout", "soon")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid timeout: soon\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("connection refused")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeService()), "list", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected list output on stdout only, got %q", stdout)
	}
	if !strings.Contains(stderr, "level=debug") || !strings.Contains(stderr, "command=list") {
		t.Errorf("expected debug entries on stderr, got %q", stderr)
	}
}

func TestDispatcher_WritesMetricsFile(t *testing.T) {
	isolate(t)
	fc := testutil.NewFakeCollection(t)
	fc.Seed("Buy milk", false)
	path := filepath.Join(t.TempDir(), "tasklist.prom")

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return restapi.New(cfg), nil
	}

	_, stderr, code := run(t, factory, "done", "--server", fc.URL(), "--metrics", path, "1")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected metrics file: %v", err)
	}
	for _, want := range []string{
		`tasklist_requests_total{method="GET",route="/api/tasks",status="200"} 2`,
		`tasklist_requests_total{method="PUT",route="/api/tasks/{id}",status="200"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in metrics file:\n%s", want, data)
		}
	}
}
