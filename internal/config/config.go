// Package config resolves server, timeout and directory settings.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tasklist/internal/logging"
	"tasklist/internal/metrics"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ServerFile holds an optional default server URL inside the config dir.
	ServerFile = "server"

	// DefaultServer is used when no flag, env or server file names one.
	DefaultServer = "http://localhost:8000"

	// EnvServer overrides the server URL.
	EnvServer = "TASKLIST_SERVER"

	// EnvTimeout overrides the per-request timeout (Go duration syntax).
	EnvTimeout = "TASKLIST_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Server is the base URL of the task collection service.
	Server string

	// Timeout bounds each request. Zero means requests wait indefinitely.
	Timeout time.Duration

	// MetricsPath, when set, receives request metrics in text format on exit.
	MetricsPath string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger and Metrics are built by the dispatcher once flags are parsed.
	// Either may be nil in tests.
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
}

// Options carries the raw values given on the command line.
// Empty fields fall back to the environment, then to defaults.
type Options struct {
	ConfigDir string
	Server    string
	Timeout   string
}

// New creates a Config from command-line options, the environment and defaults.
func New(opts Options) (*Config, error) {
	dir := opts.ConfigDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	server, err := cfg.resolveServer(opts.Server)
	if err != nil {
		return nil, err
	}
	cfg.Server = server

	timeout := opts.Timeout
	if timeout == "" {
		timeout = os.Getenv(EnvTimeout)
	}
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid timeout: %s", timeout)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

func (c *Config) resolveServer(flagValue string) (string, error) {
	server := flagValue
	if server == "" {
		server = os.Getenv(EnvServer)
	}
	if server == "" {
		server, _ = c.SavedServer()
	}
	if server == "" {
		server = DefaultServer
	}
	return ParseServer(server)
}

// ParseServer checks that raw is an absolute http(s) URL and strips trailing slashes.
func ParseServer(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid server url: %s", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ServerPath returns the path to the default server file.
func (c *Config) ServerPath() string {
	return filepath.Join(c.Dir, ServerFile)
}

// SavedServer returns the server URL stored in the config dir, if any.
func (c *Config) SavedServer() (string, bool) {
	data, err := os.ReadFile(c.ServerPath())
	if err != nil {
		return "", false
	}
	server := strings.TrimSpace(string(data))
	return server, server != ""
}

// SaveServer stores server as the default for later runs.
func (c *Config) SaveServer(server string) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.ServerPath(), []byte(server+"\n"), 0600)
}

// RemoveServer deletes the stored server URL. A missing file is not an error.
func (c *Config) RemoveServer() error {
	err := os.Remove(c.ServerPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *logrus.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}
