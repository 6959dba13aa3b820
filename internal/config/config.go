// Package config loads the wrapper's host-side settings from .dw.yaml and
// the environment. Nothing here ever alters the wrapped tool's argument
// semantics; config only covers the wrapper's own collaborators.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Zero fields fall back to the
// defaults below.
type Config struct {
	// Tool is the wrapped binary to spawn.
	Tool string `yaml:"tool"`

	// Notifier selects the sink: "logtool" or "console".
	Notifier string `yaml:"notifier"`

	// User, AppName and Category are passed to log_tool.
	User     string `yaml:"user"`
	AppName  string `yaml:"app_name"`
	Category string `yaml:"category"`

	// PingTimeoutSeconds and PingRetries bound the health-check transport.
	PingTimeoutSeconds int `yaml:"ping_timeout_seconds"`
	PingRetries        int `yaml:"ping_retries"`

	// LogFile routes the wrapper's own diagnostics to a rotating file;
	// empty keeps them on stderr.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// MaxLineLength bounds a single scanned output line, in bytes.
	MaxLineLength int `yaml:"max_line_length"`
}

const (
	DefaultTool          = "duplicacy"
	DefaultNotifier      = "logtool"
	DefaultAppName       = "Duplicacy"
	DefaultCategory      = "Job Status"
	DefaultPingTimeout   = 10 * time.Second
	DefaultPingRetries   = 5
	DefaultMaxLineLength = 1 * 1024 * 1024
)

// Load returns the effective configuration: defaults, overlaid by the first
// .dw.yaml found (working directory, then the user config directory), then
// environment overrides. A malformed file degrades to defaults with a
// warning on stderr rather than failing the run.
func Load() *Config {
	cfg := defaults()

	if path := configPath(); path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config %s: %v\n", path, err)
				cfg = defaults()
			}
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: cannot read config %s: %v\n", path, err)
		}
	}

	applyEnv(cfg)
	fillZeroes(cfg)
	return cfg
}

// LoadFile parses one specific config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyEnv(cfg)
	fillZeroes(cfg)
	return cfg, nil
}

// PingTimeout returns the configured per-attempt timeout.
func (c *Config) PingTimeout() time.Duration {
	if c.PingTimeoutSeconds <= 0 {
		return DefaultPingTimeout
	}
	return time.Duration(c.PingTimeoutSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		Tool:          DefaultTool,
		Notifier:      DefaultNotifier,
		User:          currentUser(),
		AppName:       DefaultAppName,
		Category:      DefaultCategory,
		PingRetries:   DefaultPingRetries,
		MaxLineLength: DefaultMaxLineLength,
		LogLevel:      "info",
	}
}

// fillZeroes restores defaults that a config file explicitly blanked.
func fillZeroes(cfg *Config) {
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.Notifier == "" {
		cfg.Notifier = DefaultNotifier
	}
	if cfg.User == "" {
		cfg.User = currentUser()
	}
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.Category == "" {
		cfg.Category = DefaultCategory
	}
	if cfg.PingRetries <= 0 {
		cfg.PingRetries = DefaultPingRetries
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DefaultMaxLineLength
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DW_TOOL"); v != "" {
		cfg.Tool = v
	}
	if v := os.Getenv("DW_NOTIFIER"); v != "" {
		cfg.Notifier = v
	}
	if v := os.Getenv("DW_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if os.Getenv("DW_DEBUG") != "" {
		cfg.LogLevel = "debug"
	}
}

// configPath finds .dw.yaml: working directory first, then the per-user
// config directory.
func configPath() string {
	local := ".dw.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "dw", ".dw.yaml")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
