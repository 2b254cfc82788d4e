// Package config handles the XDG configuration directory and the layered
// settings read from config.toml, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todoapp"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.toml"

	// DefaultBaseURL is the remote task resource.
	DefaultBaseURL = "https://todo-backend-30nv.onrender.com"

	// DefaultLogLevel applies when a log file is configured without a level.
	DefaultLogLevel = "info"
)

// Environment variable names.
const (
	EnvBaseURL  = "TODOAPP_BASE_URL"
	EnvLogLevel = "TODOAPP_LOG_LEVEL"
	EnvLogFile  = "TODOAPP_LOG_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the remote task resource every request is made against.
	BaseURL string

	// LogLevel is the diagnostic log level for LogFile.
	LogLevel string

	// LogFile receives JSON diagnostic logs when set.
	LogFile string

	// Debug enables debug logging to stderr.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	BaseURL  string `toml:"base_url"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todoapp or $HOME/.config/todoapp.
// Only defaults are applied; call Load to read files and the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		BaseURL:  DefaultBaseURL,
		LogLevel: DefaultLogLevel,
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.toml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// Load applies config.toml, then .env from the working directory, then the
// environment. Missing files are not an error. Values are not validated
// here since flags may still override them; call Validate once every layer
// has been applied.
func (c *Config) Load() error {
	if err := c.loadFile(c.Path()); err != nil {
		return err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	c.loadEnv()
	return nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
}

// Validate checks that BaseURL is an absolute http(s) URL.
// A trailing slash is stripped so paths can be appended directly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q: must be an absolute http or https URL", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}
