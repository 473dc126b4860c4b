package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Notifier backend names
const (
	NotifierConsole   = "console"
	NotifierDesktop   = "desktop"
	NotifierNotifyApp = "notifyapp"
	NotifierPushover  = "pushover"
)

// Config holds all configuration for alert
type Config struct {
	// Notification settings
	Notifier  string          `yaml:"notifier" env:"ALERT_NOTIFIER"`
	Pushover  PushoverConfig  `yaml:"pushover"`
	NotifyApp NotifyAppConfig `yaml:"notifyapp"`
	Transport TransportConfig `yaml:"transport"`

	// Behavior flags
	PTY   bool `yaml:"pty" env:"ALERT_PTY"`
	Debug bool `yaml:"debug" env:"ALERT_DEBUG"`
}

// PushoverConfig holds pushover.net credentials
type PushoverConfig struct {
	Token string `yaml:"token" env:"PUSHOVER_TOKEN"`
	User  string `yaml:"user" env:"PUSHOVER_USER"`
}

// NotifyAppConfig holds the Notify app registration key
type NotifyAppConfig struct {
	Key string `yaml:"key" env:"NOTIFYAPP_KEY"`
}

// TransportConfig controls the HTTP client used by push notifiers
type TransportConfig struct {
	Proxy     string        `yaml:"proxy" env:"ALERT_PROXY"`
	ProxyAuth string        `yaml:"proxy_auth" env:"ALERT_PROXY_AUTH"`
	Timeout   time.Duration `yaml:"timeout" env:"ALERT_HTTP_TIMEOUT"`
}

// UnknownNotifierError is returned for a notifier name we do not support
type UnknownNotifierError struct {
	Name string
}

func (e *UnknownNotifierError) Error() string {
	return fmt.Sprintf("unknown notifier %q (use console, desktop, notifyapp or pushover)", e.Name)
}

// MissingSettingError is returned when the selected notifier lacks a required setting
type MissingSettingError struct {
	Env      string
	Notifier string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s must be set to use the %s notifier", e.Env, e.Notifier)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Notifier: NotifierPushover,
		Transport: TransportConfig{
			Timeout: 25 * time.Second,
		},
	}
}

// Load loads configuration from file and environment. ALERT_CONFIG names a
// file that must exist; the default locations may be absent.
func Load() (*Config, error) {
	path, explicit := getConfigPath()
	return load(path, explicit)
}

// LoadFile loads configuration from the given file and the environment.
// The file must exist.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		err := loadFromFile(cfg, path)
		if err != nil && (explicit || !os.IsNotExist(err)) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getConfigPath returns the config file path and whether the user named it
func getConfigPath() (string, bool) {
	// Check for explicit config path
	if path := os.Getenv("ALERT_CONFIG"); path != "" {
		return path, true
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "alert", "config.yaml"), false
	}

	// Fall back to home directory
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "alert", "config.yaml"), false
	}

	return "", false
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (env var, flag or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if name := os.Getenv("ALERT_NOTIFIER"); name != "" {
		cfg.Notifier = name
	}

	if token := os.Getenv("PUSHOVER_TOKEN"); token != "" {
		cfg.Pushover.Token = token
	}

	if user := os.Getenv("PUSHOVER_USER"); user != "" {
		cfg.Pushover.User = user
	}

	if key := os.Getenv("NOTIFYAPP_KEY"); key != "" {
		cfg.NotifyApp.Key = key
	}

	if proxy := os.Getenv("ALERT_PROXY"); proxy != "" {
		cfg.Transport.Proxy = proxy
	}

	if auth := os.Getenv("ALERT_PROXY_AUTH"); auth != "" {
		cfg.Transport.ProxyAuth = auth
	}

	if timeout := os.Getenv("ALERT_HTTP_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid ALERT_HTTP_TIMEOUT: %w", err)
		}
		cfg.Transport.Timeout = d
	}

	if err := parseBoolEnv("ALERT_PTY", &cfg.PTY); err != nil {
		return err
	}

	if err := parseBoolEnv("ALERT_DEBUG", &cfg.Debug); err != nil {
		return err
	}

	return nil
}

// parseBoolEnv sets *dst from a true/false environment variable when it is present
func parseBoolEnv(name string, dst *bool) error {
	value := os.Getenv(name)
	if value == "" {
		return nil
	}

	switch strings.ToLower(value) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		return fmt.Errorf("invalid %s value: %q (use true/false)", name, value)
	}
	return nil
}

// Validate checks that the selected notifier has everything it needs
func Validate(cfg *Config) error {
	switch cfg.Notifier {
	case NotifierConsole, NotifierDesktop:
	case NotifierNotifyApp:
		if cfg.NotifyApp.Key == "" {
			return &MissingSettingError{Env: "NOTIFYAPP_KEY", Notifier: cfg.Notifier}
		}
	case NotifierPushover:
		if cfg.Pushover.Token == "" {
			return &MissingSettingError{Env: "PUSHOVER_TOKEN", Notifier: cfg.Notifier}
		}
		if cfg.Pushover.User == "" {
			return &MissingSettingError{Env: "PUSHOVER_USER", Notifier: cfg.Notifier}
		}
	default:
		return &UnknownNotifierError{Name: cfg.Notifier}
	}

	if cfg.Transport.Timeout < 0 {
		return fmt.Errorf("transport.timeout must be non-negative")
	}

	return nil
}
