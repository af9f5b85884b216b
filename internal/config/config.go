package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultAPIURL is the local collection endpoint started by "feedback serve".
	DefaultAPIURL = "http://localhost:5050/api"
	// DefaultTimeout is the per-request timeout of the wizard's client.
	DefaultTimeout = "10s"
	// DefaultServerAddr is where "feedback serve" listens.
	DefaultServerAddr = ":5050"
	// DefaultLogLevel is the minimum level written to the log file.
	DefaultLogLevel = "info"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// Environment variables that override the config file.
const (
	EnvAPIURL         = "FEEDBACK_API_URL"
	EnvTimeout        = "FEEDBACK_TIMEOUT"
	EnvPort           = "PORT"
	EnvAllowedOrigins = "FEEDBACK_ALLOWED_ORIGINS"
	EnvLogLevel       = "FEEDBACK_LOG_LEVEL"
)

// Config represents the feedback configuration.
type Config struct {
	// Client settings used by the wizard and the submit command
	Client ClientConfig `toml:"client"`

	// Server settings used by the serve command
	Server ServerConfig `toml:"server"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log-level,omitempty"`
}

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	APIURL  string `toml:"api-url"`
	Timeout string `toml:"timeout"`
}

// ServerConfig configures the collection endpoint.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			APIURL:  DefaultAPIURL,
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		LogLevel: DefaultLogLevel,
	}
}

// ClientTimeout parses Client.Timeout.
func (c *Config) ClientTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Client.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Client.Timeout, err)
	}
	return d, nil
}

// Validate checks the configuration fields.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Client.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api-url: %q (must be an http(s) URL)", c.Client.APIURL)
	}

	d, err := c.ClientTimeout()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", d)
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server addr cannot be empty")
	}

	if c.LogLevel != "" {
		switch strings.ToLower(c.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("invalid log-level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
		}
	}

	return nil
}

// Manager handles configuration operations.
type Manager struct {
	configPath string
	dotEnvPath string
}

// NewManager creates a manager for the platform-specific config file.
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
		dotEnvPath: DotEnvFile,
	}
}

// NewManagerAt creates a manager for an explicit config file.
func NewManagerAt(configPath, dotEnvPath string) *Manager {
	return &Manager{configPath: configPath, dotEnvPath: dotEnvPath}
}

// getConfigPath returns the platform-specific path for the config file.
func getConfigPath() string {
	var configDir string
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "feedback")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "feedback")
	default: // linux and others
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "feedback")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "feedback")
		}
	}
	return filepath.Join(configDir, "config.toml")
}

// ConfigPath returns the path to the config file.
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// Exists checks if the config file exists.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// LoadFile reads the config file on top of the defaults. A missing file
// yields the defaults.
func (m *Manager) LoadFile() (*Config, error) {
	config := Default()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load returns the effective configuration: defaults, then the config
// file, then the .env file, then the environment.
func (m *Manager) Load() (*Config, error) {
	config, err := m.LoadFile()
	if err != nil {
		return nil, err
	}

	if err := m.loadDotEnv(); err != nil {
		return nil, err
	}
	ApplyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadDotEnv exports variables from the .env file without overriding
// variables that are already set.
func (m *Manager) loadDotEnv() error {
	if m.dotEnvPath == "" {
		return nil
	}
	if _, err := os.Stat(m.dotEnvPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(m.dotEnvPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", m.dotEnvPath, err)
	}
	return nil
}

// ApplyEnv overrides config fields from the environment.
func ApplyEnv(config *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		config.Client.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		config.Client.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		config.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v := strings.TrimSpace(os.Getenv(EnvAllowedOrigins)); v != "" {
		config.Server.AllowedOrigins = SplitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.LogLevel = v
	}
}

// SplitList splits a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Save writes the configuration to the config file.
func (m *Manager) Save(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# feedback configuration\n# Environment variables and .env override these values.\n\n")
	data = append(header, data...)

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
