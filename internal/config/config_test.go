package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the override variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIURL, EnvTimeout, EnvPort, EnvAllowedOrigins, EnvLogLevel} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	return NewManagerAt(filepath.Join(dir, "config.toml"), filepath.Join(dir, ".env")), dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	d, err := cfg.ClientTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"https url", func(c *Config) { c.Client.APIURL = "https://feedback.example.com/api" }, ""},
		{"bad scheme", func(c *Config) { c.Client.APIURL = "ftp://example.com" }, "invalid api-url"},
		{"no host", func(c *Config) { c.Client.APIURL = "http://" }, "invalid api-url"},
		{"bad timeout", func(c *Config) { c.Client.Timeout = "soon" }, "invalid timeout"},
		{"zero timeout", func(c *Config) { c.Client.Timeout = "0s" }, "timeout must be positive"},
		{"negative timeout", func(c *Config) { c.Client.Timeout = "-1s" }, "timeout must be positive"},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server addr cannot be empty"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log-level"},
		{"warning log level", func(c *Config) { c.LogLevel = "WARNING" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	assert.False(t, m.Exists())
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	cfg := Default()
	cfg.Client.APIURL = "https://feedback.example.com/api"
	cfg.Client.Timeout = "3s"
	cfg.Server.AllowedOrigins = []string{"https://app.example.com"}
	require.NoError(t, m.Save(cfg))
	assert.True(t, m.Exists())

	data, err := os.ReadFile(m.ConfigPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# feedback configuration"))
	assert.Contains(t, string(data), "api-url")

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Error(t, m.Save(nil))

	cfg := Default()
	cfg.Client.Timeout = "0s"
	assert.Error(t, m.Save(cfg))
	assert.False(t, m.Exists())
}

func TestLoadPartialFile(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("[server]\naddr = \":8080\"\n"), 0644))

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("[client\napi-url = "), 0644))

	_, err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("[client]\napi-url = \"nope\"\n"), 0644))

	_, err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	m, _ := newTestManager(t)

	require.NoError(t, os.WriteFile(m.ConfigPath(), []byte("[client]\napi-url = \"http://file.example/api\"\n"), 0644))
	t.Setenv(EnvAPIURL, "http://env.example/api")
	t.Setenv(EnvTimeout, "2s")
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvAllowedOrigins, " http://a.example , ,http://b.example")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", cfg.Client.APIURL)
	assert.Equal(t, "2s", cfg.Client.Timeout)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDotEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	m, dir := newTestManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("FEEDBACK_API_URL=http://dotenv.example/api\nPORT=6060\n"), 0644))
	// godotenv exports into the process environment
	t.Cleanup(func() {
		os.Unsetenv(EnvAPIURL)
		os.Unsetenv(EnvPort)
	})

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.example/api", cfg.Client.APIURL)
	assert.Equal(t, ":6060", cfg.Server.Addr)
}

func TestDotEnvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	m, dir := newTestManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("FEEDBACK_API_URL=http://dotenv.example/api\n"), 0644))
	t.Setenv(EnvAPIURL, "http://env.example/api")

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", cfg.Client.APIURL)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path := getConfigPath()

	assert.Equal(t, "config.toml", filepath.Base(path))
	assert.Equal(t, "feedback", filepath.Base(filepath.Dir(path)))
}
