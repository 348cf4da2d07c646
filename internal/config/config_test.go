package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		API: APIConfig{
			Backend:        BackendFixture,
			BaseURL:        DefaultBaseURL,
			Timeout:        10 * time.Second,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Fixture: FixtureConfig{Delay: 500 * time.Millisecond, AuthorTotal: 60},
		Session: SessionConfig{Path: "/tmp/session", LoginPath: "/login"},
	}
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"unknown backend", func(c *Config) { c.API.Backend = "graphql" }},
		{"remote without host", func(c *Config) {
			c.API.Backend = BackendRemote
			c.API.BaseURL = "not a url"
		}},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"zero burst", func(c *Config) { c.API.RateLimitBurst = 0 }},
		{"negative delay", func(c *Config) { c.Fixture.Delay = -time.Second }},
		{"negative author total", func(c *Config) { c.Fixture.AuthorTotal = -1 }},
		{"empty session path", func(c *Config) { c.Session.Path = "" }},
		{"relative login path", func(c *Config) { c.Session.LoginPath = "login" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_PATH", t.TempDir())

	cfg, rest, err := Load([]string{"-env-file", noEnvFile(t)})
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, BackendFixture, cfg.API.Backend)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Fixture.Delay)
	assert.Equal(t, 60, cfg.Fixture.AuthorTotal)
	assert.Equal(t, "/login", cfg.Session.LoginPath)
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv("SESSION_PATH", t.TempDir())
	t.Setenv("API_BACKEND", "fixture")
	t.Setenv("API_TIMEOUT", "3s")

	cfg, _, err := Load([]string{
		"-env-file", noEnvFile(t),
		"-backend", "remote",
		"-api-url=https://library.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, BackendRemote, cfg.API.Backend)
	assert.Equal(t, "https://library.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestLoad_UnknownFlagsArePassedThrough(t *testing.T) {
	t.Setenv("SESSION_PATH", t.TempDir())

	_, rest, err := Load([]string{"-env-file", noEnvFile(t), "-search", "clean", "-fixture-delay=0s", "extra"})
	require.NoError(t, err)

	assert.Equal(t, []string{"-search", "clean", "extra"}, rest)
}

func TestLoad_ZeroAuthorTotalIsKept(t *testing.T) {
	t.Setenv("SESSION_PATH", t.TempDir())
	t.Setenv("FIXTURE_AUTHOR_TOTAL", "0")

	cfg, _, err := Load([]string{"-env-file", noEnvFile(t)})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Fixture.AuthorTotal)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SESSION_PATH", t.TempDir())
	t.Setenv("API_TIMEOUT", "soon")

	_, _, err := Load([]string{"-env-file", noEnvFile(t)})
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nLIBCLIENT_TEST_A=\"quoted\"\nLIBCLIENT_TEST_B=plain\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LIBCLIENT_TEST_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("LIBCLIENT_TEST_A") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "quoted", os.Getenv("LIBCLIENT_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("LIBCLIENT_TEST_B"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_PAIR\n"), 0o600))

	assert.Error(t, loadEnvFile(path))
}

func TestExpandSessionPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := validConfig()
	cfg.Session.Path = "~/somewhere"
	require.NoError(t, cfg.expandSessionPath())
	assert.Equal(t, filepath.Join(home, "somewhere"), cfg.Session.Path)
}
