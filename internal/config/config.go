// Package config provides client configuration with support for command-line flags,
// environment variables, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend modes.
const (
	BackendFixture = "fixture"
	BackendRemote  = "remote"
)

// DefaultBaseURL is the hosted API the front-end talks to.
const DefaultBaseURL = "https://belibraryformentee-production.up.railway.app"

// Config holds the client configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	API     APIConfig
	Fixture FixtureConfig
	Session SessionConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig selects and tunes the data access backend.
type APIConfig struct {
	Backend string        // fixture or remote, chosen once at startup
	BaseURL string        // remote API root
	Timeout time.Duration // bound applied to every call (default: 10s)

	RateLimitRPS   float64 // outbound requests per second per resource family
	RateLimitBurst int
}

// FixtureConfig tunes the in-memory backend.
type FixtureConfig struct {
	Delay       time.Duration // simulated latency per call (default: 500ms)
	AuthorTotal int           // size of the virtual paginated author set (default: 60)
	TokenKey    string        // hex PASETO v4 key; generated per session when empty
}

// SessionConfig holds where the auth token is kept.
type SessionConfig struct {
	Path      string // on-disk location of the token store
	LoginPath string // navigation target after the session is invalidated
}

// Load builds the configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// Flags that config does not know about are left for the caller in the returned slice.
func Load(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("library-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	backend := fs.String("backend", "", "Data backend (fixture, remote)")
	baseURL := fs.String("api-url", "", "Remote API base URL")
	timeout := fs.String("api-timeout", "", "Per-call timeout (default: 10s)")
	fixtureDelay := fs.String("fixture-delay", "", "Simulated fixture latency (default: 500ms)")
	sessionPath := fs.String("session-path", "", "Directory holding the stored auth token")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	rest, err := parseKnown(fs, args)
	if err != nil {
		return nil, nil, err
	}

	// Silently ignore a missing .env file.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			Backend:        strings.ToLower(getConfigValue(*backend, "API_BACKEND", BackendFixture)),
			BaseURL:        strings.TrimRight(getConfigValue(*baseURL, "API_BASE_URL", DefaultBaseURL), "/"),
			RateLimitRPS:   getFloatConfigValue("API_RATE_LIMIT_RPS", 10),
			RateLimitBurst: getIntConfigValue("", "API_RATE_LIMIT_BURST", 20),
		},
		Fixture: FixtureConfig{
			AuthorTotal: getIntConfigValue("", "FIXTURE_AUTHOR_TOTAL", 60),
			TokenKey:    getConfigValue("", "FIXTURE_TOKEN_KEY", ""),
		},
		Session: SessionConfig{
			Path:      getConfigValue(*sessionPath, "SESSION_PATH", ""),
			LoginPath: getConfigValue("", "LOGIN_PATH", "/login"),
		},
	}

	if cfg.API.Timeout, err = parseDuration(*timeout, "API_TIMEOUT", "10s"); err != nil {
		return nil, nil, err
	}
	if cfg.Fixture.Delay, err = parseDuration(*fixtureDelay, "FIXTURE_DELAY", "500ms"); err != nil {
		return nil, nil, err
	}

	if err := cfg.expandSessionPath(); err != nil {
		return nil, nil, fmt.Errorf("invalid session path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, rest, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.API.Backend {
	case BackendFixture:
	case BackendRemote:
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
		}
	default:
		return fmt.Errorf("invalid backend: %q (must be fixture or remote)", c.API.Backend)
	}

	if c.API.Timeout <= 0 {
		return errors.New("API timeout must be positive")
	}
	if c.API.RateLimitRPS <= 0 || c.API.RateLimitBurst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	if c.Fixture.Delay < 0 {
		return errors.New("fixture delay cannot be negative")
	}
	if c.Fixture.AuthorTotal < 0 {
		return errors.New("fixture author total cannot be negative")
	}
	if c.Session.Path == "" {
		return errors.New("session path cannot be empty after expansion")
	}
	if !strings.HasPrefix(c.Session.LoginPath, "/") {
		return fmt.Errorf("login path must be absolute: %q", c.Session.LoginPath)
	}

	return nil
}

// parseKnown parses the flags config owns and returns everything else untouched.
// "-name value" and "-name=value" forms are both understood.
func parseKnown(fs *flag.FlagSet, args []string) ([]string, error) {
	var known, rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimLeft(arg, "-")
		if name == arg || name == "" {
			rest = append(rest, arg)
			continue
		}
		hasValue := strings.Contains(name, "=")
		name, _, _ = strings.Cut(name, "=")

		if fs.Lookup(name) == nil {
			rest = append(rest, arg)
			if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				rest = append(rest, args[i+1])
				i++
			}
			continue
		}

		known = append(known, arg)
		if !hasValue && i+1 < len(args) {
			known = append(known, args[i+1])
			i++
		}
	}

	if err := fs.Parse(known); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return rest, nil
}

// expandSessionPath expands ~ and makes the path absolute.
// Defaults to ~/.library-client/session.
func (c *Config) expandSessionPath() error {
	path := c.Session.Path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		c.Session.Path = filepath.Join(homeDir, ".library-client", "session")
		return nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	c.Session.Path = filepath.Clean(abs)
	return nil
}

func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from env var or default.
func getFloatConfigValue(envKey string, defaultValue float64) float64 {
	strValue := os.Getenv(envKey)
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
