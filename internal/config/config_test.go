package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}
	if cfg.Host != "127.0.0.1" {
		t.Errorf("Expected default host to be '127.0.0.1', got '%s'", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected default port to be 8080, got %d", cfg.Port)
	}
	if cfg.ServerName != "mcp-planning-hours" {
		t.Errorf("Expected default server name to be 'mcp-planning-hours', got '%s'", cfg.ServerName)
	}
	if cfg.HighThreshold != 35 {
		t.Errorf("Expected default high threshold to be 35, got %g", cfg.HighThreshold)
	}
	if cfg.HasDatabase() {
		t.Error("Expected no database by default")
	}

	currentDir, _ := os.Getwd()
	if cfg.PDFDirectory != currentDir {
		t.Errorf("Expected default directory to be '%s', got '%s'", currentDir, cfg.PDFDirectory)
	}
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PDFDirectory = t.TempDir()
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid stdio", func(*Config) {}, ""},
		{"valid server", func(c *Config) { c.Mode = ModeServer }, ""},
		{"invalid mode", func(c *Config) { c.Mode = "invalid" }, "mode must be"},
		{"port too low in server mode", func(c *Config) { c.Mode = ModeServer; c.Port = 0 }, "port must be"},
		{"port ignored in stdio mode", func(c *Config) { c.Port = 0 }, ""},
		{"empty directory", func(c *Config) { c.PDFDirectory = "" }, "cannot be empty"},
		{"zero file size", func(c *Config) { c.MaxFileSize = 0 }, "file size"},
		{"zero threshold", func(c *Config) { c.HighThreshold = 0 }, "threshold"},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }, "cache TTL"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
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

func TestConfigValidateDirectoryCreation(t *testing.T) {
	cfg := validConfig(t)
	cfg.PDFDirectory = filepath.Join(cfg.PDFDirectory, "inbox", "2024")

	require.NoError(t, cfg.Validate())

	info, err := os.Stat(cfg.PDFDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefineFlags(fs, DefaultConfig())
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Flags(t *testing.T) {
	dir := t.TempDir()
	fs := newFlagSet(t,
		"--mode=server", "--host=0.0.0.0", "--port=9090", "--dir="+dir,
		"--watch", "--high-threshold=39", "--cache-ttl=1m", "--loglevel=debug",
		"--logformat=json", "--database-url=postgres://localhost/planning",
	)

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 39.0, cfg.HighThreshold)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.IsDebug())
	assert.True(t, cfg.IsServerMode())
	assert.False(t, cfg.IsStdioMode())
	assert.True(t, cfg.HasDatabase())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANNING_DIR", dir)
	t.Setenv("PLANNING_HIGH_THRESHOLD", "37.5")
	t.Setenv("PLANNING_DATABASE_URL", "postgres://db/planning")
	t.Setenv("PLANNING_PORT", "7000")

	cfg, err := Load(newFlagSet(t, "--port=7001"))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.Equal(t, 37.5, cfg.HighThreshold)
	assert.Equal(t, "postgres://db/planning", cfg.DatabaseURL)
	// explicit flags win over the environment
	assert.Equal(t, 7001, cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(newFlagSet(t, "--dir="+t.TempDir(), "--mode=grpc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCheckVersionFlag(t *testing.T) {
	assert.ErrorIs(t, checkVersionFlag([]string{"--dir=x", "--version"}), ErrVersionRequested)
	assert.ErrorIs(t, checkVersionFlag([]string{"-v"}), ErrVersionRequested)
	assert.NoError(t, checkVersionFlag([]string{"--mode=server"}))
}

func TestConfigString(t *testing.T) {
	cfg := validConfig(t)
	cfg.DatabaseURL = "postgres://user:secret@db/planning"

	s := cfg.String()
	assert.True(t, strings.HasPrefix(s, "Config{Mode: stdio"))
	assert.Contains(t, s, "Database: true")
	assert.NotContains(t, s, "secret")
}
