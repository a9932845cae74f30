package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxFileSize   = 20 * 1024 * 1024 // 20MB, plannings are small
	DefaultHighThreshold = 35.0
	DefaultCacheTTL      = 10 * time.Minute

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "PLANNING"
)

// ErrVersionRequested is returned by LoadFromFlags when --version is given.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the planning hours server and CLI
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Planning PDFs
	PDFDirectory string
	Watch        bool // import new PDFs dropped into PDFDirectory
	MaxFileSize  int64

	// Storage; empty DatabaseURL keeps records in memory
	DatabaseURL string

	// Analysis
	HighThreshold float64 // weekly hours above this count as a high week
	CacheTTL      time.Duration

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	LogFormat  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:          ModeStdio, // Default to stdio mode for MCP compatibility
		Host:          DefaultHost,
		Port:          DefaultPort,
		PDFDirectory:  currentDir,
		MaxFileSize:   DefaultMaxFileSize,
		HighThreshold: DefaultHighThreshold,
		CacheTTL:      DefaultCacheTTL,
		Version:       "1.0.0",
		ServerName:    "mcp-planning-hours",
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// LoadFromFlags parses the process command line and returns a configuration
func LoadFromFlags() (*Config, error) {
	// Check for version flag before parsing
	if err := checkVersionFlag(os.Args[1:]); err != nil {
		return nil, err
	}

	DefineFlags(pflag.CommandLine, DefaultConfig())
	setupUsageMessage()
	pflag.Parse()

	return Load(pflag.CommandLine)
}

// DefineFlags registers every configuration flag on fs, using cfg for the
// default values.
func DefineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
	fs.String("host", cfg.Host, "Server host address (server mode only)")
	fs.Int("port", cfg.Port, "Server port (server mode only)")
	fs.String("dir", cfg.PDFDirectory, "Directory containing planning PDF files")
	fs.Bool("watch", cfg.Watch, "Import planning PDFs as they appear in --dir")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.String("database-url", cfg.DatabaseURL, "PostgreSQL connection string (in-memory store when empty)")
	fs.Float64("high-threshold", cfg.HighThreshold, "Weekly hours above which a week counts as high")
	fs.Duration("cache-ttl", cfg.CacheTTL, "How long parsed plannings are cached")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("logformat", cfg.LogFormat, "Log format (console, json)")
}

// Load reads the configuration from an already parsed flag set, the
// environment and an optional .env file. Explicit flags win over the
// environment, which wins over the flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setupViperEnvironment(v)
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	cfg := DefaultConfig()
	populateConfigFromViper(v, cfg)

	if cfg.PDFDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment maps PLANNING_* environment variables onto flag names
func setupViperEnvironment(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Planning Hours - weekly worked hours from work planning PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/plannings                       "+
			"# stdio mode, in-memory store\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --watch --dir=/srv/plannings      "+
			"# SSE server importing new files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --database-url=postgres://localhost/planning    "+
			"# persistent store\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables (also read from .env):\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_MODE            Server mode\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_HOST            Server host\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_PORT            Server port\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_DIR             Planning directory\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_WATCH           Watch the planning directory\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_DATABASE_URL    PostgreSQL connection string\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_HIGH_THRESHOLD  High week threshold in hours\n")
		fmt.Fprintf(os.Stderr, "  PLANNING_LOGLEVEL        Log level\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) error {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.PDFDirectory = v.GetString("dir")
	cfg.Watch = v.GetBool("watch")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
	cfg.DatabaseURL = v.GetString("database-url")
	cfg.HighThreshold = v.GetFloat64("high-threshold")
	cfg.CacheTTL = v.GetDuration("cache-ttl")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.LogFormat = v.GetString("logformat")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("planning directory cannot be empty")
	}

	// Check if the directory exists, create if it doesn't
	if _, err := os.Stat(c.PDFDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.PDFDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create planning directory %s: %w", c.PDFDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access planning directory %s: %w", c.PDFDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.HighThreshold <= 0 {
		return errors.New("high week threshold must be positive")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.LogFormat)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// HasDatabase reports whether records are persisted in PostgreSQL
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// String returns a string representation of the configuration. The database
// URL is not printed since it may carry credentials.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, Watch: %t, "+
		"Database: %t, HighThreshold: %g, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.Watch,
		c.HasDatabase(), c.HighThreshold, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
