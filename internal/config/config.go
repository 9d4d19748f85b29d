// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/listenupapp/board-server/internal/validation"
)

// Default values shared with the CLI.
const (
	DefaultPort        = 13478
	DefaultPageSize    = 50
	DefaultMaxMessages = 1024
	DefaultDataDirName = ".message-board"

	dbFileName  = "messages.db"
	pidFileName = "message-board.pid"
	logFileName = "message-board.log"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Server    ServerConfig
	Board     BoardConfig
	RateLimit RateLimitConfig
	Web       WebConfig
	Metrics   MetricsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `env:"ENV" validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format     string `env:"LOG_FORMAT" validate:"omitempty,oneof=pretty json text"` // Empty picks by environment
	File       string `env:"LOG_FILE"`                                               // Optional rotating log file
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" validate:"min=1"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" validate:"gte=0"`
}

// StorageConfig holds where the board keeps its files.
type StorageConfig struct {
	DataDir string `env:"DATA_DIR" validate:"required"`
}

// DBPath is the SQLite database file.
func (c StorageConfig) DBPath() string { return filepath.Join(c.DataDir, dbFileName) }

// PIDFile records the daemon's process id.
func (c StorageConfig) PIDFile() string { return filepath.Join(c.DataDir, pidFileName) }

// LogFile receives the daemon's output.
func (c StorageConfig) LogFile() string { return filepath.Join(c.DataDir, logFileName) }

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host           string        `env:"HOST"`
	Port           int           `env:"PORT" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT" validate:"gt=0"`
	MaxConnections int           `env:"SERVER_MAX_CONNECTIONS" validate:"gte=0"` // 0 means unlimited
	MaxBodyBytes   int64         `env:"SERVER_MAX_BODY_BYTES" validate:"min=1"`
	CORSOrigins    []string      `env:"CORS_ORIGINS"`
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// BoardConfig holds the feed and retention limits.
type BoardConfig struct {
	PageSize    int `env:"PAGE_SIZE" validate:"min=1,max=100"`
	MaxMessages int `env:"MAX_MESSAGES" validate:"min=1"`
	MaxPages    int `env:"MAX_PAGES" validate:"min=1"` // Defaults to ceil(MaxMessages/PageSize)
}

// RateLimitConfig bounds write requests per client IP.
type RateLimitConfig struct {
	SubmitPerMinute int `env:"SUBMIT_RATE_PER_MINUTE" validate:"gte=0"` // 0 disables limiting
	Burst           int `env:"SUBMIT_BURST" validate:"min=1"`
}

// WebConfig holds HTML front-end configuration.
type WebConfig struct {
	// TemplateDir, when set, loads templates from disk and reloads them on
	// change instead of using the embedded copies.
	TemplateDir string `env:"TEMPLATE_DIR"`
}

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags in args (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (pretty, json, text)")
	logFile := fs.String("log-file", "", "Write logs to this file with rotation")
	dataDir := fs.String("data-dir", "", "Data directory (default: ~/"+DefaultDataDirName+")")

	host := fs.String("host", "", "Listen host (default: all interfaces)")
	port := fs.String("port", "", "Server port (default: 13478)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	maxConns := fs.String("max-connections", "", "Maximum concurrent connections (default: 256, 0 = unlimited)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated origins allowed on /api")

	pageSize := fs.String("page-size", "", "Messages per page (default: 50)")
	maxMessages := fs.String("max-messages", "", "Retention cap (default: 1024)")
	maxPages := fs.String("max-pages", "", "Highest addressable page (default: ceil(max-messages/page-size))")

	submitRate := fs.String("submit-rate", "", "Write requests per minute per IP (default: 30, 0 = unlimited)")
	submitBurst := fs.String("submit-burst", "", "Write request burst per IP (default: 10)")

	templateDir := fs.String("template-dir", "", "Load templates from this directory with hot reload")
	metricsEnabled := fs.String("metrics", "", "Expose /metrics (default: true)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:      strings.ToLower(getConfigValue(*logLevel, "LOG_LEVEL", "info")),
			Format:     strings.ToLower(getConfigValue(*logFormat, "LOG_FORMAT", "")),
			File:       getConfigValue(*logFile, "LOG_FILE", ""),
			MaxSizeMB:  getIntConfigValue("", "LOG_MAX_SIZE_MB", 10),
			MaxBackups: getIntConfigValue("", "LOG_MAX_BACKUPS", 3),
		},
		Storage: StorageConfig{
			DataDir: getConfigValue(*dataDir, "DATA_DIR", ""),
		},
		Server: ServerConfig{
			Host:           getConfigValue(*host, "HOST", ""),
			Port:           getIntConfigValue(*port, "PORT", DefaultPort),
			MaxConnections: getIntConfigValue(*maxConns, "SERVER_MAX_CONNECTIONS", 256),
			MaxBodyBytes:   int64(getIntConfigValue("", "SERVER_MAX_BODY_BYTES", 1_000_000)),
			CORSOrigins:    splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Board: BoardConfig{
			PageSize:    getIntConfigValue(*pageSize, "PAGE_SIZE", DefaultPageSize),
			MaxMessages: getIntConfigValue(*maxMessages, "MAX_MESSAGES", DefaultMaxMessages),
			MaxPages:    getIntConfigValue(*maxPages, "MAX_PAGES", 0),
		},
		RateLimit: RateLimitConfig{
			SubmitPerMinute: getIntConfigValue(*submitRate, "SUBMIT_RATE_PER_MINUTE", 30),
			Burst:           getIntConfigValue(*submitBurst, "SUBMIT_BURST", 10),
		},
		Web: WebConfig{
			TemplateDir: getConfigValue(*templateDir, "TEMPLATE_DIR", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolConfigValue(*metricsEnabled, "METRICS_ENABLED", true),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if cfg.Board.MaxPages == 0 && cfg.Board.PageSize > 0 {
		cfg.Board.MaxPages = DerivedMaxPages(cfg.Board.MaxMessages, cfg.Board.PageSize)
	}

	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	if cfg.Web.TemplateDir != "" {
		if cfg.Web.TemplateDir, err = expandPath(cfg.Web.TemplateDir, ""); err != nil {
			return nil, fmt.Errorf("invalid template dir: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// DerivedMaxPages is the number of pages needed to show maxMessages.
func DerivedMaxPages(maxMessages, pageSize int) int {
	return max(1, (maxMessages+pageSize-1)/pageSize)
}

// Validate checks that all config values are present and within range.
func (c *Config) Validate() error {
	return validation.New().Validate(c)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// DefaultDataDir returns ~/.message-board.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultDataDirName), nil
}

// ResolveDataDir applies the same precedence LoadConfig uses for the data
// directory (explicit value, then DATA_DIR, then the default) and returns
// it as a clean absolute path.
func ResolveDataDir(dir string) (string, error) {
	c := Config{Storage: StorageConfig{DataDir: getConfigValue(dir, "DATA_DIR", "")}}
	if err := c.expandDataDir(); err != nil {
		return "", err
	}
	return c.Storage.DataDir, nil
}

func (c *Config) expandDataDir() error {
	defaultPath := ""
	if c.Storage.DataDir == "" {
		var err error
		if defaultPath, err = DefaultDataDir(); err != nil {
			return err
		}
	}

	expanded, err := expandPath(c.Storage.DataDir, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataDir = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue returns a duration from flag, env var, or default.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
