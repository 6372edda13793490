// Package config loads server settings from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath           = "CARBONWISE_CONFIG"
	EnvPort                 = "PORT"
	EnvGRPCPort             = "CARBONWISE_GRPC_PORT"
	EnvLogLevel             = "CARBONWISE_LOG_LEVEL"
	EnvLogFormat            = "CARBONWISE_LOG_FORMAT"
	EnvCORSAllowedOrigins   = "CARBONWISE_CORS_ALLOWED_ORIGINS"
	EnvCORSAllowCredentials = "CARBONWISE_CORS_ALLOW_CREDENTIALS"
	EnvCORSMaxAge           = "CARBONWISE_CORS_MAX_AGE"
)

// Defaults.
const (
	DefaultPort            = 5000
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultCORSMaxAge      = 86400
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig controls the listeners.
type ServerConfig struct {
	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// GRPCPort is the gRPC listen port. Zero disables the gRPC listener.
	GRPCPort int `yaml:"grpc_port"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes caps request bodies on the calculate endpoint.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// CORSConfig controls cross-origin access to the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `yaml:"level"`

	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			MaxAge:         DefaultCORSMaxAge,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// CARBONWISE_CONFIG is consulted; a missing file at either location is an
// error only when explicitly named. A .env file in the working directory
// is loaded without overriding variables that are already set.
func Load(path string, logger zerolog.Logger) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("could not parse .env file")
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
		logger.Debug().Str("path", path).Msg("configuration file loaded")
	}

	cfg.ApplyEnv(logger)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if cfg.CORS.hasWildcard() {
		logger.Warn().Msg("CORS wildcard origin (*) is insecure; use specific origins in production")
	}

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto c. Malformed numeric values
// are logged and ignored.
func (c *Config) ApplyEnv(logger zerolog.Logger) {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		} else {
			logger.Warn().Str("value", v).Msgf("invalid %s, using %d", EnvPort, c.Server.Port)
		}
	}

	if v := os.Getenv(EnvGRPCPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.GRPCPort = port
		} else {
			logger.Warn().Str("value", v).Msgf("invalid %s, gRPC port unchanged", EnvGRPCPort)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}

	if origins := os.Getenv(EnvCORSAllowedOrigins); origins != "" {
		c.CORS.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, trimmed)
			}
		}
	}

	if v := os.Getenv(EnvCORSAllowCredentials); v != "" {
		c.CORS.AllowCredentials = strings.EqualFold(v, "true")
	}

	if v := os.Getenv(EnvCORSMaxAge); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.CORS.MaxAge = parsed
		} else {
			logger.Warn().Str("value", v).Msgf("invalid %s, using default", EnvCORSMaxAge)
		}
	}
}

// Validate reports every setting that cannot be served safely. The
// returned error is a *multierror.Error listing each problem.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("grpc port %d out of range", c.Server.GRPCPort))
	}
	if c.Server.GRPCPort != 0 && c.Server.GRPCPort == c.Server.Port {
		result = multierror.Append(result, fmt.Errorf("grpc port %d collides with http port", c.Server.GRPCPort))
	}
	if c.Server.MaxBodyBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.CORS.hasWildcard() && c.CORS.AllowCredentials {
		result = multierror.Append(result, errors.New("cannot enable CORS credentials with wildcard origin (*); security risk"))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log format %q (want json or console)", c.Logging.Format))
	}

	return result.ErrorOrNil()
}

func (c CORSConfig) hasWildcard() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
