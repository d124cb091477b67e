package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yukikurage/taskboard/internal/constants"
)

type Config struct {
	DBDriver          string        `yaml:"db_driver"`
	DBHost            string        `yaml:"db_host"`
	DBPort            string        `yaml:"db_port"`
	DBUser            string        `yaml:"db_user"`
	DBPassword        string        `yaml:"db_password"`
	DBName            string        `yaml:"db_name"`
	DBSSLMode         string        `yaml:"db_ssl_mode"`
	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `yaml:"db_conn_max_lifetime"`

	ServerPort   string        `yaml:"server_port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	GinMode            string   `yaml:"gin_mode"`
	LogLevel           string   `yaml:"log_level"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// Defaults returns the configuration used when neither a config file nor
// environment variables override a value.
func Defaults() *Config {
	return &Config{
		DBDriver:          "mysql",
		DBHost:            "localhost",
		DBPort:            "3306",
		DBUser:            "taskuser",
		DBPassword:        "taskpassword",
		DBName:            "task_management",
		DBSSLMode:         "disable",
		DBMaxOpenConns:    25,
		DBMaxIdleConns:    10,
		DBConnMaxLifetime: time.Hour,
		ServerPort:        "8080",
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		GinMode:           "debug",
		LogLevel:          "info",
	}
}

// Load builds the server configuration. Values come from Defaults, then the
// YAML file named by CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", cfg.DBDriver))
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", cfg.DBSSLMode)
	cfg.DBMaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
	cfg.DBConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", cfg.DBConnMaxLifetime)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.ReadTimeout = getEnvAsDuration("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsDuration("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (expected mysql, postgres or sqlite)", c.DBDriver)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}

// IsRelease reports whether the server runs in gin release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// ClientConfig configures the dashboard's connection to the API.
type ClientConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func LoadClient() *ClientConfig {
	return &ClientConfig{
		APIBaseURL: getEnv("API_BASE_URL", constants.DefaultAPIBaseURL),
		Timeout:    getEnvAsSeconds("API_TIMEOUT", constants.DefaultAPITimeout),
	}
}

// Endpoint joins the base URL and a path with exactly one slash.
func (c *ClientConfig) Endpoint(path string) string {
	return strings.TrimRight(c.APIBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSeconds accepts a bare number of seconds or a Go duration string.
func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if value, err := time.ParseDuration(raw); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
