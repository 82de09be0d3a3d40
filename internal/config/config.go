package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectTimeout  time.Duration
	DBQueryTimeout    time.Duration

	ServerPort     string
	LogLevel       string
	GinMode        string
	AllowedOrigins []string
	RunMigrations  bool
}

// Load reads .env (when present) and the process environment. The returned
// slice of warnings lists variables that were set but could not be parsed and
// therefore fell back to their defaults.
func Load() (*Config, []string, error) {
	var warnings []string
	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, "no .env file found, using system environment variables")
	}

	cfg, parseWarnings := fromEnv()
	warnings = append(warnings, parseWarnings...)

	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

func fromEnv() (*Config, []string) {
	p := &envParser{}

	cfg := &Config{
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "taskboard"),
		DBPassword:        getEnv("DB_PASSWORD", getEnv("DB_PASS", "taskboard")),
		DBName:            getEnv("DB_NAME", "taskboard"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:    p.int("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    p.int("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: p.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBConnectTimeout:  p.duration("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBQueryTimeout:    p.duration("DB_QUERY_TIMEOUT", 5*time.Second),
		ServerPort:        getEnv("PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		GinMode:           getEnv("GIN_MODE", "release"),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RunMigrations:     p.bool("RUN_MIGRATIONS", true),
	}
	return cfg, p.warnings
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", c.DBMaxIdleConns)
	}
	if c.DBConnectTimeout <= 0 || c.DBQueryTimeout <= 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT and DB_QUERY_TIMEOUT must be positive")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}

// DSN builds a key/value connection string for the postgres driver. Every
// value is single-quoted so spaces and quotes survive.
func (c *Config) DSN() string {
	pairs := []struct{ key, value string }{
		{"host", c.DBHost},
		{"port", c.DBPort},
		{"user", c.DBUser},
		{"password", c.DBPassword},
		{"dbname", c.DBName},
		{"sslmode", c.DBSSLMode},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.key + "=" + quoteDSNValue(p.value)
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// DatabaseURL builds the postgres:// form of the same connection, which the
// migration runner needs to pick its driver.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

type envParser struct {
	warnings []string
}

func (p *envParser) int(key string, defaultVal int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.warnings = append(p.warnings, fmt.Sprintf("invalid integer for %s, using default %d", key, defaultVal))
		return defaultVal
	}
	return v
}

func (p *envParser) duration(key string, defaultVal time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultVal
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.warnings = append(p.warnings, fmt.Sprintf("invalid duration for %s, using default %s", key, defaultVal))
		return defaultVal
	}
	return v
}

func (p *envParser) bool(key string, defaultVal bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultVal
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.warnings = append(p.warnings, fmt.Sprintf("invalid boolean for %s, using default %t", key, defaultVal))
		return defaultVal
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
