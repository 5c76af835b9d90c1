package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Events   EventsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	LogLevel         string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig holds the session token settings. Keys come from JWT_PRIVATE_KEY and
// JWT_PUBLIC_KEY or are generated per process outside production.
type JWTConfig struct {
	AccessTokenDuration time.Duration
	PrivateKey          *rsa.PrivateKey
	PublicKey           *rsa.PublicKey
	Issuer              string
	CookieName          string
	CookieSecure        bool
}

type SecurityConfig struct {
	BCryptCost         int
	RateLimitPerSecond int
	PasswordMinLength  int
}

// EventsConfig configures the AMQP publisher. Publishing is disabled when URL is empty.
type EventsConfig struct {
	URL            string
	Exchange       string
	Queue          string
	RoutingKey     string
	PublishTimeout time.Duration
}

// AppConfig carries the domain defaults
type AppConfig struct {
	DefaultCurrency      string
	TransactionPageLimit int
	TransactionMaxLimit  int
	DefaultAccountName   string
}

// Load reads the configuration from the environment. It exits when the signing keys
// cannot be loaded.
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", EnvDevelopment),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverPostgres),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "finance_user"),
			Password:        getEnv("DB_PASSWORD", "finance_password"),
			Name:            getEnv("DB_NAME", "finance_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "finance.db"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Security: SecurityConfig{
			BCryptCost:         getIntEnv("BCRYPT_COST", 12),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			PasswordMinLength:  getIntEnv("PASSWORD_MIN_LENGTH", 8),
		},
		JWT: JWTConfig{
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_TOKEN_DURATION", 24*time.Hour),
			Issuer:              getEnv("JWT_ISSUER", "finance-tracker"),
			CookieName:          getEnv("SESSION_COOKIE_NAME", "session_token"),
		},
		Events: EventsConfig{
			URL:            getEnv("AMQP_URL", ""),
			Exchange:       getEnv("AMQP_EXCHANGE", "finance"),
			Queue:          getEnv("AMQP_QUEUE", "finance.transactions"),
			RoutingKey:     getEnv("AMQP_ROUTING_KEY", "transactions"),
			PublishTimeout: getDurationEnv("AMQP_PUBLISH_TIMEOUT", 5*time.Second),
		},
		App: AppConfig{
			DefaultCurrency:      getEnv("DEFAULT_CURRENCY", "Rs"),
			TransactionPageLimit: getIntEnv("TRANSACTION_PAGE_LIMIT", 10),
			TransactionMaxLimit:  getIntEnv("TRANSACTION_MAX_LIMIT", 100),
			DefaultAccountName:   getEnv("DEFAULT_ACCOUNT_NAME", "Main"),
		},
	}

	cfg.JWT.CookieSecure = getBoolEnv("SESSION_COOKIE_SECURE", cfg.IsProduction())
	cfg.Server.CORSAllowOrigins = splitList(getEnv("CORS_ALLOW_ORIGINS", "*"))
	if cfg.IsProduction() && len(cfg.Server.CORSAllowOrigins) == 1 && cfg.Server.CORSAllowOrigins[0] == "*" {
		slog.Warn("CORS_ALLOW_ORIGINS not set in production, allowing all origins")
	}

	keys, err := loadSigningKeys(cfg.IsProduction())
	if err != nil {
		slog.Error("failed to load JWT signing keys", "error", err)
		os.Exit(1)
	}
	cfg.JWT.PrivateKey, cfg.JWT.PublicKey = keys.private, keys.public

	return cfg
}

// Validate reports settings that would make the server misbehave
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Driver != DriverPostgres && c.Database.Driver != DriverSQLite {
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	if c.App.TransactionPageLimit <= 0 || c.App.TransactionPageLimit > c.App.TransactionMaxLimit {
		errs = append(errs, fmt.Errorf("TRANSACTION_PAGE_LIMIT must be between 1 and %d", c.App.TransactionMaxLimit))
	}
	if strings.TrimSpace(c.App.DefaultCurrency) == "" {
		errs = append(errs, errors.New("DEFAULT_CURRENCY must not be empty"))
	}
	if c.JWT.AccessTokenDuration <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_DURATION must be positive"))
	}

	return errors.Join(errs...)
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres connection string in URL form, as golang-migrate expects it
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Enabled reports whether events should be published
func (c *EventsConfig) Enabled() bool {
	return c.URL != ""
}

func (c *Config) IsDevelopment() bool { return c.Server.Environment == EnvDevelopment }
func (c *Config) IsProduction() bool  { return c.Server.Environment == EnvProduction }
func (c *Config) IsTesting() bool     { return c.Server.Environment == EnvTesting }

// lookup parses the variable named key, falling back when it is unset or malformed
func lookup[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment variable", "key", key, "error", err)
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	return lookup(key, fallback, func(s string) (string, error) { return s, nil })
}

func getIntEnv(key string, fallback int) int {
	return lookup(key, fallback, strconv.Atoi)
}

func getBoolEnv(key string, fallback bool) bool {
	return lookup(key, fallback, strconv.ParseBool)
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	return lookup(key, fallback, time.ParseDuration)
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
