package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server       ServerConfig       `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:",squash"`
	Redis        RedisConfig        `mapstructure:",squash"`
	Scheduler    SchedulerConfig    `mapstructure:",squash"`
	Logging      LoggingConfig      `mapstructure:",squash"`
	Auth         AuthConfig         `mapstructure:",squash"`
	Notification NotificationConfig `mapstructure:",squash"`
	Queue        QueueConfig        `mapstructure:",squash"`
	WhatsApp     WhatsAppConfig     `mapstructure:",squash"`
	Health       HealthConfig       `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	Host            string        `mapstructure:"DATABASE_HOST"`
	Port            string        `mapstructure:"DATABASE_PORT"`
	Name            string        `mapstructure:"DATABASE_NAME"`
	User            string        `mapstructure:"DATABASE_USER"`
	Password        string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone            string `mapstructure:"SCHEDULER_TIMEZONE"`
	OverdueSweepSpec    string `mapstructure:"SCHEDULER_OVERDUE_SWEEP"`
	RetentionSpec       string `mapstructure:"SCHEDULER_RETENTION_CLEANUP"`
	ExpenseReminderSpec string `mapstructure:"SCHEDULER_EXPENSE_REMINDER"`
	TenantReminderSpec  string `mapstructure:"SCHEDULER_TENANT_REMINDER"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"JWT_TOKEN_TTL"`
}

type NotificationConfig struct {
	RetentionDays       int `mapstructure:"NOTIFICATION_RETENTION_DAYS"`
	ExpenseReminderDays int `mapstructure:"EXPENSE_REMINDER_DAYS"`
	TenantReminderDays  int `mapstructure:"TENANT_REMINDER_DAYS"`
}

type QueueConfig struct {
	Name        string        `mapstructure:"QUEUE_NAME"`
	PollTimeout time.Duration `mapstructure:"QUEUE_POLL_TIMEOUT"`
	MaxAttempts int           `mapstructure:"WORKER_MAX_ATTEMPTS"`
}

type WhatsAppConfig struct {
	APIURL  string        `mapstructure:"FONNTE_API_URL"`
	Token   string        `mapstructure:"FONNTE_TOKEN"`
	Timeout time.Duration `mapstructure:"FONNTE_TIMEOUT"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":                 "8080",
	"SERVER_HOST":                 "0.0.0.0",
	"ENV":                         "development",
	"SERVER_READ_TIMEOUT":         "15s",
	"SERVER_WRITE_TIMEOUT":        "15s",
	"DATABASE_URL":                "",
	"DATABASE_HOST":               "localhost",
	"DATABASE_PORT":               "5432",
	"DATABASE_NAME":               "kos",
	"DATABASE_USER":               "postgres",
	"DATABASE_PASSWORD":           "",
	"DATABASE_SSLMODE":            "disable",
	"DATABASE_MAX_OPEN_CONNS":     25,
	"DATABASE_MAX_IDLE_CONNS":     5,
	"DATABASE_CONN_MAX_LIFETIME":  "5m",
	"REDIS_HOST":                  "localhost",
	"REDIS_PORT":                  "6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"SCHEDULER_TIMEZONE":          "Asia/Jakarta",
	"SCHEDULER_OVERDUE_SWEEP":     "0 5 0 * * *",
	"SCHEDULER_RETENTION_CLEANUP": "0 30 1 * * *",
	"SCHEDULER_EXPENSE_REMINDER":  "0 0 * * * *",
	"SCHEDULER_TENANT_REMINDER":   "0 0 9 * * SUN",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"JWT_SECRET":                  "",
	"JWT_TOKEN_TTL":               "24h",
	"NOTIFICATION_RETENTION_DAYS": 30,
	"EXPENSE_REMINDER_DAYS":       3,
	"TENANT_REMINDER_DAYS":        3,
	"QUEUE_NAME":                  "kos:jobs",
	"QUEUE_POLL_TIMEOUT":          "5s",
	"WORKER_MAX_ATTEMPTS":         3,
	"FONNTE_API_URL":              "https://api.fonnte.com/send",
	"FONNTE_TOKEN":                "",
	"FONNTE_TIMEOUT":              "10s",
	"HEALTH_CHECK_TIMEOUT":        "5s",
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must be greater than 0")
	}

	if c.Notification.RetentionDays <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION_DAYS must be greater than 0")
	}

	if c.Notification.ExpenseReminderDays < 0 || c.Notification.TenantReminderDays < 0 {
		return fmt.Errorf("reminder windows must not be negative")
	}

	if c.Queue.MaxAttempts <= 0 {
		return fmt.Errorf("WORKER_MAX_ATTEMPTS must be greater than 0")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	return nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL when set
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// Addr returns the host:port pair for the Redis client
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Location returns the business timezone used to decide what "today" is.
// Validate has already rejected unknown zones, so UTC is only a fallback for
// hand-built configs in tests.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
