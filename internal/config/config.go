package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ConfigSourceDatabase = "database"
	ConfigSourceFile     = "file"

	LockModeAdvisory = "advisory"
	LockModeLocal    = "local"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds the secret used to verify operator tokens
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig controls where statutory settings come from and how runs are
// scheduled and serialized.
type PayrollConfig struct {
	ConfigSource string
	ConfigFile   string
	// zero disables the scheduled run
	RunInterval time.Duration
	RunOnStart  bool
	LockMode    string
}

type StorageConfig struct {
	BasePath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll configuration
	runInterval, err := time.ParseDuration(getEnv("PAYROLL_RUN_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_RUN_INTERVAL: %w", err)
	}
	runOnStart, err := strconv.ParseBool(getEnv("PAYROLL_RUN_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_RUN_ON_START: %w", err)
	}

	config.Payroll = PayrollConfig{
		ConfigSource: getEnv("PAYROLL_CONFIG_SOURCE", ConfigSourceDatabase),
		ConfigFile:   getEnv("PAYROLL_CONFIG_FILE", "config/payroll.yaml"),
		RunInterval:  runInterval,
		RunOnStart:   runOnStart,
		LockMode:     getEnv("PAYROLL_LOCK_MODE", LockModeAdvisory),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	switch c.Payroll.ConfigSource {
	case ConfigSourceDatabase:
	case ConfigSourceFile:
		if c.Payroll.ConfigFile == "" {
			return fmt.Errorf("PAYROLL_CONFIG_FILE is required when PAYROLL_CONFIG_SOURCE is file")
		}
	default:
		return fmt.Errorf("PAYROLL_CONFIG_SOURCE must be %q or %q", ConfigSourceDatabase, ConfigSourceFile)
	}

	if c.Payroll.LockMode != LockModeAdvisory && c.Payroll.LockMode != LockModeLocal {
		return fmt.Errorf("PAYROLL_LOCK_MODE must be %q or %q", LockModeAdvisory, LockModeLocal)
	}
	if c.Payroll.RunInterval < 0 {
		return fmt.Errorf("PAYROLL_RUN_INTERVAL must not be negative")
	}
	if c.Storage.BasePath == "" {
		return fmt.Errorf("STORAGE_BASE_PATH is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
