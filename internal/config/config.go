package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shift_manager_backend/pkg/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig describes how to reach the backing store.
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
	Seed        bool
}

// DSN builds the driver specific connection string.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		path := c.SQLitePath
		if path == "" {
			path = "shift_manager.db"
		}
		// foreign_keys is per connection in SQLite, so it goes into the DSN.
		return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Config centralises all environment driven settings.
type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	LogFormat          string
	JWTSecret          string
	JWTTTL             time.Duration
	CORSAllowedOrigins []string
	Database           DatabaseConfig
}

// LoadDatabase reads only the store settings, for tools that never serve HTTP.
func LoadDatabase() DatabaseConfig {
	_ = godotenv.Load()

	return DatabaseConfig{
		Driver:      strings.ToLower(utils.Getenv("DB_DRIVER", DriverSQLite)),
		Host:        utils.Getenv("DB_HOST", "localhost"),
		Port:        utils.Getenv("DB_PORT", "5432"),
		User:        utils.Getenv("DB_USER", "shift_manager"),
		Password:    utils.Getenv("DB_PASSWORD", "shift_manager"),
		Name:        utils.Getenv("DB_NAME", "shift_manager"),
		SSLMode:     utils.Getenv("DB_SSLMODE", "disable"),
		SQLitePath:  utils.Getenv("SQLITE_PATH", "shift_manager.db"),
		AutoMigrate: utils.GetenvBool("DB_AUTO_MIGRATE", true),
		Seed:        utils.GetenvBool("DB_SEED", false),
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      utils.Getenv("PORT", "3000"),
		GinMode:   utils.Getenv("GIN_MODE", "debug"),
		LogLevel:  utils.Getenv("LOG_LEVEL", "info"),
		LogFormat: utils.Getenv("LOG_FORMAT", "console"),
		JWTSecret: utils.Getenv("JWT_SECRET", ""),
		JWTTTL:    utils.GetenvDuration("JWT_TTL", utils.DefaultTokenTTL),
		Database:  LoadDatabase(),
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("config: JWT_SECRET must be at least 16 characters")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	return nil
}
