package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "dessertshop.yml"

type Config struct {
	AppEnv      string         `yaml:"app_env"`
	DatabaseURL string         `yaml:"database_url"`
	Database    DatabaseConfig `yaml:"database"`
	Logger      LoggerConfig   `yaml:"logger"`
	Seed        SeedConfig     `yaml:"seed"`
}

type DatabaseConfig struct {
	MaxOpenConns    int `yaml:"max_open_conns"`
	MaxIdleConns    int `yaml:"max_idle_conns"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime"` // seconds
}

type LoggerConfig struct {
	Level             string `yaml:"level"`
	Encoding          string `yaml:"encoding"`
	DisableCaller     bool   `yaml:"disable_caller"`
	DisableStacktrace bool   `yaml:"disable_stacktrace"`
}

type SeedConfig struct {
	FixturesPath    string `yaml:"fixtures_path"` // empty means the built-in dataset
	AdminPassword   string `yaml:"admin_password"`
	AllowProduction bool   `yaml:"allow_production"`
}

func defaults() *Config {
	return &Config{
		AppEnv: "development",
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logger: LoggerConfig{
			Level:             "info",
			Encoding:          "console",
			DisableStacktrace: true,
		},
		Seed: SeedConfig{
			AdminPassword: "admin123",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// finally the environment. A missing file is not an error; a file that
// exists but cannot be parsed is.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvInt("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)
	c.Logger.Level = getEnv("LOGGER_LEVEL", c.Logger.Level)
	c.Logger.Encoding = getEnv("LOGGER_ENCODING", c.Logger.Encoding)
	c.Logger.DisableCaller = getEnvBool("LOGGER_DISABLE_CALLER", c.Logger.DisableCaller)
	c.Logger.DisableStacktrace = getEnvBool("LOGGER_DISABLE_STACKTRACE", c.Logger.DisableStacktrace)
	c.Seed.FixturesPath = getEnv("SEED_FIXTURES_PATH", c.Seed.FixturesPath)
	c.Seed.AdminPassword = getEnv("ADMIN_PASSWORD", c.Seed.AdminPassword)
	c.Seed.AllowProduction = getEnvBool("SEED_ALLOW_PRODUCTION", c.Seed.AllowProduction)
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if !strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") &&
		!strings.HasPrefix(c.DatabaseURL, "sqlite://") {
		return fmt.Errorf("unsupported database_url scheme: %s", c.DatabaseURL)
	}
	if c.Seed.AdminPassword == "" {
		return fmt.Errorf("seed.admin_password is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CheckDestructive rejects commands that wipe data when running against
// production, unless explicitly allowed.
func (c *Config) CheckDestructive() error {
	if c.IsProduction() && !c.Seed.AllowProduction {
		return fmt.Errorf("refusing to reset data with app_env=production (set seed.allow_production to override)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
