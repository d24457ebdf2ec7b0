package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from a per-environment
// YAML file with selected values overridable through environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Identity  IdentityConfig  `yaml:"identity"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// GetDSN assembles the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// IdentityConfig holds identity-provider admin API settings
type IdentityConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	ServiceID  string `yaml:"service_id"`
	ServiceKey string `yaml:"service_key"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// RateLimitConfig holds API rate limit settings
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// Load reads the YAML config file and applies environment overrides.
// A missing file is not fatal: defaults plus env vars still give a
// runnable configuration, matching how the legacy service booted from
// env alone.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: 5000},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			Name:            "instantr07",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 300,
		},
		Redis:     RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		RateLimit: RateLimitConfig{RequestsPerMinute: 120},
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides keeps the legacy env var names working
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASS"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("IDENTITY_BASE_URL"); v != "" {
		cfg.Identity.BaseURL = v
		cfg.Identity.Enabled = true
	}
	if v := os.Getenv("IDENTITY_SERVICE_KEY"); v != "" {
		cfg.Identity.ServiceKey = v
	}
}
