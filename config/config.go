package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config is the full runtime configuration, read once at startup.
type Config struct {
	Port        string
	GinMode     string
	CorsOrigins []string
	LogLevel    slog.Level
	LogFormat   string

	DB DBConfig
}

type DBConfig struct {
	Driver   string
	URL      string // DATABASE_URL / MYSQL_URL, wins over the discrete fields
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration

	AutoMigrate bool
	Seed        bool
	LogLevel    string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found or couldn't load it; continuing with environment variables")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	driver := strings.ToLower(envOrDefault("DB_DRIVER", DriverMySQL))
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want mysql or postgres)", driver)
	}

	defaultPort := "3306"
	defaultUser := "root"
	if driver == DriverPostgres {
		defaultPort = "5432"
		defaultUser = "postgres"
	}

	url := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if url == "" && driver == DriverMySQL {
		url = strings.TrimSpace(os.Getenv("MYSQL_URL"))
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		password = os.Getenv("DB_PASS")
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "4000"),
		GinMode:     envOrDefault("GIN_MODE", "release"),
		CorsOrigins: parseList(os.Getenv("CORS_ORIGINS")),
		LogLevel:    parseLevel(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(envOrDefault("LOG_FORMAT", "text")),
		DB: DBConfig{
			Driver:          driver,
			URL:             url,
			Host:            envOrDefault("DB_HOST", "127.0.0.1"),
			Port:            envOrDefault("DB_PORT", defaultPort),
			Name:            envOrDefault("DB_NAME", "seapass"),
			User:            envOrDefault("DB_USER", defaultUser),
			Password:        password,
			SSLMode:         envOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnectTimeout:  envDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
			AutoMigrate:     envBool("DB_AUTO_MIGRATE", true),
			Seed:            envBool("DB_SEED", true),
			LogLevel:        strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
		},
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return v
}

// parseList splits a comma separated value; empty input means "*".
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
