package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App struct {
		ENV         string
		EmailDomain string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver string // "sqlite" or "mysql"
		Path   string // sqlite file path
		DSN    string // mysql DSN
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		Host string
		Port string
	}
}

func New() *Config {
	cfg := &Config{}

	// App
	cfg.App.ENV = getEnvDefault("APP_ENV", "development")
	cfg.App.EmailDomain = getEnvDefault("APP_EMAIL_DOMAIN", "ku.edu")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "http_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database: MySQL when a DSN is provided, embedded SQLite otherwise.
	cfg.DB.DSN = strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if cfg.DB.DSN != "" {
		cfg.DB.Driver = "mysql"
	} else {
		cfg.DB.Driver = "sqlite"
		cfg.DB.Path = getEnvDefault("SQLITE_PATH", "jaymatch.db")
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "127.0.0.1")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
