package config

import (
	"os"
	"strconv"
	"strings"
)

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

type Config struct {
	Env      Env
	HTTPAddr string

	DBDriver string
	DBDSN    string
	// SQLite DSN used when the configured Postgres DSN cannot be reached at
	// startup. Empty disables the fallback.
	DBFallbackDSN string

	AuthSecret     string
	SessionTTLHrs  int
	SeedOnStartup  bool
	AllowedOrigins []string
}

func FromEnv() Config {
	env := Env(os.Getenv("APP_ENV"))
	if env == "" {
		env = EnvDevelopment
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Env:            env,
		HTTPAddr:       addr,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		DBFallbackDSN:  envOr("DB_FALLBACK_DSN", "file:testbook.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"),
		AuthSecret:     envOr("AUTH_HMAC_SECRET", "testbook-secret-key"),
		SessionTTLHrs:  envInt("SESSION_TTL_HOURS", 24),
		SeedOnStartup:  envBool("SEED_ON_STARTUP", env == EnvDevelopment),
		AllowedOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
