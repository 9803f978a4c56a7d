package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "root:@tcp(127.0.0.1:3306)/coldstore?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"

type Env struct {
	AppEnv   string
	AppAddr  string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	JWTSecret     string
	JWTTTL        time.Duration
	SessionCookie string

	CORSAllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LookupDefaultLimit int
	LookupMaxLimit     int
	EntitySpecFile     string
}

// LoadEnv reads configuration from the environment, after loading a .env
// file from the working directory when one exists. Invalid values fall back
// to their defaults.
func LoadEnv() Env {
	_ = godotenv.Load()
	return FromEnviron()
}

// FromEnviron reads configuration from the process environment only.
func FromEnviron() Env {
	return Env{
		AppEnv:   getEnv("APP_ENV", "local"),
		AppAddr:  getEnv("APP_ADDR", ":8080"),
		GinMode:  getEnv("GIN_MODE", ""),
		LogLevel: getEnv("LOG_LEVEL", ""),

		DBDriver: getEnv("DB_DRIVER", "mysql"),
		DBDSN:    getEnv("DB_DSN", defaultDSN),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getEnvDuration("JWT_TTL", 24*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE", "coldstore_session"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("LOOKUP_CACHE_TTL", 5*time.Minute),

		LookupDefaultLimit: getEnvInt("LOOKUP_DEFAULT_LIMIT", 10),
		LookupMaxLimit:     getEnvInt("LOOKUP_MAX_LIMIT", 100),
		EntitySpecFile:     getEnv("ENTITY_SPEC_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
