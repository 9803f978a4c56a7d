package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvironDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_DSN", "JWT_TTL", "LOOKUP_MAX_LIMIT", "CORS_ALLOWED_ORIGINS", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	env := FromEnviron()

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, defaultDSN, env.DBDSN)
	assert.Equal(t, 24*time.Hour, env.JWTTTL)
	assert.Equal(t, 100, env.LookupMaxLimit)
	assert.Contains(t, env.CORSAllowedOrigins, "http://localhost:5173")
	assert.Empty(t, env.RedisAddr)
}

func TestFromEnvironOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("LOOKUP_DEFAULT_LIMIT", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("REDIS_DB", "3")

	env := FromEnviron()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 90*time.Minute, env.JWTTTL)
	assert.Equal(t, 25, env.LookupDefaultLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, 3, env.RedisDB)
}

func TestFromEnvironInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("LOOKUP_MAX_LIMIT", "lots")
	t.Setenv("LOOKUP_CACHE_TTL", "-1s")

	env := FromEnviron()
	assert.Equal(t, 24*time.Hour, env.JWTTTL)
	assert.Equal(t, 100, env.LookupMaxLimit)
	assert.Equal(t, 5*time.Minute, env.CacheTTL)
}
