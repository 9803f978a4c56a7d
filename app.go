package main

import (
	"errors"
	"fmt"

	"coldstore/internal/auth"
	"coldstore/internal/cache"
	intconfig "coldstore/internal/config"
	"coldstore/internal/db"
	"coldstore/internal/entity"
	router "coldstore/internal/http"
	h "coldstore/internal/http/handlers"
	"coldstore/internal/logger"
	"coldstore/internal/lookup"
	"coldstore/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds the long-lived collaborators of a running process.
type app struct {
	env    intconfig.Env
	log    *zap.Logger
	conn   *db.Conn
	redis  *redis.Client
	engine *gin.Engine
}

func newLogger(env intconfig.Env) (*zap.Logger, error) {
	log, err := logger.NewLogger(env.AppEnv, env.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func newConn(env intconfig.Env, log *zap.Logger) *db.Conn {
	return db.NewConn(db.Options{Driver: env.DBDriver, DSN: env.DBDSN}, log)
}

// buildApp wires configuration, store, cache, services and the router.
// The database is not contacted until the first request needs it.
func buildApp(env intconfig.Env, log *zap.Logger, conn *db.Conn) (*app, error) {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	registry := entity.Default()
	if err := registry.LoadOverrides(env.EntitySpecFile); err != nil {
		return nil, fmt.Errorf("entity overrides: %w", err)
	}

	tokens, err := auth.NewTokens(env.JWTSecret, env.JWTTTL, env.SessionCookie)
	if err != nil {
		return nil, errors.New("JWT_SECRET must be set")
	}

	opts := []lookup.Option{
		lookup.WithLogger(log),
		lookup.WithLimits(lookup.Limits{Default: env.LookupDefaultLimit, Max: env.LookupMaxLimit}),
	}
	rdb := cache.Dial(cache.Options{Addr: env.RedisAddr, Password: env.RedisPassword, DB: env.RedisDB})
	if rdb != nil {
		opts = append(opts, lookup.WithCache(cache.NewRedis(rdb, env.CacheTTL, log)))
		log.Info("lookup cache enabled", zap.String("addr", env.RedisAddr))
	}

	service := lookup.NewService(repositories.NewLookupRepository(conn), opts...)

	engine := router.NewRouter(router.Deps{
		Log:            log,
		AllowedOrigins: env.CORSAllowedOrigins,
		Sessions:       tokens,
		Lookup:         h.NewLookupHandler(registry, service),
		Auth:           h.NewAuthHandler(repositories.NewUserRepository(conn), tokens, env.AppEnv == "prod" || env.AppEnv == "production"),
		DB:             conn,
	})

	return &app{env: env, log: log, conn: conn, redis: rdb, engine: engine}, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", zap.Error(err))
		}
	}
	if err := a.conn.Close(); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
}
