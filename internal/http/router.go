package api

import (
	stdhttp "net/http"

	"coldstore/internal/domain"
	h "coldstore/internal/http/handlers"
	"coldstore/internal/http/middleware"
	"coldstore/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Log            *zap.Logger
	AllowedOrigins []string
	Sessions       middleware.SessionAuthority
	Lookup         *h.LookupHandler
	Auth           *h.AuthHandler
	DB             h.Pinger
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		gin.Recovery(),
		middleware.CORS(d.AllowedOrigins),
		metrics.Middleware(),
		middleware.Session(d.Sessions),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	system := h.NewSystemHandler(d.DB, r.Routes)

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)
		api.GET("/routes", middleware.RequireRoles(domain.RoleAdmin), system.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", d.Auth.Login)
		auth.GET("/session", d.Auth.Session)
		auth.POST("/logout", d.Auth.Logout)

		lookup := api.Group("/lookup")
		lookup.GET("", d.Lookup.Resources)
		lookup.GET("/:entity", d.Lookup.List)
		lookup.GET("/:entity/:id", d.Lookup.Get)
	}

	return r
}
