package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	db     Pinger
	routes func() gin.RoutesInfo
}

func NewSystemHandler(db Pinger, routes func() gin.RoutesInfo) *SystemHandler {
	return &SystemHandler{db: db, routes: routes}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SystemHandler) DBCheck(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "database connection OK"})
}

// GET /api/routes. Mounted behind middleware.RequireRoles.
func (h *SystemHandler) Routes(c *gin.Context) {
	if h.routes == nil {
		RespondError(c, http.StatusServiceUnavailable, "router not ready", nil)
		return
	}
	out := make([]gin.H, 0)
	for _, rt := range h.routes() {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
