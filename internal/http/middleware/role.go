package middleware

import (
	"net/http"
	"strings"

	"coldstore/internal/auth"
	"coldstore/internal/domain"

	"github.com/gin-gonic/gin"
)

type routeResource struct {
	roles []domain.Role
}

func (r routeResource) ResourceName() string        { return "route" }
func (r routeResource) AllowedRoles() []domain.Role { return r.roles }

// RequireRoles rejects callers whose role is not listed. It must run after
// Session. Anonymous callers get 401, other roles 403.
//
//	r.GET("/api/routes", RequireRoles(domain.RoleAdmin), handler)
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	res := routeResource{roles: roles}
	return func(c *gin.Context) {
		err := auth.Authorize(CallerFrom(c), res)
		if err == nil {
			c.Next()
			return
		}
		status, msg := http.StatusForbidden, "Forbidden"
		if domain.IsUnauthorized(err) {
			status, msg = http.StatusUnauthorized, "Unauthorized"
		}
		body := gin.H{"message": msg}
		if reqID := strings.TrimSpace(GetRequestID(c)); reqID != "" {
			body["request_id"] = reqID
		}
		c.AbortWithStatusJSON(status, body)
	}
}
