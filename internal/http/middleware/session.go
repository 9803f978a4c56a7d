package middleware

import (
	"net/http"

	"coldstore/internal/domain"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// SessionAuthority resolves the caller of a request. Requests without a
// valid session resolve to the zero Caller.
type SessionAuthority interface {
	Session(r *http.Request) domain.Caller
}

// Session stores the resolved caller on the gin context. It never rejects a
// request; handlers decide how to treat anonymous callers.
func Session(authority SessionAuthority) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerKey, authority.Session(c.Request))
		c.Next()
	}
}

// CallerFrom returns the caller stored by Session.
func CallerFrom(c *gin.Context) domain.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(domain.Caller); ok {
			return caller
		}
	}
	return domain.Caller{}
}
