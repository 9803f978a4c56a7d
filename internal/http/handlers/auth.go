package handlers

import (
	"context"
	"net/http"
	"strings"

	"coldstore/internal/auth"
	"coldstore/internal/domain"
	"coldstore/internal/http/middleware"
	"coldstore/internal/logger"
	"coldstore/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFinder loads login credentials.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (repositories.UserCredentials, error)
}

type AuthHandler struct {
	users  UserFinder
	tokens *auth.Tokens
	secure bool
}

func NewAuthHandler(users UserFinder, tokens *auth.Tokens, secureCookie bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, secure: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		RespondDomainError(c, domain.ValidationError{Msg: "email and password are required"})
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil && !domain.IsNotFound(err) {
		RespondDomainError(c, err)
		return
	}
	if err != nil || !u.Active || !auth.CheckPassword(u.PasswordHash, req.Password) {
		logger.FromContext(c.Request.Context()).Info("login rejected", zap.String("email", req.Email))
		RespondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	caller := domain.Caller{UserID: u.ID, Email: u.Email, Role: u.Role}
	token, err := h.tokens.Issue(caller)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "issue token", Err: err})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.tokens.CookieName(), token, int(h.tokens.TTL().Seconds()), "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": sessionUser{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		},
	})
}

// GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if !caller.Authenticated() {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sessionUser{
		ID:    caller.UserID,
		Email: caller.Email,
		Role:  string(caller.Role),
	}})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.tokens.CookieName(), "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}
