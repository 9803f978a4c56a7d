package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coldstore/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultSessionCookie = "coldstore_session"

// Claims is the payload of a session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens. It is the session
// authority consulted by the session middleware.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	cookie string
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration, cookie string) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cookie == "" {
		cookie = DefaultSessionCookie
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, cookie: cookie, now: time.Now}, nil
}

func (t *Tokens) CookieName() string { return t.cookie }

func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for the given caller.
func (t *Tokens) Issue(c domain.Caller) (string, error) {
	now := t.now()
	claims := Claims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the caller it was issued for.
func (t *Tokens) Parse(raw string) (domain.Caller, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Caller{}, domain.UnauthorizedError{Err: err}
	}
	role := domain.ParseRole(claims.Role)
	if role == "" || claims.Subject == "" {
		return domain.Caller{}, domain.UnauthorizedError{Err: errors.New("token without subject or role")}
	}
	return domain.Caller{UserID: claims.Subject, Email: claims.Email, Role: role}, nil
}

// Session resolves the caller of r from the bearer token or the session
// cookie. A missing or invalid token yields an unauthenticated caller.
func (t *Tokens) Session(r *http.Request) domain.Caller {
	raw := bearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		if ck, err := r.Cookie(t.cookie); err == nil {
			raw = ck.Value
		}
	}
	if raw == "" {
		return domain.Caller{}
	}
	c, err := t.Parse(raw)
	if err != nil {
		return domain.Caller{}
	}
	return c
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
