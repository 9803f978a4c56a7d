package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coldstore/internal/auth"
	"coldstore/internal/domain"
	"coldstore/internal/http/middleware"
	"coldstore/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]repositories.UserCredentials
	err   error
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (repositories.UserCredentials, error) {
	if f.err != nil {
		return repositories.UserCredentials{}, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return repositories.UserCredentials{}, domain.NotFoundError{Resource: "User"}
	}
	return u, nil
}

func newAuthHandler(t *testing.T, users UserFinder) (*AuthHandler, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour, "")
	require.NoError(t, err)
	return NewAuthHandler(users, tokens, false), tokens
}

func loginUsers(t *testing.T) fakeUsers {
	t.Helper()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	return fakeUsers{users: map[string]repositories.UserCredentials{
		"ana@example.com": {ID: "u-1", Name: "Ana", Email: "ana@example.com", PasswordHash: hash, Role: domain.RoleManager, Active: true},
		"old@example.com": {ID: "u-2", Name: "Old", Email: "old@example.com", PasswordHash: hash, Role: domain.RoleAdmin, Active: false},
	}}
}

func postLogin(h *AuthHandler, payload string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/login", h.Login)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	return rr
}

func TestLoginIssuesSession(t *testing.T) {
	h, tokens := newAuthHandler(t, loginUsers(t))

	rr := postLogin(h, `{"email":"ana@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Token string      `json:"token"`
		User  sessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, sessionUser{ID: "u-1", Name: "Ana", Email: "ana@example.com", Role: "manager"}, body.User)

	caller, err := tokens.Parse(body.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, caller.Role)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.DefaultSessionCookie, cookies[0].Name)
	assert.Equal(t, body.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginRejected(t *testing.T) {
	h, _ := newAuthHandler(t, loginUsers(t))

	for name, payload := range map[string]string{
		"bad password": `{"email":"ana@example.com","password":"nope"}`,
		"unknown user": `{"email":"ghost@example.com","password":"s3cret"}`,
		"inactive":     `{"email":"old@example.com","password":"s3cret"}`,
	} {
		rr := postLogin(h, payload)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, name)
		assert.Empty(t, rr.Result().Cookies(), name)
	}
}

func TestLoginBadRequest(t *testing.T) {
	h, _ := newAuthHandler(t, loginUsers(t))
	assert.Equal(t, http.StatusBadRequest, postLogin(h, `{"email":"ana@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(h, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(h, ``).Code)
}

func TestLoginStoreFailure(t *testing.T) {
	h, _ := newAuthHandler(t, fakeUsers{err: errors.New("db down")})
	rr := postLogin(h, `{"email":"ana@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionEndpoint(t *testing.T) {
	h, tokens := newAuthHandler(t, loginUsers(t))
	r := gin.New()
	r.Use(middleware.Session(tokens))
	r.GET("/session", h.Session)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, err := tokens.Issue(manager)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/session", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		User sessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, sessionUser{ID: manager.UserID, Email: manager.Email, Role: "manager"}, body.User)
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _ := newAuthHandler(t, loginUsers(t))
	r := gin.New()
	r.POST("/logout", h.Logout)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", http.NoBody))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
