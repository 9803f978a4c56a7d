package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coldstore/internal/auth"
	"coldstore/internal/domain"
	"coldstore/internal/entity"
	h "coldstore/internal/http/handlers"
	"coldstore/internal/lookup"
	"coldstore/internal/lookup/lookuptest"
	"coldstore/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (repositories.UserCredentials, error) {
	return repositories.UserCredentials{}, domain.NotFoundError{Resource: "User"}
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *auth.Tokens, *lookuptest.MemStore) {
	t.Helper()
	tokens, err := auth.NewTokens("router-secret", time.Hour, "")
	require.NoError(t, err)
	store := lookuptest.NewMemStore()
	store.Add("units", lookup.Record{"id": lookuptest.IDFor(1), "unit_code": "KG", "unit_name": "Kilogram"})

	r := NewRouter(Deps{
		Sessions: tokens,
		Lookup:   h.NewLookupHandler(entity.Default(), lookup.NewService(store)),
		Auth:     h.NewAuthHandler(noUsers{}, tokens, false),
		DB:       okPinger{},
	})
	return r, tokens, store
}

func TestRouterLookupWithCookieSession(t *testing.T) {
	r, tokens, _ := newTestRouter(t)
	token, err := tokens.Issue(domain.Caller{UserID: "u-1", Role: domain.RoleManager})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/lookup/units?search=kilo", http.NoBody)
	req.AddCookie(&http.Cookie{Name: tokens.CookieName(), Value: token})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"unitName":"Kilogram"`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouterInvalidTokenIsAnonymous(t *testing.T) {
	r, _, store := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lookup/units", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Zero(t, store.Reads())
}

func TestRouterPublicEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for path, want := range map[string]int{
		"/api/health":   http.StatusOK,
		"/api/db-check": http.StatusOK,
		"/metrics":      http.StatusOK,
		"/api/nowhere":  http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, want, rr.Code, path)
	}
}
