package auth

import (
	"testing"

	"coldstore/internal/domain"

	"github.com/stretchr/testify/assert"
)

type resource struct {
	name  string
	roles []domain.Role
}

func (r resource) ResourceName() string        { return r.name }
func (r resource) AllowedRoles() []domain.Role { return r.roles }

func TestAuthorize(t *testing.T) {
	lookup := resource{name: "customers", roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}}
	users := resource{name: "users", roles: []domain.Role{domain.RoleAdmin}}

	tests := []struct {
		name   string
		caller domain.Caller
		res    Resource
		check  func(error) bool
	}{
		{"anonymous", domain.Caller{}, lookup, domain.IsUnauthorized},
		{"worker on lookup", domain.Caller{UserID: "1", Role: domain.RoleWorker}, lookup, domain.IsForbidden},
		{"manager on users", domain.Caller{UserID: "1", Role: domain.RoleManager}, users, domain.IsForbidden},
		{"unknown role", domain.Caller{UserID: "1", Role: "guest"}, lookup, domain.IsForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.caller, tc.res)
			assert.True(t, tc.check(err), "unexpected error %v", err)
		})
	}

	assert.NoError(t, Authorize(domain.Caller{UserID: "1", Role: domain.RoleManager}, lookup))
	assert.NoError(t, Authorize(domain.Caller{UserID: "1", Role: domain.RoleAdmin}, users))
}

func TestPermitsNormalizesRoles(t *testing.T) {
	res := resource{roles: []domain.Role{"Admin "}}
	assert.True(t, Permits(res, "admin"))
	assert.True(t, Permits(res, " ADMIN"))
	assert.False(t, Permits(res, ""))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
