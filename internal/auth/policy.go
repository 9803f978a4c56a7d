package auth

import (
	"coldstore/internal/domain"
)

// Resource is anything that declares which roles may read it.
type Resource interface {
	ResourceName() string
	AllowedRoles() []domain.Role
}

// Authorize decides whether caller may use res. It returns
// domain.UnauthorizedError for anonymous callers and domain.ForbiddenError
// when the caller's role is not allowed.
func Authorize(caller domain.Caller, res Resource) error {
	if !caller.Authenticated() {
		return domain.UnauthorizedError{}
	}
	if Permits(res, caller.Role) {
		return nil
	}
	return domain.ForbiddenError{Role: caller.Role, Resource: res.ResourceName()}
}

// Permits reports whether role is in the resource's allowed set.
func Permits(res Resource, role domain.Role) bool {
	want := domain.ParseRole(string(role))
	if want == "" {
		return false
	}
	for _, r := range res.AllowedRoles() {
		if domain.ParseRole(string(r)) == want {
			return true
		}
	}
	return false
}
