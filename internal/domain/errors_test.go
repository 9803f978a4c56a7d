package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"unauthorized", UnauthorizedError{}, IsUnauthorized},
		{"forbidden", ForbiddenError{Role: RoleWorker, Resource: "customers"}, IsForbidden},
		{"not found", NotFoundError{Resource: "Customer"}, IsNotFound},
		{"validation", ValidationError{Field: "page"}, IsValidation},
		{"internal", InternalError{Msg: "db down"}, IsInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tc.err)
			if !tc.is(wrapped) {
				t.Fatalf("predicate did not match wrapped %T", tc.err)
			}
		})
	}
}

func TestNotFoundMessageUsesResource(t *testing.T) {
	err := NotFoundError{Resource: "Material category"}
	if got := err.Error(); got != "Material category not found" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestInternalErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError{Msg: "count customers", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "count customers: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestPageRequestSkip(t *testing.T) {
	if got := (PageRequest{Page: 3, Limit: 10}).Skip(); got != 20 {
		t.Fatalf("skip = %d, want 20", got)
	}
	if got := (PageRequest{Page: 1, Limit: 25}).Skip(); got != 0 {
		t.Fatalf("skip = %d, want 0", got)
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole("  Admin "); got != RoleAdmin {
		t.Fatalf("ParseRole = %q", got)
	}
	if (Caller{}).Authenticated() {
		t.Fatalf("zero caller must be unauthenticated")
	}
}
