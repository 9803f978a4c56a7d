package domain

import "strings"

// Role is the access level carried by a session. The zero value means
// the caller is not authenticated.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleWorker  Role = "worker"
)

// ParseRole normalizes a role string as stored in tokens and the users table.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Caller carries the authenticated user of one request, if any.
type Caller struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

func (c Caller) Authenticated() bool {
	return c.Role != ""
}

// PageRequest carries paging params. Both values are always >= 1.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Skip is the number of rows before the requested window.
func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Sort defines a single-column sorting preference.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Pagination is the metadata block returned next to every page of items.
// HasMore mirrors HasNext for older clients.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}
