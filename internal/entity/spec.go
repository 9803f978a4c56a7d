// Package entity declares the master-data resources served by the lookup
// endpoints: which columns they expose, which ones are searchable, how they
// sort by default and which roles may read them.
package entity

import (
	"coldstore/internal/domain"
)

// Kind controls how a stored column is coerced before it reaches a client.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	// KindRef is the id of another record, exposed as a string or null.
	KindRef Kind = "ref"
)

// IDColumn is the primary key column shared by every master-data table.
const IDColumn = "id"

// Field maps a public (JSON) name to its column.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Spec describes one lookup resource.
type Spec struct {
	Name        string
	Slug        string
	Label       string
	ResponseKey string
	Table       string
	Fields      []Field
	// Searchable lists public field names matched by free-text search, in order.
	Searchable []string
	// Sortable lists extra public field names accepted as sortBy. Fields used
	// for search and the default sort are always sortable.
	Sortable    []string
	DefaultSort domain.Sort
	Roles       []domain.Role
	// IDLookup makes an identifier-shaped search term an exact id match.
	IDLookup bool
}

// AllowedRoles implements auth.Resource.
func (s *Spec) AllowedRoles() []domain.Role {
	return s.Roles
}

// ResourceName implements auth.Resource.
func (s *Spec) ResourceName() string {
	return s.Slug
}

// Field returns the declared field with the given public name.
func (s *Spec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Column resolves a public field name to its column. "id" always resolves.
func (s *Spec) Column(name string) (string, bool) {
	if name == "id" {
		return IDColumn, true
	}
	f, ok := s.Field(name)
	if !ok {
		return "", false
	}
	return f.Column, true
}

// SearchColumns returns the columns of the searchable fields, in order.
func (s *Spec) SearchColumns() []string {
	cols := make([]string, 0, len(s.Searchable))
	for _, name := range s.Searchable {
		if col, ok := s.Column(name); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// Columns returns the id column followed by every declared field column.
func (s *Spec) Columns() []string {
	cols := make([]string, 0, len(s.Fields)+1)
	cols = append(cols, IDColumn)
	for _, f := range s.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// CanSortBy reports whether name is accepted as a sortBy value.
func (s *Spec) CanSortBy(name string) bool {
	if name == "" {
		return false
	}
	if name == "id" || name == s.DefaultSort.Field {
		return true
	}
	for _, n := range s.Searchable {
		if n == name {
			return true
		}
	}
	for _, n := range s.Sortable {
		if n == name {
			return true
		}
	}
	return false
}

func (s *Spec) clone() *Spec {
	c := *s
	c.Fields = append([]Field(nil), s.Fields...)
	c.Searchable = append([]string(nil), s.Searchable...)
	c.Sortable = append([]string(nil), s.Sortable...)
	c.Roles = append([]domain.Role(nil), s.Roles...)
	return &c
}
