package entity

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds lookup specs by slug. Safe for concurrent reads.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec
}

func NewRegistry() *Registry {
	return &Registry{specs: map[string]*Spec{}}
}

// Register validates and adds a spec. Slugs must be unique.
func (r *Registry) Register(s *Spec) error {
	if err := Validate(s); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[s.Slug]; exists {
		return fmt.Errorf("entity %q already registered", s.Slug)
	}
	r.specs[s.Slug] = s
	return nil
}

func (r *Registry) MustRegister(specs ...*Spec) {
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the spec served under slug.
func (r *Registry) Lookup(slug string) (*Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[slug]
	return s, ok
}

// All returns every spec ordered by slug.
func (r *Registry) All() []*Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// replace swaps a registered spec for an updated copy.
func (r *Registry) replace(s *Spec) error {
	if err := Validate(s); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[s.Slug]; !ok {
		return fmt.Errorf("unknown entity %q", s.Slug)
	}
	r.specs[s.Slug] = s
	return nil
}

// Validate checks that a spec is internally consistent.
func Validate(s *Spec) error {
	if s == nil {
		return fmt.Errorf("nil entity spec")
	}
	if s.Slug == "" || s.Table == "" {
		return fmt.Errorf("entity %q: slug and table are required", s.Name)
	}
	if s.ResponseKey == "" {
		return fmt.Errorf("entity %q: response key is required", s.Slug)
	}
	if len(s.Roles) == 0 {
		return fmt.Errorf("entity %q: at least one allowed role is required", s.Slug)
	}
	seen := map[string]bool{}
	for _, f := range s.Fields {
		if f.Name == "" || f.Column == "" {
			return fmt.Errorf("entity %q: field name and column are required", s.Slug)
		}
		if f.Name == "id" || f.Column == IDColumn {
			return fmt.Errorf("entity %q: id is implicit and must not be declared", s.Slug)
		}
		if seen[f.Name] {
			return fmt.Errorf("entity %q: duplicate field %q", s.Slug, f.Name)
		}
		seen[f.Name] = true
		switch f.Kind {
		case KindString, KindBool, KindNumber, KindRef:
		default:
			return fmt.Errorf("entity %q: field %q has unknown kind %q", s.Slug, f.Name, f.Kind)
		}
	}
	for _, name := range s.Searchable {
		f, ok := s.Field(name)
		if !ok {
			return fmt.Errorf("entity %q: searchable field %q is not declared", s.Slug, name)
		}
		if f.Kind != KindString {
			return fmt.Errorf("entity %q: searchable field %q must be a string", s.Slug, name)
		}
	}
	for _, name := range s.Sortable {
		if _, ok := s.Column(name); !ok {
			return fmt.Errorf("entity %q: sortable field %q is not declared", s.Slug, name)
		}
	}
	if _, ok := s.Column(s.DefaultSort.Field); !ok {
		return fmt.Errorf("entity %q: default sort field %q is not declared", s.Slug, s.DefaultSort.Field)
	}
	return nil
}
