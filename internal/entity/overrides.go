package entity

import (
	"fmt"
	"os"
	"strings"

	"coldstore/internal/domain"

	"gopkg.in/yaml.v3"
)

// Overrides is the on-disk shape of the optional entity override file:
//
//	entities:
//	  customers:
//	    allowed_roles: [admin, manager, worker]
//	    searchable: [customerName]
//	    default_sort: {field: customerNumber, order: desc}
type Overrides struct {
	Entities map[string]EntityOverride `yaml:"entities"`
}

type EntityOverride struct {
	AllowedRoles []string      `yaml:"allowed_roles"`
	Searchable   []string      `yaml:"searchable"`
	DefaultSort  *SortOverride `yaml:"default_sort"`
	IDLookup     *bool         `yaml:"id_lookup"`
}

type SortOverride struct {
	Field string `yaml:"field"`
	Order string `yaml:"order"`
}

// LoadOverrides reads and applies an override file. An empty path is a no-op.
func (r *Registry) LoadOverrides(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read entity overrides: %w", err)
	}
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("YAML parse error in %s: %w", path, err)
	}
	return r.ApplyOverrides(ov)
}

// ApplyOverrides validates every override before changing any spec.
func (r *Registry) ApplyOverrides(ov Overrides) error {
	updated := make([]*Spec, 0, len(ov.Entities))
	for slug, eo := range ov.Entities {
		cur, ok := r.Lookup(slug)
		if !ok {
			return fmt.Errorf("override for unknown entity %q", slug)
		}
		next := cur.clone()
		if len(eo.AllowedRoles) > 0 {
			next.Roles = next.Roles[:0]
			for _, raw := range eo.AllowedRoles {
				next.Roles = append(next.Roles, domain.ParseRole(raw))
			}
		}
		if len(eo.Searchable) > 0 {
			next.Searchable = append([]string(nil), eo.Searchable...)
		}
		if eo.DefaultSort != nil {
			next.DefaultSort = domain.Sort{
				Field: eo.DefaultSort.Field,
				Desc:  strings.EqualFold(eo.DefaultSort.Order, "desc"),
			}
		}
		if eo.IDLookup != nil {
			next.IDLookup = *eo.IDLookup
		}
		if err := Validate(next); err != nil {
			return err
		}
		updated = append(updated, next)
	}
	for _, s := range updated {
		if err := r.replace(s); err != nil {
			return err
		}
	}
	return nil
}
