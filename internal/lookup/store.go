// Package lookup implements the read-only, paginated search protocol shared
// by every master-data resource.
package lookup

import (
	"context"

	"coldstore/internal/domain"
	"coldstore/internal/entity"
)

// Record is one stored row keyed by column name.
type Record map[string]any

// Item is the public shape of a record: "id" plus allow-listed fields.
type Item map[string]any

// Store is the entity store consulted by lookups.
type Store interface {
	Count(ctx context.Context, spec *entity.Spec, f Filter) (int, error)
	Find(ctx context.Context, spec *entity.Spec, f Filter, s domain.Sort, skip, limit int) ([]Record, error)
	// FindByID returns domain.NotFoundError when no row has the id.
	FindByID(ctx context.Context, spec *entity.Spec, id string) (Record, error)
}

// Cache keeps transformed by-id results. Implementations must treat errors
// as misses.
type Cache interface {
	Get(ctx context.Context, slug, id string) (Item, bool)
	Set(ctx context.Context, slug, id string, item Item)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, string) (Item, bool) { return nil, false }
func (nopCache) Set(context.Context, string, string, Item)        {}
