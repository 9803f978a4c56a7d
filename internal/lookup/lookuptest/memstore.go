// Package lookuptest provides an in-memory lookup.Store for tests.
package lookuptest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"coldstore/internal/domain"
	"coldstore/internal/entity"
	"coldstore/internal/lookup"
)

// MemStore keeps records per table and counts every store access.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string][]lookup.Record
	reads  atomic.Int64
	// Err, when set, is returned by every operation.
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{tables: map[string][]lookup.Record{}}
}

func (m *MemStore) Add(table string, recs ...lookup.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], recs...)
}

// Reads returns the number of store operations served so far.
func (m *MemStore) Reads() int64 {
	return m.reads.Load()
}

func (m *MemStore) matching(spec *entity.Spec, f lookup.Filter) []lookup.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []lookup.Record
	for _, r := range m.tables[spec.Table] {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *MemStore) Count(_ context.Context, spec *entity.Spec, f lookup.Filter) (int, error) {
	m.reads.Add(1)
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.matching(spec, f)), nil
}

func (m *MemStore) Find(_ context.Context, spec *entity.Spec, f lookup.Filter, s domain.Sort, skip, limit int) ([]lookup.Record, error) {
	m.reads.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	rows := m.matching(spec, f)
	col, ok := spec.Column(s.Field)
	if !ok {
		return nil, fmt.Errorf("unknown sort field %q", s.Field)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := fmt.Sprint(rows[i][col]), fmt.Sprint(rows[j][col])
		if a == b {
			return fmt.Sprint(rows[i][entity.IDColumn]) < fmt.Sprint(rows[j][entity.IDColumn])
		}
		if s.Desc {
			return strings.Compare(a, b) > 0
		}
		return strings.Compare(a, b) < 0
	})
	if skip >= len(rows) {
		return []lookup.Record{}, nil
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], nil
}

func (m *MemStore) FindByID(_ context.Context, spec *entity.Spec, id string) (lookup.Record, error) {
	m.reads.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.tables[spec.Table] {
		if fmt.Sprint(r[entity.IDColumn]) == id {
			return r, nil
		}
	}
	return nil, domain.NotFoundError{Resource: spec.Label}
}

// IDFor returns a deterministic UUID-shaped id for fixture n.
func IDFor(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}
