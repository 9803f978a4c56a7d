package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coldstore/internal/domain"
	"coldstore/internal/entity"
	"coldstore/internal/lookup"

	sq "github.com/Masterminds/squirrel"
)

// DBProvider hands out the shared database handle, connecting lazily.
type DBProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// LookupRepository implements lookup.Store on MySQL. Only the columns
// declared on a spec are ever selected.
type LookupRepository struct {
	conn DBProvider
}

func NewLookupRepository(conn DBProvider) *LookupRepository {
	return &LookupRepository{conn: conn}
}

var _ lookup.Store = (*LookupRepository)(nil)

func (r *LookupRepository) Count(ctx context.Context, spec *entity.Spec, f lookup.Filter) (int, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return 0, err
	}
	query, args, err := f.Apply(builder.Select("COUNT(*)").From(spec.Table)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", spec.Table, err)
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", spec.Table, err)
	}
	return n, nil
}

func (r *LookupRepository) Find(ctx context.Context, spec *entity.Spec, f lookup.Filter, s domain.Sort, skip, limit int) ([]lookup.Record, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	order, err := orderBy(spec, s)
	if err != nil {
		return nil, err
	}
	cols := spec.Columns()
	sb := f.Apply(builder.Select(cols...).From(spec.Table)).OrderBy(order...)
	if limit > 0 {
		sb = sb.Limit(uint64(limit))
	}
	if skip > 0 {
		sb = sb.Offset(uint64(skip))
	}
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find %s: %w", spec.Table, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", spec.Table, err)
	}
	defer rows.Close()

	out := make([]lookup.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", spec.Table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", spec.Table, err)
	}
	return out, nil
}

func (r *LookupRepository) FindByID(ctx context.Context, spec *entity.Spec, id string) (lookup.Record, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	cols := spec.Columns()
	query, args, err := builder.Select(cols...).
		From(spec.Table).
		Where(sq.Eq{entity.IDColumn: id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find %s by id: %w", spec.Table, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", spec.Table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("find %s by id: %w", spec.Table, err)
		}
		return nil, domain.NotFoundError{Resource: spec.Label, Err: sql.ErrNoRows}
	}
	rec, err := scanRecord(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", spec.Table, err)
	}
	return rec, nil
}

func orderBy(spec *entity.Spec, s domain.Sort) ([]string, error) {
	col, ok := spec.Column(s.Field)
	if !ok {
		return nil, errors.New("unknown sort field " + s.Field)
	}
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	if col == entity.IDColumn {
		return []string{col + dir}, nil
	}
	return []string{col + dir, entity.IDColumn + " ASC"}, nil
}

func scanRecord(rows *sql.Rows, cols []string) (lookup.Record, error) {
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	rec := make(lookup.Record, len(cols))
	for i, col := range cols {
		// drivers reuse byte buffers between rows
		if b, ok := vals[i].([]byte); ok {
			vals[i] = append([]byte(nil), b...)
		}
		rec[col] = vals[i]
	}
	return rec, nil
}
