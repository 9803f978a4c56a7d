package lookup

import (
	"strings"

	"coldstore/internal/entity"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Filter is a store predicate produced from one search term. The same value
// must be used for the count and the fetch of a page.
type Filter struct {
	expr sq.Sqlizer
	// ByID is set when the term was treated as a record identifier.
	ByID    string
	term    string
	columns []string
}

// Empty reports whether the filter matches every record.
func (f Filter) Empty() bool {
	return f.expr == nil
}

// Expr returns the WHERE expression, or nil for an empty filter.
func (f Filter) Expr() sq.Sqlizer {
	return f.expr
}

// Apply adds the filter to a select builder.
func (f Filter) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.expr == nil {
		return b
	}
	return b.Where(f.expr)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildFilter turns a free-text search term into a filter over the
// searchable columns of spec. The term is matched as a literal,
// case-insensitive substring.
func BuildFilter(spec *entity.Spec, term string) Filter {
	term = strings.TrimSpace(term)
	if term == "" {
		return Filter{}
	}
	if spec.IDLookup && IsRecordID(term) {
		id := strings.ToLower(term)
		return Filter{expr: sq.Eq{entity.IDColumn: id}, ByID: id}
	}

	cols := spec.SearchColumns()
	if len(cols) == 0 {
		return Filter{}
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	or := make(sq.Or, 0, len(cols))
	for _, col := range cols {
		or = append(or, sq.Like{"LOWER(" + col + ")": pattern})
	}
	return Filter{expr: or, term: strings.ToLower(term), columns: cols}
}

// Matches evaluates the filter against an in-memory record with the same
// semantics as the SQL expression.
func (f Filter) Matches(rec Record) bool {
	switch {
	case f.expr == nil:
		return true
	case f.ByID != "":
		return strings.EqualFold(asString(rec[entity.IDColumn]), f.ByID)
	}
	for _, col := range f.columns {
		if strings.Contains(strings.ToLower(asString(rec[col])), f.term) {
			return true
		}
	}
	return false
}

// IsRecordID reports whether s is shaped like a stored record id (a
// canonical UUID).
func IsRecordID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
