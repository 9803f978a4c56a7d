package lookup

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"coldstore/internal/domain"
	"coldstore/internal/entity"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Limits bounds the page size accepted from clients.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) normalized() Limits {
	if l.Default < 1 {
		l.Default = DefaultLimit
	}
	if l.Max < 1 {
		l.Max = MaxLimit
	}
	if l.Default > l.Max {
		l.Default = l.Max
	}
	return l
}

// ParsePageRequest never fails: unparsable or non-positive values fall back
// to the defaults and oversized limits are clamped. Page is capped so that
// page*limit fits in an int.
func ParsePageRequest(page, limit string, lim Limits) domain.PageRequest {
	lim = lim.normalized()
	p := parsePositive(page, DefaultPage)
	l := parsePositive(limit, lim.Default)
	if l > lim.Max {
		l = lim.Max
	}
	if maxPage := math.MaxInt / l; p > maxPage {
		p = maxPage
	}
	return domain.PageRequest{Page: p, Limit: l}
}

// parsePositive saturates values too large for an int at math.MaxInt.
func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// ResolveSort picks the sort for a request. Unknown fields fall back to the
// spec's default sort; any order other than "desc" is ascending.
func ResolveSort(spec *entity.Spec, sortBy, sortOrder string) domain.Sort {
	sortBy = strings.TrimSpace(sortBy)
	if !spec.CanSortBy(sortBy) {
		s := spec.DefaultSort
		if strings.TrimSpace(sortOrder) != "" {
			s.Desc = strings.EqualFold(strings.TrimSpace(sortOrder), "desc")
		}
		return s
	}
	return domain.Sort{Field: sortBy, Desc: strings.EqualFold(strings.TrimSpace(sortOrder), "desc")}
}

// NewPagination derives the pagination block for one page window.
func NewPagination(req domain.PageRequest, total int) domain.Pagination {
	if total < 0 {
		total = 0
	}
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	hasNext := req.Page*req.Limit < total
	return domain.Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    hasNext,
		HasNext:    hasNext,
		HasPrev:    req.Page > 1,
	}
}

// PageResult is one window of raw records plus its pagination block.
type PageResult struct {
	Records    []Record
	Pagination domain.Pagination
}

// Paginate counts and fetches the records matching f. Both store calls use
// the same filter; they are not isolated from concurrent writers, so total
// may briefly disagree with the window when rows change in between.
func Paginate(ctx context.Context, store Store, spec *entity.Spec, f Filter, s domain.Sort, req domain.PageRequest) (PageResult, error) {
	var (
		total   int
		records []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := store.Count(gctx, spec, f)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := store.Find(gctx, spec, f, s, req.Skip(), req.Limit)
		if err != nil {
			return err
		}
		records = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return PageResult{}, err
	}
	if len(records) > req.Limit {
		records = records[:req.Limit]
	}
	return PageResult{Records: records, Pagination: NewPagination(req, total)}, nil
}
