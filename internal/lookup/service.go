package lookup

import (
	"context"
	"strings"

	"coldstore/internal/domain"
	"coldstore/internal/entity"

	"go.uber.org/zap"
)

// Query carries the raw list parameters of a lookup request.
type Query struct {
	Search    string `form:"search"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// Page is a transformed window of items.
type Page struct {
	Items      []Item
	Pagination domain.Pagination
}

// Service runs lookups against a store. Authorization happens before any
// Service method is called.
type Service struct {
	store  Store
	cache  Cache
	limits Limits
	log    *zap.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithLimits(l Limits) Option {
	return func(s *Service) { s.limits = l.normalized() }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		cache:  nopCache{},
		limits: Limits{}.normalized(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Limits() Limits { return s.limits }

// List searches, paginates and transforms one page of spec's records.
func (s *Service) List(ctx context.Context, spec *entity.Spec, q Query) (Page, error) {
	req := ParsePageRequest(q.Page, q.Limit, s.limits)
	sort := ResolveSort(spec, q.SortBy, q.SortOrder)
	filter := BuildFilter(spec, q.Search)

	res, err := Paginate(ctx, s.store, spec, filter, sort, req)
	if err != nil {
		return Page{}, internal("list "+spec.Slug, err)
	}
	s.log.Debug("lookup list",
		zap.String("entity", spec.Slug),
		zap.Bool("by_id", filter.ByID != ""),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
		zap.Int("total", res.Pagination.Total),
	)
	return Page{Items: TransformAll(spec, res.Records), Pagination: res.Pagination}, nil
}

// Get returns one record by id. Ids that cannot be record ids are reported
// as not found without touching the store.
func (s *Service) Get(ctx context.Context, spec *entity.Spec, id string) (Item, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if !IsRecordID(id) {
		return nil, domain.NotFoundError{Resource: spec.Label}
	}
	if item, ok := s.cache.Get(ctx, spec.Slug, id); ok {
		return item, nil
	}
	rec, err := s.store.FindByID(ctx, spec, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NotFoundError{Resource: spec.Label, Err: err}
		}
		return nil, internal("get "+spec.Slug, err)
	}
	item := Transform(spec, rec)
	s.cache.Set(ctx, spec.Slug, id, item)
	return item, nil
}

func internal(msg string, err error) error {
	if domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
