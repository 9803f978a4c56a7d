package handlers

import (
	"net/http"

	"coldstore/internal/auth"
	"coldstore/internal/domain"
	"coldstore/internal/entity"
	"coldstore/internal/http/middleware"
	"coldstore/internal/lookup"
	"coldstore/internal/metrics"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the paginated list and by-id endpoints of every
// registered entity.
type LookupHandler struct {
	registry *entity.Registry
	service  *lookup.Service
}

func NewLookupHandler(registry *entity.Registry, service *lookup.Service) *LookupHandler {
	return &LookupHandler{registry: registry, service: service}
}

// resolve authenticates the caller, finds the entity and authorizes the
// caller for it. It writes the error response itself and returns false
// when the request must stop.
func (h *LookupHandler) resolve(c *gin.Context, op string) (*entity.Spec, bool) {
	slug := c.Param("entity")
	caller := middleware.CallerFrom(c)
	if !caller.Authenticated() {
		metrics.ObserveLookup(slug, op, metrics.OutcomeUnauthorized)
		RespondDomainError(c, domain.UnauthorizedError{})
		return nil, false
	}
	spec, ok := h.registry.Lookup(slug)
	if !ok {
		RespondError(c, http.StatusNotFound, "Unknown lookup resource", nil)
		return nil, false
	}
	if err := auth.Authorize(caller, spec); err != nil {
		metrics.ObserveLookup(spec.Slug, op, metrics.OutcomeForbidden)
		RespondDomainError(c, err)
		return nil, false
	}
	return spec, true
}

// GET /api/lookup/:entity?search=&page=&limit=&sortBy=&sortOrder=
func (h *LookupHandler) List(c *gin.Context) {
	spec, ok := h.resolve(c, "list")
	if !ok {
		return
	}

	var q lookup.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		RespondDomainError(c, domain.ValidationError{Msg: "invalid query", Err: err})
		return
	}

	page, err := h.service.List(c.Request.Context(), spec, q)
	if err != nil {
		metrics.ObserveLookup(spec.Slug, "list", metrics.OutcomeError)
		RespondDomainError(c, err)
		return
	}
	metrics.ObserveLookup(spec.Slug, "list", metrics.OutcomeOK)

	body := gin.H{
		"items":      page.Items,
		"pagination": page.Pagination,
	}
	body[spec.ResponseKey] = page.Items
	c.JSON(http.StatusOK, body)
}

// GET /api/lookup/:entity/:id
func (h *LookupHandler) Get(c *gin.Context) {
	spec, ok := h.resolve(c, "get")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), spec, c.Param("id"))
	if err != nil {
		outcome := metrics.OutcomeError
		if domain.IsNotFound(err) {
			outcome = metrics.OutcomeNotFound
		}
		metrics.ObserveLookup(spec.Slug, "get", outcome)
		RespondDomainError(c, err)
		return
	}
	metrics.ObserveLookup(spec.Slug, "get", metrics.OutcomeOK)
	c.JSON(http.StatusOK, item)
}

type resourceInfo struct {
	Slug        string   `json:"slug"`
	Label       string   `json:"label"`
	ResponseKey string   `json:"responseKey"`
	Path        string   `json:"path"`
	Searchable  []string `json:"searchable"`
}

// GET /api/lookup lists the resources the caller may read.
func (h *LookupHandler) Resources(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if !caller.Authenticated() {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}
	out := []resourceInfo{}
	for _, s := range h.registry.All() {
		if auth.Authorize(caller, s) != nil {
			continue
		}
		out = append(out, resourceInfo{
			Slug:        s.Slug,
			Label:       s.Label,
			ResponseKey: s.ResponseKey,
			Path:        "/api/lookup/" + s.Slug,
			Searchable:  s.Searchable,
		})
	}
	c.JSON(http.StatusOK, gin.H{"resources": out})
}
