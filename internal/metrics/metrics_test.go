package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/lookup/:entity", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/lookup/users", http.NoBody))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/lookup/:entity", "403"))
	if got < 1 {
		t.Fatalf("expected http_requests_total >= 1, got %f", got)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Fatal("expected duration observations")
	}
}

func TestMiddlewareUnknownRoute(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404")); got < 1 {
		t.Fatalf("expected unknown route to be counted, got %f", got)
	}
}

func TestObserveLookup(t *testing.T) {
	before := testutil.ToFloat64(lookupOutcomes.WithLabelValues("customers", "list", OutcomeOK))
	ObserveLookup("customers", "list", OutcomeOK)
	after := testutil.ToFloat64(lookupOutcomes.WithLabelValues("customers", "list", OutcomeOK))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %f", after-before)
	}
}
