package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/tenants/{tenantID}/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/api/v1/tenants/oslo/search", "/api/v1/tenants/bergen/search"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	}

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/tenants/{tenantID}/search", "200"))
	if got < 2 {
		t.Errorf("expected both tenants under one route label, got %f", got)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/missing", http.NoBody))
	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404")); v < 1 {
		t.Errorf("expected 404 to be counted, got %f", v)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf("normalizePath(\"\") = %q", got)
	}
	if got := normalizePath("/health"); got != "/health" {
		t.Errorf("normalizePath(/health) = %q", got)
	}
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(searchOperationsTotal.WithLabelValues("typeahead", "public", "error"))
	ObserveOperation("typeahead", "public", time.Now(), 0, errors.New("boom"))
	ObserveOperation("typeahead", "public", time.Now(), 3, nil)

	after := testutil.ToFloat64(searchOperationsTotal.WithLabelValues("typeahead", "public", "error"))
	if after-before != 1 {
		t.Errorf("expected one error observation, got %f", after-before)
	}
	if v := testutil.ToFloat64(searchOperationsTotal.WithLabelValues("typeahead", "public", "ok")); v < 1 {
		t.Errorf("expected ok observation, got %f", v)
	}
}

func TestObserveImport(t *testing.T) {
	before := testutil.ToFloat64(importedRecordsTotal.WithLabelValues("yaml"))
	ObserveImport("yaml", 4)
	if got := testutil.ToFloat64(importedRecordsTotal.WithLabelValues("yaml")) - before; got != 4 {
		t.Errorf("expected 4 imported records, got %f", got)
	}
}
