package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New("products-api")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/products/1", "/products/2", "/health", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.requests.WithLabelValues("products-api", "GET", "/products/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.requests.WithLabelValues("products-api", "GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.requests.WithLabelValues("products-api", "GET", unmatchedRoute, "404")))
}

func TestObservePeer(t *testing.T) {
	m := New("products-api")
	m.ObservePeer("users-api", "ok")
	m.ObservePeer("users-api", "error")
	m.ObservePeer("users-api", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.peerRequests.WithLabelValues("products-api", "users-api", "error")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New("doctors-api")
	m.ObservePeer("users-api", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `peer_requests_total{outcome="ok",peer="users-api",service="doctors-api"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
