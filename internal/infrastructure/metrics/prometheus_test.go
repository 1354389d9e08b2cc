package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SuggestionCall(t *testing.T) {
	m := New()

	m.SuggestionCall("substitution", "model", 300*time.Millisecond)
	m.SuggestionCall("substitution", "model", 200*time.Millisecond)
	m.SuggestionCall("substitution", "fallback_error", time.Second)
	m.SuggestionCall("classification", "cache_hit", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.suggestionCalls.WithLabelValues("substitution", "model")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.suggestionCalls.WithLabelValues("substitution", "fallback_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.suggestionCalls.WithLabelValues("classification", "cache_hit")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.suggestionDuration))
}

func TestMetrics_PantryUpdate(t *testing.T) {
	m := New()

	m.PantryUpdate("updated")
	m.PantryUpdate("updated")
	m.PantryUpdate("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pantryUpdates.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pantryUpdates.WithLabelValues("failed")))
}

func TestMetrics_HTTPRequest(t *testing.T) {
	m := New()

	m.HTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	m.HTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.PantryUpdate("deleted")

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `pantrychef_pantry_updates_total{outcome="deleted"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// two instances must not collide on registration
	a := New()
	b := New()
	a.PantryUpdate("updated")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.pantryUpdates.WithLabelValues("updated")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.pantryUpdates.WithLabelValues("updated")))
}
