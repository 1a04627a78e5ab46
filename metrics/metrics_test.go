package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/matchboard/footballdata"
)

func TestNewManager(t *testing.T) {
	t.Run("default registry", func(t *testing.T) {
		m := NewManager()
		require.NotNil(t, m.Registry())
	})

	t.Run("custom options", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("queue"),
			WithHistogramBuckets([]float64{0.1, 1}),
			WithRegistry(registry),
		)
		assert.Same(t, registry, m.Registry())

		m.RequestEnqueued(1)
		families, err := registry.Gather()
		require.NoError(t, err)

		var names []string
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "test_queue_requests_enqueued_total")
	})

	t.Run("managers do not share registries", func(t *testing.T) {
		assert.NotPanics(t, func() {
			NewManager()
			NewManager()
		})
	})
}

func TestRecorder(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))

	m.RequestEnqueued(1)
	m.RequestEnqueued(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsEnqueued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.queueDepth))

	m.QueueDepth(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queueDepth))

	m.DispatchWaited(400 * time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.dispatchWait))

	m.RequestDispatched("/competitions/PL/matches", 120*time.Millisecond, nil)
	m.RequestDispatched("/competitions/SA/matches", 80*time.Millisecond, &footballdata.Error{Kind: footballdata.KindRateLimit})
	m.RequestDispatched("/matches", 50*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/competitions/{code}/matches", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/competitions/{code}/matches", "RATE_LIMIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/matches", "error")))
}

func TestEndpointLabel(t *testing.T) {
	tests := map[string]string{
		"/matches":                  "/matches",
		"/competitions":             "/competitions",
		"/competitions/PL":          "/competitions/{code}",
		"/competitions/BL1/matches": "/competitions/{code}/matches",
		"/teams/57":                 "other",
		"/competitions/":            "other",
	}
	for endpoint, want := range tests {
		assert.Equal(t, want, endpointLabel(endpoint), endpoint)
	}
}

func TestHandler(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))
	m.RecordHTTPRequest("/api/matches", http.MethodGet, http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `matchboard_http_requests_total{method="GET",route="/api/matches",status_code="200"} 1`)
}
