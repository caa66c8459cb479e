package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"post-board-service/internal/infrastructure/logger"
	"post-board-service/internal/infrastructure/outbound/metrics/prometheus"
)

func TestMetricsServer_ExposesRegistry(t *testing.T) {
	prometheus.NewPrometheusMetricsProvider().IncrementTransactions("commit")
	srv := NewMetricsServer("127.0.0.1", 0, logger.New("test"))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "postboard_transactions_total")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rec.Body.String())
}
