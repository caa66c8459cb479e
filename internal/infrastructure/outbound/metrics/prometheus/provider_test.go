package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetricsProvider(t *testing.T) {
	p := NewPrometheusMetricsProvider()

	t.Run("transactions by outcome", func(t *testing.T) {
		before := testutil.ToFloat64(TransactionsTotal.WithLabelValues("rollback"))
		p.IncrementTransactions("rollback")
		p.IncrementTransactions("rollback")
		assert.Equal(t, before+2, testutil.ToFloat64(TransactionsTotal.WithLabelValues("rollback")))
	})

	t.Run("post operations keep success label", func(t *testing.T) {
		before := testutil.ToFloat64(PostOperationsTotal.WithLabelValues("delete", "false"))
		p.IncrementPostOperations("delete", false)
		assert.Equal(t, before+1, testutil.ToFloat64(PostOperationsTotal.WithLabelValues("delete", "false")))
	})

	t.Run("http requests", func(t *testing.T) {
		before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/posts", "200"))
		p.IncrementHTTPRequests("GET", "/api/v1/posts", "200")
		p.RecordHTTPRequestDuration("GET", "/api/v1/posts", 10*time.Millisecond)
		assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/posts", "200")))
	})

	t.Run("service health gauge", func(t *testing.T) {
		p.SetServiceHealth(true)
		assert.Equal(t, float64(1), testutil.ToFloat64(ServiceHealth))
		p.SetServiceHealth(false)
		assert.Equal(t, float64(0), testutil.ToFloat64(ServiceHealth))
	})
}
