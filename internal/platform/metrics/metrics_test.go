package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordRequest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(TransportHTTP, "create", "201", 10*time.Millisecond)
	c.RecordRequest(TransportHTTP, "create", "201", 20*time.Millisecond)
	c.RecordRequest(TransportGRPC, "delete", "NotFound", time.Millisecond)

	if got := testutil.ToFloat64(c.requests.WithLabelValues(TransportHTTP, "create", "201")); got != 2 {
		t.Errorf("http create 201 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues(TransportGRPC, "delete", "NotFound")); got != 1 {
		t.Errorf("grpc delete NotFound = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.duration); got != 2 {
		t.Errorf("expected 2 histogram series, got %d", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(TransportHTTP, "list", "200", time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "usuario_requests_total") {
		t.Fatalf("metrics output missing counter:\n%s", body)
	}
}
