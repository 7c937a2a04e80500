package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordStage(t *testing.T) {
	before := testutil.ToFloat64(StageTotal.WithLabelValues("detail", "empty"))
	RecordStage("detail", "empty", 0, 0.5)
	after := testutil.ToFloat64(StageTotal.WithLabelValues("detail", "empty"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("books", "halted"))
	RecordRun("books", "halted", 1.2)
	after := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("books", "halted"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("openrouter", "network"))
	RecordProviderRequest("openrouter", "network", 0.1)
	after := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("openrouter", "network"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordStage("discover", "ok", 3, 0.2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "recamazon_stage_total") {
		t.Fatalf("expected stage counter in exposition output")
	}
}
