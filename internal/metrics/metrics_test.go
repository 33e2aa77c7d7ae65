package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Extraction(nil)
	m.Extraction(errors.New("boom"))
	m.Extraction(nil)
	m.Fallback(StageTitle)
	m.Chat(errors.New("boom"))

	if got := testutil.ToFloat64(m.extractions.WithLabelValues("success")); got != 2 {
		t.Errorf("extractions{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.extractions.WithLabelValues("error")); got != 1 {
		t.Errorf("extractions{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fallbacks.WithLabelValues(StageTitle)); got != 1 {
		t.Errorf("fallbacks{title} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.chats.WithLabelValues("error")); got != 1 {
		t.Errorf("chats{error} = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Extraction(nil)
	m.Fallback(StageTags)
	m.Classified("ai", "SEO")
	m.Chat(nil)
	m.ObserveAI("chat", time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil Handler() status = %d, want 404", rec.Code)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveAI("generate", time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Handler() status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "linkvault_ai_request_duration_seconds") {
		t.Error("Handler() output is missing the AI latency histogram")
	}
}
