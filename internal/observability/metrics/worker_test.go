package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *WorkerMetrics) string {
	t.Helper()
	res := httptest.NewRecorder()
	m.Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("scrape expected 200, got %d", res.Code)
	}
	return res.Body.String()
}

func TestWorkerMetricsCountDeliveryOutcomes(t *testing.T) {
	m := NewWorkerMetrics("worker-test")

	m.StartDelivery()
	m.FinishDelivery("worker-test", 5*time.Millisecond, nil)
	m.StartDelivery()
	m.FinishDelivery("worker-test", 5*time.Millisecond, errors.New("smtp down"))

	body := scrape(t, m)
	if !strings.Contains(body, `invsvc_worker_notification_deliveries_total{service="worker-test",status="delivered"} 1`) {
		t.Fatalf("expected one delivered notification, got:\n%s", body)
	}
	if !strings.Contains(body, `invsvc_worker_notification_deliveries_total{service="worker-test",status="failed"} 1`) {
		t.Fatalf("expected one failed notification, got:\n%s", body)
	}
}

func TestWorkerMetricsTrackInFlight(t *testing.T) {
	m := NewWorkerMetrics("worker-test")

	m.StartDelivery()
	if body := scrape(t, m); !strings.Contains(body, `invsvc_worker_notification_deliveries_in_flight{service="worker-test"} 1`) {
		t.Fatalf("expected one in-flight delivery, got:\n%s", body)
	}

	m.FinishDelivery("worker-test", time.Millisecond, nil)
	if body := scrape(t, m); !strings.Contains(body, `invsvc_worker_notification_deliveries_in_flight{service="worker-test"} 0`) {
		t.Fatalf("expected no in-flight deliveries, got:\n%s", body)
	}
}
