package observability

import (
	"net/http"
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/trips", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	m.RecordError("/trips", http.MethodPost, "FORBIDDEN", http.StatusForbidden)
	m.RecordError("/auth/login", http.MethodPost, "UNAUTHORIZED", http.StatusUnauthorized)
	m.RecordError("/trips/9", http.MethodGet, "NOT_FOUND", http.StatusNotFound)

	requests, errs, authDenials := m.Snapshot()
	if got := requests["/trips|GET|200"]; got != 1 {
		t.Errorf("request count = %d, want 1", got)
	}
	if got := errs["/trips|POST|FORBIDDEN"]; got != 1 {
		t.Errorf("error count = %d, want 1", got)
	}
	if authDenials != 2 {
		t.Errorf("authDenials = %d, want 2 (404 must not count)", authDenials)
	}

	// The snapshot is a copy; mutating it does not touch the counters.
	requests["/trips|GET|200"] = 99
	fresh, _, _ := m.Snapshot()
	if got := fresh["/trips|GET|200"]; got != 1 {
		t.Errorf("snapshot aliased internal state: count = %d, want 1", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", http.MethodGet, http.StatusOK, time.Millisecond)
	m.RecordError("/x", http.MethodGet, "INTERNAL", http.StatusInternalServerError)
	if requests, errs, denials := m.Snapshot(); requests != nil || errs != nil || denials != 0 {
		t.Error("nil metrics should report empty counters")
	}
}
