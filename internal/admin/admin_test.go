package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/dtproto/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
)

type stubStatus struct {
	ready bool
	ports map[string]int
}

func (s stubStatus) Ready() bool           { return s.ready }
func (s stubStatus) Ports() map[string]int { return s.ports }
func (s stubStatus) StateName() string     { return "awaiting_request" }

func get(t *testing.T, a *Admin, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthReportsState(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	a := New("dtserver", nil, stubStatus{ready: true})
	rec := get(t, a, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["state"] != "awaiting_request" || body["service"] != "dtserver" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReadyFollowsBindingSet(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	if rec := get(t, New("dtserver", nil, stubStatus{ready: false}), "/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before bind, got %d", rec.Code)
	}
	if rec := get(t, New("dtserver", nil, stubStatus{ready: true}), "/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after bind, got %d", rec.Code)
	}
}

func TestBindingsAndMetrics(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	a := New("dtserver", []string{" http://example.test ", ""}, stubStatus{
		ready: true,
		ports: map[string]int{"eng": 5000, "mao": 5001, "ger": 5002},
	})

	rec := get(t, a, "/bindings")
	var body struct {
		Bindings map[string]int `json:"bindings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Bindings["mao"] != 5001 {
		t.Fatalf("unexpected bindings: %v", body.Bindings)
	}

	rec = get(t, a, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "dtproto_admin_requests_total") {
		t.Fatalf("expected admin metrics to be exported, status=%d", rec.Code)
	}
}

func TestNormalizeOrigins(t *testing.T) {
	got := normalizeOrigins([]string{" ", "http://a.test "})
	if len(got) != 1 || got[0] != "http://a.test" {
		t.Fatalf("unexpected origins: %v", got)
	}
	if got := normalizeOrigins(nil); len(got) != 1 || got[0] != "http://localhost:3000" {
		t.Fatalf("unexpected default origins: %v", got)
	}
}
