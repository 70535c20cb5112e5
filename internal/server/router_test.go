package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-chi-remote-calc/internal/calculator"
	"go-chi-remote-calc/internal/observability"
	"go-chi-remote-calc/internal/remote"
	"go-chi-remote-calc/internal/testutil"
)

func newTestRouter(t *testing.T, sumURL string) http.Handler {
	t.Helper()

	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	reg := prometheus.NewRegistry()
	client := remote.NewClient(remote.WithMetrics(remote.NewMetrics(reg)))
	svc := calculator.NewService(client, testutil.ClosedURL(t), sumURL)

	return NewRouter(calculator.NewHandler(svc, 0), reg)
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, testutil.ClosedURL(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterCalculatorSumSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	stub := testutil.NewStubFunction(t, testutil.Envelope(200, map[string]any{
		"num1": 2, "num2": 3, "sum": 5, "operation": "addition",
	}))
	router := newTestRouter(t, stub.URL)

	w := testutil.ExecuteRequest(testutil.JSONRequest(t, http.MethodPost, "/calculator/sum", `{"num1":2,"num2":3}`), router)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	data, ok := payload["data"].(map[string]any)
	if !ok || data["sum"] != float64(5) {
		t.Fatalf("expected sum 5, got %#v", payload["data"])
	}
}

func TestNewRouterReusesInboundRequestID(t *testing.T) {
	router := newTestRouter(t, testutil.ClosedURL(t))
	inbound := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", inbound)
	w := testutil.ExecuteRequest(req, router)

	if got := w.Header().Get("X-Request-ID"); got != inbound {
		t.Fatalf("expected inbound request id %q, got %q", inbound, got)
	}
}

func TestNewRouterRejectsGetOnCalculator(t *testing.T) {
	router := newTestRouter(t, testutil.ClosedURL(t))

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sum", nil), router)

	testutil.CheckResponseCode(t, http.StatusMethodNotAllowed, w.Code)
}

func TestNewRouterMetricsEndpointExposesRemoteCalls(t *testing.T) {
	router := newTestRouter(t, testutil.ClosedURL(t))

	_ = testutil.ExecuteRequest(testutil.JSONRequest(t, http.MethodPost, "/calculator/sum", `{"num1":1,"num2":2}`), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	body := w.Body.String()
	if !strings.Contains(body, `remote_calls_total{endpoint="sum",outcome="CONNECTIVITY_ERROR"} 1`) {
		t.Fatalf("expected connectivity outcome in metrics, got:\n%s", body)
	}
}
