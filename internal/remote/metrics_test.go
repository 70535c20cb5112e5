package remote

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"go-chi-remote-calc/internal/testutil"
)

func TestMetricsCountOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	okStub := testutil.NewStubFunction(t, testutil.Envelope(200, map[string]any{"sum": 5}))
	badStub := testutil.NewStubFunction(t, testutil.Envelope(400, map[string]any{"error": "bad input"}))

	client := NewClient(WithMetrics(metrics))
	_ = Call[addRequest, addResponse](context.Background(), client, NewEndpoint("sum", okStub.URL), addRequest{})
	_ = Call[addRequest, addResponse](context.Background(), client, NewEndpoint("sum", okStub.URL), addRequest{})
	_ = Call[addRequest, addResponse](context.Background(), client, NewEndpoint("sum", badStub.URL), addRequest{})

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "remote_calls_total", map[string]string{"endpoint": "sum", "outcome": "success"}); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "remote_calls_total", map[string]string{"endpoint": "sum", "outcome": "REMOTE_BUSINESS_ERROR"}); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := fetchHistogramCount(mfs, "remote_call_duration_seconds", map[string]string{"endpoint": "sum"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got != 3 {
		t.Fatalf("expected 3 duration samples, got %d", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.Observe("sum", "success", time.Millisecond)
	NewMetrics(nil).Observe("", "", time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	m, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return m.GetCounter().GetValue(), nil
}

func fetchHistogramCount(mfs []*dto.MetricFamily, name string, labels map[string]string) (uint64, error) {
	m, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return m.GetHistogram().GetSampleCount(), nil
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("metric %s%v not found", name, labels)
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok {
			if v != lp.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
