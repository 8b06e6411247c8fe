package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findFamily は収集済みメトリクスから名前でメトリクスファミリーを探す。
func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("%s metric not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordHTTPStatus_IncrementsCounterWithLabel はHTTPステータスカウンタがラベル付きで増加することを検証する。
func TestRecordHTTPStatus_IncrementsCounterWithLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(401)

	mf := findFamily(t, reg, "xgencloud_http_requests_total")
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		label := labelValue(m, "status_code")
		val := m.GetCounter().GetValue()
		switch label {
		case "200":
			if val != 2 {
				t.Errorf("http_requests_total{status_code=200} = %v, want 2", val)
			}
		case "401":
			if val != 1 {
				t.Errorf("http_requests_total{status_code=401} = %v, want 1", val)
			}
		default:
			t.Errorf("unexpected label value: %s", label)
		}
	}
}

// TestRecordRequestDuration_ObservesHistogram はリクエスト処理時間のヒストグラムに値が記録されることを検証する。
func TestRecordRequestDuration_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestDuration(100 * time.Millisecond)
	c.RecordRequestDuration(2 * time.Second)

	h := findFamily(t, reg, "xgencloud_http_request_duration_seconds").GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 2 {
		t.Errorf("sample_count = %d, want 2", h.GetSampleCount())
	}
	// 合計は0.1 + 2.0 = 2.1秒
	if h.GetSampleSum() < 2.0 || h.GetSampleSum() > 2.2 {
		t.Errorf("sample_sum = %v, want ~2.1", h.GetSampleSum())
	}
}

// TestRecordAuthEvent_IncrementsCounterWithLabels は認証イベントがイベントと結果のラベル付きで記録されることを検証する。
func TestRecordAuthEvent_IncrementsCounterWithLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAuthEvent("login", "success")
	c.RecordAuthEvent("login", "failure")
	c.RecordAuthEvent("login", "failure")
	c.RecordAuthEvent("register", "success")

	mf := findFamily(t, reg, "xgencloud_auth_events_total")
	if len(mf.GetMetric()) != 3 {
		t.Fatalf("expected 3 label combinations, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		key := labelValue(m, "event") + "/" + labelValue(m, "outcome")
		val := m.GetCounter().GetValue()
		want := map[string]float64{
			"login/success":    1,
			"login/failure":    2,
			"register/success": 1,
		}[key]
		if val != want {
			t.Errorf("auth_events_total{%s} = %v, want %v", key, val, want)
		}
	}
}

// TestRecordContactMessage_IncrementsCounter はお問い合わせカウンタが増加することを検証する。
func TestRecordContactMessage_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordContactMessage()
	c.RecordContactMessage()
	c.RecordContactMessage()

	val := findFamily(t, reg, "xgencloud_contact_messages_total").GetMetric()[0].GetCounter().GetValue()
	if val != 3 {
		t.Errorf("contact_messages_total = %v, want 3", val)
	}
}

// TestMetricsHandler_ReturnsPrometheusFormat は/metricsエンドポイントがPrometheus形式で返すことを検証する。
func TestMetricsHandler_ReturnsPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// いくつかのメトリクスを記録
	c.RecordHTTPStatus(200)
	c.RecordRequestDuration(500 * time.Millisecond)
	c.RecordAuthEvent("register", "success")
	c.RecordContactMessage()

	handler := Handler(reg)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	bodyStr := string(body)

	expectedMetrics := []string{
		"xgencloud_http_requests_total",
		"xgencloud_http_request_duration_seconds",
		"xgencloud_auth_events_total",
		"xgencloud_contact_messages_total",
	}

	for _, metric := range expectedMetrics {
		if !strings.Contains(bodyStr, metric) {
			t.Errorf("response body does not contain %q", metric)
		}
	}
}

// TestCollector_ImplementsMetricsCollectorInterface はCollectorがMetricsCollectorインターフェースを実装することを検証する。
func TestCollector_ImplementsMetricsCollectorInterface(t *testing.T) {
	reg := prometheus.NewRegistry()
	var _ MetricsCollector = NewCollector(reg)
}

// TestMultipleCollectors_IndependentRegistries は異なるレジストリで独立に動作することを検証する。
func TestMultipleCollectors_IndependentRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()
	c1 := NewCollector(reg1)
	c2 := NewCollector(reg2)

	c1.RecordContactMessage()
	c2.RecordContactMessage()
	c2.RecordContactMessage()

	val1 := findFamily(t, reg1, "xgencloud_contact_messages_total").GetMetric()[0].GetCounter().GetValue()
	val2 := findFamily(t, reg2, "xgencloud_contact_messages_total").GetMetric()[0].GetCounter().GetValue()

	if val1 != 1 {
		t.Errorf("reg1 contact_messages = %v, want 1", val1)
	}
	if val2 != 2 {
		t.Errorf("reg2 contact_messages = %v, want 2", val2)
	}
}
