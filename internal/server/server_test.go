package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/compound-growth/internal/cache"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"go.uber.org/zap"
)

type growthPointJSON struct {
	Year     int     `json:"year"`
	Simple   float64 `json:"simple"`
	Compound float64 `json:"compound"`
}

type datasetJSON struct {
	Label  string    `json:"label"`
	Data   []float64 `json:"data"`
	Stroke string    `json:"stroke"`
	Dashed bool      `json:"dashed"`
}

type singleResponseJSON struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Cached   bool              `json:"cached"`
	Points   []json.RawMessage `json:"points"`
	Labels   []string          `json:"labels"`
	Datasets []datasetJSON     `json:"datasets"`
	Duration string            `json:"duration"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	mem, err := cache.NewMemoryCache(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	runner := simulate.NewRunner(zap.NewNop(), mem, "test")
	return NewHandler(zap.NewNop(), runner, constants.DefaultMaxUploadSizeBytes, 100, "1.2.3")
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func uploadRequest(t *testing.T, path string) *http.Request {
	t.Helper()

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}
	return uploadRequestWithData(t, path, data)
}

func uploadRequestWithData(t *testing.T, path string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "test_config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleGrowth(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/growth", `{"principal":1000,"rate":0.05,"years":2,"frequency":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp singleResponseJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Kind != constants.KindGrowth || resp.ID == "" || resp.Duration == "" {
		t.Errorf("unexpected response metadata %+v", resp)
	}
	if len(resp.Points) != 3 || len(resp.Labels) != 3 {
		t.Fatalf("expected 3 points and labels, got %d and %d", len(resp.Points), len(resp.Labels))
	}

	var last growthPointJSON
	if err := json.Unmarshal(resp.Points[2], &last); err != nil {
		t.Fatalf("failed to decode point: %v", err)
	}
	if last.Year != 2 || last.Simple < 1099.99 || last.Simple > 1100.01 || last.Compound < 1102.49 || last.Compound > 1102.51 {
		t.Errorf("unexpected final point %+v", last)
	}

	if len(resp.Datasets) != 2 || resp.Datasets[1].Label != "Compound interest" {
		t.Errorf("unexpected datasets %+v", resp.Datasets)
	}
}

func TestHandleGrowthCached(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"principal":500,"rate":0.04,"years":10,"frequency":4}`

	first := postJSON(t, handler, "/api/growth", body)
	second := postJSON(t, handler, "/api/growth", body)

	var a, b singleResponseJSON
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if a.Cached || !b.Cached {
		t.Errorf("expected miss then hit, got %v then %v", a.Cached, b.Cached)
	}
}

func TestHandleContributionClampsInput(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/contribution", `{"initial":-100,"monthly":100,"annualBonus":0,"rate":-1,"years":1.9}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp singleResponseJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(resp.Points))
	}
	if len(resp.Datasets) != 3 || resp.Datasets[0].Data[1] != 1200 {
		t.Errorf("unexpected datasets %+v", resp.Datasets)
	}
}

func TestHandleTimingEmptyBody(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/timing", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp singleResponseJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Points) != 1 {
		t.Errorf("expected the single initial point, got %d", len(resp.Points))
	}
}

func TestHandleParamsErrors(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"Wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"Malformed JSON", http.MethodPost, `{"principal":`, http.StatusBadRequest},
		{"Unknown field", http.MethodPost, `{"principle":1000}`, http.StatusBadRequest},
		{"Wrong type", http.MethodPost, `{"principal":"lots"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/growth", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.status {
				t.Errorf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleForecastSuccess(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, "/api/forecast"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Simulations []singleResponseJSON   `json:"simulations"`
		CSV         string                 `json:"csv"`
		Duration    string                 `json:"duration"`
		Config      map[string]interface{} `json:"config"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Simulations) != 3 {
		t.Fatalf("expected 3 active simulations, got %d", len(resp.Simulations))
	}
	if resp.CSV == "" {
		t.Fatal("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if resp.Config == nil {
		t.Fatal("expected config data in response")
	}
}

func TestHandleForecastMissingFile(t *testing.T) {
	handler := newTestHandler(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("other", "value")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "missing configuration file") {
		t.Errorf("unexpected error body %s", rr.Body.String())
	}
}

func TestHandleForecastTooLarge(t *testing.T) {
	runner := simulate.NewRunner(zap.NewNop(), nil, "")
	handler := NewHandler(zap.NewNop(), runner, 64, 0, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, "/api/forecast"))

	if rr.Code != http.StatusRequestEntityTooLarge && rr.Code != http.StatusBadRequest {
		t.Fatalf("expected upload to be rejected, got %d", rr.Code)
	}
}

func TestHandleReport(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, uploadRequest(t, "/api/report"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp["version"])
	}

	defaulted := NewHandler(nil, nil, 0, 0, "  ")
	rr = httptest.NewRecorder()
	defaulted.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Errorf("expected dev version, got %s", rr.Body.String())
	}
}

func TestHandleGrowthNonFiniteResult(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/api/growth", `{"principal":1e308,"rate":1,"years":2,"frequency":1}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON error body, got %q: %v", rr.Body.String(), err)
	}
	if !strings.Contains(resp["error"], "failed to encode response") {
		t.Errorf("unexpected error message %q", resp["error"])
	}
}

func TestHandleParamsHorizonLimit(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"Growth at the limit", "/api/growth", `{"principal":1,"rate":0.01,"years":100,"frequency":1}`, http.StatusOK},
		{"Growth past the limit", "/api/growth", `{"principal":1,"rate":0.01,"years":1e9,"frequency":1}`, http.StatusBadRequest},
		{"Contribution past the limit", "/api/contribution", `{"monthly":1,"years":101}`, http.StatusBadRequest},
		{"Timing past the limit", "/api/timing", `{"monthly":1,"yearsInvesting":1,"horizonYears":100.5}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if tt.status == http.StatusBadRequest && !strings.Contains(rr.Body.String(), "exceeds the limit of 100 years") {
				t.Errorf("unexpected error body %s", rr.Body.String())
			}
		})
	}
}

func TestHandleUploadHorizonLimit(t *testing.T) {
	handler := newTestHandler(t)
	data := []byte(`simulations:
  - name: Forever
    kind: growth
    active: true
    growth:
      principal: 1000
      rate: 0.05
      years: 1000000000
      frequency: 1
  - name: Ignored
    kind: timing
    active: false
    timing:
      horizonYears: 1000000000
`)

	for _, path := range []string{"/api/forecast", "/api/report"} {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, uploadRequestWithData(t, path, data))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), `\"Forever\"`) {
				t.Errorf("expected the error to name the simulation, got %s", rr.Body.String())
			}
		})
	}
}
