package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ravik808/sitetrust/internal/app"
	"github.com/ravik808/sitetrust/internal/model"
	"github.com/ravik808/sitetrust/internal/server"
	"github.com/ravik808/sitetrust/internal/testutil"
)

func newTestOrchestrator(comps *app.Components) *app.Orchestrator {
	cfg := app.DefaultConfig()
	cfg.ProbeCfg.Timeout = time.Second
	cfg.CaptureCfg.Timeout = time.Second
	return app.NewOrchestrator(cfg, comps, &testutil.DummyLogger{})
}

func newTestServer(t *testing.T, comps *app.Components) *server.Server {
	t.Helper()
	return server.NewServer(server.Config{ListenAddr: ":0"}, newTestOrchestrator(comps), &testutil.DummyLogger{})
}

// healthyComponents assembles dummies that mimic a long-established site:
// every probe answers, the page renders, the oracle says safe.
func healthyComponents() *app.Components {
	return &app.Components{
		Whois: &testutil.DummyWhois{Record: &model.WhoisRecord{
			Raw:          "Domain Name: GOOGLE.COM",
			DomainName:   "google.com",
			Registrar:    "MarkMonitor Inc.",
			CreationDate: "1997-09-15T04:00:00Z",
		}},
		Certs: &testutil.DummyCertProbe{Record: &model.CertificateRecord{
			Valid:         true,
			Subject:       map[string]string{"common_name": "*.google.com"},
			Issuer:        map[string]string{"common_name": "WR2", "organization": "Google Trust Services"},
			ValidFrom:     "2025-12-01T00:00:00Z",
			ValidTo:       "2026-02-23T00:00:00Z",
			DaysRemaining: 39,
		}},
		Hosting: &testutil.DummyHostingProbe{Record: &model.HostingRecord{
			IP:      "142.250.74.36",
			Reverse: "edge.googleusercontent.com",
		}},
		Capturer: &testutil.DummyCapturer{Page: &model.PageCapture{
			PNG:  []byte("png-bytes"),
			HTML: "<html><head><title>Google</title></head><body><a href='/'>home</a></body></html>",
		}},
		Images:     &testutil.DummyImageStore{},
		Classifier: &testutil.DummyClassifier{},
		History:    &testutil.DummyAssessmentStore{},
	}
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "GET", "/api/v1/health", "")

	origin := rec.Header().Get("Access-Control-Allow-Origin")
	if origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_OptionsPreflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "OPTIONS", "/api/v1/analyze", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	methods := rec.Header().Get("Access-Control-Allow-Methods")
	if methods == "" {
		t.Error("expected Allow-Methods header on OPTIONS")
	}
}

// ─── Health ────────────────────────────────────────────────────────────

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "GET", "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var health map[string]string
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode health data: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("status = %q, want ok", health["status"])
	}
	if health["version"] == "" {
		t.Error("expected a version string")
	}
}

// ─── Analyze ───────────────────────────────────────────────────────────

func TestServer_Analyze(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"https://www.google.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.StatusCode != http.StatusOK {
		t.Errorf("envelope statusCode = %d, want 200", env.StatusCode)
	}

	var a model.TrustAssessment
	if err := json.Unmarshal(env.Data, &a); err != nil {
		t.Fatalf("decode assessment: %v", err)
	}
	if a.Result != model.VerdictSafe {
		t.Errorf("Result = %q, want safe", a.Result)
	}
	if a.TrustScore != 100 {
		t.Errorf("TrustScore = %d, want 100", a.TrustScore)
	}
	if a.ID == "" {
		t.Error("expected a generated assessment id")
	}
}

func TestServer_Analyze_InvalidJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{invalid}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_Analyze_MissingURL(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.StatusCode != http.StatusBadRequest {
		t.Errorf("envelope statusCode = %d, want 400", env.StatusCode)
	}
	if env.Message == "" {
		t.Error("expected an error message in the envelope")
	}
}

func TestServer_Analyze_UnsupportedScheme(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"ftp://example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ─── Assessment history ────────────────────────────────────────────────

func TestServer_Assessments_ListAndGet(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"https://www.google.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d", rec.Code)
	}
	var created model.TrustAssessment
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &created); err != nil {
		t.Fatalf("decode assessment: %v", err)
	}

	rec = doJSON(t, s, "GET", "/api/v1/assessments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var summaries []model.AssessmentSummary
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].ID != created.ID {
		t.Errorf("summary id = %q, want %q", summaries[0].ID, created.ID)
	}

	rec = doJSON(t, s, "GET", "/api/v1/assessments/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var fetched model.TrustAssessment
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &fetched); err != nil {
		t.Fatalf("decode fetched assessment: %v", err)
	}
	if fetched.URL != created.URL {
		t.Errorf("fetched URL = %q, want %q", fetched.URL, created.URL)
	}
}

func TestServer_Assessments_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	rec := doJSON(t, s, "GET", "/api/v1/assessments/nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_Assessments_HistoryDisabled(t *testing.T) {
	t.Parallel()
	comps := healthyComponents()
	comps.History = nil
	s := newTestServer(t, comps)

	rec := doJSON(t, s, "GET", "/api/v1/assessments", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("list: expected 503, got %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/api/v1/assessments/some-id", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("get: expected 503, got %d", rec.Code)
	}
}

func TestServer_Assessments_LimitParam(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, healthyComponents())

	for i := 0; i < 3; i++ {
		rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"https://www.google.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("analyze %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := doJSON(t, s, "GET", "/api/v1/assessments?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summaries []model.AssessmentSummary
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("expected 2 summaries, got %d", len(summaries))
	}
}

// ─── Internal failure boundary ─────────────────────────────────────────

// brokenStore implements interfaces.AssessmentStore and panics on every
// operation, standing in for a storage-layer bug.
type brokenStore struct{}

func (b *brokenStore) Save(context.Context, *model.TrustAssessment) error {
	panic("assessment store: save")
}

func (b *brokenStore) Get(context.Context, string) (*model.TrustAssessment, error) {
	panic("assessment store: get")
}

func (b *brokenStore) List(context.Context, int) ([]*model.AssessmentSummary, error) {
	panic("assessment store: list")
}

func (b *brokenStore) Close() error { return nil }

func TestServer_Assessments_PanicRecovered(t *testing.T) {
	t.Parallel()
	comps := healthyComponents()
	comps.History = &brokenStore{}
	logger := &testutil.DummyLogger{}
	s := server.NewServer(server.Config{ListenAddr: ":0"}, newTestOrchestrator(comps), logger)

	rec := doJSON(t, s, "GET", "/api/v1/assessments/any-id", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.StatusCode != http.StatusInternalServerError {
		t.Errorf("envelope statusCode = %d, want 500", env.StatusCode)
	}
	if env.Message == "" {
		t.Error("expected an error message in the envelope")
	}
	if len(logger.Errors) == 0 {
		t.Error("expected the panic to be logged at error level")
	}
}

func TestServer_Analyze_PanicRecovered(t *testing.T) {
	t.Parallel()
	comps := healthyComponents()
	comps.History = &brokenStore{}
	s := newTestServer(t, comps)

	// The history save runs inside the analysis pipeline, so the panic
	// surfaces through the analyze handler itself.
	rec := doJSON(t, s, "POST", "/api/v1/analyze", `{"url":"https://www.google.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.StatusCode != http.StatusInternalServerError || env.Message == "" {
		t.Errorf("expected a 500 error envelope, got %+v", env)
	}
}

// ─── Screenshot serving ────────────────────────────────────────────────

func TestServer_ServesScreenshotDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shot.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write screenshot: %v", err)
	}

	cfg := server.Config{ListenAddr: ":0", ScreenshotDir: dir}
	s := server.NewServer(cfg, newTestOrchestrator(healthyComponents()), &testutil.DummyLogger{})

	rec := doJSON(t, s, "GET", "/screenshots/shot.png", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "png-bytes" {
		t.Errorf("body = %q, want png-bytes", got)
	}
}

// ─── WebSocket streaming ───────────────────────────────────────────────

func dialStream(t *testing.T, s *server.Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/analyze/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	return conn
}

type streamFrame struct {
	Type  string          `json:"type"`
	Stage string          `json:"stage"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func TestServer_AnalyzeStream(t *testing.T) {
	t.Parallel()
	conn := dialStream(t, newTestServer(t, healthyComponents()))

	if err := conn.WriteJSON(map[string]string{"url": "https://www.google.com"}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	sawProgress := false
	for {
		var frame streamFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}

		switch frame.Type {
		case "progress":
			sawProgress = true
			if frame.Stage == "" {
				t.Error("progress frame without a stage")
			}
		case "error":
			t.Fatalf("unexpected error frame: %s", frame.Error)
		case "result":
			var a model.TrustAssessment
			if err := json.Unmarshal(frame.Data, &a); err != nil {
				t.Fatalf("decode result: %v", err)
			}
			if a.TrustScore != 100 {
				t.Errorf("TrustScore = %d, want 100", a.TrustScore)
			}
			if !sawProgress {
				t.Error("expected at least one progress frame before the result")
			}
			return
		default:
			t.Fatalf("unknown frame type %q", frame.Type)
		}
	}
}

func TestServer_AnalyzeStream_MissingURL(t *testing.T) {
	t.Parallel()
	conn := dialStream(t, newTestServer(t, healthyComponents()))

	if err := conn.WriteJSON(map[string]string{"url": ""}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var frame streamFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "error" || frame.Error == "" {
		t.Errorf("expected an error frame, got %+v", frame)
	}
}
