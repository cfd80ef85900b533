package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"tradevision/internal/domain"
	"tradevision/internal/service"
	"tradevision/internal/synth"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errProviderDown = errors.New("provider down")

type stubMetadataProvider struct {
	vctx *domain.VideoContext
	err  error
}

func (s *stubMetadataProvider) ValidateURL(url string) bool {
	return strings.Contains(url, "youtu")
}

func (s *stubMetadataProvider) FetchMetadata(ctx context.Context, url string) (*domain.VideoContext, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vctx, nil
}

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Name() string { return "Stub AI" }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestRouter(t *testing.T, meta service.MetadataProvider, ai service.TextCompleter) (*gin.Engine, string) {
	t.Helper()
	uploadDir := t.TempDir()
	svc := service.New(
		trace.NewNoopTracerProvider().Tracer("test"),
		meta,
		ai,
		nil,
		synth.NewGenerator(rand.New(rand.NewSource(1))),
		time.Second,
		time.Second,
	)
	h := New(trace.NewNoopTracerProvider().Tracer("test"), svc, uploadDir)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, uploadDir
}

func defaultMetadata() *stubMetadataProvider {
	return &stubMetadataProvider{vctx: &domain.VideoContext{
		Title:           "EURUSD day trade",
		Author:          "Canal",
		DurationSeconds: 600,
		Extracted:       true,
	}}
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Status   string   `json:"status"`
		Version  string   `json:"version"`
		Features []string `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if resp.Status != "OK" || resp.Version == "" || len(resp.Features) == 0 {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}

func TestAnalyzeYouTubeMissingURL(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := postJSON(r, "/analyze-youtube-free", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Success || resp.Error != "url required" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAnalyzeYouTubeInvalidURL(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := postJSON(r, "/analyze-youtube-free", `{"url":"https://vimeo.com/1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Success || resp.Error != "invalid url" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAnalyzeYouTubeFailOpenWhenAIThrows(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), &stubCompleter{err: errProviderDown})

	w := postJSON(r, "/analyze-youtube-free", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success  bool          `json:"success"`
		Report   domain.Report `json:"report"`
		Metadata struct {
			ErrorHandled bool `json:"error_handled"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !resp.Success {
		t.Fatal("fail-open contract broken: success must be true")
	}
	if len(resp.Report.Trades) < 1 {
		t.Fatalf("expected at least 1 trade, got %d", len(resp.Report.Trades))
	}
	if !resp.Metadata.ErrorHandled {
		t.Fatal("fallback must be flagged in metadata")
	}
}

func TestAnalyzeYouTubeParsedAIResponse(t *testing.T) {
	ai := &stubCompleter{
		response: `{"summary":{"totalTrades":1,"mainAssets":["EURUSD"]},"trades":[{"id":1,"asset":"EURUSD"}],"insights":[]}`,
	}
	r, _ := newTestRouter(t, defaultMetadata(), ai)

	w := postJSON(r, "/analyze-youtube-free", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success bool          `json:"success"`
		Report  domain.Report `json:"report"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Report.Summary.TotalTrades != 1 {
		t.Fatalf("expected parsed AI report, got %+v", resp.Report.Summary)
	}
}

func TestVideoMetadataValidation(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	if w := postJSON(r, "/video-metadata", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing url, got %d", w.Code)
	}
	if w := postJSON(r, "/video-metadata", `{"url":"ftp://x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid url, got %d", w.Code)
	}
}

func TestVideoMetadataSuccess(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := postJSON(r, "/video-metadata", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success  bool                `json:"success"`
		Metadata domain.VideoContext `json:"metadata"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Metadata.Title != "EURUSD day trade" {
		t.Fatalf("unexpected metadata response: %+v", resp)
	}
}

func TestVideoMetadataProviderFailure(t *testing.T) {
	r, _ := newTestRouter(t, &stubMetadataProvider{err: errProviderDown}, nil)

	w := postJSON(r, "/video-metadata", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected failure payload, got %+v", resp)
	}
}

func TestTestGeminiNotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-gemini", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Status    string `json:"status"`
		Connected bool   `json:"gemini_connected"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ERROR" || resp.Connected {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTestGeminiConnected(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), &stubCompleter{response: "pong"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-gemini", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Connected bool   `json:"gemini_connected"`
		Response  string `json:"response"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Connected || resp.Response != "pong" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTestGeminiProviderError(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), &stubCompleter{err: errProviderDown})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test-gemini", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestAnalyzeUploadMissingFile(t *testing.T) {
	r, _ := newTestRouter(t, defaultMetadata(), nil)

	w := postJSON(r, "/analyze-upload-free", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeUploadCleansScratchFile(t *testing.T) {
	r, uploadDir := newTestRouter(t, defaultMetadata(), nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("video", "win-scalping.mp4")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake video bytes"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze-upload-free", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success  bool          `json:"success"`
		Report   domain.Report `json:"report"`
		Metadata struct {
			Filename string `json:"filename"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !resp.Success || len(resp.Report.Trades) == 0 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
	if resp.Metadata.Filename != "win-scalping.mp4" {
		t.Fatalf("unexpected filename %s", resp.Metadata.Filename)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("scratch file not cleaned up: %d left", len(entries))
	}
}
