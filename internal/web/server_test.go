package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/morispolanco/recamazon/internal/parse"
	"github.com/morispolanco/recamazon/internal/pipeline"
	"github.com/morispolanco/recamazon/internal/services"
)

type analyzerStub struct {
	mu      sync.Mutex
	catalog string
	result  pipeline.Result
	queries []string
}

func (a *analyzerStub) Run(_ context.Context, query string) (pipeline.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	query = strings.TrimSpace(query)
	if query == "" {
		return pipeline.Result{}, services.Wrap(services.ErrValidation, "pipeline", "run", "query required", nil)
	}
	a.queries = append(a.queries, query)
	result := a.result
	result.Query = query
	return result, nil
}

func (a *analyzerStub) Catalog() string {
	if a.catalog == "" {
		return pipeline.CatalogBooks
	}
	return a.catalog
}

func completedStub() *analyzerStub {
	return &analyzerStub{result: pipeline.Result{
		Catalog:        pipeline.CatalogBooks,
		Status:         pipeline.StatusCompleted,
		Items:          []parse.ItemReference{{URL: "https://amazon.com/dp/1"}},
		Details:        []parse.Record{parse.Record(`{"title":"<i>Dune</i>","price":"$9.99"}`)},
		Reviews:        []parse.Record{},
		Recommendation: "Read Dune.",
	}}
}

func newTestServer(t *testing.T, analyzer Analyzer, opts Options) http.Handler {
	t.Helper()
	srv, err := New(analyzer, opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return srv.Handler()
}

func postForm(handler http.Handler, query string) *httptest.ResponseRecorder {
	form := url.Values{"query": {query}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestIndexRendersForm(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `name="query"`) || !strings.Contains(body, "Analyze") {
		t.Fatalf("expected query form, got %s", body)
	}
	if strings.Contains(body, "Book Details") {
		t.Fatal("tabs should not render before a query is submitted")
	}
}

func TestIndexPostRendersTabs(t *testing.T) {
	stub := completedStub()
	w := postForm(newTestServer(t, stub, Options{}), "Dune")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Related Books", "Book Details", "Reviews", "Customer Reviews", "Recommendations", "Book Recommendations", "No reviews available", "Read Dune.", "https://amazon.com/dp/1"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Contains(body, "<i>Dune</i>") {
		t.Fatal("expected record cells to be escaped")
	}
	if len(stub.queries) != 1 || stub.queries[0] != "Dune" {
		t.Fatalf("unexpected queries %v", stub.queries)
	}
}

func TestIndexPostHalted(t *testing.T) {
	stub := &analyzerStub{catalog: pipeline.CatalogProducts, result: pipeline.Result{Catalog: pipeline.CatalogProducts, Status: pipeline.StatusHalted, Reason: pipeline.ReasonNoItemsFound}}
	w := postForm(newTestServer(t, stub, Options{}), "zzqqxx")

	body := w.Body.String()
	if !strings.Contains(body, "No related products found") {
		t.Fatalf("expected halt message, got %s", body)
	}
	if strings.Contains(body, "Product Details") {
		t.Fatal("halted run should not render tabs")
	}
}

func TestIndexPostBlankQuery(t *testing.T) {
	stub := completedStub()
	w := postForm(newTestServer(t, stub, Options{}), "   ")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(stub.queries) != 0 {
		t.Fatalf("analyzer should not run, got %v", stub.queries)
	}
}

func TestWarningRefusesAnalysis(t *testing.T) {
	stub := completedStub()
	handler := newTestServer(t, stub, Options{Warning: "Please add your OpenRouter API key"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Body.String(), "Please add your OpenRouter API key") {
		t.Fatal("expected warning on page")
	}

	w = postForm(handler, "Dune")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"query":"Dune"}`))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from api, got %d", w.Code)
	}
	if len(stub.queries) != 0 {
		t.Fatalf("analyzer should not run, got %v", stub.queries)
	}
}

func TestAPIAnalyze(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"query":"Dune"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var resp struct {
		Query   string            `json:"query"`
		Status  string            `json:"status"`
		Details []json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Query != "Dune" || resp.Status != "completed" || len(resp.Details) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, resp.Details[0]); err != nil {
		t.Fatalf("compact record: %v", err)
	}
	if compact.String() != `{"title":"<i>Dune</i>","price":"$9.99"}` {
		t.Fatalf("expected verbatim record, got %s", compact.String())
	}
}

func TestAPIAnalyzeRejectsBadInput(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	for name, body := range map[string]string{
		"blank query": `{"query":"  "}`,
		"bad json":    `{"query":`,
		"empty body":  ``,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
				t.Fatalf("expected error payload, got %s", w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

func TestAPITokenRequired(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{APIToken: "secret"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("browser page should stay open, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	handler := newTestServer(t, completedStub(), Options{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStartServesUntilCanceled(t *testing.T) {
	srv, err := New(completedStub(), Options{Bind: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	srv.Stop()
}

func TestNewRequiresAnalyzer(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Fatal("expected error for nil analyzer")
	}
}
