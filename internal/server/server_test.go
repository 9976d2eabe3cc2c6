package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"sentinel/internal/analyzer"
	"sentinel/internal/api"
	"sentinel/internal/article"
	"sentinel/internal/articlestore"
	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
	"sentinel/internal/server"
	"sentinel/internal/services/newsapi"
)

type stubNews struct {
	articles []article.Article
}

func (s *stubNews) Search(context.Context, newsapi.SearchRequest) ([]article.Article, error) {
	return s.articles, nil
}

func (s *stubNews) TopHeadlines(context.Context, newsapi.HeadlinesRequest) ([]article.Article, error) {
	return s.articles, nil
}

func sampleArticle(url string) article.Article {
	return article.Article{
		Title:       "Court Ruling Shakes Agency",
		Description: "A major ruling landed today.",
		URL:         url,
		Content:     "The court ruled against the agency.",
		PublishedAt: "2024-05-01T10:00:00Z",
		Source:      "Daily Ledger",
		Author:      "R. Calder",
		FetchedAt:   "2024-05-01T12:00:00Z",
	}
}

func newTestServer(t *testing.T, token string, news api.NewsSource) (*server.Server, *articlestore.Store) {
	t.Helper()
	root := t.TempDir()
	store, err := articlestore.Open(filepath.Join(root, "articles.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := logging.NewNop()
	dispatchRoot := filepath.Join(root, "dispatches")
	svc := api.NewService(news, store,
		analyzer.New(nil, logger),
		dispatch.NewWriter(dispatchRoot, logger),
		dispatch.NewIndex(dispatchRoot, logger),
		logger)
	srv, err := server.New("127.0.0.1:0", token, svc, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return srv, store
}

func doRequest(t *testing.T, srv *server.Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, "", &stubNews{})
	rec := doRequest(t, srv, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

func TestAuthTokenEnforced(t *testing.T) {
	srv, _ := newTestServer(t, "secret", &stubNews{})

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer secret")
	rec = doRequest(t, srv, http.MethodGet, "/api/health", "", header)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestFetchAndDispatchRoundTrip(t *testing.T) {
	news := &stubNews{articles: []article.Article{sampleArticle("https://example.com/ruling")}}
	srv, _ := newTestServer(t, "", news)

	rec := doRequest(t, srv, http.MethodPost, "/api/fetch", `{"topic":"court"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch returned %d: %s", rec.Code, rec.Body.String())
	}
	var fetched api.FetchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode fetch response: %v", err)
	}
	if fetched.Count != 1 || len(fetched.Articles) != 1 {
		t.Fatalf("unexpected fetch response %+v", fetched)
	}

	body := `{"articleId":"` + fetched.Articles[0].ID + `"}`
	rec = doRequest(t, srv, http.MethodPost, "/api/dispatch", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dispatch returned %d: %s", rec.Code, rec.Body.String())
	}
	var result api.GenerateResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode dispatch response: %v", err)
	}
	if result.Path == "" {
		t.Fatal("expected dispatch path")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/dispatches", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dispatches returned %d", rec.Code)
	}
	var listed api.DispatchListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %+v", listed)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/dispatches/latest", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest returned %d", rec.Code)
	}
	var latest api.DispatchDocumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("decode latest response: %v", err)
	}
	if !strings.Contains(latest.Body, "Fort Frame") {
		t.Fatal("expected fort frame section in latest body")
	}
}

func TestDispatchUnknownArticleReturns400(t *testing.T) {
	srv, _ := newTestServer(t, "", &stubNews{})
	rec := doRequest(t, srv, http.MethodPost, "/api/dispatch", `{"articleId":"deadbeef"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unknown article id") {
		t.Fatalf("unexpected error body %s", rec.Body.String())
	}
}

func TestDispatchBatchGeneratesAllCached(t *testing.T) {
	srv, store := newTestServer(t, "", &stubNews{})
	if _, err := store.PutBatch(context.Background(), []article.Article{
		sampleArticle("https://example.com/one"),
		sampleArticle("https://example.com/two"),
	}); err != nil {
		t.Fatalf("PutBatch returned error: %v", err)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/dispatch", `{}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dispatch returned %d: %s", rec.Code, rec.Body.String())
	}
	var report api.GenerateReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(report.Generated) != 2 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestLatestOnEmptyArchiveReturns404(t *testing.T) {
	srv, _ := newTestServer(t, "", &stubNews{})
	rec := doRequest(t, srv, http.MethodGet, "/api/dispatches/latest", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, "", &stubNews{})
	rec := doRequest(t, srv, http.MethodGet, "/api/fetch", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestLockPreventsSecondInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel.lock")
	lock, err := server.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock returned error: %v", err)
	}
	defer func() { _ = lock.Release() }()

	if _, err := server.AcquireLock(path); err == nil {
		t.Fatal("expected second acquire to fail")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	second, err := server.AcquireLock(path)
	if err != nil {
		t.Fatalf("expected acquire after release, got %v", err)
	}
	_ = second.Release()
}
