package api_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentinel/internal/analyzer"
	"sentinel/internal/api"
	"sentinel/internal/article"
	"sentinel/internal/articlestore"
	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
	"sentinel/internal/services/newsapi"
)

type stubNews struct {
	searchResult    []article.Article
	headlinesResult []article.Article
	searchErr       error
	lastSearch      newsapi.SearchRequest
	lastHeadlines   newsapi.HeadlinesRequest
}

func (s *stubNews) Search(_ context.Context, req newsapi.SearchRequest) ([]article.Article, error) {
	s.lastSearch = req
	return s.searchResult, s.searchErr
}

func (s *stubNews) TopHeadlines(_ context.Context, req newsapi.HeadlinesRequest) ([]article.Article, error) {
	s.lastHeadlines = req
	return s.headlinesResult, nil
}

func sampleArticle(url, title string) article.Article {
	return article.Article{
		Title:       title,
		Description: "A major ruling landed today.",
		URL:         url,
		Content:     "The court ruled against the agency.",
		PublishedAt: "2024-05-01T10:00:00Z",
		Source:      "Daily Ledger",
		Author:      "R. Calder",
		FetchedAt:   "2024-05-01T12:00:00Z",
	}
}

func newTestService(t *testing.T, news api.NewsSource) (*api.Service, *articlestore.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := articlestore.Open(filepath.Join(root, "articles.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := logging.NewNop()
	dispatchRoot := filepath.Join(root, "dispatches")
	writer := dispatch.NewWriter(dispatchRoot, logger)
	index := dispatch.NewIndex(dispatchRoot, logger)
	annotator := analyzer.New(nil, logger)
	return api.NewService(news, store, annotator, writer, index, logger), store, dispatchRoot
}

func TestFetchNewsSearchesTopicAndCachesBatch(t *testing.T) {
	news := &stubNews{searchResult: []article.Article{
		sampleArticle("https://example.com/one", "Court Ruling Shakes Agency"),
		sampleArticle("https://example.com/two", "Second Story"),
	}}
	svc, store, _ := newTestService(t, news)

	resp, err := svc.FetchNews(context.Background(), api.FetchRequest{Topic: "court ruling", Limit: 5})
	if err != nil {
		t.Fatalf("FetchNews returned error: %v", err)
	}
	if news.lastSearch.Query != "court ruling" || news.lastSearch.PageSize != 5 {
		t.Fatalf("unexpected search request %+v", news.lastSearch)
	}
	if resp.Count != 2 || len(resp.Articles) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.BatchID == "" {
		t.Fatal("expected batch id")
	}

	cached, err := store.List(context.Background(), articlestore.Filter{BatchID: resp.BatchID})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("expected 2 cached articles, got %d", len(cached))
	}
}

func TestFetchNewsWithoutTopicUsesHeadlines(t *testing.T) {
	news := &stubNews{headlinesResult: []article.Article{sampleArticle("https://example.com/head", "Headline")}}
	svc, _, _ := newTestService(t, news)

	resp, err := svc.FetchNews(context.Background(), api.FetchRequest{Category: "technology", Limit: 3})
	if err != nil {
		t.Fatalf("FetchNews returned error: %v", err)
	}
	if news.lastHeadlines.Category != "technology" || news.lastHeadlines.PageSize != 3 {
		t.Fatalf("unexpected headlines request %+v", news.lastHeadlines)
	}
	if resp.Count != 1 {
		t.Fatalf("unexpected count %d", resp.Count)
	}
}

func TestFetchNewsPropagatesProviderError(t *testing.T) {
	news := &stubNews{searchErr: errors.New("boom")}
	svc, _, _ := newTestService(t, news)
	if _, err := svc.FetchNews(context.Background(), api.FetchRequest{Topic: "x"}); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestGenerateDispatchWritesDocument(t *testing.T) {
	svc, store, dispatchRoot := newTestService(t, &stubNews{})
	ctx := context.Background()

	a := sampleArticle("https://example.com/ruling", "Court Ruling Shakes Agency")
	if _, err := store.PutBatch(ctx, []article.Article{a}); err != nil {
		t.Fatalf("PutBatch returned error: %v", err)
	}

	result, err := svc.GenerateDispatch(ctx, a.ID())
	if err != nil {
		t.Fatalf("GenerateDispatch returned error: %v", err)
	}
	if result.ArticleID != a.ID() {
		t.Fatalf("unexpected article id %q", result.ArticleID)
	}
	if !strings.HasPrefix(result.Path, dispatchRoot) {
		t.Fatalf("expected path under dispatch root, got %q", result.Path)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read dispatch: %v", err)
	}
	if !strings.Contains(string(data), "Court Ruling Shakes Agency") {
		t.Fatalf("dispatch missing title: %s", data)
	}
}

func TestGenerateDispatchUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &stubNews{})
	_, err := svc.GenerateDispatch(context.Background(), "deadbeef")
	if !errors.Is(err, articlestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateBatchDispatchesAllCachedArticles(t *testing.T) {
	svc, store, _ := newTestService(t, &stubNews{})
	ctx := context.Background()

	batchID, err := store.PutBatch(ctx, []article.Article{
		sampleArticle("https://example.com/one", "Court Ruling Shakes Agency"),
		sampleArticle("https://example.com/two", "Second Story"),
	})
	if err != nil {
		t.Fatalf("PutBatch returned error: %v", err)
	}

	report, err := svc.GenerateBatch(ctx, api.GenerateRequest{BatchID: batchID})
	if err != nil {
		t.Fatalf("GenerateBatch returned error: %v", err)
	}
	if len(report.Generated) != 2 {
		t.Fatalf("expected 2 generated, got %+v", report)
	}
	if len(report.Failed) != 0 {
		t.Fatalf("expected no failures, got %+v", report.Failed)
	}
}

func TestGenerateBatchUnknownIDFailsSelection(t *testing.T) {
	svc, _, _ := newTestService(t, &stubNews{})
	_, err := svc.GenerateBatch(context.Background(), api.GenerateRequest{ArticleIDs: []string{"missing"}})
	if !errors.Is(err, articlestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListDispatchesReflectsGeneratedDocuments(t *testing.T) {
	svc, store, _ := newTestService(t, &stubNews{})
	ctx := context.Background()

	a := sampleArticle("https://example.com/ruling", "Court Ruling Shakes Agency")
	if _, err := store.PutBatch(ctx, []article.Article{a}); err != nil {
		t.Fatalf("PutBatch returned error: %v", err)
	}
	if _, err := svc.GenerateDispatch(ctx, a.ID()); err != nil {
		t.Fatalf("GenerateDispatch returned error: %v", err)
	}

	dispatches, err := svc.ListDispatches(dispatch.Filter{})
	if err != nil {
		t.Fatalf("ListDispatches returned error: %v", err)
	}
	if len(dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(dispatches))
	}
	if dispatches[0].Title != a.Title {
		t.Fatalf("unexpected title %q", dispatches[0].Title)
	}
	if dispatches[0].Voice == "" || len(dispatches[0].Tags) == 0 {
		t.Fatalf("expected populated header, got %+v", dispatches[0])
	}

	latest, err := svc.LatestDispatch(dispatch.Filter{})
	if err != nil {
		t.Fatalf("LatestDispatch returned error: %v", err)
	}
	if latest.Path != dispatches[0].Path {
		t.Fatalf("unexpected latest %+v", latest)
	}

	doc, err := svc.ReadDispatch(latest.Path)
	if err != nil {
		t.Fatalf("ReadDispatch returned error: %v", err)
	}
	if !strings.Contains(doc.Body, dispatch.FortFrameHeader) {
		t.Fatal("expected fort frame section in body")
	}
}

func TestLatestDispatchEmptyArchiveReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &stubNews{})
	if _, err := svc.LatestDispatch(dispatch.Filter{}); !errors.Is(err, dispatch.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
