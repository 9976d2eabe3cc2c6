package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"sentinel/internal/analyzer"
	"sentinel/internal/article"
	"sentinel/internal/articlestore"
	"sentinel/internal/dispatch"
	"sentinel/internal/logging"
	"sentinel/internal/services"
	"sentinel/internal/services/newsapi"
)

// NewsSource abstracts the upstream news provider.
type NewsSource interface {
	Search(ctx context.Context, req newsapi.SearchRequest) ([]article.Article, error)
	TopHeadlines(ctx context.Context, req newsapi.HeadlinesRequest) ([]article.Article, error)
}

// ArticleStore abstracts article cache persistence.
type ArticleStore interface {
	PutBatch(ctx context.Context, articles []article.Article) (string, error)
	Get(ctx context.Context, id string) (article.Article, error)
	List(ctx context.Context, filter articlestore.Filter) ([]article.Article, error)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// Annotator produces an analysis for an article.
type Annotator interface {
	Analyze(ctx context.Context, a article.Article) analyzer.Analysis
}

// DispatchWriter renders and archives dispatch documents.
type DispatchWriter interface {
	Write(a article.Article, analysis analyzer.Analysis) (string, error)
}

// DispatchIndex reads the dispatch archive.
type DispatchIndex interface {
	List(filter dispatch.Filter) ([]dispatch.Summary, error)
	Latest(filter dispatch.Filter) (dispatch.Summary, error)
	Read(path string) (dispatch.Document, error)
}

// Service wires the fetch, annotate, write, and list workflows for the CLI
// and HTTP server.
type Service struct {
	news      NewsSource
	store     ArticleStore
	annotator Annotator
	writer    DispatchWriter
	index     DispatchIndex
	logger    *slog.Logger
}

// NewService constructs the workflow service.
func NewService(news NewsSource, store ArticleStore, annotator Annotator, writer DispatchWriter, index DispatchIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		news:      news,
		store:     store,
		annotator: annotator,
		writer:    writer,
		index:     index,
		logger:    logger.With(logging.String(logging.FieldComponent, "api")),
	}
}

// FetchRequest describes a news fetch. An empty Topic fetches top headlines.
type FetchRequest struct {
	Topic    string
	Category string
	Country  string
	Limit    int
}

// FetchNews pulls articles from the provider and caches them under a new
// batch ID.
func (s *Service) FetchNews(ctx context.Context, req FetchRequest) (FetchResponse, error) {
	if s.news == nil {
		return FetchResponse{}, errors.New("fetch news: no news source configured")
	}
	var (
		articles []article.Article
		err      error
	)
	topic := strings.TrimSpace(req.Topic)
	if topic != "" {
		articles, err = s.news.Search(ctx, newsapi.SearchRequest{Query: topic, PageSize: req.Limit})
	} else {
		articles, err = s.news.TopHeadlines(ctx, newsapi.HeadlinesRequest{Country: req.Country, Category: req.Category, PageSize: req.Limit})
	}
	if err != nil {
		return FetchResponse{}, fmt.Errorf("fetch news: %w", err)
	}

	batchID := ""
	if s.store != nil && len(articles) > 0 {
		batchID, err = s.store.PutBatch(ctx, articles)
		if err != nil {
			return FetchResponse{}, fmt.Errorf("fetch news: cache articles: %w", err)
		}
	}
	s.logger.Info("fetched articles",
		logging.String("topic", topic),
		logging.Int("count", len(articles)),
		logging.String("batch_id", batchID))
	return FetchResponse{
		BatchID:  batchID,
		Count:    len(articles),
		Articles: FromArticles(articles),
	}, nil
}

// ListArticles returns cached articles, optionally filtered.
func (s *Service) ListArticles(ctx context.Context, filter articlestore.Filter) ([]ArticleView, error) {
	if s.store == nil {
		return nil, nil
	}
	articles, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return FromArticles(articles), nil
}

// GenerateDispatch produces a dispatch document for one cached article.
func (s *Service) GenerateDispatch(ctx context.Context, articleID string) (GenerateResult, error) {
	if s.store == nil {
		return GenerateResult{}, errors.New("generate dispatch: no article store configured")
	}
	entry, err := s.store.Get(ctx, strings.TrimSpace(articleID))
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate dispatch: %w", err)
	}
	return s.dispatchArticle(ctx, entry)
}

// GenerateRequest selects cached articles for batch generation. ArticleIDs
// wins when set; otherwise BatchID scopes the run, and with neither every
// cached article is dispatched.
type GenerateRequest struct {
	ArticleIDs []string
	BatchID    string
	Limit      int
}

// GenerateBatch produces dispatches for a set of cached articles. Individual
// failures are collected in the report instead of aborting the batch; the
// error return is reserved for selection failures.
func (s *Service) GenerateBatch(ctx context.Context, req GenerateRequest) (GenerateReport, error) {
	if s.store == nil {
		return GenerateReport{}, errors.New("generate batch: no article store configured")
	}
	var articles []article.Article
	if len(req.ArticleIDs) > 0 {
		for _, id := range req.ArticleIDs {
			entry, err := s.store.Get(ctx, strings.TrimSpace(id))
			if err != nil {
				return GenerateReport{}, fmt.Errorf("generate batch: %w", err)
			}
			articles = append(articles, entry)
		}
	} else {
		listed, err := s.store.List(ctx, articlestore.Filter{BatchID: req.BatchID, Limit: req.Limit})
		if err != nil {
			return GenerateReport{}, fmt.Errorf("generate batch: %w", err)
		}
		articles = listed
	}

	report := GenerateReport{}
	for _, entry := range articles {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result, err := s.dispatchArticle(ctx, entry)
		if err != nil {
			s.logger.Warn("dispatch generation failed",
				logging.String(logging.FieldArticleID, entry.ID()),
				logging.Error(err))
			report.Failed = append(report.Failed, GenerateFailure{ArticleID: entry.ID(), Error: err.Error()})
			continue
		}
		report.Generated = append(report.Generated, result)
	}
	return report, nil
}

func (s *Service) dispatchArticle(ctx context.Context, entry article.Article) (GenerateResult, error) {
	if s.annotator == nil || s.writer == nil {
		return GenerateResult{}, errors.New("generate dispatch: pipeline not configured")
	}
	analysis := s.annotator.Analyze(ctx, entry)
	path, err := s.writer.Write(entry, analysis)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("generate dispatch: %w", err)
	}
	attrs := []any{
		logging.String(logging.FieldArticleID, entry.ID()),
		logging.String("path", path),
	}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, logging.String(logging.FieldRequestID, requestID))
	}
	s.logger.Info("dispatch generated", attrs...)
	return GenerateResult{ArticleID: entry.ID(), Title: entry.Title, Path: path}, nil
}

// ListDispatches returns archived dispatch summaries matching the filter.
func (s *Service) ListDispatches(filter dispatch.Filter) ([]DispatchView, error) {
	if s.index == nil {
		return nil, nil
	}
	summaries, err := s.index.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list dispatches: %w", err)
	}
	return FromSummaries(summaries), nil
}

// LatestDispatch returns the most recent dispatch matching the filter.
func (s *Service) LatestDispatch(filter dispatch.Filter) (DispatchView, error) {
	if s.index == nil {
		return DispatchView{}, dispatch.ErrNotFound
	}
	summary, err := s.index.Latest(filter)
	if err != nil {
		return DispatchView{}, err
	}
	return FromSummary(summary), nil
}

// ReadDispatch loads a full dispatch document from the archive.
func (s *Service) ReadDispatch(path string) (dispatch.Document, error) {
	if s.index == nil {
		return dispatch.Document{}, dispatch.ErrNotFound
	}
	return s.index.Read(path)
}

// PruneArticles removes cached articles older than the retention window.
func (s *Service) PruneArticles(ctx context.Context, retention time.Duration) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	deleted, err := s.store.Prune(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("prune articles: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("pruned cached articles", logging.Int("count", int(deleted)))
	}
	return deleted, nil
}
