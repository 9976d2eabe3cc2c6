package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sentinel/internal/article"
)

const (
	defaultBaseURL     = "https://newsapi.org/v2"
	defaultPageSize    = 10
	maxPageSize        = 100
	defaultLanguage    = "en"
	defaultSortBy      = "relevancy"
	defaultCountry     = "us"
	defaultHTTPTimeout = 30 * time.Second
)

// Client fetches articles from the NewsAPI v2 endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	language string
	sortBy   string
	country  string
	pageSize int
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithClock overrides the fetch timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLanguage sets the default search language for requests that leave it
// blank.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language = strings.TrimSpace(language); language != "" {
			c.language = language
		}
	}
}

// WithSortBy sets the default search sort order.
func WithSortBy(sortBy string) Option {
	return func(c *Client) {
		if sortBy = strings.TrimSpace(sortBy); sortBy != "" {
			c.sortBy = sortBy
		}
	}
}

// WithCountry sets the default top-headlines country.
func WithCountry(country string) Option {
	return func(c *Client) {
		if country = strings.TrimSpace(country); country != "" {
			c.country = country
		}
	}
}

// WithPageSize sets the default page size for requests that leave it unset.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// NewClient constructs a NewsAPI client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		now:        time.Now,
		language:   defaultLanguage,
		sortBy:     defaultSortBy,
		country:    defaultCountry,
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// SearchRequest describes a keyword search against the everything endpoint.
type SearchRequest struct {
	Query    string
	Language string
	SortBy   string
	PageSize int
}

// HeadlinesRequest describes a top-headlines fetch.
type HeadlinesRequest struct {
	Country  string
	Category string
	PageSize int
}

type apiResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author"`
	URLToImage  string `json:"urlToImage"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Search fetches articles matching a keyword query.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]article.Article, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New("newsapi search: query required")
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", valueOrDefault(req.Language, c.language))
	params.Set("sortBy", valueOrDefault(req.SortBy, c.sortBy))
	params.Set("pageSize", strconv.Itoa(c.clampPageSize(req.PageSize)))
	return c.fetch(ctx, "/everything", params)
}

// TopHeadlines fetches current top headlines, optionally scoped to a category.
func (c *Client) TopHeadlines(ctx context.Context, req HeadlinesRequest) ([]article.Article, error) {
	params := url.Values{}
	params.Set("country", valueOrDefault(req.Country, c.country))
	params.Set("pageSize", strconv.Itoa(c.clampPageSize(req.PageSize)))
	if category := strings.TrimSpace(req.Category); category != "" {
		params.Set("category", category)
	}
	return c.fetch(ctx, "/top-headlines", params)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]article.Article, error) {
	if c.apiKey == "" {
		return nil, errors.New("newsapi fetch: api key required")
	}
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: read body: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode >= http.StatusMultipleChoices {
			return nil, fmt.Errorf("newsapi fetch: http %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi fetch: decode response: %w", err)
	}
	if decoded.Status != "ok" {
		message := strings.TrimSpace(decoded.Message)
		if message == "" {
			message = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi fetch: api error: %s", message)
	}

	fetchedAt := c.now().UTC()
	articles := make([]article.Article, 0, len(decoded.Articles))
	for _, item := range decoded.Articles {
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.URL) == "" {
			continue
		}
		entry := article.Article{
			Title:       StripHTML(item.Title),
			Description: StripHTML(item.Description),
			URL:         item.URL,
			Content:     StripHTML(item.Content),
			PublishedAt: item.PublishedAt,
			Source:      item.Source.Name,
			Author:      item.Author,
			ImageURL:    item.URLToImage,
		}
		articles = append(articles, entry.Normalize(fetchedAt))
	}
	return articles, nil
}

func valueOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func (c *Client) clampPageSize(size int) int {
	if size <= 0 {
		size = c.pageSize
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
