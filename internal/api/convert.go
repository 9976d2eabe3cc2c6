package api

import (
	"sentinel/internal/article"
	"sentinel/internal/dispatch"
)

// FromArticle converts a cached article into its API representation.
func FromArticle(a article.Article) ArticleView {
	return ArticleView{
		ID:          a.ID(),
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		Source:      a.Source,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		FetchedAt:   a.FetchedAt,
	}
}

// FromArticles converts a slice of articles.
func FromArticles(articles []article.Article) []ArticleView {
	if len(articles) == 0 {
		return nil
	}
	out := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		out = append(out, FromArticle(a))
	}
	return out
}

// FromSummary converts a dispatch summary into its API representation.
func FromSummary(summary dispatch.Summary) DispatchView {
	tags := summary.Header.Tags
	if tags == nil {
		tags = []string{}
	}
	return DispatchView{
		Path:    summary.Path,
		Title:   summary.Header.Title,
		Date:    summary.Header.Date,
		Time:    summary.Header.Time,
		Source:  summary.Header.Source,
		Tags:    tags,
		Voice:   summary.Header.Voice,
		Summary: summary.Header.Summary,
	}
}

// FromSummaries converts a slice of dispatch summaries.
func FromSummaries(summaries []dispatch.Summary) []DispatchView {
	if len(summaries) == 0 {
		return nil
	}
	out := make([]DispatchView, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, FromSummary(summary))
	}
	return out
}
