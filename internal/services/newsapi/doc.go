// Package newsapi fetches and normalizes articles from the NewsAPI v2 search
// and top-headlines endpoints.
package newsapi
