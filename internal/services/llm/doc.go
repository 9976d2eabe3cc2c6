// Package llm wraps an OpenAI-compatible chat completion API (OpenRouter by
// default) for article analysis. The client forces JSON-object responses,
// retries transient failures with capped exponential backoff, and returns the
// raw payload; interpretation belongs to the analyzer.
package llm
