// Package anthropic provides a client for the Anthropic Messages API. It
// implements the same completion surface as the llm package so either provider
// can back article analysis.
package anthropic
