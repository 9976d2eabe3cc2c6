// Package server exposes the dispatch workflows over a local HTTP API and
// holds the single-instance lock for the data directory.
package server
