// Package api exposes the fetch, generate, and list workflows behind
// transport-friendly DTOs. The CLI and the HTTP server both drive the
// pipeline exclusively through this package so behavior stays identical
// across surfaces.
package api
