// Package services holds shared plumbing for the external service clients in
// its subpackages, currently the request correlation helpers used to tie HTTP
// requests to downstream log lines.
package services
