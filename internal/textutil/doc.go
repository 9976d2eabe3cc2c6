// Package textutil provides text normalization helpers shared across the
// dispatch pipeline: title slugging for dispatch filenames and display-width
// aware truncation for CLI table cells.
package textutil
