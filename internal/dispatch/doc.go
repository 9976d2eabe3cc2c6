// Package dispatch owns the durable document contract of the pipeline: it
// serializes an article and its analysis into a markdown dispatch with a
// structured header block, and rediscovers those documents later for listing
// and narration.
//
// Documents live at <root>/<YYYY-MM-DD>/dispatch_<slug>.md, one file per
// dispatch. The header block is a line-oriented key: value preamble delimited
// by "---" lines; tags and impact_zones values are JSON array literals.
// Documents are write-once: there is no update or delete operation.
package dispatch
