// Command sentinel is the Fort Sentinel dispatch CLI: it fetches news
// articles, generates annotated dispatch documents, lists the archive, and
// hands dispatches to the narration engine. The serve subcommand exposes the
// same workflows over HTTP.
package main
