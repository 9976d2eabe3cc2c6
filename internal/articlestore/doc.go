// Package articlestore persists fetched articles in SQLite. IDs are content
// derived, so repeated fetches of the same story collapse to one row and
// dispatch generation can reference an article long after the fetch.
package articlestore
