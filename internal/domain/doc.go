// Package domain holds the value objects shared by every stage of the journal club pipeline:
// extracted article records, curated override rows, canonical sessions and their aggregates.
package domain
