// Package normalize converts raw curated and extracted cell values into canonical forms.
//
// Every function here is total: malformed input degrades to a best-effort value (the raw
// string, an empty list, false) instead of returning an error.
package normalize
