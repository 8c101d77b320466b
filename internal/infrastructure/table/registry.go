// Package table reads and rewrites the curated override table.
package table

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when no format is registered for a table's extension.
var ErrUnknownFormat = errors.New("unknown table format")

// Format describes a delimited text dialect.
type Format struct {
	Name      string
	Delimiter rune
}

var (
	CSV = Format{Name: "csv", Delimiter: ','}
	TSV = Format{Name: "tsv", Delimiter: '\t'}
)

// Registry keeps a mapping from file extensions to table formats.
type Registry struct {
	formats map[string]Format
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: map[string]Format{}}
}

// DefaultRegistry knows .csv and .tsv.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".csv", CSV)
	r.Register(".tsv", TSV)
	return r
}

// Register adds or replaces the format for an extension (with or without the leading dot).
func (r *Registry) Register(ext string, format Format) {
	if r.formats == nil {
		r.formats = map[string]Format{}
	}
	r.formats[normalizeExt(ext)] = format
}

// Resolve picks the format from the path's extension.
func (r *Registry) Resolve(path string) (Format, error) {
	ext := normalizeExt(filepath.Ext(path))
	if format, ok := r.formats[ext]; ok {
		return format, nil
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
