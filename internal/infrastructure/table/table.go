package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"JournalClub/internal/domain"
	"JournalClub/internal/infrastructure/fsutil"
	"JournalClub/internal/ports"
)

// ErrTableNotFound is returned when the curated table does not exist.
var ErrTableNotFound = ports.ErrOverridesNotFound

const byteOrderMark = "\ufeff"

// Table is the curated override table on disk.
type Table struct {
	path   string
	format Format
	logger *slog.Logger
}

var (
	_ ports.OverrideSource = (*Table)(nil)
	_ ports.OverrideSink   = (*Table)(nil)
)

// Open resolves the table format from the path. The file itself is read lazily.
func Open(path string, registry *Registry, logger *slog.Logger) (*Table, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}
	format, err := registry.Resolve(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Table{path: path, format: format, logger: logger}, nil
}

// Path returns the table location.
func (t *Table) Path() string { return t.path }

// Format returns the resolved dialect.
func (t *Table) Format() Format { return t.format }

// LoadOverrides reads every data row in file order.
func (t *Table) LoadOverrides(ctx context.Context) ([]domain.OverrideRecord, error) {
	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, t.path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	rows, err := t.decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.path, err)
	}
	t.logger.Debug("curated table read", "path", t.path, "format", t.format.Name, "rows", len(rows))
	return rows, nil
}

func (t *Table) decode(ctx context.Context, r io.Reader) ([]domain.OverrideRecord, error) {
	reader := t.newReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := headerNames(header)

	var rows []domain.OverrideRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, toRecord(names, record, line))
	}
	return rows, nil
}

func (t *Table) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = t.format.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func headerNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, byteOrderMark)
		}
		names[i] = strings.TrimSpace(h)
	}
	return names
}

func toRecord(names, cells []string, line int) domain.OverrideRecord {
	rec := domain.OverrideRecord{Line: line}
	seen := make(map[string]bool, len(names))

	for i, name := range names {
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		value := ""
		if i < len(cells) {
			value = cells[i]
		}

		if col, ok := lookupColumn(key); ok {
			*col.ref(&rec) = value
			continue
		}
		if rec.Extra == nil {
			rec.Extra = map[string]string{}
		}
		rec.Extra[name] = value
	}
	return rec
}

// WriteOverrides replaces the table with rows. The header lists the recognised columns followed
// by every extra column found on any row, sorted by name.
func (t *Table) WriteOverrides(ctx context.Context, rows []domain.OverrideRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := t.encode(rows)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t.path, err)
	}
	if err := fsutil.ReplaceLocked(t.path, data); err != nil {
		return fmt.Errorf("replace %s: %w", t.path, err)
	}

	t.logger.Debug("curated table written", "path", t.path, "rows", len(rows))
	return nil
}

func (t *Table) encode(rows []domain.OverrideRecord) ([]byte, error) {
	extras := extraColumns(rows)

	header := make([]string, 0, len(columns)+len(extras))
	for _, c := range columns {
		header = append(header, c.name)
	}
	header = append(header, extras...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = t.format.Delimiter

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range rows {
		record := make([]string, 0, len(header))
		for _, c := range columns {
			record = append(record, *c.ref(&rows[i]))
		}
		for _, name := range extras {
			record = append(record, rows[i].Extra[name])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func extraColumns(rows []domain.OverrideRecord) []string {
	set := map[string]struct{}{}
	for _, row := range rows {
		for name := range row.Extra {
			if _, ok := lookupColumn(strings.ToLower(name)); ok {
				continue
			}
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
