package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"JournalClub/internal/domain"
	"JournalClub/internal/normalize"
	"JournalClub/internal/ports"
)

// Populator regenerates the curated table so that it lists every indexed article.
type Populator struct {
	source    ports.ArticleSource
	overrides ports.OverrideSource
	sink      ports.OverrideSink
	linker    *Reconciler
	logger    *slog.Logger
}

// NewPopulator wires the index, the current table and the destination table.
func NewPopulator(source ports.ArticleSource, overrides ports.OverrideSource, sink ports.OverrideSink, linkTemplate string, logger *slog.Logger) *Populator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Populator{
		source:    source,
		overrides: overrides,
		sink:      sink,
		linker:    NewReconciler(linkTemplate, nil, nil),
		logger:    logger,
	}
}

// Populate writes one row per identifier found in the index or the current table.
// Curated values win over extracted ones; curated-only columns are preserved. A PMID listed
// twice takes its later row, and a missing table counts as empty.
// Rows are ordered by date, newest first, then by PMID.
func (p *Populator) Populate(ctx context.Context) (int, error) {
	if p.source == nil || p.overrides == nil || p.sink == nil {
		return 0, ErrMissingDependency
	}

	index, err := p.source.LoadIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("build index: %w", err)
	}

	existing, err := p.overrides.LoadOverrides(ctx)
	switch {
	case errors.Is(err, ports.ErrOverridesNotFound):
		p.logger.Info("no curated table yet, starting from the index")
		existing = nil
	case err != nil:
		return 0, fmt.Errorf("load curated table: %w", err)
	}

	curated := make(map[string]domain.OverrideRecord, len(existing))
	for _, row := range existing {
		pmid := strings.TrimSpace(row.PMID)
		if pmid == "" {
			continue
		}
		curated[pmid] = row
	}

	ids := make(map[string]struct{}, len(index)+len(curated))
	for id := range index {
		ids[id] = struct{}{}
	}
	for id := range curated {
		ids[id] = struct{}{}
	}

	rows := make([]domain.OverrideRecord, 0, len(ids))
	for id := range ids {
		article := index[id]
		rows = append(rows, p.buildRow(id, article, curated[id]))
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].PMID < rows[j].PMID
	})
	for i := range rows {
		rows[i].Line = i + 2
	}

	if err := p.sink.WriteOverrides(ctx, rows); err != nil {
		return 0, fmt.Errorf("write curated table: %w", err)
	}

	p.logger.Info("curated table populated",
		"rows", len(rows),
		"indexed", len(index),
		"curated", len(curated))
	return len(rows), nil
}

func (p *Populator) buildRow(pmid string, article domain.ArticleRecord, row domain.OverrideRecord) domain.OverrideRecord {
	out := row
	out.PMID = pmid
	out.Date = normalize.Date(row.Date, article.PublicationDate)
	out.Title = prefer(row.Title, article.Title)
	out.Journal = prefer(row.Journal, article.Journal)
	out.Authors = prefer(row.Authors, article.Authors)
	out.Abstract = prefer(row.Abstract, article.Abstract)
	out.DOI = prefer(row.DOI, article.DOI)
	out.PDF = p.linker.Link(pmid, row.PDF)
	return out
}
