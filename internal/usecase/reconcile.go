package usecase

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"JournalClub/internal/domain"
	"JournalClub/internal/normalize"
	"JournalClub/internal/ports"
)

// DefaultLinkTemplate builds the display link when the curated row has none.
const DefaultLinkTemplate = "https://pubmed.ncbi.nlm.nih.gov/%s/"

// Reconciler merges curated rows with extracted records into canonical sessions.
type Reconciler struct {
	linkTemplate string
	diagnostics  ports.Diagnostics
	logger       *slog.Logger
}

// NewReconciler wires the link template and diagnostic sinks; both sinks may be nil.
func NewReconciler(linkTemplate string, diagnostics ports.Diagnostics, logger *slog.Logger) *Reconciler {
	if linkTemplate == "" {
		linkTemplate = DefaultLinkTemplate
	}
	return &Reconciler{linkTemplate: linkTemplate, diagnostics: diagnostics, logger: logger}
}

// ReconcileResult carries the sorted sessions, the collected summaries and skip counts.
type ReconcileResult struct {
	Sessions  []domain.Session
	Summaries *SummaryBook
	Skipped   map[domain.DiagnosticKind]int
}

// Reconcile processes rows in table order and returns sessions sorted by date, newest first.
func (r *Reconciler) Reconcile(index domain.ArticleIndex, rows []domain.OverrideRecord) ReconcileResult {
	result := ReconcileResult{
		Sessions:  make([]domain.Session, 0, len(rows)),
		Summaries: NewSummaryBook(),
		Skipped:   map[domain.DiagnosticKind]int{},
	}

	for _, row := range rows {
		pmid := strings.TrimSpace(row.PMID)
		if pmid == "" {
			r.skip(result.Skipped, domain.Diagnostic{
				Kind:    domain.DiagnosticEmptyIdentifier,
				Line:    row.Line,
				Message: fmt.Sprintf("line %d: curated row has no PMID", row.Line),
			})
			continue
		}

		article, ok := index.Lookup(pmid)
		if !ok {
			r.skip(result.Skipped, domain.Diagnostic{
				Kind:    domain.DiagnosticUnmatchedIdentifier,
				PMID:    pmid,
				Line:    row.Line,
				Message: fmt.Sprintf("PMID %s from the curated table not found in any extracted results file", pmid),
			})
			continue
		}

		session := r.merge(pmid, row, article)
		result.Sessions = append(result.Sessions, session)

		result.Summaries.Offer(domain.MonthlySummary{
			Month:         normalize.Month(row.SummaryMonth, session.Date),
			Headline:      strings.TrimSpace(row.SummaryHeadline),
			Paragraph:     strings.TrimSpace(row.SummaryParagraph),
			KeyHighlights: normalize.Highlights(row.SummaryHighlights),
		})
	}

	SortSessions(result.Sessions)
	return result
}

func (r *Reconciler) merge(pmid string, row domain.OverrideRecord, article domain.ArticleRecord) domain.Session {
	return domain.Session{
		Date:      normalize.Date(row.Date, article.PublicationDate),
		Presenter: strings.TrimSpace(row.Presenter),
		Title:     prefer(row.Title, article.Title),
		Journal:   prefer(row.Journal, article.Journal),
		Authors:   prefer(row.Authors, article.Authors),
		Abstract:  prefer(row.Abstract, article.Abstract),
		DOI:       prefer(row.DOI, article.DOI),
		PMID:      pmid,
		PDF:       r.Link(pmid, row.PDF),
		Notes:     strings.TrimSpace(row.Notes),
		Subjects:  normalize.Subjects(row.Subjects),
		Highlight: normalize.ParseBool(row.Highlight),
		Analysis:  strings.TrimSpace(row.Analysis),
		Images:    normalize.Images(row.Images),
	}
}

// Link returns the curated display link or the identifier-based default.
func (r *Reconciler) Link(pmid, curated string) string {
	if link := strings.TrimSpace(curated); link != "" {
		return link
	}
	return fmt.Sprintf(r.linkTemplate, pmid)
}

func (r *Reconciler) skip(counts map[domain.DiagnosticKind]int, d domain.Diagnostic) {
	counts[d.Kind]++
	if r.diagnostics != nil {
		r.diagnostics.Report(d)
	}
	if r.logger != nil {
		r.logger.Warn("curated row skipped", "kind", d.Kind, "pmid", d.PMID, "line", d.Line)
	}
}

// prefer returns the trimmed curated value when set, else the trimmed extracted value.
func prefer(curated, extracted string) string {
	if v := strings.TrimSpace(curated); v != "" {
		return v
	}
	return strings.TrimSpace(extracted)
}

// SortSessions orders sessions by date string, newest first. Equal dates keep their order.
func SortSessions(sessions []domain.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})
}
