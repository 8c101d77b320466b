package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JournalClub/internal/domain"
)

func testIndex() domain.ArticleIndex {
	return domain.ArticleIndex{
		"100": {
			PMID:            "100",
			Title:           "Extracted Title",
			Journal:         "Laryngoscope",
			Authors:         "Doe J",
			Abstract:        "Extracted abstract",
			DOI:             "10.1/abc",
			PublicationDate: "2025-Oct-31",
		},
		"200": {PMID: "200", Title: "Second", PublicationDate: "2024-Jan-05"},
		"300": {PMID: "300", Title: "Third", PublicationDate: "2023-Dec-01"},
	}
}

func TestReconcileMergePrecedence(t *testing.T) {
	t.Parallel()

	r := NewReconciler("", nil, nil)

	result := r.Reconcile(testIndex(), []domain.OverrideRecord{
		{PMID: "100", Title: "Custom Title", DOI: "  ", Presenter: " Dr. A ", Highlight: "yes"},
	})
	require.Len(t, result.Sessions, 1)
	s := result.Sessions[0]
	assert.Equal(t, "Custom Title", s.Title)
	assert.Equal(t, "Laryngoscope", s.Journal)
	assert.Equal(t, "10.1/abc", s.DOI, "blank curated value falls back to extracted")
	assert.Equal(t, "Dr. A", s.Presenter)
	assert.Equal(t, "2025-10-31", s.Date)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/100/", s.PDF)
	assert.True(t, s.Highlight)

	result = r.Reconcile(testIndex(), []domain.OverrideRecord{{PMID: "100", Title: ""}})
	assert.Equal(t, "Extracted Title", result.Sessions[0].Title)
}

func TestReconcileFieldsFromCuratedRow(t *testing.T) {
	t.Parallel()

	r := NewReconciler("https://example.org/a/%s", nil, nil)
	result := r.Reconcile(testIndex(), []domain.OverrideRecord{{
		PMID:     " 200 ",
		Date:     "2024-Feb",
		PDF:      " https://x/paper.pdf ",
		Notes:    " note ",
		Analysis: " deep ",
		Subjects: "Airway; Sleep, Airway",
		Images:   "https://x/a.png|caption A;https://x/b.png",
	}, {
		PMID: "300",
	}})

	require.Len(t, result.Sessions, 2)
	s := result.Sessions[0]
	assert.Equal(t, "200", s.PMID)
	assert.Equal(t, "2024-02-01", s.Date)
	assert.Equal(t, "https://x/paper.pdf", s.PDF)
	assert.Equal(t, "note", s.Notes)
	assert.Equal(t, "deep", s.Analysis)
	assert.Equal(t, []string{"Airway", "Sleep", "Airway"}, s.Subjects)
	assert.Equal(t, []domain.Image{
		{URL: "https://x/a.png", Caption: "caption A"},
		{URL: "https://x/b.png", Caption: ""},
	}, s.Images)
	assert.False(t, s.Highlight)

	assert.Equal(t, "https://example.org/a/300", result.Sessions[1].PDF)
}

func TestReconcileSkipsUnmatchedAndEmpty(t *testing.T) {
	t.Parallel()

	diag := &recordingDiagnostics{}
	r := NewReconciler("", diag, nil)

	result := r.Reconcile(testIndex(), []domain.OverrideRecord{
		{Line: 2, PMID: "999"},
		{Line: 3, PMID: "   "},
		{Line: 4, PMID: "100"},
	})

	require.Len(t, result.Sessions, 1)
	assert.Equal(t, "100", result.Sessions[0].PMID)
	assert.Equal(t, 1, result.Skipped[domain.DiagnosticUnmatchedIdentifier])
	assert.Equal(t, 1, result.Skipped[domain.DiagnosticEmptyIdentifier])

	require.Len(t, diag.items, 2)
	assert.Equal(t, domain.DiagnosticUnmatchedIdentifier, diag.items[0].Kind)
	assert.Equal(t, "999", diag.items[0].PMID)
	assert.Contains(t, diag.items[0].Message, "999")
	assert.Equal(t, 3, diag.items[1].Line)
}

func TestReconcileSortsByDateString(t *testing.T) {
	t.Parallel()

	index := domain.ArticleIndex{
		"a": {PMID: "a"},
		"b": {PMID: "b"},
		"c": {PMID: "c"},
		"d": {PMID: "d"},
		"e": {PMID: "e"},
	}
	rows := []domain.OverrideRecord{
		{PMID: "a", Date: "2023-12-01"},
		{PMID: "b", Date: "2024-01-01"},
		{PMID: "c", Date: "Spring 2024"},
		{PMID: "d", Date: ""},
		{PMID: "e", Date: "2024-01-01"},
	}

	result := NewReconciler("", nil, nil).Reconcile(index, rows)

	var order []string
	for _, s := range result.Sessions {
		order = append(order, s.PMID)
	}
	// Plain string order: "Spring 2024" sorts above every ISO date, "" sorts last, ties keep table order.
	assert.Equal(t, []string{"c", "b", "e", "a", "d"}, order)
	assert.Equal(t, "Spring 2024", result.Sessions[0].Date)
}

func TestReconcileMonthlySummaryFirstWins(t *testing.T) {
	t.Parallel()

	rows := []domain.OverrideRecord{
		{PMID: "100", SummaryMonth: "2025-Mar", SummaryHeadline: "First headline"},
		{PMID: "200", SummaryMonth: "2025-03", SummaryHeadline: "Second headline", SummaryParagraph: "ignored"},
		{PMID: "300", Date: "2024-11-20", SummaryHighlights: "one; two"},
		{PMID: "300", Date: "2024-12-02"},
	}

	result := NewReconciler("", nil, nil).Reconcile(testIndex(), rows)
	summaries := result.Summaries.Summaries()

	require.Len(t, summaries, 2)
	assert.Equal(t, domain.MonthlySummary{
		Month:         "2025-03",
		Headline:      "First headline",
		KeyHighlights: []string{},
	}, summaries[0])
	assert.Equal(t, "2024-11", summaries[1].Month, "month falls back to the session date")
	assert.Equal(t, []string{"one", "two"}, summaries[1].KeyHighlights)
}
