package table

import "JournalClub/internal/domain"

// column binds a header name to its OverrideRecord field.
type column struct {
	name string
	ref  func(r *domain.OverrideRecord) *string
}

// columns lists the recognised headers in the order a rewritten table uses.
var columns = []column{
	{"pmid", func(r *domain.OverrideRecord) *string { return &r.PMID }},
	{"date", func(r *domain.OverrideRecord) *string { return &r.Date }},
	{"presenter", func(r *domain.OverrideRecord) *string { return &r.Presenter }},
	{"title", func(r *domain.OverrideRecord) *string { return &r.Title }},
	{"journal", func(r *domain.OverrideRecord) *string { return &r.Journal }},
	{"authors", func(r *domain.OverrideRecord) *string { return &r.Authors }},
	{"abstract", func(r *domain.OverrideRecord) *string { return &r.Abstract }},
	{"doi", func(r *domain.OverrideRecord) *string { return &r.DOI }},
	{"pdf", func(r *domain.OverrideRecord) *string { return &r.PDF }},
	{"notes", func(r *domain.OverrideRecord) *string { return &r.Notes }},
	{"subjects", func(r *domain.OverrideRecord) *string { return &r.Subjects }},
	{"highlight", func(r *domain.OverrideRecord) *string { return &r.Highlight }},
	{"analysis", func(r *domain.OverrideRecord) *string { return &r.Analysis }},
	{"images", func(r *domain.OverrideRecord) *string { return &r.Images }},
	{"summary_month", func(r *domain.OverrideRecord) *string { return &r.SummaryMonth }},
	{"summary_headline", func(r *domain.OverrideRecord) *string { return &r.SummaryHeadline }},
	{"summary_paragraph", func(r *domain.OverrideRecord) *string { return &r.SummaryParagraph }},
	{"summary_highlights", func(r *domain.OverrideRecord) *string { return &r.SummaryHighlights }},
}

func lookupColumn(name string) (column, bool) {
	for _, c := range columns {
		if c.name == name {
			return c, true
		}
	}
	return column{}, false
}
