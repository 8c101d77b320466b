package domain

// Image is one illustration attached to a session.
type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// Session is the canonical, reconciled journal club entry.
type Session struct {
	Date      string   `json:"date"`
	Presenter string   `json:"presenter"`
	Title     string   `json:"title"`
	Journal   string   `json:"journal"`
	Authors   string   `json:"authors"`
	Abstract  string   `json:"abstract"`
	DOI       string   `json:"doi"`
	PMID      string   `json:"pmid"`
	PDF       string   `json:"pdf"`
	Notes     string   `json:"notes"`
	Subjects  []string `json:"subjects"`
	Highlight bool     `json:"highlight"`
	Analysis  string   `json:"analysis"`
	Images    []Image  `json:"images"`
}

// MonthlySummary is the editorial bundle attached to a calendar month.
type MonthlySummary struct {
	Month         string   `json:"month"`
	Headline      string   `json:"headline"`
	Paragraph     string   `json:"paragraph"`
	KeyHighlights []string `json:"key_highlights"`
}

// OverrideRecord is one curated row. Every value is the raw cell text; missing cells are "".
type OverrideRecord struct {
	Line              int
	PMID              string
	Date              string
	Presenter         string
	Title             string
	Journal           string
	Authors           string
	Abstract          string
	DOI               string
	PDF               string
	Notes             string
	Subjects          string
	Highlight         string
	Analysis          string
	Images            string
	SummaryMonth      string
	SummaryHeadline   string
	SummaryParagraph  string
	SummaryHighlights string
	// Extra keeps unrecognised columns so a rewritten table does not lose them.
	Extra map[string]string
}

// Artifact is the primary output document.
type Artifact struct {
	Sessions         []Session        `json:"sessions"`
	MonthlySummaries []MonthlySummary `json:"monthly_summaries"`
}

// Normalized returns a copy whose list fields encode as [] rather than null.
func (a Artifact) Normalized() Artifact {
	out := Artifact{
		Sessions:         make([]Session, len(a.Sessions)),
		MonthlySummaries: make([]MonthlySummary, len(a.MonthlySummaries)),
	}
	for i, s := range a.Sessions {
		if s.Subjects == nil {
			s.Subjects = []string{}
		}
		if s.Images == nil {
			s.Images = []Image{}
		}
		out.Sessions[i] = s
	}
	for i, m := range a.MonthlySummaries {
		if m.KeyHighlights == nil {
			m.KeyHighlights = []string{}
		}
		out.MonthlySummaries[i] = m
	}
	return out
}

// DiagnosticKind classifies a skipped curated row.
type DiagnosticKind string

const (
	DiagnosticEmptyIdentifier     DiagnosticKind = "empty_identifier"
	DiagnosticUnmatchedIdentifier DiagnosticKind = "unmatched_identifier"
)

// Diagnostic reports a curated row that was dropped from the output.
type Diagnostic struct {
	Kind    DiagnosticKind
	PMID    string
	Line    int
	Message string
}
