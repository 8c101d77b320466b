package logger

import (
	"bytes"
	"strings"
	"testing"

	"JournalClub/internal/domain"
)

func TestDiagnosticsReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	diags := NewDiagnostics(NewTo(&buf, "build"))

	diags.Report(domain.Diagnostic{Kind: domain.DiagnosticUnmatchedIdentifier, PMID: "999", Line: 7})
	diags.Report(domain.Diagnostic{Kind: domain.DiagnosticEmptyIdentifier, Line: 3})
	diags.Report(domain.Diagnostic{Kind: domain.DiagnosticUnmatchedIdentifier, PMID: "1000", Line: 8})

	out := buf.String()
	if !strings.Contains(out, "[build] ") {
		t.Fatalf("missing prefix: %q", out)
	}
	if !strings.Contains(out, "PMID 999 (row 7) not found") {
		t.Fatalf("missing unmatched line: %q", out)
	}
	if !strings.Contains(out, "row 3 of the curated table has no PMID") {
		t.Fatalf("missing empty line: %q", out)
	}
	if got := diags.Count(domain.DiagnosticUnmatchedIdentifier); got != 2 {
		t.Fatalf("unexpected unmatched count %d", got)
	}
	if got := diags.Count(domain.DiagnosticEmptyIdentifier); got != 1 {
		t.Fatalf("unexpected empty count %d", got)
	}
}
