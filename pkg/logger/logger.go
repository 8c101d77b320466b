package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"JournalClub/internal/domain"
)

// New returns a stdlib-backed logger with component prefix writing to stderr.
func New(component string) *log.Logger {
	return NewTo(os.Stderr, component)
}

// NewTo is New with an explicit destination.
func NewTo(w io.Writer, component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(w, prefix, log.LstdFlags)
}

// Diagnostics prints one human-readable line per dropped curated row and counts them by kind.
type Diagnostics struct {
	out *log.Logger

	mu     sync.Mutex
	counts map[domain.DiagnosticKind]int
}

// NewDiagnostics writes warnings through out; a nil logger uses New("journalclub").
func NewDiagnostics(out *log.Logger) *Diagnostics {
	if out == nil {
		out = New("journalclub")
	}
	return &Diagnostics{out: out, counts: map[domain.DiagnosticKind]int{}}
}

// Report implements ports.Diagnostics.
func (d *Diagnostics) Report(diag domain.Diagnostic) {
	d.mu.Lock()
	d.counts[diag.Kind]++
	d.mu.Unlock()

	switch diag.Kind {
	case domain.DiagnosticEmptyIdentifier:
		d.out.Printf("WARNING: row %d of the curated table has no PMID; skipped", diag.Line)
	case domain.DiagnosticUnmatchedIdentifier:
		d.out.Printf("WARNING: PMID %s (row %d) not found in any records file; skipped", diag.PMID, diag.Line)
	default:
		d.out.Printf("WARNING: %s", diag.Message)
	}
}

// Count returns how many diagnostics of kind were reported.
func (d *Diagnostics) Count(kind domain.DiagnosticKind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[kind]
}
