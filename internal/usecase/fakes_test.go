package usecase

import (
	"context"
	"sync"
	"time"

	"JournalClub/internal/domain"
)

type fakeSource struct {
	index domain.ArticleIndex
	err   error
}

func (f *fakeSource) LoadIndex(context.Context) (domain.ArticleIndex, error) {
	return f.index, f.err
}

type fakeOverrides struct {
	rows []domain.OverrideRecord
	err  error
}

func (f *fakeOverrides) LoadOverrides(context.Context) ([]domain.OverrideRecord, error) {
	return f.rows, f.err
}

type fakeSink struct {
	rows []domain.OverrideRecord
}

func (f *fakeSink) WriteOverrides(_ context.Context, rows []domain.OverrideRecord) error {
	f.rows = rows
	return nil
}

type fakeStore struct {
	artifact domain.Artifact
	subjects domain.SubjectFrequency
	writes   int
	writeErr error
	readErr  error
}

func (f *fakeStore) WriteArtifact(_ context.Context, a domain.Artifact) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.artifact = a
	f.writes++
	return nil
}

func (f *fakeStore) WriteSubjects(_ context.Context, freq domain.SubjectFrequency) error {
	f.subjects = freq
	return nil
}

func (f *fakeStore) ReadArtifact(context.Context) (domain.Artifact, error) {
	return f.artifact, f.readErr
}

type fakeExporter struct {
	calls int
}

func (f *fakeExporter) Export(context.Context, domain.Artifact, domain.SubjectFrequency) error {
	f.calls++
	return nil
}

// titleTagger tags every session with its title so tests can follow the data.
type titleTagger struct{}

func (titleTagger) Tag(s domain.Session, keepCurated bool) []string {
	tags := []string{s.Title}
	if keepCurated {
		tags = append(tags, s.Subjects...)
	}
	return tags
}

type recordingDiagnostics struct {
	mu    sync.Mutex
	items []domain.Diagnostic
}

func (r *recordingDiagnostics) Report(d domain.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, d)
}

// manualTrigger fires the registered job when Fire is called.
type manualTrigger struct {
	job     func(time.Time)
	stopped bool
}

func (m *manualTrigger) Start(_ context.Context, job func(time.Time)) error {
	m.job = job
	return nil
}

func (m *manualTrigger) Stop(context.Context) error {
	m.stopped = true
	return nil
}

func (m *manualTrigger) Fire() {
	m.job(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
}
