package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"JournalClub/internal/domain"
	"JournalClub/internal/ports"
)

// ErrMissingDependency is returned when a required adapter was not wired.
var ErrMissingDependency = errors.New("pipeline dependency is not configured")

// PipelineDeps wires all driven adapters into the build pipeline.
type PipelineDeps struct {
	Source      ports.ArticleSource
	Overrides   ports.OverrideSource
	Store       ports.ArtifactStore
	Exporter    ports.Exporter
	Tagger      ports.Tagger
	Diagnostics ports.Diagnostics
	Logger      *slog.Logger

	LinkTemplate string
	KeepCurated  bool
}

// Pipeline implements the full index, reconcile, classify, aggregate and write workflow.
type Pipeline struct {
	source      ports.ArticleSource
	overrides   ports.OverrideSource
	store       ports.ArtifactStore
	exporter    ports.Exporter
	tagger      ports.Tagger
	reconciler  *Reconciler
	logger      *slog.Logger
	keepCurated bool
}

// Report summarises one pipeline run.
type Report struct {
	Indexed   int
	Rows      int
	Sessions  int
	Summaries int
	Months    int
	Skipped   map[domain.DiagnosticKind]int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		source:      deps.Source,
		overrides:   deps.Overrides,
		store:       deps.Store,
		exporter:    deps.Exporter,
		tagger:      deps.Tagger,
		reconciler:  NewReconciler(deps.LinkTemplate, deps.Diagnostics, logger.With("stage", "reconcile")),
		logger:      logger,
		keepCurated: deps.KeepCurated,
	}
}

// Run rebuilds both artifacts from the current inputs.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	if p.source == nil || p.overrides == nil || p.store == nil {
		return Report{}, ErrMissingDependency
	}

	index, err := p.source.LoadIndex(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("build index: %w", err)
	}
	p.logger.Debug("index built", "records", len(index))

	rows, err := p.overrides.LoadOverrides(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load curated table: %w", err)
	}
	p.logger.Debug("curated table loaded", "rows", len(rows))

	result := p.reconciler.Reconcile(index, rows)
	p.annotate(result.Sessions)

	artifact := domain.Artifact{
		Sessions:         result.Sessions,
		MonthlySummaries: result.Summaries.Summaries(),
	}
	freq := SubjectFrequencies(artifact.Sessions)

	if err := p.write(ctx, artifact, freq); err != nil {
		return Report{}, err
	}

	report := Report{
		Indexed:   len(index),
		Rows:      len(rows),
		Sessions:  len(artifact.Sessions),
		Summaries: len(artifact.MonthlySummaries),
		Months:    len(freq),
		Skipped:   result.Skipped,
	}
	p.logger.Info("artifacts written",
		"sessions", report.Sessions,
		"summaries", report.Summaries,
		"skipped", report.SkippedTotal())
	return report, nil
}

func (p *Pipeline) annotate(sessions []domain.Session) {
	if p.tagger == nil {
		return
	}
	for i := range sessions {
		sessions[i].Subjects = p.tagger.Tag(sessions[i], p.keepCurated)
	}
}

func (p *Pipeline) write(ctx context.Context, artifact domain.Artifact, freq domain.SubjectFrequency) error {
	if err := p.store.WriteArtifact(ctx, artifact); err != nil {
		return fmt.Errorf("write sessions artifact: %w", err)
	}
	if err := p.store.WriteSubjects(ctx, freq); err != nil {
		return fmt.Errorf("write subject summary: %w", err)
	}
	if p.exporter != nil {
		if err := p.exporter.Export(ctx, artifact, freq); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// SkippedTotal is the number of curated rows left out of the output.
func (r Report) SkippedTotal() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}
