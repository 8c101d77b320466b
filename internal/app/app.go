package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"JournalClub/internal/classify"
	"JournalClub/internal/config"
	"JournalClub/internal/domain"
	"JournalClub/internal/infrastructure/artifact"
	"JournalClub/internal/infrastructure/index"
	"JournalClub/internal/infrastructure/markup"
	"JournalClub/internal/infrastructure/storage"
	"JournalClub/internal/infrastructure/table"
	"JournalClub/internal/infrastructure/watcher"
	"JournalClub/internal/logging"
	"JournalClub/internal/ports"
	"JournalClub/internal/usecase"
	"JournalClub/pkg/logger"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	diagnostics *logger.Diagnostics
	store       *artifact.Store
	pipeline    *usecase.Pipeline
	retagger    *usecase.Retagger
	populator   *usecase.Populator
}

// New builds the adapters and use cases described by cfg. diagOut receives the
// human-readable diagnostics; nil means stderr.
func New(cfg config.Config, baseLogger *slog.Logger, diagOut *log.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	baseLogger = baseLogger.With("run_id", uuid.NewString())

	opts := classify.Options{
		FallbackTag:  cfg.Subjects.Fallback,
		PediatricTag: cfg.Subjects.PediatricTag,
	}
	if cfg.Subjects.MarkupStripping() {
		opts.Clean = markup.Strip
	}
	classifier, err := classify.New(classify.MergeRules(classify.DefaultRules(), cfg.Subjects.Rules), opts)
	if err != nil {
		return nil, fmt.Errorf("compile subject rules: %w", err)
	}

	curated, err := table.Open(cfg.Input.SessionsTable, table.DefaultRegistry(), baseLogger.With("component", "table"))
	if err != nil {
		return nil, fmt.Errorf("curated table: %w", err)
	}

	source := index.NewFileSource(cfg.Input.Root, cfg.Input.RecordsFile, baseLogger.With("component", "index"))
	store := artifact.NewStore(cfg.Output.SessionsPath, cfg.Output.SubjectsPath, baseLogger.With("component", "artifact"))
	diagnostics := logger.NewDiagnostics(diagOut)

	var exporter ports.Exporter
	if cfg.Output.SQLitePath != "" {
		exporter = storage.NewSQLiteExporter(cfg.Output.SQLitePath, baseLogger.With("component", "sqlite"))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:       source,
		Overrides:    curated,
		Store:        store,
		Exporter:     exporter,
		Tagger:       classifier,
		Diagnostics:  diagnostics,
		Logger:       baseLogger.With("component", "pipeline"),
		LinkTemplate: cfg.Links.DefaultTemplate,
		KeepCurated:  cfg.Subjects.KeepCurated,
	})

	return &Application{
		cfg:         cfg,
		logger:      baseLogger,
		diagnostics: diagnostics,
		store:       store,
		pipeline:    pipeline,
		retagger:    usecase.NewRetagger(store, classifier, cfg.Subjects.KeepCurated, baseLogger.With("component", "retag")),
		populator:   usecase.NewPopulator(source, curated, curated, cfg.Links.DefaultTemplate, baseLogger.With("component", "populate")),
	}, nil
}

// Config returns the configuration the application was built from.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Build runs the pipeline once.
func (a *Application) Build(ctx context.Context) (usecase.Report, error) {
	return a.pipeline.Run(ctx)
}

// Tag recomputes subjects on the existing artifact.
func (a *Application) Tag(ctx context.Context) (domain.SubjectFrequency, error) {
	return a.retagger.Retag(ctx)
}

// Populate rewrites the curated table from the index.
func (a *Application) Populate(ctx context.Context) (int, error) {
	return a.populator.Populate(ctx)
}

// Subjects reads the subject-frequency artifact as last written.
func (a *Application) Subjects(ctx context.Context) (domain.SubjectFrequency, error) {
	return a.store.ReadSubjects(ctx)
}

// Watch rebuilds on every input change until ctx is cancelled.
func (a *Application) Watch(ctx context.Context) error {
	debounce := time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond
	trigger := watcher.NewFileTrigger(a.cfg.Input.Root, a.cfg.Input.RecordsFile, a.cfg.Input.SessionsTable,
		debounce, a.logger.With("component", "watcher"))
	scheduler := usecase.NewScheduler(trigger, a.pipeline, a.logger.With("component", "scheduler"))

	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	a.logger.Info("watching inputs", "root", a.cfg.Input.Root, "table", a.cfg.Input.SessionsTable)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop watcher: %w", err)
	}
	a.logger.Info("watch stopped", "rebuilds", scheduler.Runs())
	return nil
}
