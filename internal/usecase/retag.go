package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"JournalClub/internal/domain"
	"JournalClub/internal/ports"
)

// Retagger recomputes subjects on an existing artifact without touching the inputs.
type Retagger struct {
	store       ports.ArtifactStore
	tagger      ports.Tagger
	keepCurated bool
	logger      *slog.Logger
}

// NewRetagger wires the artifact store and the classifier.
func NewRetagger(store ports.ArtifactStore, tagger ports.Tagger, keepCurated bool, logger *slog.Logger) *Retagger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Retagger{store: store, tagger: tagger, keepCurated: keepCurated, logger: logger}
}

// Retag rewrites the primary artifact with fresh subjects and regenerates the subject summary.
// Monthly summaries are carried over unchanged.
func (r *Retagger) Retag(ctx context.Context) (domain.SubjectFrequency, error) {
	if r.store == nil || r.tagger == nil {
		return nil, ErrMissingDependency
	}

	artifact, err := r.store.ReadArtifact(ctx)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	for i := range artifact.Sessions {
		artifact.Sessions[i].Subjects = r.tagger.Tag(artifact.Sessions[i], r.keepCurated)
	}

	if err := r.store.WriteArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("write sessions artifact: %w", err)
	}

	freq := SubjectFrequencies(artifact.Sessions)
	if err := r.store.WriteSubjects(ctx, freq); err != nil {
		return nil, fmt.Errorf("write subject summary: %w", err)
	}

	r.logger.Info("sessions retagged", "sessions", len(artifact.Sessions), "months", len(freq))
	return freq, nil
}
