package ports

import (
	"context"
	"errors"
	"time"

	"JournalClub/internal/domain"
)

// ArticleSource builds the identifier index over every extracted-record file.
type ArticleSource interface {
	LoadIndex(ctx context.Context) (domain.ArticleIndex, error)
}

// ErrOverridesNotFound is wrapped by OverrideSource implementations when the curated table does not exist.
var ErrOverridesNotFound = errors.New("curated table not found")

// OverrideSource reads curated rows in table order.
type OverrideSource interface {
	LoadOverrides(ctx context.Context) ([]domain.OverrideRecord, error)
}

// OverrideSink replaces the curated table with the given rows.
type OverrideSink interface {
	WriteOverrides(ctx context.Context, rows []domain.OverrideRecord) error
}

// ArtifactStore writes and rereads the primary and subject-frequency artifacts.
type ArtifactStore interface {
	WriteArtifact(ctx context.Context, artifact domain.Artifact) error
	WriteSubjects(ctx context.Context, freq domain.SubjectFrequency) error
	ReadArtifact(ctx context.Context) (domain.Artifact, error)
}

// Exporter mirrors a finished run into a secondary store (e.g. SQLite).
type Exporter interface {
	Export(ctx context.Context, artifact domain.Artifact, freq domain.SubjectFrequency) error
}

// Tagger assigns subject tags to a session.
type Tagger interface {
	Tag(s domain.Session, keepCurated bool) []string
}

// Diagnostics receives human-readable reports about dropped rows.
type Diagnostics interface {
	Report(d domain.Diagnostic)
}

// Trigger fires a job whenever pipeline inputs change.
type Trigger interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
