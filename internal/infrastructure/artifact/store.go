// Package artifact persists the primary session artifact and the subject-frequency artifact as JSON.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"JournalClub/internal/domain"
	"JournalClub/internal/infrastructure/fsutil"
	"JournalClub/internal/ports"
)

// ErrArtifactNotFound is returned by ReadArtifact when no artifact has been written yet.
var ErrArtifactNotFound = errors.New("artifact not found")

// Store writes both artifacts with whole-file replacement under an advisory lock.
type Store struct {
	sessionsPath string
	subjectsPath string
	logger       *slog.Logger
}

var _ ports.ArtifactStore = (*Store)(nil)

// NewStore wires the two output locations.
func NewStore(sessionsPath, subjectsPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{sessionsPath: sessionsPath, subjectsPath: subjectsPath, logger: logger}
}

// SessionsPath is the primary artifact location.
func (s *Store) SessionsPath() string { return s.sessionsPath }

// SubjectsPath is the subject-frequency artifact location.
func (s *Store) SubjectsPath() string { return s.subjectsPath }

// WriteArtifact replaces the primary artifact. List fields are always emitted as arrays.
func (s *Store) WriteArtifact(ctx context.Context, artifact domain.Artifact) error {
	return s.write(ctx, s.sessionsPath, artifact.Normalized())
}

// WriteSubjects replaces the subject-frequency artifact.
func (s *Store) WriteSubjects(ctx context.Context, freq domain.SubjectFrequency) error {
	if freq == nil {
		freq = domain.SubjectFrequency{}
	}
	return s.write(ctx, s.subjectsPath, freq)
}

// ReadArtifact loads the primary artifact as last written.
func (s *Store) ReadArtifact(ctx context.Context) (domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}

	raw, err := os.ReadFile(s.sessionsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.sessionsPath)
	}
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("read %s: %w", s.sessionsPath, err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return domain.Artifact{}, fmt.Errorf("decode %s: %w", s.sessionsPath, err)
	}
	return artifact.Normalized(), nil
}

// ReadSubjects loads the subject-frequency artifact as last written.
func (s *Store) ReadSubjects(ctx context.Context) (domain.SubjectFrequency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.subjectsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, s.subjectsPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.subjectsPath, err)
	}

	var freq domain.SubjectFrequency
	if err := json.Unmarshal(raw, &freq); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.subjectsPath, err)
	}
	return freq, nil
}

func (s *Store) write(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := fsutil.ReplaceLocked(path, data); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	s.logger.Debug("artifact written", "path", path, "bytes", len(data))
	return nil
}

// Encode renders v the way every artifact is stored: two-space indent, no HTML escaping,
// trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
