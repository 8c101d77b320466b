package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"JournalClub/internal/domain"
	"JournalClub/internal/infrastructure/fsutil"
	"JournalClub/internal/ports"
)

var schema = []string{
	`CREATE TABLE sessions (
        position  INTEGER PRIMARY KEY,
        pmid      TEXT NOT NULL,
        date      TEXT NOT NULL,
        presenter TEXT NOT NULL,
        title     TEXT NOT NULL,
        journal   TEXT NOT NULL,
        authors   TEXT NOT NULL,
        abstract  TEXT NOT NULL,
        doi       TEXT NOT NULL,
        pdf       TEXT NOT NULL,
        notes     TEXT NOT NULL,
        highlight INTEGER NOT NULL,
        analysis  TEXT NOT NULL
    )`,
	`CREATE INDEX idx_sessions_pmid ON sessions(pmid)`,
	`CREATE TABLE session_subjects (
        session_position INTEGER NOT NULL REFERENCES sessions(position),
        ordinal          INTEGER NOT NULL,
        subject          TEXT NOT NULL,
        PRIMARY KEY (session_position, ordinal)
    )`,
	`CREATE TABLE session_images (
        session_position INTEGER NOT NULL REFERENCES sessions(position),
        ordinal          INTEGER NOT NULL,
        url              TEXT NOT NULL,
        caption          TEXT NOT NULL,
        PRIMARY KEY (session_position, ordinal)
    )`,
	`CREATE TABLE monthly_summaries (
        month          TEXT PRIMARY KEY,
        headline       TEXT NOT NULL,
        paragraph      TEXT NOT NULL,
        key_highlights TEXT NOT NULL
    )`,
	`CREATE TABLE subject_frequency (
        month   TEXT NOT NULL,
        ordinal INTEGER NOT NULL,
        subject TEXT NOT NULL,
        count   INTEGER NOT NULL,
        PRIMARY KEY (month, subject)
    )`,
}

// SQLiteExporter mirrors the finished artifact into a standalone SQLite file.
// Every export builds a fresh database next to the target and renames it into place.
type SQLiteExporter struct {
	path   string
	logger *slog.Logger
}

var _ ports.Exporter = (*SQLiteExporter)(nil)

// NewSQLiteExporter wires the target database path.
func NewSQLiteExporter(path string, logger *slog.Logger) *SQLiteExporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteExporter{path: path, logger: logger}
}

// Export replaces the database file with the contents of artifact and freq.
func (e *SQLiteExporter) Export(ctx context.Context, artifact domain.Artifact, freq domain.SubjectFrequency) error {
	if e.path == "" {
		return nil
	}

	return fsutil.WithLock(e.path, func() error {
		tmp, err := e.tempPath()
		if err != nil {
			return err
		}
		defer os.Remove(tmp)

		if err := build(ctx, tmp, artifact, freq); err != nil {
			return err
		}
		if err := os.Rename(tmp, e.path); err != nil {
			return fmt.Errorf("rename database: %w", err)
		}

		e.logger.Debug("sqlite export written",
			"path", e.path,
			"sessions", len(artifact.Sessions),
			"summaries", len(artifact.MonthlySummaries))
		return nil
	})
}

func (e *SQLiteExporter) tempPath() (string, error) {
	f, err := os.CreateTemp(filepath.Dir(e.path), "."+filepath.Base(e.path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp database: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp database: %w", err)
	}
	return name, nil
}

func build(ctx context.Context, path string, artifact domain.Artifact, freq domain.SubjectFrequency) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close sqlite db: %w", closeErr)
		}
	}()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := insertAll(ctx, tx, artifact, freq); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, artifact domain.Artifact, freq domain.SubjectFrequency) error {
	for i, s := range artifact.Sessions {
		highlight := 0
		if s.Highlight {
			highlight = 1
		}
		insert := sq.Insert("sessions").
			Columns("position", "pmid", "date", "presenter", "title", "journal", "authors",
				"abstract", "doi", "pdf", "notes", "highlight", "analysis").
			Values(i, s.PMID, s.Date, s.Presenter, s.Title, s.Journal, s.Authors,
				s.Abstract, s.DOI, s.PDF, s.Notes, highlight, s.Analysis)
		if err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert session %s: %w", s.PMID, err)
		}

		if len(s.Subjects) > 0 {
			subjects := sq.Insert("session_subjects").Columns("session_position", "ordinal", "subject")
			for j, subject := range s.Subjects {
				subjects = subjects.Values(i, j, subject)
			}
			if err := exec(ctx, tx, subjects); err != nil {
				return fmt.Errorf("insert subjects %s: %w", s.PMID, err)
			}
		}

		if len(s.Images) > 0 {
			images := sq.Insert("session_images").Columns("session_position", "ordinal", "url", "caption")
			for j, img := range s.Images {
				images = images.Values(i, j, img.URL, img.Caption)
			}
			if err := exec(ctx, tx, images); err != nil {
				return fmt.Errorf("insert images %s: %w", s.PMID, err)
			}
		}
	}

	for _, m := range artifact.MonthlySummaries {
		insert := sq.Insert("monthly_summaries").
			Columns("month", "headline", "paragraph", "key_highlights").
			Values(m.Month, m.Headline, m.Paragraph, strings.Join(m.KeyHighlights, "\n"))
		if err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert summary %s: %w", m.Month, err)
		}
	}

	for _, month := range freq {
		if len(month.Counts) == 0 {
			continue
		}
		insert := sq.Insert("subject_frequency").Columns("month", "ordinal", "subject", "count")
		for j, c := range month.Counts {
			insert = insert.Values(month.Month, j, c.Subject, c.Count)
		}
		if err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert subject frequency %s: %w", month.Month, err)
		}
	}
	return nil
}

func exec(ctx context.Context, tx *sql.Tx, insert sq.InsertBuilder) error {
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
