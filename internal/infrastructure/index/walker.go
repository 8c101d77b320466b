// Package index discovers the monthly extracted-record files and indexes them by PMID.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"JournalClub/internal/domain"
	"JournalClub/internal/ports"
)

// DefaultRecordsFile is the per-month file name written by the extraction job.
const DefaultRecordsFile = "ent_all_results.json"

var (
	yearDirExpr  = regexp.MustCompile(`^20[0-9][0-9]$`)
	monthDirExpr = regexp.MustCompile(`^[01][0-9]$`)
)

// FileSource walks <root>/<year>/<month>/<records file>.
//
// Files are visited in lexicographic year/month order and a PMID seen again replaces the earlier
// record, so the most recent month wins.
type FileSource struct {
	root        string
	recordsFile string
	logger      *slog.Logger
}

var _ ports.ArticleSource = (*FileSource)(nil)

// NewFileSource wires the root directory and the per-month file name.
func NewFileSource(root, recordsFile string, log *slog.Logger) *FileSource {
	if recordsFile == "" {
		recordsFile = DefaultRecordsFile
	}
	return &FileSource{root: root, recordsFile: recordsFile, logger: log}
}

// LoadIndex reads every present records file. A file that is not a JSON array of articles
// aborts the whole build.
func (s *FileSource) LoadIndex(ctx context.Context) (domain.ArticleIndex, error) {
	files, err := s.Discover()
	if err != nil {
		return nil, err
	}

	index := domain.ArticleIndex{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		articles, err := readRecords(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		added := 0
		for _, art := range articles {
			if art.PMID == "" {
				continue
			}
			if prev, ok := index[art.PMID]; ok {
				s.debug("pmid replaced by later file", "pmid", art.PMID, "file", path, "previous_title", prev.Title)
			}
			index[art.PMID] = art
			added++
		}
		s.debug("records file indexed", "file", path, "articles", added)
	}

	s.debug("index built", "files", len(files), "records", len(index))
	return index, nil
}

// Discover lists the records files that exist under the year/month layout, in visiting order.
func (s *FileSource) Discover() ([]string, error) {
	years, err := matchingDirs(s.root, yearDirExpr)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, year := range years {
		months, err := matchingDirs(year, monthDirExpr)
		if err != nil {
			return nil, err
		}
		for _, month := range months {
			path := filepath.Join(month, s.recordsFile)
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			files = append(files, path)
		}
	}
	return files, nil
}

func matchingDirs(parent string, expr *regexp.Regexp) ([]string, error) {
	entries, err := os.ReadDir(parent)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", parent, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !expr.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(parent, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func readRecords(path string) ([]domain.ArticleRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var articles []domain.ArticleRecord
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return articles, nil
}

func (s *FileSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
