// Package candidates keeps per-year candidate lists as plain text files, one
// "<ref_count> <year> |<title>" line per candidate.
package candidates

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/infrastructure/parsers"
)

// FileStore implements ports.CandidateStore on a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created lazily.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the candidate file for a year.
func (s *FileStore) Path(year entities.BirthYear) string {
	return filepath.Join(s.dir, year.FileName())
}

// Has reports whether the year's file exists, complete or not.
func (s *FileStore) Has(year entities.BirthYear) bool {
	_, err := os.Stat(s.Path(year))
	return err == nil
}

// Create opens a new file for the year. It fails if the file already exists.
func (s *FileStore) Create(year entities.BirthYear) (ports.CandidateWriter, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating candidate directory: %w", err)
	}

	f, err := os.OpenFile(s.Path(year), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating candidate file: %w", err)
	}
	return &fileWriter{f: f}, nil
}

// Candidates re-reads the year's file every time the sequence is ranged over.
func (s *FileStore) Candidates(year entities.BirthYear) iter.Seq2[entities.Candidate, error] {
	return ReadFile(s.Path(year))
}

// Remove deletes the year's file. A missing file is not an error.
func (s *FileStore) Remove(year entities.BirthYear) error {
	err := os.Remove(s.Path(year))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing candidate file: %w", err)
	}
	return nil
}

// ReadFile lazily reads any candidate file, such as a hand-made backfill list.
// An open failure is yielded as the only element.
func ReadFile(path string) iter.Seq2[entities.Candidate, error] {
	return func(yield func(entities.Candidate, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(entities.Candidate{}, fmt.Errorf("opening candidate file: %w", err))
			return
		}
		defer f.Close()

		for c, err := range parsers.ReadCandidates(f) {
			if !yield(c, err) {
				return
			}
		}
	}
}

// fileWriter writes each candidate straight to the file so a crash keeps
// everything appended so far.
type fileWriter struct {
	f *os.File
}

func (w *fileWriter) Append(c entities.Candidate) error {
	if _, err := w.f.WriteString(parsers.FormatCandidate(c)); err != nil {
		return fmt.Errorf("appending candidate %q: %w", c.Title, err)
	}
	return nil
}

func (w *fileWriter) Close() error {
	return w.f.Close()
}
