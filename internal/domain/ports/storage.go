package ports

import (
	"iter"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// CandidateStore keeps the per-year candidate lists so a year is scanned once.
type CandidateStore interface {
	// Has reports whether the year was already scanned. Existence is the only marker.
	Has(year entities.BirthYear) bool

	// Create starts a new candidate list for the year.
	Create(year entities.BirthYear) (CandidateWriter, error)

	// Candidates re-reads the year's list. Malformed lines yield an error and the
	// sequence continues.
	Candidates(year entities.BirthYear) iter.Seq2[entities.Candidate, error]

	// Remove deletes the year's list so it can be scanned again.
	Remove(year entities.BirthYear) error

	// Path returns where the year's list lives.
	Path(year entities.BirthYear) string
}

// CandidateWriter appends candidates one at a time.
type CandidateWriter interface {
	Append(c entities.Candidate) error
	Close() error
}

// ImageStore is the local portrait cache.
type ImageStore interface {
	// Find returns the stored portrait for a title, trying every supported suffix.
	Find(title string) (string, bool)

	// Save writes a portrait and returns its path.
	Save(title, suffix string, data []byte) (string, error)
}
