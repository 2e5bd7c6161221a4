package mocks

import (
	"errors"
	"iter"
	"strings"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// CandidateStore is an in-memory ports.CandidateStore keyed by year code.
type CandidateStore struct {
	Lists map[int][]entities.Candidate
	// Problems are yielded after a year's candidates, as a reader would report
	// malformed lines.
	Problems  map[int][]error
	CreateErr error
	AppendErr error

	RemoveCallCount int
}

// NewCandidateStore creates an empty store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		Lists:    make(map[int][]entities.Candidate),
		Problems: make(map[int][]error),
	}
}

// Has reports whether the year has a list, even an empty one.
func (m *CandidateStore) Has(year entities.BirthYear) bool {
	_, ok := m.Lists[year.Code()]
	return ok
}

// Create starts an empty list for the year.
func (m *CandidateStore) Create(year entities.BirthYear) (ports.CandidateWriter, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.Has(year) {
		return nil, errors.New("candidate list exists")
	}
	m.Lists[year.Code()] = []entities.Candidate{}
	return &candidateWriter{store: m, code: year.Code()}, nil
}

// Candidates yields the year's list followed by its configured problems.
func (m *CandidateStore) Candidates(year entities.BirthYear) iter.Seq2[entities.Candidate, error] {
	return func(yield func(entities.Candidate, error) bool) {
		for _, c := range m.Lists[year.Code()] {
			if !yield(c, nil) {
				return
			}
		}
		for _, err := range m.Problems[year.Code()] {
			if !yield(entities.Candidate{}, err) {
				return
			}
		}
	}
}

// Remove drops the year's list.
func (m *CandidateStore) Remove(year entities.BirthYear) error {
	m.RemoveCallCount++
	delete(m.Lists, year.Code())
	return nil
}

// Path returns a fake location for the year.
func (m *CandidateStore) Path(year entities.BirthYear) string {
	return "mem://" + year.FileName()
}

type candidateWriter struct {
	store *CandidateStore
	code  int
}

func (w *candidateWriter) Append(c entities.Candidate) error {
	if w.store.AppendErr != nil {
		return w.store.AppendErr
	}
	w.store.Lists[w.code] = append(w.store.Lists[w.code], c)
	return nil
}

func (w *candidateWriter) Close() error {
	return nil
}

// ImageStore is an in-memory ports.ImageStore.
type ImageStore struct {
	Existing map[string]string // title -> path of a portrait already on disk
	Saved    map[string][]byte // path -> data
	SaveErr  error
}

// NewImageStore creates an empty store.
func NewImageStore() *ImageStore {
	return &ImageStore{
		Existing: make(map[string]string),
		Saved:    make(map[string][]byte),
	}
}

// Find returns the configured portrait of title.
func (m *ImageStore) Find(title string) (string, bool) {
	path, ok := m.Existing[title]
	return path, ok
}

// Save records data under images/<title>.<suffix>.
func (m *ImageStore) Save(title, suffix string, data []byte) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	path := "images/" + strings.ReplaceAll(title, " ", "_") + "." + suffix
	m.Saved[path] = data
	m.Existing[title] = path
	return path, nil
}

// RuleLoader is a mock implementation of ports.RuleLoader.
type RuleLoader struct {
	Rules     []entities.KeywordRule
	Malformed []error
	Err       error

	CallCount int
}

// LoadRules returns the configured ruleset.
func (m *RuleLoader) LoadRules() ([]entities.KeywordRule, []error, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Rules, m.Malformed, nil
}
