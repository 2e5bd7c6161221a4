package mocks

import (
	"context"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// PersonIndex is a mock implementation of ports.PersonIndex.
type PersonIndex struct {
	Indexed      []ports.IndexedPerson
	SearchResult []entities.SimilarPerson
	Err          error

	// Call tracking
	UpsertCallCount    int
	DeleteAllCallCount int
	LastSearchLimit    int
}

// Upsert appends people to Indexed.
func (m *PersonIndex) Upsert(ctx context.Context, people []ports.IndexedPerson) error {
	m.UpsertCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Indexed = append(m.Indexed, people...)
	return nil
}

// Search returns SearchResult truncated to limit.
func (m *PersonIndex) Search(ctx context.Context, embedding []float32, limit int) ([]entities.SimilarPerson, error) {
	m.LastSearchLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > len(m.SearchResult) {
		return m.SearchResult, nil
	}
	return m.SearchResult[:limit], nil
}

// DeleteAll empties Indexed.
func (m *PersonIndex) DeleteAll(ctx context.Context) error {
	m.DeleteAllCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Indexed = nil
	return nil
}

// Count returns the number of indexed people.
func (m *PersonIndex) Count(ctx context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Indexed)), nil
}
