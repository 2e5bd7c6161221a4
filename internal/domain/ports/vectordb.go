package ports

import (
	"context"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// IndexedPerson is a person summary with its embedding, ready for upsert.
type IndexedPerson struct {
	entities.PersonSummary
	Embedding []float32
}

// PersonIndex is the semantic search index over person summaries.
type PersonIndex interface {
	// Upsert stores or replaces people in the index.
	Upsert(ctx context.Context, people []IndexedPerson) error

	// Search returns the people nearest to the embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.SimilarPerson, error)

	// DeleteAll empties the index.
	DeleteAll(ctx context.Context) error

	// Count returns the number of indexed people.
	Count(ctx context.Context) (uint64, error)
}
