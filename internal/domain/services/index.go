package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// DefaultSimilarLimit is how many people Similar returns when no limit is given.
const DefaultSimilarLimit = 10

// IndexService keeps the semantic index of summaries in step with the store.
type IndexService struct {
	repo       ports.PersonRepository
	embedder   ports.Embedder
	index      ports.PersonIndex
	collection ports.CollectionManager
	batchSize  int
	log        logrus.FieldLogger
}

// NewIndexService creates a new index service. Summaries are embedded
// batchSize at a time.
func NewIndexService(repo ports.PersonRepository, embedder ports.Embedder, index ports.PersonIndex, collection ports.CollectionManager, batchSize int, log logrus.FieldLogger) *IndexService {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &IndexService{
		repo:       repo,
		embedder:   embedder,
		index:      index,
		collection: collection,
		batchSize:  batchSize,
		log:        log,
	}
}

// Rebuild empties the index and re-embeds every stored summary. It returns the
// number of people indexed.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	if err := s.collection.EnsureCollection(ctx, s.embedder.Dimensions()); err != nil {
		return 0, err
	}
	if err := s.index.DeleteAll(ctx); err != nil {
		return 0, err
	}

	people, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for start := 0; start < len(people); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		batch := people[start:min(start+s.batchSize, len(people))]
		if err := s.indexBatch(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)
		s.log.WithField("count", indexed).Debug("Indexed batch")
	}

	s.log.WithField("count", indexed).Info("Semantic index rebuilt")
	return indexed, nil
}

func (s *IndexService) indexBatch(ctx context.Context, batch []entities.PersonSummary) error {
	texts := make([]string, len(batch))
	for i, p := range batch {
		texts[i] = p.Summary
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding summaries: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddings))
	}

	points := make([]ports.IndexedPerson, len(batch))
	for i, p := range batch {
		points[i] = ports.IndexedPerson{PersonSummary: p, Embedding: embeddings[i]}
	}
	return s.index.Upsert(ctx, points)
}

// Similar returns the people whose summaries are closest to text.
func (s *IndexService) Similar(ctx context.Context, text string, limit int) ([]entities.SimilarPerson, error) {
	if text == "" {
		return nil, errors.New("search text is required")
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return s.index.Search(ctx, embedding, limit)
}
