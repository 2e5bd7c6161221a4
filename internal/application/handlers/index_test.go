package handlers

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/mocks"
	"github.com/ersonp/wikipeople/internal/domain/services"
)

func TestIndexHandler_Rebuild_LogsRun(t *testing.T) {
	repo := mocks.NewPersonRepository()
	repo.People["Alice"] = entities.Person{Title: "Alice", Summary: "Alice was a queen."}
	repo.People["Bob"] = entities.Person{Title: "Bob"}
	logger, _ := test.NewNullLogger()

	index := &mocks.PersonIndex{}
	service := services.NewIndexService(repo, &mocks.Embedder{EmbeddingResult: []float32{0.5}, Dims: 1}, index, &mocks.CollectionManager{}, 10, logger)
	handler := NewIndexHandler(service, repo)

	n, err := handler.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, repo.Runs, 1)
	assert.Equal(t, entities.RunIndex, repo.Runs[0].Action)
	assert.Equal(t, 1, repo.Runs[0].Details["indexed"])
}

func TestIndexHandler_Similar(t *testing.T) {
	index := &mocks.PersonIndex{SearchResult: []entities.SimilarPerson{{Title: "Alice", Score: 0.8}}}
	logger, _ := test.NewNullLogger()
	repo := mocks.NewPersonRepository()
	service := services.NewIndexService(repo, &mocks.Embedder{EmbeddingResult: []float32{0.5}}, index, &mocks.CollectionManager{}, 10, logger)

	hits, err := NewIndexHandler(service, repo).Similar(context.Background(), "monarch", 0)

	require.NoError(t, err)
	assert.Equal(t, []entities.SimilarPerson{{Title: "Alice", Score: 0.8}}, hits)
	assert.Equal(t, services.DefaultSimilarLimit, index.LastSearchLimit)
}
