package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/mocks"
)

func TestIndexService_Rebuild(t *testing.T) {
	repo := withPeople(
		entities.Person{Title: "Alice", Summary: "a"},
		entities.Person{Title: "Bob", Summary: "b"},
		entities.Person{Title: "Carol", Summary: "c"},
		entities.Person{Title: "Empty", Summary: ""},
	)
	embedder := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}, Dims: 2}
	index := &mocks.PersonIndex{}
	collection := &mocks.CollectionManager{}
	logger, _ := test.NewNullLogger()

	service := NewIndexService(repo, embedder, index, collection, 2, logger)
	n, err := service.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{2, 1}, embedder.BatchSizes)
	assert.Equal(t, uint64(2), collection.LastVectorSize)
	assert.Equal(t, 1, index.DeleteAllCallCount)
	require.Len(t, index.Indexed, 3)
	assert.Equal(t, "Alice", index.Indexed[0].Title)
	assert.Equal(t, []float32{0.1, 0.2}, index.Indexed[0].Embedding)
}

func TestIndexService_Rebuild_EmbedderError(t *testing.T) {
	repo := withPeople(entities.Person{Title: "Alice", Summary: "a"})
	quota := errors.New("quota exceeded")
	logger, _ := test.NewNullLogger()

	service := NewIndexService(repo, &mocks.Embedder{Err: quota}, &mocks.PersonIndex{}, &mocks.CollectionManager{}, 10, logger)
	_, err := service.Rebuild(context.Background())

	require.ErrorIs(t, err, quota)
}

func TestIndexService_Similar(t *testing.T) {
	index := &mocks.PersonIndex{SearchResult: []entities.SimilarPerson{
		{Title: "Alice", Score: 0.9},
		{Title: "Bob", Score: 0.5},
	}}
	logger, _ := test.NewNullLogger()
	service := NewIndexService(mocks.NewPersonRepository(), &mocks.Embedder{EmbeddingResult: []float32{1}}, index, &mocks.CollectionManager{}, 10, logger)

	hits, err := service.Similar(context.Background(), "a queen", 1)
	require.NoError(t, err)
	assert.Equal(t, []entities.SimilarPerson{{Title: "Alice", Score: 0.9}}, hits)

	_, err = service.Similar(context.Background(), "a queen", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSimilarLimit, index.LastSearchLimit)

	_, err = service.Similar(context.Background(), "", 5)
	require.Error(t, err)
}
