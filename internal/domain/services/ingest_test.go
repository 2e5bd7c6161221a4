package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/mocks"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// seq turns candidates and errors into a candidate sequence, errors last.
func seq(candidates []entities.Candidate, errs ...error) iter.Seq2[entities.Candidate, error] {
	return func(yield func(entities.Candidate, error) bool) {
		for _, c := range candidates {
			if !yield(c, nil) {
				return
			}
		}
		for _, err := range errs {
			if !yield(entities.Candidate{}, err) {
				return
			}
		}
	}
}

func TestIngestService_Ingest(t *testing.T) {
	year := entities.KnownYear(1815)
	repo := mocks.NewPersonRepository()
	source := &mocks.Encyclopedia{Summaries: map[string]string{"Ada Lovelace": "Ada was an English mathematician."}}
	logger, _ := test.NewNullLogger()

	service := NewIngestService(repo, source, 10, logger)
	result, err := service.Ingest(context.Background(), seq([]entities.Candidate{
		{Title: "Ada Lovelace", ReferenceCount: 120, BirthYear: year},
		{Title: "Nobody Much", ReferenceCount: 9, BirthYear: year},
		{Title: "Threshold", ReferenceCount: 10, BirthYear: year},
	}))

	require.NoError(t, err)
	assert.Equal(t, &IngestResult{Inserted: 2, SkippedLowRef: 1, Total: 2}, result)

	ada := repo.People["Ada Lovelace"]
	assert.Equal(t, "Ada was an English mathematician.", ada.Summary)
	assert.Equal(t, year, ada.BirthYear)
	assert.False(t, ada.Image.Attempted())

	assert.Equal(t, "", repo.People["Threshold"].Summary, "unavailable summaries are stored empty")
	assert.NotContains(t, source.SummaryCalls, "Nobody Much")
}

func TestIngestService_Ingest_AlreadyHad(t *testing.T) {
	repo := mocks.NewPersonRepository()
	repo.People["Ada Lovelace"] = entities.Person{Title: "Ada Lovelace", ReferenceCount: 120, Summary: "old"}
	source := &mocks.Encyclopedia{Summaries: map[string]string{"Ada Lovelace": "new"}}
	logger, _ := test.NewNullLogger()

	service := NewIngestService(repo, source, 10, logger)
	result, err := service.Ingest(context.Background(), seq([]entities.Candidate{
		{Title: "Ada Lovelace", ReferenceCount: 9000, BirthYear: entities.KnownYear(1815)},
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, result.AlreadyHad)
	assert.Zero(t, result.Inserted)
	assert.Empty(t, source.SummaryCalls, "stored people cost no network call")
	assert.Equal(t, 120, repo.People["Ada Lovelace"].ReferenceCount)
	assert.Equal(t, "old", repo.People["Ada Lovelace"].Summary)
}

func TestIngestService_Ingest_MalformedLinesAreSkipped(t *testing.T) {
	repo := mocks.NewPersonRepository()
	logger, hook := test.NewNullLogger()
	malformed := fmt.Errorf("line 3: %w", ports.ErrMalformedInput)

	service := NewIngestService(repo, &mocks.Encyclopedia{}, 10, logger)
	result, err := service.Ingest(context.Background(), seq([]entities.Candidate{
		{Title: "Ada Lovelace", ReferenceCount: 120, BirthYear: entities.KnownYear(1815)},
	}, malformed))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Malformed)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Message == "Skipping malformed candidate" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIngestService_Ingest_ReadErrorStops(t *testing.T) {
	repo := mocks.NewPersonRepository()
	logger, _ := test.NewNullLogger()
	readErr := errors.New("opening candidate file: no such file")

	service := NewIngestService(repo, &mocks.Encyclopedia{}, 10, logger)
	_, err := service.Ingest(context.Background(), seq(nil, readErr))

	require.ErrorIs(t, err, readErr)
}

func TestIngestService_Ingest_SourceDownAbortsAndResumes(t *testing.T) {
	year := entities.KnownYear(1815)
	repo := mocks.NewPersonRepository()
	source := &mocks.Encyclopedia{Err: errors.New("connection refused")}
	logger, _ := test.NewNullLogger()
	candidates := seq([]entities.Candidate{
		{Title: "Ada Lovelace", ReferenceCount: 120, BirthYear: year},
		{Title: "Otto von Bismarck", ReferenceCount: 340, BirthYear: year},
	})

	service := NewIngestService(repo, source, 10, logger)
	_, err := service.Ingest(context.Background(), candidates)
	require.Error(t, err)
	assert.Empty(t, repo.People)
	assert.Equal(t, 1, repo.RollbackCount)

	source.Err = nil
	source.Summaries = map[string]string{"Ada Lovelace": "a", "Otto von Bismarck": "b"}
	result, err := service.Ingest(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
}

func TestIngestService_Ingest_IsIdempotent(t *testing.T) {
	year := entities.KnownYear(1815)
	repo := mocks.NewPersonRepository()
	source := &mocks.Encyclopedia{Summaries: map[string]string{"Ada Lovelace": "a"}}
	logger, _ := test.NewNullLogger()
	candidates := seq([]entities.Candidate{{Title: "Ada Lovelace", ReferenceCount: 120, BirthYear: year}})

	service := NewIngestService(repo, source, 10, logger)
	first, err := service.Ingest(context.Background(), candidates)
	require.NoError(t, err)
	second, err := service.Ingest(context.Background(), candidates)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Inserted)
	assert.Equal(t, 1, second.AlreadyHad)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, source.SummaryCalls, 1)
}
