package services

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// IngestResult tallies one ingestion run. Total is the number of people stored
// after the run.
type IngestResult struct {
	Inserted      int `json:"inserted"`
	SkippedLowRef int `json:"skipped_low_ref"`
	AlreadyHad    int `json:"already_had"`
	Malformed     int `json:"malformed"`
	Total         int `json:"total"`
}

// IngestService applies the retention policy to candidates and stores the
// people worth keeping with their summaries.
type IngestService struct {
	repo    ports.PersonRepository
	source  ports.Encyclopedia
	minRefs int
	log     logrus.FieldLogger
}

// NewIngestService creates a new ingest service. Candidates with fewer than
// minRefs references are never stored.
func NewIngestService(repo ports.PersonRepository, source ports.Encyclopedia, minRefs int, log logrus.FieldLogger) *IngestService {
	return &IngestService{
		repo:    repo,
		source:  source,
		minRefs: minRefs,
		log:     log,
	}
}

// Ingest stores each sufficiently referenced candidate that isn't stored yet.
// Malformed candidates are counted and skipped. Any other error stops the run;
// people already stored stay stored, so running again resumes.
func (s *IngestService) Ingest(ctx context.Context, candidates iter.Seq2[entities.Candidate, error]) (*IngestResult, error) {
	result := &IngestResult{}

	for c, err := range candidates {
		if errors.Is(err, ports.ErrMalformedInput) {
			s.log.WithError(err).Warn("Skipping malformed candidate")
			result.Malformed++
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if c.ReferenceCount < s.minRefs {
			result.SkippedLowRef++
			continue
		}

		inserted, err := s.ingestOne(ctx, c)
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.AlreadyHad++
		}
	}

	total, err := s.repo.CountPeople(ctx)
	if err != nil {
		return nil, err
	}
	result.Total = total

	s.log.WithFields(logrus.Fields{
		"inserted":    result.Inserted,
		"low_ref":     result.SkippedLowRef,
		"already_had": result.AlreadyHad,
		"malformed":   result.Malformed,
		"total":       result.Total,
	}).Info("Ingestion finished")

	return result, nil
}

// ingestOne stores c in its own transaction. It reports false when the person
// was already stored.
func (s *IngestService) ingestOne(ctx context.Context, c entities.Candidate) (bool, error) {
	log := s.log.WithField("title", c.Title)
	inserted := false

	err := s.repo.WithTx(ctx, func(tx ports.PersonTx) error {
		exists, err := tx.PersonExists(ctx, c.Title)
		if err != nil {
			return err
		}
		if exists {
			log.Debug("Already stored; skipping")
			return nil
		}

		summary, err := s.source.Summary(ctx, c.Title)
		if errors.Is(err, ports.ErrPageUnavailable) {
			log.WithError(err).Warn("Page unavailable; storing an empty summary")
			summary = ""
		} else if err != nil {
			return fmt.Errorf("fetching summary of %s: %w", c.Title, err)
		}

		inserted, err = tx.InsertPerson(ctx, entities.Person{
			Title:          c.Title,
			BirthYear:      c.BirthYear,
			ReferenceCount: c.ReferenceCount,
			Summary:        summary,
			Image:          entities.NotAttempted(),
		})
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}
