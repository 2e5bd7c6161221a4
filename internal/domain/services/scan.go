// Package services holds the pipeline steps: scanning birth categories,
// ingesting people, classifying and pruning them, and resolving portraits.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// ScanResult describes one WriteCandidates call.
type ScanResult struct {
	Year        entities.BirthYear
	Skipped     bool // The year already had a candidate list
	Members     int
	Unavailable int // Members whose reference count fell back to 0
}

// ScanService writes the per-year candidate lists.
type ScanService struct {
	source ports.Encyclopedia
	store  ports.CandidateStore
	log    logrus.FieldLogger
}

// NewScanService creates a new scan service.
func NewScanService(source ports.Encyclopedia, store ports.CandidateStore, log logrus.FieldLogger) *ScanService {
	return &ScanService{
		source: source,
		store:  store,
		log:    log,
	}
}

// WriteCandidates records every member of the year's birth category with its
// reference count. A year that already has a list is left alone unless force is
// set, in which case the old list is removed first. Each candidate is written as
// soon as it is counted, so an interrupted scan keeps what it has and the partial
// list counts as done on the next run.
func (s *ScanService) WriteCandidates(ctx context.Context, year entities.BirthYear, force bool) (*ScanResult, error) {
	log := s.log.WithField("year", year.String())
	result := &ScanResult{Year: year}

	if force {
		if err := s.store.Remove(year); err != nil {
			return nil, err
		}
	}

	if s.store.Has(year) {
		log.WithField("path", s.store.Path(year)).Info("Candidate list already exists; not regenerating it")
		result.Skipped = true
		return result, nil
	}

	category := year.CategoryName()
	members, err := s.source.CategoryMembers(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", category, err)
	}
	log.WithFields(logrus.Fields{"category": category, "count": len(members)}).Info("Scanning birth category")

	w, err := s.store.Create(year)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	for i, title := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		refs, err := s.source.ReferenceCount(ctx, title)
		if errors.Is(err, ports.ErrPageUnavailable) {
			log.WithError(err).WithField("title", title).Warn("Page unavailable; recording 0 references")
			refs = 0
			result.Unavailable++
		} else if err != nil {
			return nil, fmt.Errorf("counting references of %s: %w", title, err)
		}

		log.WithFields(logrus.Fields{"title": title, "index": i, "refs": refs}).Debug("Counted references")
		if err := w.Append(entities.Candidate{Title: title, ReferenceCount: refs, BirthYear: year}); err != nil {
			return nil, err
		}
		result.Members++
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing candidate list: %w", err)
	}
	return result, nil
}
