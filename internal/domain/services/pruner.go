package services

import (
	"context"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// PruneResult counts the people each pass removed and those left after the
// last pass.
type PruneResult struct {
	RemovedByProfession int `json:"removed_by_profession"`
	RemovedBySole       int `json:"removed_by_sole"`
	Remaining           int `json:"remaining"`
}

// FilterReport describes a full classify-prune-classify cycle.
type FilterReport struct {
	Before              int `json:"before"`
	After               int `json:"after"`
	RemovedByProfession int `json:"removed_by_profession"`
	RemovedBySole       int `json:"removed_by_sole"`
}

// PruneService removes people that are not referenced enough for their profession.
type PruneService struct {
	repo       ports.PersonRepository
	classifier *ClassifierService
	thresholds map[string]int
	sole       map[string]int
	log        logrus.FieldLogger
}

// NewPruneService creates a pruner. thresholds apply to anyone with the
// profession; sole applies only to people whose one profession it is.
func NewPruneService(repo ports.PersonRepository, classifier *ClassifierService, thresholds, sole map[string]int, log logrus.FieldLogger) *PruneService {
	return &PruneService{
		repo:       repo,
		classifier: classifier,
		thresholds: thresholds,
		sole:       sole,
		log:        log,
	}
}

// Prune runs the per-profession pass and then the sole-profession pass, each in
// its own transaction. Deleted people keep their associations until the next
// rebuild, so the second pass sees the classification the first pass saw.
func (s *PruneService) Prune(ctx context.Context, thresholds, soleThresholds map[string]int) (*PruneResult, error) {
	result := &PruneResult{}

	removed, _, err := s.pass(ctx, thresholds, false)
	if err != nil {
		return nil, err
	}
	result.RemovedByProfession = removed

	removed, remaining, err := s.pass(ctx, soleThresholds, true)
	if err != nil {
		return nil, err
	}
	result.RemovedBySole = removed
	result.Remaining = remaining

	return result, nil
}

// pass deletes under-referenced people and counts who is left, both inside
// one transaction.
func (s *PruneService) pass(ctx context.Context, thresholds map[string]int, sole bool) (removed, remaining int, err error) {
	s.log.WithField("sole", sole).Info("Filtering professions")

	err = s.repo.WithTx(ctx, func(tx ports.PersonTx) error {
		for _, profession := range slices.Sorted(maps.Keys(thresholds)) {
			minRefs := thresholds[profession]

			var n int
			var err error
			if sole {
				n, err = tx.DeleteBySoleProfession(ctx, profession, minRefs)
			} else {
				n, err = tx.DeleteByProfession(ctx, profession, minRefs)
			}
			if err != nil {
				return err
			}

			s.log.WithFields(logrus.Fields{
				"profession": profession,
				"min_refs":   minRefs,
				"count":      n,
			}).Debug("Pruned profession")
			removed += n
		}

		count, err := tx.CountPeople(ctx)
		remaining = count
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return removed, remaining, nil
}

// DoFilter rebuilds the associations, prunes with the configured thresholds and
// rebuilds again so no association points at a removed person.
func (s *PruneService) DoFilter(ctx context.Context) (*FilterReport, error) {
	if _, err := s.classifier.Rebuild(ctx); err != nil {
		return nil, err
	}

	before, err := s.repo.CountPeople(ctx)
	if err != nil {
		return nil, err
	}

	pruned, err := s.Prune(ctx, s.thresholds, s.sole)
	if err != nil {
		return nil, err
	}

	if _, err := s.classifier.Rebuild(ctx); err != nil {
		return nil, err
	}

	report := &FilterReport{
		Before:              before,
		After:               pruned.Remaining,
		RemovedByProfession: pruned.RemovedByProfession,
		RemovedBySole:       pruned.RemovedBySole,
	}
	s.log.WithFields(logrus.Fields{
		"before": report.Before,
		"after":  report.After,
	}).Info("Professions filtered")
	return report, nil
}
