package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// ClassifyResult describes one rebuild of the profession associations.
type ClassifyResult struct {
	Rules        int `json:"rules"`
	Malformed    int `json:"malformed"`
	Associations int `json:"associations"`
}

// ClassifierService derives profession associations from summaries.
type ClassifierService struct {
	repo   ports.PersonRepository
	rules  ports.RuleLoader
	window int
	log    logrus.FieldLogger
}

// NewClassifierService creates a classifier that reads the first window
// characters of each summary.
func NewClassifierService(repo ports.PersonRepository, rules ports.RuleLoader, window int, log logrus.FieldLogger) *ClassifierService {
	return &ClassifierService{
		repo:   repo,
		rules:  rules,
		window: window,
		log:    log,
	}
}

// Rebuild replaces every association with the ones the current ruleset and the
// current people produce. The replacement happens in one transaction, so a
// failed rebuild leaves the previous associations in place.
func (s *ClassifierService) Rebuild(ctx context.Context) (*ClassifyResult, error) {
	rules, malformed, err := s.rules.LoadRules()
	if err != nil {
		return nil, err
	}
	for _, problem := range malformed {
		s.log.WithError(problem).Warn("Skipping malformed keyword rule")
	}

	result := &ClassifyResult{Rules: len(rules), Malformed: len(malformed)}
	err = s.repo.WithTx(ctx, func(tx ports.PersonTx) error {
		n, err := s.apply(ctx, tx, rules)
		result.Associations = n
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rules": result.Rules,
		"count": result.Associations,
	}).Info("Profession associations rebuilt")
	return result, nil
}

func (s *ClassifierService) apply(ctx context.Context, tx ports.PersonTx, rules []entities.KeywordRule) (int, error) {
	if err := tx.DeleteAssociations(ctx); err != nil {
		return 0, err
	}

	total := 0
	for _, rule := range rules {
		n, err := tx.Associate(ctx, rule, s.window)
		if err != nil {
			return 0, err
		}
		s.log.WithFields(logrus.Fields{
			"keyword":    rule.Keyword,
			"profession": rule.Profession,
			"count":      n,
		}).Debug("Applied keyword")
		total += n
	}
	return total, nil
}
