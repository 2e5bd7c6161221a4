package handlers

import (
	"context"

	"github.com/facette/natsort"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// DefaultHistoryLimit is how many run log entries History shows by default.
const DefaultHistoryLimit = 20

// ReportHandler answers read-only questions about the dataset.
type ReportHandler struct {
	repo ports.PersonRepository
}

// NewReportHandler creates a new report handler.
func NewReportHandler(repo ports.PersonRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// ProfessionCounts returns the number of people per profession, largest first.
func (h *ReportHandler) ProfessionCounts(ctx context.Context) ([]entities.ProfessionCount, error) {
	return h.repo.ProfessionCounts(ctx)
}

// ProfessionMembers returns the people of a profession in natural order, so
// "Pope Pius 9" sorts before "Pope Pius 10".
func (h *ReportHandler) ProfessionMembers(ctx context.Context, profession string) ([]string, error) {
	titles, err := h.repo.ProfessionMembers(ctx, profession)
	if err != nil {
		return nil, err
	}
	natsort.Sort(titles)
	return titles, nil
}

// People returns every stored person with its professions, or only the members
// of profession when it is set.
func (h *ReportHandler) People(ctx context.Context, profession string) ([]entities.PersonDetails, error) {
	return h.repo.ListPeople(ctx, profession)
}

// PersonDetails returns a person with its professions, or nil if not stored.
func (h *ReportHandler) PersonDetails(ctx context.Context, title string) (*entities.PersonDetails, error) {
	return h.repo.FindPerson(ctx, title)
}

// Summary returns dataset totals and image outcome tallies.
func (h *ReportHandler) Summary(ctx context.Context) (*entities.DatasetSummary, error) {
	return h.repo.Summarize(ctx)
}

// History returns the most recent run log entries.
func (h *ReportHandler) History(ctx context.Context, limit int) ([]entities.RunEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return h.repo.ListRuns(ctx, limit)
}
