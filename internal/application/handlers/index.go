package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/domain/services"
)

// IndexHandler maintains and queries the semantic index.
type IndexHandler struct {
	service *services.IndexService
	repo    ports.PersonRepository
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(service *services.IndexService, repo ports.PersonRepository) *IndexHandler {
	return &IndexHandler{service: service, repo: repo}
}

// Rebuild re-embeds every summary and returns how many people were indexed.
func (h *IndexHandler) Rebuild(ctx context.Context) (int, error) {
	n, err := h.service.Rebuild(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuilding index: %w", err)
	}
	if err := h.repo.LogRun(ctx, entities.RunIndex, map[string]any{"indexed": n}); err != nil {
		return n, fmt.Errorf("recording run: %w", err)
	}
	return n, nil
}

// Similar returns people whose summaries resemble text.
func (h *IndexHandler) Similar(ctx context.Context, text string, limit int) ([]entities.SimilarPerson, error) {
	return h.service.Similar(ctx, text, limit)
}
