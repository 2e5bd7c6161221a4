// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/infrastructure/config"
)

// RepositoryOpener opens the person store described by cfg.
type RepositoryOpener func(cfg *config.Config) (ports.PersonRepository, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	open RepositoryOpener
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open RepositoryOpener) *InitHandler {
	return &InitHandler{open: open}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	KeywordsPath string
	DatabasePath string
}

// Handle writes the default configuration and keyword ruleset, then creates the
// output directory and the database schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("wikipeople already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	repo, err := h.open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		KeywordsPath: cfg.KeywordsFile,
		DatabasePath: cfg.DatabasePath(),
	}, nil
}
