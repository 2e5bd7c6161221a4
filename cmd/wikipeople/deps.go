package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/application/handlers"
	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/domain/services"
	"github.com/ersonp/wikipeople/internal/infrastructure/candidates"
	"github.com/ersonp/wikipeople/internal/infrastructure/config"
	embedder "github.com/ersonp/wikipeople/internal/infrastructure/embedder/openai"
	"github.com/ersonp/wikipeople/internal/infrastructure/encyclopedia/wikipedia"
	"github.com/ersonp/wikipeople/internal/infrastructure/imagestore"
	"github.com/ersonp/wikipeople/internal/infrastructure/parsers"
	"github.com/ersonp/wikipeople/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/wikipeople/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config   *config.Config
	Pipeline *handlers.PipelineHandler
	Reports  *handlers.ReportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	repo *sqlite.Repository
	log  logrus.FieldLogger
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
// The configuration is validated before any storage is opened.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath()})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	log := logrus.StandardLogger()
	source := wikipedia.NewClient(cfg.Source, cfg.Email)
	store := candidates.NewFileStore(cfg.CandidateDir())
	images := imagestore.NewFileStore(cfg.ImageDir(), cfg.Images.ThumbnailSize, log)
	rules := parsers.KeywordFile{Path: cfg.KeywordsFile}

	classifier := services.NewClassifierService(repo, rules, cfg.Classifier.SummaryWindow, log)
	pipeline := handlers.NewPipelineHandler(
		services.NewScanService(source, store, log),
		services.NewIngestService(repo, source, cfg.MinRefCountForSummary, log),
		classifier,
		services.NewPruneService(repo, classifier, cfg.MinRefCountsPerProfession, cfg.MinRefCountsPerSoleProfession, log),
		services.NewImageService(repo, source, source, images, log),
		repo,
		store,
		log,
	)

	deps := &internalDeps{
		Deps: Deps{
			Config:   cfg,
			Pipeline: pipeline,
			Reports:  handlers.NewReportHandler(repo),
		},
		repo: repo,
		log:  log,
	}

	return fn(deps)
}

// withIndexHandler provides the semantic index. It needs an embedder API key
// and a reachable Qdrant.
func withIndexHandler(ctx context.Context, fn func(*handlers.IndexHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		if !d.Config.SemanticEnabled() {
			return errors.New("semantic index needs an embedder api key (set OPENAI_API_KEY or embedder.api_key)")
		}

		emb, err := embedder.NewEmbedder(d.Config.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		index, err := qdrant.NewRepository(d.Config.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer index.Close()

		service := services.NewIndexService(d.repo, emb, index, index, d.Config.Embedder.BatchSize, d.log)
		return fn(handlers.NewIndexHandler(service, d.repo))
	})
}

// openRepository opens the person store of cfg for the init handler.
func openRepository(cfg *config.Config) (ports.PersonRepository, error) {
	return sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath()})
}
