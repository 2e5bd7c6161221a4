package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/domain/services"
	"github.com/ersonp/wikipeople/internal/infrastructure/candidates"
)

// RunOptions controls a year-range run.
type RunOptions struct {
	SkipImages bool // Stop after pruning
	Force      bool // Rescan years that already have a candidate list
}

// YearResult is what one year of a run produced.
type YearResult struct {
	Year   entities.BirthYear
	Scan   *services.ScanResult
	Ingest *services.IngestResult
}

// RunResult contains the result of a year-range run.
type RunResult struct {
	Years  []YearResult
	Filter *services.FilterReport
	Images *services.ImageResult // nil when images were skipped
}

// PipelineHandler runs pipeline steps and records each one in the run log.
type PipelineHandler struct {
	scan       *services.ScanService
	ingest     *services.IngestService
	classifier *services.ClassifierService
	pruner     *services.PruneService
	images     *services.ImageService
	repo       ports.PersonRepository
	store      ports.CandidateStore
	log        logrus.FieldLogger
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(
	scan *services.ScanService,
	ingest *services.IngestService,
	classifier *services.ClassifierService,
	pruner *services.PruneService,
	images *services.ImageService,
	repo ports.PersonRepository,
	store ports.CandidateStore,
	log logrus.FieldLogger,
) *PipelineHandler {
	return &PipelineHandler{
		scan:       scan,
		ingest:     ingest,
		classifier: classifier,
		pruner:     pruner,
		images:     images,
		repo:       repo,
		store:      store,
		log:        log,
	}
}

// RunYearRange scans and ingests every year from start to end inclusive, then
// classifies and prunes once, then resolves portraits unless SkipImages is set.
// Years are storage codes, so 3000-3002 select the unknown-year buckets.
func (h *PipelineHandler) RunYearRange(ctx context.Context, start, end int, opts RunOptions) (*RunResult, error) {
	if start > end {
		return nil, fmt.Errorf("start year %d is after end year %d", start, end)
	}

	result := &RunResult{}
	for code := start; code <= end; code++ {
		year := entities.BirthYearFromCode(code)
		h.log.WithField("year", year.String()).Info("Working on year")

		scan, err := h.ScanYear(ctx, year, opts.Force)
		if err != nil {
			return nil, err
		}
		ingest, err := h.IngestYear(ctx, year)
		if err != nil {
			return nil, err
		}
		result.Years = append(result.Years, YearResult{Year: year, Scan: scan, Ingest: ingest})
	}

	filter, err := h.Filter(ctx)
	if err != nil {
		return nil, err
	}
	result.Filter = filter

	if !opts.SkipImages {
		images, err := h.FetchImages(ctx)
		if err != nil {
			return nil, err
		}
		result.Images = images
	}

	return result, nil
}

// ScanYear writes the candidate list of a year.
func (h *PipelineHandler) ScanYear(ctx context.Context, year entities.BirthYear, force bool) (*services.ScanResult, error) {
	result, err := h.scan.WriteCandidates(ctx, year, force)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", year, err)
	}
	h.record(ctx, entities.RunCandidates, map[string]any{
		"year":        year.Code(),
		"skipped":     result.Skipped,
		"members":     result.Members,
		"unavailable": result.Unavailable,
	})
	return result, nil
}

// IngestYear ingests the candidate list of a year. The list must exist.
func (h *PipelineHandler) IngestYear(ctx context.Context, year entities.BirthYear) (*services.IngestResult, error) {
	if !h.store.Has(year) {
		return nil, fmt.Errorf("no candidate list for %s at %s", year, h.store.Path(year))
	}

	result, err := h.ingest.Ingest(ctx, h.store.Candidates(year))
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", year, err)
	}
	h.record(ctx, entities.RunIngest, withSource(result, fmt.Sprintf("year %d", year.Code())))
	return result, nil
}

// IngestFile ingests a hand-made candidate list.
func (h *PipelineHandler) IngestFile(ctx context.Context, path string) (*services.IngestResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("accessing candidate file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	result, err := h.ingest.Ingest(ctx, candidates.ReadFile(path))
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", path, err)
	}
	h.record(ctx, entities.RunIngest, withSource(result, path))
	return result, nil
}

// Classify rebuilds the profession associations.
func (h *PipelineHandler) Classify(ctx context.Context) (*services.ClassifyResult, error) {
	result, err := h.classifier.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}
	h.record(ctx, entities.RunClassify, toDetails(result))
	return result, nil
}

// Filter classifies, prunes and classifies again.
func (h *PipelineHandler) Filter(ctx context.Context) (*services.FilterReport, error) {
	report, err := h.pruner.DoFilter(ctx)
	if err != nil {
		return nil, fmt.Errorf("filtering professions: %w", err)
	}
	h.record(ctx, entities.RunPrune, toDetails(report))
	return report, nil
}

// FetchImages resolves portraits for everyone still pending.
func (h *PipelineHandler) FetchImages(ctx context.Context) (*services.ImageResult, error) {
	result, err := h.images.FetchImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching images: %w", err)
	}
	h.record(ctx, entities.RunImages, toDetails(result))
	return result, nil
}

// record appends to the run log. A failure to log doesn't undo the step, so it
// is only reported.
func (h *PipelineHandler) record(ctx context.Context, action string, details map[string]any) {
	if err := h.repo.LogRun(ctx, action, details); err != nil {
		h.log.WithError(err).WithField("action", action).Warn("Could not record run")
	}
}

func withSource(result *services.IngestResult, source string) map[string]any {
	details := toDetails(result)
	details["source"] = source
	return details
}

// toDetails flattens a result struct into run log details using its JSON tags.
func toDetails(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	details := map[string]any{}
	if err := json.Unmarshal(data, &details); err != nil {
		return map[string]any{}
	}
	return details
}
