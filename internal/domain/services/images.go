package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/wikipeople/internal/domain/entities"
	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// Markers and windows used to find the portrait in page markup. Windows are
// counted in characters from the start of the previous match.
const (
	infoboxMarker = "infobox"
	imageMarker   = ` src="//upload.wikimedia.org/wikipedia/`
	urlTerminator = `" `
	infoboxWindow = 5000
	urlWindow     = 1000
)

var reImageSuffix = regexp.MustCompile(`^.+\.(\w+)$`)

// ImageResult tallies one FetchImages run.
type ImageResult struct {
	Attempted  int `json:"attempted"`
	Cached     int `json:"cached"`
	Downloaded int `json:"downloaded"`
	Failed     int `json:"failed"`
}

// ImageService resolves one portrait per person, once.
type ImageService struct {
	repo       ports.PersonRepository
	source     ports.Encyclopedia
	downloader ports.ImageDownloader
	store      ports.ImageStore
	log        logrus.FieldLogger
}

// NewImageService creates a new image service.
func NewImageService(repo ports.PersonRepository, source ports.Encyclopedia, downloader ports.ImageDownloader, store ports.ImageStore, log logrus.FieldLogger) *ImageService {
	return &ImageService{
		repo:       repo,
		source:     source,
		downloader: downloader,
		store:      store,
		log:        log,
	}
}

// FetchImages resolves the portrait of every person not attempted yet and
// records the outcome, success or failure, so nobody is tried twice.
func (s *ImageService) FetchImages(ctx context.Context) (*ImageResult, error) {
	titles, err := s.repo.PendingImages(ctx)
	if err != nil {
		return nil, err
	}
	s.log.WithField("count", len(titles)).Info("Getting images")

	result := &ImageResult{}
	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, cached, err := s.ResolveImage(ctx, title)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetImageOutcome(ctx, title, outcome); err != nil {
			return nil, err
		}

		result.Attempted++
		switch {
		case outcome.Status == entities.ImageFailure:
			result.Failed++
		case cached:
			result.Cached++
		default:
			result.Downloaded++
		}
	}

	s.log.WithFields(logrus.Fields{
		"attempted":  result.Attempted,
		"cached":     result.Cached,
		"downloaded": result.Downloaded,
		"failed":     result.Failed,
	}).Info("Finished getting images")
	return result, nil
}

// ResolveImage finds the portrait of title. A portrait already on disk is reused
// without touching the network; cached reports that case. Lookup, download and
// local write failures are returned as failure outcomes, not errors.
func (s *ImageService) ResolveImage(ctx context.Context, title string) (outcome entities.ImageOutcome, cached bool, err error) {
	log := s.log.WithField("title", title)

	if path, ok := s.store.Find(title); ok {
		log.WithField("path", path).Debug("Portrait already downloaded")
		return entities.ImageSaved(path), true, nil
	}

	html, err := s.source.PageMarkup(ctx, title)
	if errors.Is(err, ports.ErrPageUnavailable) {
		log.WithError(err).Warn("Page unavailable; treating markup as empty")
		html = ""
	} else if err != nil {
		return entities.ImageOutcome{}, false, fmt.Errorf("fetching markup of %s: %w", title, err)
	}

	url, suffix, failure := LocateImage(html)
	if failure != nil {
		log.WithField("reason", failure.Reason).Info("No usable portrait")
		return *failure, false, nil
	}

	data, err := s.downloader.Download(ctx, url)
	if err != nil {
		log.WithError(err).WithField("url", url).Warn("Portrait download failed")
		return entities.ImageFailed(entities.FailureFetch, url), false, nil
	}

	path, err := s.store.Save(title, suffix, data)
	if err != nil {
		log.WithError(err).Warn("Could not store portrait")
		return entities.ImageFailed(entities.FailureSave, err.Error()), false, nil
	}
	log.WithField("path", path).Info("Portrait saved")
	return entities.ImageSaved(path), false, nil
}

// LocateImage extracts the portrait URL and its suffix from page markup. The
// portrait is the first upload link within the infobox window; its URL ends at
// the first `" ` after it. When no usable URL is found the failure outcome says why.
func LocateImage(html string) (url, suffix string, failure *entities.ImageOutcome) {
	fail := func(reason entities.FailureReason, detail string) (string, string, *entities.ImageOutcome) {
		o := entities.ImageFailed(reason, detail)
		return "", "", &o
	}

	text := []rune(html)

	infobox := indexIn(text, infoboxMarker, 0, len(text))
	if infobox < 0 {
		return fail(entities.FailureNoInfobox, "")
	}

	start := indexIn(text, imageMarker, infobox, infobox+infoboxWindow)
	if start < 0 {
		return fail(entities.FailureNoImageAvailable, "")
	}

	end := indexIn(text, urlTerminator, start, start+urlWindow)
	if end < 0 {
		return fail(entities.FailureBadEnd, string(text[start:min(start+urlWindow, len(text))]))
	}

	raw := string(text[start:end])
	m := reImageSuffix.FindStringSubmatch(raw)
	if m == nil {
		return fail(entities.FailureBadURL, "")
	}
	if !entities.IsSupportedImageSuffix(m[1]) {
		return fail(entities.FailureBadSuffix, m[1])
	}

	return strings.Replace(raw, ` src="`, "https:", 1), m[1], nil
}

// indexIn returns the character index of the first occurrence of sub lying
// entirely inside text[start:end], or -1.
func indexIn(text []rune, sub string, start, end int) int {
	end = min(end, len(text))
	if start >= end {
		return -1
	}
	window := string(text[start:end])
	i := strings.Index(window, sub)
	if i < 0 {
		return -1
	}
	return start + utf8.RuneCountInString(window[:i])
}
