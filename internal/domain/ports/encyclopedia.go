package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrPageUnavailable is returned when a page redirects, is missing, or the source
// answers with something that cannot be read. Callers treat it as "no data".
var ErrPageUnavailable = errors.New("page unavailable")

// Encyclopedia is the remote source of people, citation counts and page text.
type Encyclopedia interface {
	// CategoryMembers lists the page titles in a category. It may be empty.
	CategoryMembers(ctx context.Context, category string) ([]string, error)

	// ReferenceCount returns the number of external references on a page.
	ReferenceCount(ctx context.Context, title string) (int, error)

	// Summary returns the plain-text introduction of a page.
	Summary(ctx context.Context, title string) (string, error)

	// PageMarkup returns the rendered HTML of a page.
	PageMarkup(ctx context.Context, title string) (string, error)
}

// ImageDownloader fetches binary image data.
type ImageDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// DownloadError is a non-200 answer to an image download.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s: status %d", e.URL, e.StatusCode)
}
