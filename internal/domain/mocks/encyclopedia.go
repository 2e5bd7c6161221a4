package mocks

import (
	"context"
	"fmt"

	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// Encyclopedia is a mock implementation of ports.Encyclopedia. Titles without a
// configured value answer with ports.ErrPageUnavailable.
type Encyclopedia struct {
	Members    map[string][]string
	RefCounts  map[string]int
	Summaries  map[string]string
	Markup     map[string]string
	MembersErr error
	Err        error // returned by every per-page call when set

	// Call tracking
	RefCountCalls []string
	SummaryCalls  []string
	MarkupCalls   []string
}

// CategoryMembers returns the configured members of category.
func (m *Encyclopedia) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if m.MembersErr != nil {
		return nil, m.MembersErr
	}
	return m.Members[category], nil
}

// ReferenceCount returns the configured count for title.
func (m *Encyclopedia) ReferenceCount(ctx context.Context, title string) (int, error) {
	m.RefCountCalls = append(m.RefCountCalls, title)
	if m.Err != nil {
		return 0, m.Err
	}
	n, ok := m.RefCounts[title]
	if !ok {
		return 0, unavailable(title)
	}
	return n, nil
}

// Summary returns the configured summary for title.
func (m *Encyclopedia) Summary(ctx context.Context, title string) (string, error) {
	m.SummaryCalls = append(m.SummaryCalls, title)
	if m.Err != nil {
		return "", m.Err
	}
	s, ok := m.Summaries[title]
	if !ok {
		return "", unavailable(title)
	}
	return s, nil
}

// PageMarkup returns the configured markup for title.
func (m *Encyclopedia) PageMarkup(ctx context.Context, title string) (string, error) {
	m.MarkupCalls = append(m.MarkupCalls, title)
	if m.Err != nil {
		return "", m.Err
	}
	html, ok := m.Markup[title]
	if !ok {
		return "", unavailable(title)
	}
	return html, nil
}

func unavailable(title string) error {
	return fmt.Errorf("%s: %w", title, ports.ErrPageUnavailable)
}

// ImageDownloader is a mock implementation of ports.ImageDownloader. URLs
// without configured data answer 404.
type ImageDownloader struct {
	Data map[string][]byte
	Err  error

	Calls []string
}

// Download returns the configured bytes for url.
func (m *ImageDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	m.Calls = append(m.Calls, url)
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.Data[url]
	if !ok {
		return nil, &ports.DownloadError{URL: url, StatusCode: 404}
	}
	return data, nil
}
