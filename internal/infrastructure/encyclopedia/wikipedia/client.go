// Package wikipedia reads categories, reference counts, summaries and page markup
// from the MediaWiki action API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/infrastructure/config"
)

// UserAgentFormat identifies the bot and its operator to the encyclopedia.
const UserAgentFormat = "WikiPeopleGetterBot/0.1 (%s)"

const (
	maxResponseBytes = 32 << 20
	maxImageBytes    = 20 << 20
)

// Client implements ports.Encyclopedia and ports.ImageDownloader.
type Client struct {
	apiURL    string
	userAgent string
	http      *http.Client
	maxImage  int64
}

// NewClient creates a client for the configured API. The email is sent in the
// User-Agent of every request.
func NewClient(cfg config.SourceConfig, email string) *Client {
	return &Client{
		apiURL:    cfg.APIURL,
		userAgent: fmt.Sprintf(UserAgentFormat, email),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxImage: maxImageBytes,
	}
}

// UserAgent returns the header value sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type page struct {
	Title    string `json:"title"`
	Missing  bool   `json:"missing"`
	Invalid  bool   `json:"invalid"`
	Redirect bool   `json:"redirect"`
	Extract  string `json:"extract"`
	ExtLinks []struct {
		URL string `json:"url"`
	} `json:"extlinks"`
}

type queryResponse struct {
	Error    *apiError         `json:"error"`
	Continue map[string]string `json:"continue"`
	Query    struct {
		Pages           []page `json:"pages"`
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

// CategoryMembers lists the article titles in a category, following continuation.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	params := url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {category},
		"cmtype":  {"page"},
		"cmlimit": {"max"},
	}

	var titles []string
	err := c.queryAll(ctx, params, func(resp *queryResponse) error {
		if resp.Error != nil {
			return fmt.Errorf("category %s: %s: %w", category, resp.Error.Code, ports.ErrPageUnavailable)
		}
		for _, m := range resp.Query.CategoryMembers {
			titles = append(titles, m.Title)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// ReferenceCount returns the number of external links on a page, following
// continuation. Redirects and missing pages return ports.ErrPageUnavailable.
func (c *Client) ReferenceCount(ctx context.Context, title string) (int, error) {
	params := url.Values{
		"action":  {"query"},
		"prop":    {"info|extlinks"},
		"titles":  {title},
		"ellimit": {"max"},
	}

	count := 0
	err := c.queryAll(ctx, params, func(resp *queryResponse) error {
		p, err := singlePage(resp, title)
		if err != nil {
			return err
		}
		count += len(p.ExtLinks)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Summary returns the plain-text introduction of a page.
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"info|extracts"},
		"titles":      {title},
		"exintro":     {"1"},
		"explaintext": {"1"},
	}

	var resp queryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}
	p, err := singlePage(&resp, title)
	if err != nil {
		return "", err
	}
	return p.Extract, nil
}

// PageMarkup returns the rendered HTML of a page. The page is checked first so a
// redirect is reported instead of rendering its target.
func (c *Client) PageMarkup(ctx context.Context, title string) (string, error) {
	var info queryResponse
	err := c.get(ctx, url.Values{
		"action": {"query"},
		"prop":   {"info"},
		"titles": {title},
	}, &info)
	if err != nil {
		return "", err
	}
	if _, err := singlePage(&info, title); err != nil {
		return "", err
	}

	var resp parseResponse
	err = c.get(ctx, url.Values{
		"action": {"parse"},
		"page":   {title},
		"prop":   {"text"},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%s: %s: %w", title, resp.Error.Code, ports.ErrPageUnavailable)
	}
	return resp.Parse.Text, nil
}

// Download fetches an image. A non-200 answer returns *ports.DownloadError and
// an image over the size limit is an error rather than a truncated file.
func (c *Client) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ports.DownloadError{URL: imageURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxImage+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", imageURL, err)
	}
	if int64(len(data)) > c.maxImage {
		return nil, fmt.Errorf("downloading %s: image larger than %d bytes", imageURL, c.maxImage)
	}
	return data, nil
}

// queryAll issues the query and repeats it with each continue token until the
// API stops returning one.
func (c *Client) queryAll(ctx context.Context, params url.Values, handle func(*queryResponse) error) error {
	for {
		var resp queryResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return err
		}
		if err := handle(&resp); err != nil {
			return err
		}
		if len(resp.Continue) == 0 {
			return nil
		}
		for k, v := range resp.Continue {
			params.Set(k, v)
		}
	}
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("querying encyclopedia: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("querying encyclopedia: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %v: %w", err, ports.ErrPageUnavailable)
	}
	return nil
}

// singlePage extracts the one page a titles= query returns and maps the states
// we don't follow onto ports.ErrPageUnavailable.
func singlePage(resp *queryResponse, title string) (*page, error) {
	if resp.Error != nil {
		return nil, fmt.Errorf("%s: %s: %w", title, resp.Error.Code, ports.ErrPageUnavailable)
	}
	if len(resp.Query.Pages) != 1 {
		return nil, fmt.Errorf("%s: expected one page, got %d: %w", title, len(resp.Query.Pages), ports.ErrPageUnavailable)
	}

	p := &resp.Query.Pages[0]
	switch {
	case p.Missing:
		return nil, fmt.Errorf("%s: missing: %w", title, ports.ErrPageUnavailable)
	case p.Invalid:
		return nil, fmt.Errorf("%s: invalid title: %w", title, ports.ErrPageUnavailable)
	case p.Redirect:
		return nil, fmt.Errorf("%s: redirect: %w", title, ports.ErrPageUnavailable)
	}
	return p, nil
}
