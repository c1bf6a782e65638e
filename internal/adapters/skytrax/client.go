// internal/adapters/skytrax/client.go
package skytrax

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"aeropulse/internal/adapters/observability"
)

const (
	UserAgent      = "Mozilla/5.0 (compatible; AeroPulseBot/2.0)"
	DefaultTimeout = 20 * time.Second

	sortOrder = "post_date:Desc"
)

// StatusError is returned for any non-2xx listing response.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("skytrax: bad status %d for %s", e.Code, e.URL)
	}
	return fmt.Sprintf("skytrax: bad status %d for %s: %s", e.Code, e.URL, e.Body)
}

type Client struct {
	base string
	hc   *http.Client
}

func New(base string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
	}, nil
}

// PageURL builds the listing URL for a 1-based page number.
func (c *Client) PageURL(page, pageSize int) string {
	return fmt.Sprintf("%s/page/%d/?sortby=%s&pagesize=%d",
		c.base, page, url.QueryEscape(sortOrder), pageSize)
}

// FetchPage GETs one listing page and returns its body as UTF-8.
// There is no retry: any transport error or non-2xx status is returned.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) ([]byte, error) {
	u := c.PageURL(page, pageSize)
	log.Info().Int("page", page).Str("url", u).Msg("scraping page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("skytrax", "page", 0, time.Since(start))
		observability.ObserveExternalError("skytrax", "page", err)
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("skytrax", "page", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// small body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, URL: u, Body: strings.TrimSpace(string(b))}
	}

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}
	log.Debug().Int("page", page).Int("bodySize", len(body)).Msg("fetched page")
	return body, nil
}

// decodeBody sniffs the charset from the first KB and transcodes to UTF-8.
func decodeBody(r io.Reader, contentType string) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(1024) // short bodies return what is available
	enc, _, _ := charset.DetermineEncoding(head, contentType)
	return io.ReadAll(transform.NewReader(br, enc.NewDecoder()))
}
