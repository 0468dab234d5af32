package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gohugoio/httpcache"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrFetch wraps every failure to obtain the sheet text
var ErrFetch = errors.New("fetch failed")

// maxBodyBytes caps the accepted export size
const maxBodyBytes = 16 << 20

// FetchOptions tunes the HTTP client behind a Fetcher
type FetchOptions struct {
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
	UserAgent    string

	// Transport is the round tripper beneath the cache; nil uses the pooled default
	Transport http.RoundTripper
}

// DefaultFetchOptions mirrors the interactive use: a few quick retries, no hard timeout
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Retries:      3,
		RetryWaitMin: 250 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		UserAgent:    "tilecast",
	}
}

// Fetcher downloads the sheet export over HTTP with retries and conditional caching
type Fetcher struct {
	url       string
	userAgent string
	client    *retryablehttp.Client
}

// NewFetcher creates a fetcher for rawURL; spreadsheet edit links are rewritten to CSV exports
func NewFetcher(rawURL string, opts FetchOptions) *Fetcher {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.Retries
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.Logger = slog.Default()
	rc.ResponseLogHook = logResponse
	rc.HTTPClient.Timeout = opts.Timeout

	inner := opts.Transport
	if inner == nil {
		inner = rc.HTTPClient.Transport
	}
	rc.HTTPClient.Transport = newCacheTransport(inner)

	return &Fetcher{
		url:       ExportURL(rawURL),
		userAgent: opts.UserAgent,
		client:    rc,
	}
}

// URL returns the effective download URL
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch performs one GET and returns the body text
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrFetch, statusText(resp))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	slog.Debug("Sheet fetched", "url", f.url, "bytes", len(body), "cached", resp.Header.Get(httpcache.XFromCache) != "")
	return string(body), nil
}

// ExportURL rewrites a Google Sheets edit/view link to its CSV export form
// Other URLs are returned unchanged
func ExportURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host != "docs.google.com" {
		return raw
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// spreadsheets/d/<id>/<action>
	if len(parts) < 3 || parts[0] != "spreadsheets" || parts[1] != "d" {
		return raw
	}
	if len(parts) >= 4 && parts[3] == "export" {
		return raw
	}

	gid := u.Query().Get("gid")
	if gid == "" && strings.HasPrefix(u.Fragment, "gid=") {
		gid = strings.TrimPrefix(u.Fragment, "gid=")
	}

	q := url.Values{}
	q.Set("format", "csv")
	if gid != "" {
		q.Set("gid", gid)
	}
	out := url.URL{
		Scheme:   "https",
		Host:     u.Host,
		Path:     "/spreadsheets/d/" + parts[2] + "/export",
		RawQuery: q.Encode(),
	}
	return out.String()
}
