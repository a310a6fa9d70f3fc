// CLAUDE:SUMMARY Direct-fetch adapter for webpbn.com: export.cgi GET, error-body detection, NON decode.
// Package webpbn fetches puzzles from webpbn.com, which exposes a stable
// export endpoint per puzzle ID. The export is requested in the site's
// NON form and decoded into the normalized model; solutions ride along
// as the export's goal field when asked for.
package webpbn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
	"github.com/nonogram-ai/nonogram-downloader/puzzle/format"
)

// SourceName identifies this adapter in filenames and puzzle metadata.
const SourceName = "webpbn"

// Upstream contract. Everything site-specific lives in this block so an
// upstream change touches one place.
const (
	defaultBaseURL = "https://webpbn.com"
	exportPath     = "/export.cgi/webpbn%08d.non"
	exportReferer  = "https://webpbn.com/export.cgi"
	// fmtParam selects webpbn's "ss" export, its NON-dialect form.
	fmtParam  = "ss"
	solnParam = "ss_soln"

	// Error bodies come back as HTTP 200 with prose instead of a puzzle.
	notFoundMarker = "No such puzzle"
	errorMarker    = "Error"
	maxErrorLen    = 500
	minPuzzleLen   = 20
)

// Config configures the Client.
type Config struct {
	BaseURL   string        // Default: https://webpbn.com.
	Timeout   time.Duration // HTTP timeout. Default: 30s.
	MaxBytes  int64         // Max response body size. Default: 2MB.
	UserAgent string
	// HTTPClient overrides the built client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 2 << 20
	}
	if c.UserAgent == "" {
		c.UserAgent = "nonogram-downloader/1.0"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client fetches puzzles from webpbn's export endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Client.
func New(cfg Config) *Client {
	cfg.defaults()
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: client}
}

// Fetch retrieves one puzzle. When wantSolution is set, the export is
// asked to embed its goal and the decoded puzzle must carry it.
func (c *Client) Fetch(ctx context.Context, id string, wantSolution bool) (*puzzle.Puzzle, error) {
	exportURL, err := c.exportURL(id, wantSolution)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("webpbn: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Referer", exportReferer)

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", puzzle.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: webpbn puzzle %s (HTTP 404)", puzzle.ErrNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: webpbn returned HTTP %d", puzzle.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", puzzle.ErrUnavailable, err)
	}

	if reason := errorBody(body); reason != "" {
		return nil, fmt.Errorf("%w: webpbn puzzle %s: %s", puzzle.ErrNotFound, id, reason)
	}

	p, err := format.DecodeNON(body)
	if err != nil {
		return nil, fmt.Errorf("webpbn: puzzle %s: %w", id, err)
	}
	p.ID = id
	p.Source = SourceName
	if p.Copyright == "" {
		p.Copyright = "(c) webpbn.com"
	}

	if wantSolution && !p.HasSolution() {
		return nil, fmt.Errorf("%w: webpbn export for %s has no goal", puzzle.ErrParse, id)
	}

	c.cfg.Logger.Debug("webpbn: fetched",
		"id", id, "size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"solution", p.HasSolution())

	return p, nil
}

// exportURL builds the deterministic export URL for an ID. webpbn wants
// the ID zero-padded to eight digits in the path and raw in the query.
func (c *Client) exportURL(id string, wantSolution bool) (string, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("%w: webpbn IDs are positive integers, got %q", puzzle.ErrNotFound, id)
	}

	q := url.Values{}
	q.Set("go", "1")
	q.Set("sid", "")
	q.Set("id", id)
	q.Set("fmt", fmtParam)
	if wantSolution {
		q.Set(solnParam, "on")
	}

	return c.cfg.BaseURL + fmt.Sprintf(exportPath, n) + "?" + q.Encode(), nil
}

// errorBody recognizes webpbn's prose error responses, which come back
// as HTTP 200. Returns a short reason, or "" for a plausible puzzle.
func errorBody(body []byte) string {
	text := string(body)
	if strings.Contains(text, notFoundMarker) {
		return "no such puzzle"
	}
	if strings.Contains(text, errorMarker) && len(text) < maxErrorLen {
		return "upstream error page"
	}
	if len(strings.TrimSpace(text)) < minPuzzleLen {
		return "empty response"
	}
	return ""
}
