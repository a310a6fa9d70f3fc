// CLAUDE:SUMMARY Rendered-page adapter for nonograms.org: rod session per request, bounded waits, optional reveal phase.
// Package nonorg scrapes puzzles from nonograms.org, which renders its
// grid and clues client-side and offers no stable endpoint. Each fetch
// drives one headless-browser session: navigate, wait (bounded) for the
// grid table, read the clue tables, and optionally trigger the site's
// reveal control to read the solution.
//
// One session per request, closed on every exit path. Sessions are not
// pooled; request volume is low and the page structure is the fragile
// part of this system.
package nonorg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nonogram-ai/nonogram-downloader/internal/browser"
	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

// SourceName identifies this adapter in filenames and puzzle metadata.
const SourceName = "nonograms_org"

// Config configures the Scraper.
type Config struct {
	// Manager is the process-wide browser manager. Required.
	Manager *browser.Manager

	BaseURL string // Default: https://www.nonograms.org.

	// NavigateTimeout bounds page navigation. Default: 30s.
	NavigateTimeout time.Duration
	// DataTimeout bounds the wait for the grid table to be populated
	// by the page's script. Default: 10s.
	DataTimeout time.Duration
	// RevealTimeout bounds the solution-reveal phase. Default: 10s.
	RevealTimeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.DataTimeout <= 0 {
		c.DataTimeout = 10 * time.Second
	}
	if c.RevealTimeout <= 0 {
		c.RevealTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Scraper fetches puzzles by driving a headless browser.
type Scraper struct {
	cfg Config
}

// New creates a Scraper. The Manager must be started before Fetch.
func New(cfg Config) *Scraper {
	cfg.defaults()
	return &Scraper{cfg: cfg}
}

// Fetch retrieves one puzzle. The reveal phase runs only when
// wantSolution is set and is additive: clue extraction never depends on
// it, but its failure fails the request when a solution was asked for.
func (s *Scraper) Fetch(ctx context.Context, id string, wantSolution bool) (*puzzle.Puzzle, error) {
	pageURL := s.cfg.BaseURL + puzzlePath + id

	sess, err := browser.NewSession(ctx, s.cfg.Manager, pageURL, s.cfg.NavigateTimeout)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", puzzle.ErrUnavailable, err)
	}
	defer sess.Close()

	page := sess.Page

	// Unknown IDs render an error block instead of the puzzle.
	has, el, err := page.Has(selError)
	if err != nil {
		return nil, fmt.Errorf("%w: query error block: %v", puzzle.ErrUnavailable, err)
	}
	if has {
		detail := ""
		if text, err := el.Text(); err == nil {
			detail = ": " + text
		}
		return nil, fmt.Errorf("%w: nonograms.org puzzle %s%s", puzzle.ErrNotFound, id, detail)
	}

	// Bounded wait for the script-populated grid, not a fixed sleep.
	dataCtx, cancel := context.WithTimeout(ctx, s.cfg.DataTimeout)
	defer cancel()
	if _, err := page.Context(dataCtx).Element(selTable); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: grid table never appeared for puzzle %s", puzzle.ErrRenderTimeout, id)
	}

	p, err := s.extractPuzzle(page, id)
	if err != nil {
		return nil, err
	}

	if wantSolution {
		sol, err := s.revealSolution(ctx, page, p.Width, p.Height)
		if err != nil {
			return nil, fmt.Errorf("nonorg: puzzle %s solution: %w", id, err)
		}
		p.Solution = sol
	}

	if err := p.CheckDimensions(); err != nil {
		return nil, fmt.Errorf("nonorg: puzzle %s: %w", id, err)
	}

	s.cfg.Logger.Debug("nonorg: scraped",
		"id", id, "size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"solution", wantSolution)

	return p, nil
}

// extractPuzzle reads clues and metadata from the rendered grid.
func (s *Scraper) extractPuzzle(page *rod.Page, id string) (*puzzle.Puzzle, error) {
	colTiers, err := tableCellText(page, selColClues)
	if err != nil {
		return nil, fmt.Errorf("nonorg: puzzle %s: %w", id, err)
	}
	rowCells, err := tableCellText(page, selRowClues)
	if err != nil {
		return nil, fmt.Errorf("nonorg: puzzle %s: %w", id, err)
	}

	colSeqs, err := foldColumnClues(colTiers)
	if err != nil {
		return nil, fmt.Errorf("nonorg: puzzle %s: %w", id, err)
	}
	rowSeqs, err := rowClues(rowCells)
	if err != nil {
		return nil, fmt.Errorf("nonorg: puzzle %s: %w", id, err)
	}

	p := &puzzle.Puzzle{
		ID:        id,
		Source:    SourceName,
		Title:     elementText(page, selTitle),
		Author:    "Unknown",
		AuthorID:  "unknown",
		Copyright: "(c) nonograms.org",
		RowClues:  rowSeqs,
		ColClues:  colSeqs,
	}

	// Prefer the declared size; fall back to clue-table dimensions.
	if w, h, ok := parseSize(elementText(page, selInfoTable)); ok {
		p.Width, p.Height = w, h
	} else {
		p.Width, p.Height = len(colSeqs), len(rowSeqs)
	}

	return p, nil
}

// revealSolution triggers the site's reveal control and reads the
// answer grid once it renders.
func (s *Scraper) revealSolution(ctx context.Context, page *rod.Page, width, height int) ([][]bool, error) {
	has, reveal, err := page.Has(selReveal)
	if err != nil || !has {
		return nil, fmt.Errorf("%w: reveal control not found", puzzle.ErrParse)
	}
	if err := reveal.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("%w: reveal click: %v", puzzle.ErrParse, err)
	}

	revealCtx, cancel := context.WithTimeout(ctx, s.cfg.RevealTimeout)
	defer cancel()
	if _, err := page.Context(revealCtx).Element(selAnswer); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: answer grid never appeared", puzzle.ErrRenderTimeout)
	}

	res, err := page.Context(revealCtx).Eval(solutionScript)
	if err != nil {
		return nil, fmt.Errorf("%w: read answer grid: %v", puzzle.ErrParse, err)
	}
	if res.Value.Nil() {
		return nil, fmt.Errorf("%w: answer grid missing after reveal", puzzle.ErrParse)
	}

	lines := make([]string, 0, height)
	for _, v := range res.Value.Arr() {
		lines = append(lines, v.Str())
	}
	return parseSolutionLines(lines, width, height)
}

// tableCellText reads a table's cells as text, one slice per table row.
// The table must already be present; no waiting happens here.
func tableCellText(page *rod.Page, selector string) ([][]string, error) {
	has, table, err := page.Has(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", puzzle.ErrParse, selector, err)
	}
	if !has {
		return nil, fmt.Errorf("%w: %s not found", puzzle.ErrParse, selector)
	}

	trs, err := table.Elements("tr")
	if err != nil {
		return nil, fmt.Errorf("%w: rows of %s: %v", puzzle.ErrParse, selector, err)
	}

	out := make([][]string, 0, len(trs))
	for _, tr := range trs {
		tds, err := tr.Elements("td")
		if err != nil {
			return nil, fmt.Errorf("%w: cells of %s: %v", puzzle.ErrParse, selector, err)
		}
		row := make([]string, 0, len(tds))
		for _, td := range tds {
			text, err := td.Text()
			if err != nil {
				return nil, fmt.Errorf("%w: cell text of %s: %v", puzzle.ErrParse, selector, err)
			}
			row = append(row, text)
		}
		out = append(out, row)
	}
	return out, nil
}

// elementText returns an element's text, or "" when absent.
func elementText(page *rod.Page, selector string) string {
	has, el, err := page.Has(selector)
	if err != nil || !has {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return text
}
