package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Session is one scraping session: a single stealth page borrowed from
// the process-wide Chrome. Sessions are per-request, never pooled, and
// must be closed on every exit path.
type Session struct {
	Page *rod.Page
	mgr  *Manager
}

// NewSession opens a stealth page and navigates it to pageURL within
// the given timeout. On any failure the page is closed before returning.
func NewSession(ctx context.Context, mgr *Manager, pageURL string, navTimeout time.Duration) (*Session, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: manager not started")
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	if blocked := blockedTypes(mgr.cfg.ResourceBlocking); len(blocked) > 0 {
		blockResources(page, blocked)
	}

	navCtx, cancel := context.WithTimeout(ctx, navTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		// The page may still be usable; extraction applies its own waits.
		mgr.cfg.Logger.Warn("browser: wait load", "url", pageURL, "error", err)
	}

	return &Session{Page: page, mgr: mgr}, nil
}

// Close closes the session's page. Safe to call more than once.
func (s *Session) Close() {
	if s.Page != nil {
		s.Page.Close()
		s.Page = nil
	}
}

// blockedTypes maps config names to the CDP resource types a scrape
// can live without. A puzzle page is DOM plus the script that fills
// the grid in; everything else is dead weight. Unknown names are
// ignored rather than rejected so a stale config entry cannot stop
// scraping.
func blockedTypes(names []string) map[proto.NetworkResourceType]bool {
	blocked := make(map[proto.NetworkResourceType]bool, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case "images":
			blocked[proto.NetworkResourceTypeImage] = true
		case "fonts":
			blocked[proto.NetworkResourceTypeFont] = true
		case "media":
			blocked[proto.NetworkResourceTypeMedia] = true
		case "stylesheets":
			blocked[proto.NetworkResourceTypeStylesheet] = true
		}
	}
	return blocked
}

// blockResources fails requests of the blocked types before they leave
// the browser, for the lifetime of the session's page.
func blockResources(page *rod.Page, blocked map[proto.NetworkResourceType]bool) {
	router := page.HijackRequests()
	router.MustAdd("*", func(h *rod.Hijack) {
		if blocked[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
}
