package webpbn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

const sampleExport = `catalogue "webpbn.com #662"
title "Sample"
by "Someone"
copyright "none"
width 3
height 3

rows
2
2
1

columns
1,1
2
1
`

const sampleExportWithGoal = sampleExport + `
goal "110011100"
`

func newClient(baseURL string) *Client {
	return New(Config{BaseURL: baseURL})
}

func TestFetch_Success(t *testing.T) {
	// WHAT: A well-formed export decodes into a normalized puzzle with
	// source metadata attached.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	p, err := newClient(srv.URL).Fetch(context.Background(), "662", false)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if p.ID != "662" || p.Source != SourceName {
		t.Errorf("identity: id=%q source=%q", p.ID, p.Source)
	}
	if p.Width != 3 || p.Height != 3 {
		t.Errorf("dimensions: %dx%d", p.Width, p.Height)
	}
	if p.HasSolution() {
		t.Error("no solution was requested or served")
	}
}

func TestFetch_URLConstruction(t *testing.T) {
	// WHAT: The export URL is deterministic: zero-padded ID in the
	// path, raw ID and format selector in the query, Referer set.
	// WHY: This is the upstream contract; a silent change here breaks
	// every fetch.
	var gotPath, gotReferer string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte(sampleExportWithGoal))
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).Fetch(context.Background(), "662", true); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/export.cgi/webpbn00000662.non" {
		t.Errorf("path: %s", gotPath)
	}
	if gotQuery["fmt"][0] != "ss" || gotQuery["id"][0] != "662" {
		t.Errorf("query: %v", gotQuery)
	}
	if gotQuery["ss_soln"][0] != "on" {
		t.Errorf("solution param missing: %v", gotQuery)
	}
	if gotReferer != exportReferer {
		t.Errorf("referer: %s", gotReferer)
	}
}

func TestFetch_NoSolutionParamWithoutRequest(t *testing.T) {
	// WHAT: wantSolution=false sends no soln parameter upstream.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("ss_soln") {
			t.Error("ss_soln sent without a solution request")
		}
		w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	if _, err := newClient(srv.URL).Fetch(context.Background(), "662", false); err != nil {
		t.Fatalf("fetch: %v", err)
	}
}

func TestFetch_Solution(t *testing.T) {
	// WHAT: The export's goal field becomes the solution matrix.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleExportWithGoal))
	}))
	defer srv.Close()

	p, err := newClient(srv.URL).Fetch(context.Background(), "662", true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !p.HasSolution() {
		t.Fatal("solution missing")
	}
	if !p.Solution[0][0] || p.Solution[2][2] {
		t.Errorf("solution content wrong: %v", p.Solution)
	}
}

func TestFetch_SolutionAbsentUpstream(t *testing.T) {
	// WHAT: wantSolution=true with a goal-less export is ErrParse.
	// WHY: Never return a silently solution-less puzzle when one was
	// explicitly asked for.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Fetch(context.Background(), "662", true)
	if !errors.Is(err, puzzle.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestFetch_NotFoundBody(t *testing.T) {
	// WHAT: webpbn reports unknown IDs as HTTP 200 with a prose body;
	// that maps to ErrNotFound.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("No such puzzle was found in the database."))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Fetch(context.Background(), "99999999", false)
	if !errors.Is(err, puzzle.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFetch_HTTPErrors(t *testing.T) {
	// WHAT: 404 is ErrNotFound; other non-200s are ErrUnavailable.
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, puzzle.ErrNotFound},
		{http.StatusInternalServerError, puzzle.ErrUnavailable},
		{http.StatusBadGateway, puzzle.ErrUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := newClient(srv.URL).Fetch(context.Background(), "662", false)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
		srv.Close()
	}
}

func TestFetch_Timeout(t *testing.T) {
	// WHAT: A slow upstream surfaces as ErrUnavailable, never a hang.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(sampleExport))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Fetch(context.Background(), "662", false)
	if !errors.Is(err, puzzle.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestFetch_GarbageBody(t *testing.T) {
	// WHAT: A long response that is neither an error page nor a puzzle
	// is ErrParse.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("<html>not a puzzle</html>\n", 50)))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Fetch(context.Background(), "662", false)
	if !errors.Is(err, puzzle.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestFetch_BadID(t *testing.T) {
	// WHAT: Non-numeric IDs cannot exist on webpbn and short-circuit
	// as ErrNotFound without an upstream call.
	_, err := newClient("http://127.0.0.1:1").Fetch(context.Background(), "abc", false)
	if !errors.Is(err, puzzle.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestErrorBody(t *testing.T) {
	// WHAT: webpbn's prose error shapes are recognized; a plausible
	// puzzle body is not.
	if errorBody([]byte(sampleExport)) != "" {
		t.Error("sample export misclassified as error")
	}
	if errorBody([]byte("No such puzzle")) == "" {
		t.Error("not-found body missed")
	}
	if errorBody([]byte("Error: something broke")) == "" {
		t.Error("short error body missed")
	}
	if errorBody([]byte("   \n")) == "" {
		t.Error("empty body missed")
	}
}
