// CLAUDE:SUMMARY HTTP handlers: download (attachment) and content (inline) routes, taxonomy-to-status mapping.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
	"github.com/nonogram-ai/nonogram-downloader/puzzle/format"
	"github.com/nonogram-ai/nonogram-downloader/retrieve"
)

// retriever is what the handlers need from the pipeline; the concrete
// retrieve.Service satisfies it.
type retriever interface {
	Retrieve(ctx context.Context, req retrieve.Request) (*retrieve.Document, error)
}

type server struct {
	svc            retriever
	requestTimeout time.Duration
	logger         *slog.Logger
}

func (s *server) routes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/download/{puzzleID}", s.handlePuzzle(true))
	r.Get("/puzzle/{puzzleID}/content", s.handlePuzzle(false))
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Nonogram Downloader API",
		"endpoints": []string{
			"/download/{puzzle_id}",
			"/puzzle/{puzzle_id}/content",
		},
		"sources": []string{string(retrieve.Webpbn), string(retrieve.NonogramsOrg)},
		"formats": []string{string(format.NON), string(format.XML)},
	})
}

// handlePuzzle serves both routes; they differ only in response
// framing (attachment vs inline), not in pipeline behavior.
func (s *server) handlePuzzle(attachment bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
		defer cancel()

		doc, err := s.svc.Retrieve(ctx, req)
		if err != nil {
			status := statusFor(err)
			s.logger.Warn("retrieve failed",
				"id", req.ID, "source", req.Source, "status", status, "error", err)
			writeError(w, status, err)
			return
		}

		w.Header().Set("Content-Type", doc.MIME)
		if attachment {
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", doc.Filename))
		}
		w.WriteHeader(http.StatusOK)
		w.Write(doc.Bytes)
	}
}

func parseRequest(r *http.Request) (retrieve.Request, error) {
	id := chi.URLParam(r, "puzzleID")
	if id == "" {
		return retrieve.Request{}, errors.New("puzzle ID is required")
	}

	q := r.URL.Query()

	src := q.Get("source")
	if src == "" {
		src = string(retrieve.Webpbn)
	}
	source, err := retrieve.ParseSource(src)
	if err != nil {
		return retrieve.Request{}, err
	}

	fm := q.Get("format")
	if fm == "" {
		fm = string(format.NON)
	}
	f, err := format.ParseFormat(fm)
	if err != nil {
		return retrieve.Request{}, err
	}

	return retrieve.Request{
		ID:              id,
		Source:          source,
		Format:          f,
		IncludeSolution: q.Get("include_solution") == "true",
	}, nil
}

// statusFor maps the error taxonomy to HTTP status codes so callers can
// tell "puzzle does not exist" from "upstream is flaky or changed".
func statusFor(err error) int {
	switch {
	case errors.Is(err, puzzle.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, puzzle.ErrRenderTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, puzzle.ErrUnavailable), errors.Is(err, puzzle.ErrParse):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		// Client went away; 499 by nginx convention.
		return 499
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
