// Package format serializes puzzles into the two supported output
// dialects: NON (line-oriented clue lists) and the pbn XML dialect.
package format

import (
	"fmt"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

// Format identifies an output dialect.
type Format string

const (
	NON Format = "non"
	XML Format = "xml"
)

// ParseFormat maps a request parameter to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "non":
		return NON, nil
	case "xml":
		return XML, nil
	}
	return "", fmt.Errorf("format: unknown format %q", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string { return string(f) }

// MIME returns the media type used when serving a document in this format.
func (f Format) MIME() string {
	if f == XML {
		return "application/xml"
	}
	return "application/octet-stream"
}

// Encode serializes p in the given format. The solution section is
// emitted only when includeSolution is true, regardless of whether the
// adapter fetched one.
func Encode(p *puzzle.Puzzle, f Format, includeSolution bool) ([]byte, error) {
	if len(p.RowClues) == 0 || len(p.ColClues) == 0 {
		return nil, fmt.Errorf("%w: puzzle has no clue sequences", puzzle.ErrEncoding)
	}
	if includeSolution && !p.HasSolution() {
		return nil, fmt.Errorf("%w: solution requested but not present", puzzle.ErrEncoding)
	}
	switch f {
	case NON:
		return encodeNON(p, includeSolution), nil
	case XML:
		return encodeXML(p, includeSolution)
	}
	return nil, fmt.Errorf("%w: unknown format %q", puzzle.ErrEncoding, f)
}
