package format

import (
	"errors"
	"testing"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

func TestParseFormat(t *testing.T) {
	// WHAT: Only the two supported formats parse.
	if f, err := ParseFormat("non"); err != nil || f != NON {
		t.Errorf("non: %v %v", f, err)
	}
	if f, err := ParseFormat("xml"); err != nil || f != XML {
		t.Errorf("xml: %v %v", f, err)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("pdf should not parse")
	}
}

func TestFormatMIME(t *testing.T) {
	if NON.MIME() != "application/octet-stream" {
		t.Errorf("NON mime: %s", NON.MIME())
	}
	if XML.MIME() != "application/xml" {
		t.Errorf("XML mime: %s", XML.MIME())
	}
}

func TestEncode_NoClues(t *testing.T) {
	// WHAT: A puzzle without clue sequences is an incomplete adapter
	// result and fails with ErrEncoding.
	p := &puzzle.Puzzle{ID: "1", Width: 3, Height: 3}
	if _, err := Encode(p, NON, false); !errors.Is(err, puzzle.ErrEncoding) {
		t.Errorf("got %v, want ErrEncoding", err)
	}
}

func TestEncode_MissingSolution(t *testing.T) {
	// WHAT: Asking to embed a solution the adapter never attached is an
	// encoding error, not a silently solution-less document.
	p := testPuzzle()
	p.Solution = nil
	if _, err := Encode(p, NON, true); !errors.Is(err, puzzle.ErrEncoding) {
		t.Errorf("got %v, want ErrEncoding", err)
	}
}
