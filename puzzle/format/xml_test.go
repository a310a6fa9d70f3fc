package format

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestEncodeXML_Structure(t *testing.T) {
	// WHAT: XML output is well-formed pbn: puzzleset/puzzle with two
	// clue groups whose line counts match the grid dimensions.
	out, err := Encode(testPuzzle(), XML, false)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(out)

	if !strings.HasPrefix(text, "<?xml version=\"1.0\"?>") {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(text, "pbn-0.3.dtd") {
		t.Error("missing pbn DOCTYPE")
	}

	// Strip declaration + doctype and parse the document proper.
	body := text[strings.Index(text, "<puzzleset"):]
	var doc xmlPuzzleSet
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}

	if doc.Puzzle.Type != "grid" || doc.Puzzle.DefaultColor != "black" {
		t.Errorf("puzzle attrs: type=%q defaultcolor=%q", doc.Puzzle.Type, doc.Puzzle.DefaultColor)
	}
	if doc.Puzzle.ID != "#7 (v.1)" {
		t.Errorf("id: %q", doc.Puzzle.ID)
	}
	if doc.Puzzle.AuthorID != "unknown" {
		t.Errorf("authorid: got %q, want the %q default", doc.Puzzle.AuthorID, "unknown")
	}
	// note is always present, even when empty.
	if !strings.Contains(body, "<note>") {
		t.Error("note element missing")
	}
	if len(doc.Puzzle.Clues) != 2 {
		t.Fatalf("got %d clue groups, want 2", len(doc.Puzzle.Clues))
	}
	for _, clues := range doc.Puzzle.Clues {
		switch clues.Type {
		case "columns":
			if len(clues.Lines) != 3 {
				t.Errorf("column lines: got %d, want 3", len(clues.Lines))
			}
		case "rows":
			if len(clues.Lines) != 3 {
				t.Errorf("row lines: got %d, want 3", len(clues.Lines))
			}
		default:
			t.Errorf("unexpected clues type %q", clues.Type)
		}
	}
	if doc.Puzzle.Clues[0].Lines[0].Counts[0] != 1 {
		t.Errorf("first column clue: got %v", doc.Puzzle.Clues[0].Lines[0].Counts)
	}
}

func TestEncodeXML_SolutionSuppressed(t *testing.T) {
	// WHAT: includeSolution=false emits no solution element even when
	// the puzzle carries one.
	out, err := Encode(testPuzzle(), XML, false)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(string(out), "<solution") {
		t.Errorf("solution element leaked:\n%s", out)
	}
}

func TestEncodeXML_SolutionImage(t *testing.T) {
	// WHAT: includeSolution=true embeds a goal image with one |…| line
	// of ./X markers per grid row.
	out, err := Encode(testPuzzle(), XML, true)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(out)
	for _, want := range []string{"|XX.|", "|.XX|", "|X..|"} {
		if !strings.Contains(text, want) {
			t.Errorf("solution image missing %q:\n%s", want, text)
		}
	}
}
