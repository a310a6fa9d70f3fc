package nonorg

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

func TestParseSize(t *testing.T) {
	// WHAT: "Size: WxH" is pulled out of the info table text.
	w, h, ok := parseSize("Author: someone\nSize: 25x30\nRating: 4.5")
	if !ok || w != 25 || h != 30 {
		t.Errorf("got %dx%d ok=%v", w, h, ok)
	}
	if _, _, ok := parseSize("no size here"); ok {
		t.Error("matched text without a size field")
	}
}

func TestFoldColumnClues(t *testing.T) {
	// WHAT: The column-clue table is folded tier by tier into one
	// sequence per puzzle column, skipping the padding cells above
	// short sequences.
	// WHY: This is the shape nonograms.org renders: clue tiers as table
	// rows, columns aligned with puzzle columns.
	tiers := [][]string{
		{"", "2", ""},
		{"1", "1", "3"},
	}
	got, err := foldColumnClues(tiers)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	want := [][]int{{1}, {2, 1}, {3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFoldColumnClues_Malformed(t *testing.T) {
	// WHAT: Non-numeric cells and empty tables are ErrParse.
	if _, err := foldColumnClues(nil); !errors.Is(err, puzzle.ErrParse) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := foldColumnClues([][]string{{"1", "x"}}); !errors.Is(err, puzzle.ErrParse) {
		t.Errorf("non-numeric: got %v", err)
	}
}

func TestRowClues(t *testing.T) {
	// WHAT: Each row-clue table row becomes one left-padded sequence.
	rows := [][]string{
		{"", "", "4"},
		{"1", "2", "1"},
		{"", "", ""},
	}
	got, err := rowClues(rows)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := [][]int{{4}, {1, 2, 1}, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseSolutionLines(t *testing.T) {
	// WHAT: Revealed answer rows decode into a matrix of the declared
	// dimensions; any disagreement is ErrParse.
	sol, err := parseSolutionLines([]string{"101", "010"}, 3, 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !sol[0][0] || sol[0][1] || !sol[1][1] {
		t.Errorf("matrix wrong: %v", sol)
	}

	cases := []struct {
		name  string
		lines []string
	}{
		{"row count", []string{"101"}},
		{"row width", []string{"10", "010"}},
		{"bad marker", []string{"1x1", "010"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseSolutionLines(tc.lines, 3, 2); !errors.Is(err, puzzle.ErrParse) {
				t.Errorf("got %v, want ErrParse", err)
			}
		})
	}
}
