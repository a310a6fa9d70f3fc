// Package puzzle defines the normalized in-memory nonogram representation
// shared by the source adapters and the format codecs.
//
// A Puzzle lives for one request: an adapter constructs it, a codec
// serializes it, and it is discarded. Nothing here persists state.
package puzzle

import "fmt"

// Puzzle is a normalized nonogram: grid dimensions, ordered clue
// sequences for every row and column, and an optional solution matrix.
type Puzzle struct {
	// ID is the upstream puzzle identifier, unique only within Source.
	ID     string
	Source string

	Title     string
	Author    string
	AuthorID  string
	Copyright string
	Note      string

	Width  int
	Height int

	// RowClues and ColClues hold one ordered run-length sequence per
	// row/column. An empty row or column is a nil/empty slice, not {0}.
	RowClues [][]int
	ColClues [][]int

	// Solution marks filled cells, Height rows of Width cells.
	// Nil when the adapter did not fetch (or could not obtain) one.
	Solution [][]bool
}

// HasSolution reports whether a solution matrix is attached.
func (p *Puzzle) HasSolution() bool { return p.Solution != nil }

// CheckDimensions verifies that the clue lists and solution matrix agree
// with Width and Height. Adapters call this before handing a Puzzle to
// the caller so malformed upstream data surfaces as ErrParse instead of
// an index panic further down the pipeline.
func (p *Puzzle) CheckDimensions() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrParse, p.Width, p.Height)
	}
	if len(p.RowClues) != p.Height {
		return fmt.Errorf("%w: %d row clue lines for height %d", ErrParse, len(p.RowClues), p.Height)
	}
	if len(p.ColClues) != p.Width {
		return fmt.Errorf("%w: %d column clue lines for width %d", ErrParse, len(p.ColClues), p.Width)
	}
	if p.Solution != nil {
		if len(p.Solution) != p.Height {
			return fmt.Errorf("%w: solution has %d rows for height %d", ErrParse, len(p.Solution), p.Height)
		}
		for i, row := range p.Solution {
			if len(row) != p.Width {
				return fmt.Errorf("%w: solution row %d has %d cells for width %d", ErrParse, i, len(row), p.Width)
			}
		}
	}
	return nil
}
