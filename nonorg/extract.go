// CLAUDE:SUMMARY Pure extraction helpers: clue-table folding, size parsing, solution matrix decoding.
package nonorg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

var sizeRe = regexp.MustCompile(`Size:\s*(\d+)x(\d+)`)

// parseSize extracts "Size: WxH" from the info table text.
func parseSize(text string) (width, height int, ok bool) {
	m := sizeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	return width, height, true
}

// foldColumnClues converts the column-clue table (one cell grid row per
// clue tier, columns aligned with puzzle columns) into one clue
// sequence per puzzle column. Empty cells are padding above short
// sequences and are skipped.
func foldColumnClues(tiers [][]string) ([][]int, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: empty column clue table", puzzle.ErrParse)
	}
	width := len(tiers[0])
	clues := make([][]int, width)
	for _, tier := range tiers {
		for i, cell := range tier {
			if i >= width {
				return nil, fmt.Errorf("%w: ragged column clue table", puzzle.ErrParse)
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: column clue %q is not a number", puzzle.ErrParse, cell)
			}
			clues[i] = append(clues[i], v)
		}
	}
	return clues, nil
}

// rowClues converts the row-clue table (one cell grid row per puzzle
// row, left-padded with empty cells) into one clue sequence per row.
func rowClues(rows [][]string) ([][]int, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty row clue table", puzzle.ErrParse)
	}
	clues := make([][]int, 0, len(rows))
	for _, row := range rows {
		var seq []int
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row clue %q is not a number", puzzle.ErrParse, cell)
			}
			seq = append(seq, v)
		}
		clues = append(clues, seq)
	}
	return clues, nil
}

// parseSolutionLines decodes the revealed answer grid (one 0/1 string
// per row) into a matrix of the expected dimensions.
func parseSolutionLines(lines []string, width, height int) ([][]bool, error) {
	if len(lines) != height {
		return nil, fmt.Errorf("%w: solution has %d rows for height %d", puzzle.ErrParse, len(lines), height)
	}
	sol := make([][]bool, height)
	for r, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: solution row %d has %d cells for width %d", puzzle.ErrParse, r, len(line), width)
		}
		row := make([]bool, width)
		for c := 0; c < width; c++ {
			switch line[c] {
			case '1':
				row[c] = true
			case '0':
				row[c] = false
			default:
				return nil, fmt.Errorf("%w: bad solution marker %q", puzzle.ErrParse, line[c])
			}
		}
		sol[r] = row
	}
	return sol, nil
}
