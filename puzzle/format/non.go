// CLAUDE:SUMMARY NON dialect codec: quoted header fields, rows/columns clue sections, optional goal block.
package format

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

// encodeNON writes the line-oriented NON dialect: quoted header fields,
// width/height, a clue section per axis, and an optional goal block with
// one line of 0/1 markers per grid row.
func encodeNON(p *puzzle.Puzzle, includeSolution bool) []byte {
	var b bytes.Buffer

	if p.Source != "" && p.ID != "" {
		fmt.Fprintf(&b, "catalogue \"%s #%s\"\n", p.Source, p.ID)
	}
	if p.Title != "" {
		fmt.Fprintf(&b, "title \"%s\"\n", p.Title)
	}
	if p.Author != "" {
		fmt.Fprintf(&b, "by \"%s\"\n", p.Author)
	}
	if p.Copyright != "" {
		fmt.Fprintf(&b, "copyright \"%s\"\n", p.Copyright)
	}
	fmt.Fprintf(&b, "width %d\n", p.Width)
	fmt.Fprintf(&b, "height %d\n", p.Height)

	b.WriteString("\nrows\n")
	for _, clues := range p.RowClues {
		b.WriteString(joinClues(clues))
		b.WriteByte('\n')
	}

	b.WriteString("\ncolumns\n")
	for _, clues := range p.ColClues {
		b.WriteString(joinClues(clues))
		b.WriteByte('\n')
	}

	if includeSolution {
		b.WriteString("\ngoal\n")
		for _, row := range p.Solution {
			for _, filled := range row {
				if filled {
					b.WriteByte('1')
				} else {
					b.WriteByte('0')
				}
			}
			b.WriteByte('\n')
		}
	}

	return b.Bytes()
}

// joinClues renders one clue sequence; an empty sequence is "0".
func joinClues(clues []int) string {
	if len(clues) == 0 {
		return "0"
	}
	parts := make([]string, len(clues))
	for i, c := range clues {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// DecodeNON parses a NON document into a Puzzle. It accepts both this
// package's output and webpbn's native export, which differs in two
// ways: extra header keys (license, color defs) and a single-line
// quoted goal string of width*height digits instead of a goal block.
func DecodeNON(data []byte) (*puzzle.Puzzle, error) {
	p := &puzzle.Puzzle{}
	lines := strings.Split(string(data), "\n")

	var goalFlat string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		key, rest, _ := strings.Cut(line, " ")
		switch key {
		case "width":
			v, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("%w: bad width %q", puzzle.ErrParse, rest)
			}
			p.Width = v
		case "height":
			v, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("%w: bad height %q", puzzle.ErrParse, rest)
			}
			p.Height = v
		case "title":
			p.Title = unquote(rest)
		case "by":
			p.Author = unquote(rest)
		case "copyright":
			p.Copyright = unquote(rest)
		case "rows":
			clues, next, err := parseClueSection(lines, i+1)
			if err != nil {
				return nil, err
			}
			p.RowClues = clues
			i = next - 1
		case "columns":
			clues, next, err := parseClueSection(lines, i+1)
			if err != nil {
				return nil, err
			}
			p.ColClues = clues
			i = next - 1
		case "goal":
			if rest != "" {
				// webpbn inline form: goal "0110...".
				goalFlat = unquote(rest)
			} else {
				block, next := collectBlock(lines, i+1)
				goalFlat = strings.Join(block, "")
				i = next - 1
			}
		}
	}

	if p.Width == 0 || p.Height == 0 || p.RowClues == nil || p.ColClues == nil {
		return nil, fmt.Errorf("%w: NON document missing width/height/rows/columns", puzzle.ErrParse)
	}

	if goalFlat != "" {
		sol, err := parseGoal(goalFlat, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		p.Solution = sol
	}

	if err := p.CheckDimensions(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseClueSection reads comma-separated clue lines starting at start
// until a blank line or a section keyword, returning the clues and the
// index of the first unconsumed line.
func parseClueSection(lines []string, start int) ([][]int, int, error) {
	var clues [][]int
	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		if line == "rows" || line == "columns" || line == "goal" || strings.HasPrefix(line, "goal ") {
			break
		}
		seq, err := parseClueLine(line)
		if err != nil {
			return nil, 0, err
		}
		clues = append(clues, seq)
	}
	return clues, i, nil
}

func parseClueLine(line string) ([]int, error) {
	if line == "0" {
		return nil, nil
	}
	parts := strings.Split(line, ",")
	seq := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: bad clue value %q", puzzle.ErrParse, part)
		}
		seq = append(seq, v)
	}
	return seq, nil
}

// collectBlock gathers non-blank lines until the next blank line.
func collectBlock(lines []string, start int) ([]string, int) {
	var block []string
	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		block = append(block, line)
	}
	return block, i
}

// parseGoal decodes a flat width*height digit string into a matrix.
func parseGoal(flat string, width, height int) ([][]bool, error) {
	if len(flat) != width*height {
		return nil, fmt.Errorf("%w: goal has %d cells for %dx%d grid", puzzle.ErrParse, len(flat), width, height)
	}
	sol := make([][]bool, height)
	for r := 0; r < height; r++ {
		row := make([]bool, width)
		for c := 0; c < width; c++ {
			switch flat[r*width+c] {
			case '1':
				row[c] = true
			case '0':
				row[c] = false
			default:
				return nil, fmt.Errorf("%w: bad goal marker %q", puzzle.ErrParse, flat[r*width+c])
			}
		}
		sol[r] = row
	}
	return sol, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
