// CLAUDE:SUMMARY pbn-0.3 XML codec: puzzleset/puzzle with clue lines, color defs, optional solution image.
package format

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/nonogram-ai/nonogram-downloader/puzzle"
)

const xmlHeader = "<?xml version=\"1.0\"?>\n<!DOCTYPE pbn SYSTEM \"https://webpbn.com/pbn-0.3.dtd\">\n"

type xmlPuzzleSet struct {
	XMLName xml.Name  `xml:"puzzleset"`
	Puzzle  xmlPuzzle `xml:"puzzle"`
}

type xmlPuzzle struct {
	Type         string       `xml:"type,attr"`
	DefaultColor string       `xml:"defaultcolor,attr"`
	Title        string       `xml:"title"`
	Author       string       `xml:"author"`
	AuthorID     string       `xml:"authorid"`
	Copyright    string       `xml:"copyright"`
	ID           string       `xml:"id"`
	Description  string       `xml:"description,omitempty"`
	Note         string       `xml:"note"`
	Colors       []xmlColor   `xml:"color"`
	Clues        []xmlClues   `xml:"clues"`
	Solution     *xmlSolution `xml:"solution"`
}

type xmlColor struct {
	Name  string `xml:"name,attr"`
	Char  string `xml:"char,attr"`
	Value string `xml:",chardata"`
}

type xmlClues struct {
	Type  string    `xml:"type,attr"`
	Lines []xmlLine `xml:"line"`
}

type xmlLine struct {
	Counts []int `xml:"count"`
}

type xmlSolution struct {
	Type  string `xml:"type,attr"`
	Image string `xml:"image"`
}

// encodeXML writes the pbn XML dialect. The solution, when embedded, is
// an image block with one |…| line of ./X markers per grid row.
func encodeXML(p *puzzle.Puzzle, includeSolution bool) ([]byte, error) {
	authorID := p.AuthorID
	if authorID == "" {
		authorID = "unknown"
	}

	doc := xmlPuzzleSet{
		Puzzle: xmlPuzzle{
			Type:         "grid",
			DefaultColor: "black",
			Title:        p.Title,
			Author:       p.Author,
			AuthorID:     authorID,
			Copyright:    p.Copyright,
			ID:           fmt.Sprintf("#%s (v.1)", p.ID),
			Note:         p.Note,
			Colors: []xmlColor{
				{Name: "white", Char: ".", Value: "FFFFFF"},
				{Name: "black", Char: "X", Value: "000000"},
			},
			Clues: []xmlClues{
				{Type: "columns", Lines: clueLines(p.ColClues)},
				{Type: "rows", Lines: clueLines(p.RowClues)},
			},
		},
	}
	if p.Source != "" {
		doc.Puzzle.Description = fmt.Sprintf("Nonogram puzzle from %s, ID: %s", p.Source, p.ID)
	}

	if includeSolution {
		doc.Puzzle.Solution = &xmlSolution{Type: "goal", Image: solutionImage(p.Solution)}
	}

	var b bytes.Buffer
	b.WriteString(xmlHeader)
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", puzzle.ErrEncoding, err)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func clueLines(clues [][]int) []xmlLine {
	lines := make([]xmlLine, len(clues))
	for i, seq := range clues {
		lines[i] = xmlLine{Counts: seq}
	}
	return lines
}

func solutionImage(sol [][]bool) string {
	var b bytes.Buffer
	b.WriteByte('\n')
	for _, row := range sol {
		b.WriteByte('|')
		for _, filled := range row {
			if filled {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
