// CLAUDE:SUMMARY Upstream contract for nonograms.org: URL template, selectors, reveal control, solution reader script.
package nonorg

// Upstream contract for nonograms.org. The site has no machine-readable
// endpoint, so everything below was discovered empirically from the
// rendered pages and is the part expected to break when the site
// changes. Keep every site-specific literal in this file.
const (
	defaultBaseURL = "https://www.nonograms.org"
	puzzlePath     = "/nonograms/i/"

	// selError appears instead of the puzzle for unknown IDs.
	selError = "div.error_block"

	// selTable is the puzzle grid container populated by the page's
	// client-side script; its appearance is the data-ready signal.
	selTable = "#nonogram_table"

	// Clue tables inside the grid container: .nmtt holds the column
	// clues (one table row per clue tier, top-aligned), .nmtl holds the
	// row clues (one table row per puzzle row).
	selColClues = "#nonogram_table .nmtt table"
	selRowClues = "#nonogram_table .nmtl table"

	selTitle = "#nonogram_title"

	// selInfoTable is the metadata table after the page heading; its
	// text carries a "Size: WxH" field.
	selInfoTable = "h1 + table"

	// selReveal triggers the site's own answer rendering; selAnswer is
	// the grid it renders into.
	selReveal = "#nonogram_answer"
	selAnswer = "#nonogram_answer_table"
)

// solutionScript reads the revealed answer grid from the DOM: one
// string of 0/1 markers per puzzle row, or null when the grid is absent.
const solutionScript = `() => {
	const tbl = document.querySelector('#nonogram_answer_table');
	if (!tbl) return null;
	const rows = [];
	for (const tr of tbl.querySelectorAll('tr')) {
		let line = '';
		for (const td of tr.querySelectorAll('td')) {
			const filled = td.classList.contains('cell_full') ||
				td.style.backgroundColor === 'rgb(0, 0, 0)';
			line += filled ? '1' : '0';
		}
		if (line.length > 0) rows.push(line);
	}
	return rows;
}`
