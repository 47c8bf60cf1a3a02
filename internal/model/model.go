// Package model is the logical document tree shared by the HWP5 and
// HWPX decoders, and re-exported verbatim as the root package's public
// types. It lives here (rather than in the root package directly) so
// that hwp5, hwpx, and internal/structure — all of which need these
// types — don't have to import back up into the root package that
// imports them, which would be a cycle.
package model

// Document is the logical model shared by the HWP5 and HWPX decoders:
// an ordered sequence of Sections in stream-discovery order.
type Document struct {
	Sections []Section

	// Warnings accumulates non-fatal structural diagnostics (cell
	// overflow, unrecognized or reversed-byte-order control ids, section
	// decompression fallback) recorded while building this Document.
	Warnings []string
}

// AppendWarning records a non-fatal diagnostic without aborting
// whatever pass produced it.
func (d *Document) AppendWarning(msg string) {
	d.Warnings = append(d.Warnings, msg)
}

// FlatText concatenates every paragraph's text, in order, across every
// section.
func (d *Document) FlatText() string {
	var out []byte
	for _, s := range d.Sections {
		for _, p := range s.Paragraphs {
			if len(out) > 0 {
				out = append(out, '\n')
			}
			out = append(out, p.Text...)
		}
	}
	return string(out)
}

// Section is a 0-indexed slice of a Document: its own paragraphs and
// its own tables, each list preserving encounter order.
type Section struct {
	Index      int
	Paragraphs []Paragraph
	Tables     []Table
}

// Paragraph is a single logical paragraph: already control-character
// normalized text, its nesting depth, and an optional style id.
//
// StyleID is never populated or consumed by either decoder (the HWP5
// PARA_HEADER payload is not read) — matching the original
// implementation; it is carried here for forward compatibility only.
type Paragraph struct {
	Text    string
	Level   int
	StyleID int
}

// Table is a declared R x C grid of Cells. Cells outside [0,R)x[0,C)
// are dropped during construction rather than causing a parse failure.
type Table struct {
	Rows  int
	Cols  int
	Cells []Cell
}

// Cell is addressed by (Row, Col), 0-indexed, with an optional row/col
// span (default 1/1 when unspecified by the source format).
type Cell struct {
	Row, Col         int
	Text             string
	RowSpan, ColSpan int
}

// CellAt returns the cell at (row, col) and whether it was found.
func (t *Table) CellAt(row, col int) (Cell, bool) {
	for _, c := range t.Cells {
		if c.Row == row && c.Col == col {
			return c, true
		}
	}
	return Cell{}, false
}
