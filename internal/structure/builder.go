// Package structure builds a model.Section from a stream of
// structural events. The Builder itself is format-agnostic — paragraph
// and table/cell primitives with bounds-checked cell placement — so
// both the HWP5 record-driven walker (records.go, in this package) and
// the HWPX XML-driven walker (package hwpx) drive the same builder
// rather than duplicating cell-bounds and table-finalization logic.
package structure

import (
	"fmt"
	"strings"

	"github.com/yuna-baek/hwpdecode/internal/model"
)

// Builder accumulates paragraphs and tables into one Section, matching
// the incremental, stateful construction in the original implementation's
// StructureParser (current paragraph chunks, current table, current
// cell) rather than building a tree top-down from a pre-parsed AST.
type Builder struct {
	section model.Section

	paraChunks []string
	paraLevel  int
	inPara     bool

	table    *model.Table
	inCell   bool
	cellRow  int
	cellCol  int
	cellText []string

	warnings []string
}

// NewBuilder starts a Builder for the section at the given 0-indexed
// position within the document.
func NewBuilder(index int) *Builder {
	return &Builder{section: model.Section{Index: index}}
}

// StartParagraph opens a new paragraph. Any paragraph already open is
// finalized first — mirrors _finalize_paragraph being called at the
// top of every PARA_HEADER handler.
func (b *Builder) StartParagraph(level int) {
	b.FinishParagraph()
	b.inPara = true
	b.paraLevel = level
}

// AppendParagraphText accumulates one more chunk of decoded text onto
// the currently open paragraph. HWPX can split one paragraph's text
// across multiple <t> runs, which join here with no separator, matching
// _decode_para_text's chunk-concatenation behavior. (Consecutive HWP5
// PARA_TEXT records are decoded as one run by BuildFromRecords before
// they reach this method.)
func (b *Builder) AppendParagraphText(s string) {
	if !b.inPara {
		b.StartParagraph(0)
	}
	if s == "" {
		return
	}
	b.paraChunks = append(b.paraChunks, s)
}

// FinishParagraph closes the open paragraph (if any), appending it to
// the current table's open cell, or to the section directly when no
// table is open.
func (b *Builder) FinishParagraph() {
	if !b.inPara {
		return
	}
	text := joinChunks(b.paraChunks)
	para := model.Paragraph{Text: text, Level: b.paraLevel}

	switch {
	case b.inCell:
		b.cellText = append(b.cellText, text)
	case b.table != nil:
		// Paragraph encountered between cells (or before the first
		// one) with a table open but no cell open: drop it rather
		// than attach it to the section, since it belongs to the
		// table's still-forming row/col structure.
	default:
		b.section.Paragraphs = append(b.section.Paragraphs, para)
	}

	b.paraChunks = nil
	b.inPara = false
}

// StartTable opens a new table with the declared row/column bounds.
// Any table already open is finalized first.
func (b *Builder) StartTable(rows, cols int) {
	b.FinishParagraph()
	b.FinishTable()
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	b.table = &model.Table{Rows: rows, Cols: cols}
	b.cellRow, b.cellCol = 0, 0
}

// InTable reports whether a table is currently open.
func (b *Builder) InTable() bool { return b.table != nil }

// FinishTable closes the open table (if any) and appends it to the
// section.
func (b *Builder) FinishTable() {
	b.FinishCell()
	if b.table == nil {
		return
	}
	b.section.Tables = append(b.section.Tables, *b.table)
	b.table = nil
}

// StartCell opens a cell at the given 0-indexed (row, col). A cell
// already open is finalized first.
func (b *Builder) StartCell(row, col int) {
	b.FinishCell()
	b.inCell = true
	b.cellRow, b.cellCol = row, col
}

// AdvanceCell moves the cursor to the next cell in row-major order,
// wrapping to the next row at the declared column count — mirrors
// _advance_to_next_cell.
func (b *Builder) AdvanceCell() {
	if b.table == nil {
		return
	}
	row, col := b.cellRow, b.cellCol+1
	if col >= b.table.Cols {
		col = 0
		row++
	}
	// StartCell finalizes the cell at the OLD (b.cellRow, b.cellCol)
	// before moving the cursor — row/col above must stay local until
	// that happens, or the old cell's text gets attributed to the new
	// position instead.
	b.StartCell(row, col)
}

// FinishCell closes the open cell (if any). A cell whose (row, col)
// falls outside the table's declared bounds is dropped rather than
// causing the whole table (or document) to fail — _save_current_cell's
// bounds check, ported directly.
func (b *Builder) FinishCell() {
	if !b.inCell {
		return
	}
	// The cell's last paragraph has no closing record of its own in an
	// HWP5 stream, so it is flushed into the cell before joining.
	b.FinishParagraph()
	text := joinParagraphs(b.cellText)
	row, col := b.cellRow, b.cellCol
	b.inCell = false
	b.cellText = nil

	if b.table == nil {
		return
	}
	if row < 0 || row >= b.table.Rows || col < 0 || col >= b.table.Cols {
		b.warn("dropped out-of-bounds cell (%d,%d) in a %dx%d table", row, col, b.table.Rows, b.table.Cols)
		return
	}
	b.table.Cells = append(b.table.Cells, model.Cell{
		Row: row, Col: col, Text: text, RowSpan: 1, ColSpan: 1,
	})
}

// Warn records a non-fatal diagnostic without aborting the build.
func (b *Builder) Warn(msg string) {
	b.warnings = append(b.warnings, msg)
}

func (b *Builder) warn(format string, args ...any) {
	b.Warn(fmt.Sprintf(format, args...))
}

// Section finalizes any paragraph/table/cell still open and returns the
// built Section along with the warnings accumulated while building it.
func (b *Builder) Section() (model.Section, []string) {
	b.FinishParagraph()
	b.FinishTable()
	return b.section, b.warnings
}

// joinChunks concatenates the text chunks of a single paragraph (e.g.
// <t> runs) with no separator.
func joinChunks(chunks []string) string {
	return strings.Join(chunks, "")
}

// joinParagraphs joins a cell's buffered paragraph texts with a
// newline — distinct from joinChunks, which joins chunks within one
// paragraph with no separator. Mirrors _save_current_cell's
// "\n".join(self.cell_texts).
func joinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n")
}
