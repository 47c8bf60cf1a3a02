package structure

import (
	"github.com/yuna-baek/hwpdecode/internal/model"
	"github.com/yuna-baek/hwpdecode/internal/record"
	"github.com/yuna-baek/hwpdecode/internal/text"
)

// Control ids as they appear in a CTRL_HEADER payload's first four
// bytes, canonical (forward) byte order.
const (
	ctrlTable    = "tbl "
	ctrlShape    = "gso "
	ctrlEquation = "eqed"
)

// BuildFromRecords recovers a Section's paragraph/table/cell structure
// from a flat HWP5 record stream. The stream carries no explicit
// nesting: a table's extent is inferred from the level at which its
// CTRL_HEADER sits, and ends the moment any later record's level drops
// strictly below that same level — there is no end-of-table record to
// look for.
func BuildFromRecords(index int, recs []record.Record) (model.Section, []string) {
	b := NewBuilder(index)

	tableStartLevel := -1
	firstCellOfTable := false

	// Consecutive PARA_TEXT payloads are buffered and decoded as one run,
	// so whitespace at a record boundary survives and only the ends of
	// the paragraph's text are trimmed.
	var pendingText []byte
	flushText := func() {
		if pendingText != nil {
			b.AppendParagraphText(text.DecodeParaText(pendingText))
			pendingText = nil
		}
	}

	for _, rec := range recs {
		levelDrop := b.InTable() && int(rec.Level) < tableStartLevel
		if rec.Tag != record.TagParaText || levelDrop {
			flushText()
		}
		if levelDrop {
			b.FinishTable()
			tableStartLevel = -1
		}

		switch rec.Tag {
		case record.TagParaHeader:
			b.StartParagraph(int(rec.Level))

		case record.TagParaText:
			pendingText = append(pendingText, rec.Payload...)

		case record.TagCtrlHeader:
			id, reversed := parseCtrlID(rec.Payload)
			if reversed {
				b.warn("control id for %q seen in reversed byte order at level %d", id, rec.Level)
			}
			switch id {
			case ctrlTable:
				tableStartLevel = int(rec.Level)
			case ctrlShape, ctrlEquation:
			default:
				b.warn("unrecognized control id %q at level %d", id, rec.Level)
			}

		case record.TagTable:
			rows, cols := parseTableDims(rec.Payload)
			b.StartTable(rows, cols)
			firstCellOfTable = true

		case record.TagListHeader:
			if b.InTable() {
				if firstCellOfTable {
					b.StartCell(0, 0)
					firstCellOfTable = false
				} else {
					b.AdvanceCell()
				}
			}
		}
	}
	flushText()

	return b.Section()
}

// parseCtrlID reads the 4-byte control id from a CTRL_HEADER payload.
// The original source code accepts the id in either byte order; this
// reports which one it saw so the caller can log the non-canonical case.
func parseCtrlID(payload []byte) (id string, reversed bool) {
	if len(payload) < 4 {
		return "", false
	}
	forward := string(payload[:4])
	switch forward {
	case ctrlTable, ctrlShape, ctrlEquation:
		return forward, false
	}
	rev := reverse4(forward)
	switch rev {
	case ctrlTable, ctrlShape, ctrlEquation:
		return rev, true
	}
	return forward, false
}

func reverse4(s string) string {
	b := []byte(s)
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	return string(b)
}

// parseTableDims reads the declared row/column counts from a TABLE
// record payload: a 4-byte property-flags word, then row count at
// offset 4-6, column count at offset 6-8.
func parseTableDims(payload []byte) (rows, cols int) {
	if len(payload) < 8 {
		return 1, 1
	}
	rows = int(payload[4]) | int(payload[5])<<8
	cols = int(payload[6]) | int(payload[7])<<8
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}
