package structure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuna-baek/hwpdecode/internal/record"
)

func rec(tag, level uint16, payload []byte) record.Record {
	return record.Record{Tag: tag, Level: level, Payload: payload}
}

func tableDimPayload(rows, cols uint16) []byte {
	return []byte{0, 0, 0, 0, byte(rows), byte(rows >> 8), byte(cols), byte(cols >> 8)}
}

func ctrlPayload(id string) []byte {
	return []byte(id)
}

// TestBuildFromRecordsMinimalParagraph matches scenario S1.
func TestBuildFromRecordsMinimalParagraph(t *testing.T) {
	recs := []record.Record{
		rec(record.TagParaHeader, 0, nil),
		rec(record.TagParaText, 0, []byte{0x48, 0x00, 0x69, 0x00}), // "Hi" UTF-16LE
	}

	section, warnings := BuildFromRecords(0, recs)
	require.Empty(t, warnings)
	require.Len(t, section.Paragraphs, 1)
	require.Equal(t, "Hi", section.Paragraphs[0].Text)
	require.Equal(t, 0, section.Paragraphs[0].Level)
	require.Empty(t, section.Tables)
}

// TestBuildFromRecordsMultiChunkParagraph matches scenario S2.
func TestBuildFromRecordsMultiChunkParagraph(t *testing.T) {
	utf16 := func(s string) []byte {
		out := make([]byte, 0, len(s)*2)
		for _, r := range s {
			out = append(out, byte(r), 0)
		}
		return out
	}

	recs := []record.Record{
		rec(record.TagParaHeader, 0, nil),
		rec(record.TagParaText, 0, utf16("First ")),
		rec(record.TagParaText, 0, utf16("Second ")),
		rec(record.TagParaText, 0, utf16("Third")),
	}

	section, _ := BuildFromRecords(0, recs)
	require.Len(t, section.Paragraphs, 1)
	require.Equal(t, "First Second Third", section.Paragraphs[0].Text)
}

// TestBuildFromRecordsTableLevelDrop matches scenario S3.
func TestBuildFromRecordsTableLevelDrop(t *testing.T) {
	utf16 := func(s string) []byte {
		out := make([]byte, 0, len(s)*2)
		for _, r := range s {
			out = append(out, byte(r), 0)
		}
		return out
	}

	recs := []record.Record{
		rec(record.TagParaHeader, 0, nil),
		rec(record.TagParaText, 0, utf16("Before")),
		rec(record.TagCtrlHeader, 1, ctrlPayload(ctrlTable)),
		rec(record.TagTable, 2, tableDimPayload(1, 2)),
		rec(record.TagListHeader, 2, nil),
		rec(record.TagParaHeader, 2, nil),
		rec(record.TagParaText, 2, utf16("A")),
		rec(record.TagListHeader, 2, nil),
		rec(record.TagParaHeader, 2, nil),
		rec(record.TagParaText, 2, utf16("B")),
		rec(record.TagParaHeader, 0, nil),
		rec(record.TagParaText, 0, utf16("After")),
	}

	section, warnings := BuildFromRecords(0, recs)
	require.Empty(t, warnings)
	require.Len(t, section.Paragraphs, 2)
	require.Equal(t, "Before", section.Paragraphs[0].Text)
	require.Equal(t, "After", section.Paragraphs[1].Text)

	require.Len(t, section.Tables, 1)
	table := section.Tables[0]
	require.Equal(t, 1, table.Rows)
	require.Equal(t, 2, table.Cols)

	a, ok := table.CellAt(0, 0)
	require.True(t, ok)
	require.Equal(t, "A", a.Text)

	b, ok := table.CellAt(0, 1)
	require.True(t, ok)
	require.Equal(t, "B", b.Text)
}

// TestBuildFromRecordsCellOverflowDropped matches scenario S4.
func TestBuildFromRecordsCellOverflowDropped(t *testing.T) {
	utf16 := func(s string) []byte {
		out := make([]byte, 0, len(s)*2)
		for _, r := range s {
			out = append(out, byte(r), 0)
		}
		return out
	}

	recs := []record.Record{
		rec(record.TagCtrlHeader, 0, ctrlPayload(ctrlTable)),
		rec(record.TagTable, 1, tableDimPayload(1, 1)),
		rec(record.TagListHeader, 1, nil),
		rec(record.TagParaHeader, 1, nil),
		rec(record.TagParaText, 1, utf16("x")),
		rec(record.TagListHeader, 1, nil),
		rec(record.TagParaHeader, 1, nil),
		rec(record.TagParaText, 1, utf16("y")),
		rec(record.TagListHeader, 1, nil),
		rec(record.TagParaHeader, 1, nil),
		rec(record.TagParaText, 1, utf16("z")),
	}

	section, warnings := BuildFromRecords(0, recs)
	require.NotEmpty(t, warnings)
	require.Len(t, section.Tables, 1)
	require.Len(t, section.Tables[0].Cells, 1)
	cell, ok := section.Tables[0].CellAt(0, 0)
	require.True(t, ok)
	require.Equal(t, "x", cell.Text)
}

func TestBuildFromRecordsEmptySection(t *testing.T) {
	section, warnings := BuildFromRecords(3, nil)
	require.Empty(t, warnings)
	require.Empty(t, section.Paragraphs)
	require.Empty(t, section.Tables)
	require.Equal(t, 3, section.Index)
}

func TestBuildFromRecordsReversedControlIDWarns(t *testing.T) {
	reversed := reverse4(ctrlTable)
	recs := []record.Record{
		rec(record.TagCtrlHeader, 0, ctrlPayload(reversed)),
		rec(record.TagTable, 1, tableDimPayload(1, 1)),
		rec(record.TagListHeader, 1, nil),
		rec(record.TagParaHeader, 1, nil),
		rec(record.TagParaText, 1, []byte{'x', 0}),
	}

	section, warnings := BuildFromRecords(0, recs)
	require.NotEmpty(t, warnings)
	require.Len(t, section.Tables, 1)
}
