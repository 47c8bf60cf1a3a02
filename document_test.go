package hwpdecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatTextJoinsParagraphsAcrossSections(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{Paragraphs: []Paragraph{{Text: "one"}, {Text: "two"}}},
			{Paragraphs: []Paragraph{{Text: "three"}}},
		},
	}
	require.Equal(t, "one\ntwo\nthree", doc.FlatText())
}

func TestFlatTextEmptyDocument(t *testing.T) {
	var doc Document
	require.Equal(t, "", doc.FlatText())
}

func TestAppendWarning(t *testing.T) {
	var doc Document
	doc.AppendWarning("first")
	doc.AppendWarning("second")
	require.Equal(t, []string{"first", "second"}, doc.Warnings)
}

func TestCellAtMissing(t *testing.T) {
	table := Table{Rows: 2, Cols: 2, Cells: []Cell{{Row: 0, Col: 0, Text: "x"}}}
	_, ok := table.CellAt(1, 1)
	require.False(t, ok)

	cell, ok := table.CellAt(0, 0)
	require.True(t, ok)
	require.Equal(t, "x", cell.Text)
}

func TestErrorKindString(t *testing.T) {
	err := NewError(KindTooLarge, "doc.hwp", nil)
	require.Equal(t, "doc.hwp: too_large", err.Error())
	require.Equal(t, "too_large", KindTooLarge.String())
}

func TestErrorUnwrap(t *testing.T) {
	cause := NewError(KindIO, "", nil)
	wrapped := NewError(KindCorrupt, "doc.hwp", cause)
	require.ErrorIs(t, wrapped, cause)
}
