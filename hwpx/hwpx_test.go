package hwpx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) (*bytes.Reader, int64) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

const sectionXML = `<?xml version="1.0"?>
<hml:sec xmlns:hml="urn:test">
  <hml:p><hml:t>hello</hml:t></hml:p>
  <hml:tbl rowCnt="1" colCnt="2">
    <hml:tr><hml:tc><hml:p><hml:t>A</hml:t></hml:p></hml:tc><hml:tc><hml:p><hml:t>B</hml:t></hml:p></hml:tc></hml:tr>
  </hml:tbl>
</hml:sec>`

func TestDecodeBasicSection(t *testing.T) {
	r, size := buildZip(t, map[string]string{
		"Contents/section0.xml": sectionXML,
	})

	doc, err := Decode(size, r)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	require.Len(t, doc.Sections[0].Paragraphs, 1)
	require.Equal(t, "hello", doc.Sections[0].Paragraphs[0].Text)

	require.Len(t, doc.Sections[0].Tables, 1)
	table := doc.Sections[0].Tables[0]
	a, ok := table.CellAt(0, 0)
	require.True(t, ok)
	require.Equal(t, "A", a.Text)
	b, ok := table.CellAt(0, 1)
	require.True(t, ok)
	require.Equal(t, "B", b.Text)
}

// TestSectionFilesSortByEmbeddedInteger matches scenario S6.
func TestSectionFilesSortByEmbeddedInteger(t *testing.T) {
	zr, err := zip.NewReader(bytesReaderFromZip(t, map[string]string{
		"Contents/section10.xml": sectionXML,
		"Contents/section2.xml":  sectionXML,
		"Contents/section1.xml":  sectionXML,
	}))
	require.NoError(t, err)

	files := sectionFiles(zr)
	require.Len(t, files, 3)
	require.Equal(t, "Contents/section1.xml", files[0].Name)
	require.Equal(t, "Contents/section2.xml", files[1].Name)
	require.Equal(t, "Contents/section10.xml", files[2].Name)
}

func bytesReaderFromZip(t *testing.T, files map[string]string) (*bytes.Reader, int64) {
	r, size := buildZip(t, files)
	return r, size
}

const cellRunsXML = `<?xml version="1.0"?>
<hml:sec xmlns:hml="urn:test">
  <hml:tbl rowCnt="2" colCnt="2">
    <hml:tr>
      <hml:tc><hml:p><hml:t>foo</hml:t><hml:t>bar</hml:t></hml:p><hml:p><hml:t>second</hml:t></hml:p></hml:tc>
      <hml:tc><hml:p><hml:t>only</hml:t></hml:p></hml:tc>
    </hml:tr>
    <hml:tr>
      <hml:tc><hml:p><hml:t>short row</hml:t></hml:p></hml:tc>
    </hml:tr>
  </hml:tbl>
</hml:sec>`

// TestDecodeCellRunsJoinedBySpaceAndParagraphsByNewline covers §4.6's
// cell text assembly: descendant <t> runs within one cell join with a
// space, multiple paragraphs within a cell join with a newline.
func TestDecodeCellRunsJoinedBySpaceAndParagraphsByNewline(t *testing.T) {
	r, size := buildZip(t, map[string]string{
		"Contents/section0.xml": cellRunsXML,
	})

	doc, err := Decode(size, r)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	table := doc.Sections[0].Tables[0]

	cell, ok := table.CellAt(0, 0)
	require.True(t, ok)
	require.Equal(t, "foo bar\nsecond", cell.Text)
}

// TestDecodeShortRowsPaddedToWidestRow covers §4.6's row-width
// normalization: a row with fewer cells than the widest actual row
// gets empty-string cells appended for the missing columns.
func TestDecodeShortRowsPaddedToWidestRow(t *testing.T) {
	r, size := buildZip(t, map[string]string{
		"Contents/section0.xml": cellRunsXML,
	})

	doc, err := Decode(size, r)
	require.NoError(t, err)
	table := doc.Sections[0].Tables[0]

	padded, ok := table.CellAt(1, 1)
	require.True(t, ok)
	require.Equal(t, "", padded.Text)
}
