// Package hwpx decodes HWPX documents: a ZIP archive holding a
// namespace-tolerant XML tree, mapped onto the same model.Document
// the HWP5 pipeline produces.
package hwpx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yuna-baek/hwpdecode/internal/model"
	"github.com/yuna-baek/hwpdecode/internal/structure"
)

// ErrNotHwpx is returned when ra does not parse as a ZIP archive at
// all — the caller (the root package) matches on this with errors.Is
// to attach a file-level Kind.
var ErrNotHwpx = fmt.Errorf("not an HWPX document (not a zip archive)")

var sectionNumberRe = regexp.MustCompile(`(?i)section(\d+)\.xml`)

// Decode opens an HWPX file (a ZIP archive) and builds a Document from
// its Contents/section*.xml members.
func Decode(size int64, ra io.ReaderAt) (*model.Document, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotHwpx, err)
	}

	sections := sectionFiles(zr)
	doc := &model.Document{}

	for i, f := range sections {
		rc, err := f.Open()
		if err != nil {
			doc.AppendWarning(fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			doc.AppendWarning(fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}

		section, warnings, err := decodeSection(i, content)
		if err != nil {
			doc.AppendWarning(fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		doc.Sections = append(doc.Sections, section)
		for _, w := range warnings {
			doc.AppendWarning(fmt.Sprintf("%s: %s", f.Name, w))
		}
	}

	return doc, nil
}

// sectionFiles returns every Contents/section*.xml member, sorted by
// the integer embedded in its filename rather than lexicographically —
// "section10.xml" must sort after "section2.xml", not before it.
func sectionFiles(zr *zip.Reader) []*zip.File {
	var files []*zip.File
	for _, f := range zr.File {
		if strings.Contains(strings.ToLower(f.Name), "section") && strings.HasSuffix(f.Name, ".xml") {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return sectionNumber(files[i].Name) < sectionNumber(files[j].Name)
	})
	return files
}

func sectionNumber(name string) int {
	m := sectionNumberRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// decodeSection parses one section's XML, falling back to a
// namespace-prefix-stripped retry when the namespace-aware parse
// fails — some producers emit section XML with namespace prefixes
// that aren't declared anywhere reachable from the fragment itself.
func decodeSection(index int, content []byte) (model.Section, []string, error) {
	section, warnings, err := parseSectionXML(index, content)
	if err == nil {
		return section, warnings, nil
	}

	stripped := stripNamespaces(content)
	section, warnings, err2 := parseSectionXML(index, stripped)
	if err2 != nil {
		return model.Section{}, nil, fmt.Errorf("namespace-aware parse failed (%v), fallback also failed: %w", err, err2)
	}
	return section, warnings, nil
}

var namespaceDeclRe = regexp.MustCompile(`\sxmlns[^=]*="[^"]*"`)
var taggedPrefixRe = regexp.MustCompile(`<(/?)[A-Za-z0-9_]+:`)

func stripNamespaces(content []byte) []byte {
	s := namespaceDeclRe.ReplaceAllString(string(content), "")
	s = taggedPrefixRe.ReplaceAllString(s, "<$1")
	return []byte(s)
}

// paragraph-ish and table-ish local element names, matched by the
// tag's local part only (namespace prefix ignored either way, since
// encoding/xml already separates prefix from local name).
const (
	tagParagraph = "p"
	tagText      = "t"
	tagTable     = "tbl"
	tagRow       = "tr"
	tagCell      = "tc"
)

func parseSectionXML(index int, content []byte) (model.Section, []string, error) {
	b := structure.NewBuilder(index)
	dec := xml.NewDecoder(strings.NewReader(string(content)))
	dec.Strict = false

	var (
		tableRowCounts []int // one entry per open <tbl>, counts <tr> seen so far
		cellCol        int
		preserve       bool
		insideCell     bool
		tRunIndex      int // <t> runs seen since the current <p> started
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.Section{}, nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case tagParagraph:
				b.StartParagraph(len(tableRowCounts))
				tRunIndex = 0
			case tagText:
				// §4.6: a table cell's descendant <t> runs join with a
				// single space; a plain paragraph's <t> runs concatenate
				// with no separator.
				if insideCell && tRunIndex > 0 {
					b.AppendParagraphText(" ")
				}
				tRunIndex++
				preserve = xmlSpacePreserve(el)
			case tagTable:
				rows, cols := tableDims(el)
				b.StartTable(rows, cols)
				tableRowCounts = append(tableRowCounts, 0)
				cellCol = -1
			case tagRow:
				if n := len(tableRowCounts); n > 0 {
					tableRowCounts[n-1]++
					cellCol = -1
				}
			case tagCell:
				insideCell = true
				if n := len(tableRowCounts); n > 0 {
					cellCol++
					b.StartCell(tableRowCounts[n-1]-1, cellCol)
				}
			}

		case xml.CharData:
			text := string(el)
			if !preserve {
				text = strings.TrimSpace(text)
			}
			if text != "" {
				b.AppendParagraphText(text)
			}

		case xml.EndElement:
			switch el.Name.Local {
			case tagParagraph:
				b.FinishParagraph()
			case tagCell:
				b.FinishCell()
				insideCell = false
			case tagTable:
				b.FinishTable()
				if n := len(tableRowCounts); n > 0 {
					tableRowCounts = tableRowCounts[:n-1]
				}
			}
		}
	}

	section, warnings := b.Section()
	for i := range section.Tables {
		padShortRows(&section.Tables[i])
	}
	return section, warnings, nil
}

// padShortRows normalizes row widths within a table by padding rows
// that have fewer cells than the widest actual row with empty-string
// cells, per §4.6 ("Row widths are normalized by padding short rows
// with empty strings to match the widest row").
func padShortRows(t *model.Table) {
	width := make([]int, t.Rows)
	for _, c := range t.Cells {
		if c.Row >= 0 && c.Row < t.Rows && c.Col+1 > width[c.Row] {
			width[c.Row] = c.Col + 1
		}
	}

	maxWidth := 0
	for _, w := range width {
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth == 0 {
		return
	}
	if maxWidth > t.Cols {
		maxWidth = t.Cols
	}

	for row, w := range width {
		for col := w; col < maxWidth; col++ {
			t.Cells = append(t.Cells, model.Cell{Row: row, Col: col, Text: "", RowSpan: 1, ColSpan: 1})
		}
	}
}

func xmlSpacePreserve(el xml.StartElement) bool {
	for _, a := range el.Attr {
		if a.Name.Space == "xml" && a.Name.Local == "space" {
			return a.Value == "preserve"
		}
	}
	return false
}

// tableDims reads a <tbl> element's rowCnt/colCnt attributes, falling
// back to 1x1 when absent so a malformed table still yields one cell
// rather than aborting the section.
func tableDims(el xml.StartElement) (rows, cols int) {
	rows, cols = 1, 1
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "rowCnt":
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				rows = n
			}
		case "colCnt":
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				cols = n
			}
		}
	}
	return rows, cols
}
