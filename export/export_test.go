package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuna-baek/hwpdecode"
	"github.com/yuna-baek/hwpdecode/batch"
)

func sampleResult(path string) batch.Result {
	return batch.Result{
		Path:    path,
		Success: true,
		Method:  batch.MethodBodyText,
		Doc: &hwpdecode.Document{
			Sections: []hwpdecode.Section{
				{Paragraphs: []hwpdecode.Paragraph{{Text: "hello world"}}},
			},
		},
	}
}

func TestToTrainingDataSkipsFailedResults(t *testing.T) {
	e := NewExporter()
	_, ok := e.ToTrainingData(batch.Result{Success: false})
	require.False(t, ok)
}

func TestToTrainingDataTitleFromFilename(t *testing.T) {
	e := NewExporter()
	td, ok := e.ToTrainingData(sampleResult("/docs/annual_report_2024.hwp"))
	require.True(t, ok)
	require.Equal(t, "annual report 2024", td.Title)
	require.Equal(t, "hello world", td.Content)
}

func TestToTrainingDataTitleFromExternalMetadata(t *testing.T) {
	e := NewExporter()
	e.ExternalMetadata = func(string) map[string]any {
		return map[string]any{"title": "Quarterly Filing", "content": "should be excluded"}
	}
	td, ok := e.ToTrainingData(sampleResult("/docs/x.hwp"))
	require.True(t, ok)
	require.Equal(t, "Quarterly Filing", td.Title)

	crawl, ok := td.Metadata["crawl"].(map[string]any)
	require.True(t, ok)
	_, hasContent := crawl["content"]
	require.False(t, hasContent)
}

func TestExportBatchJSONLWritesOneLinePerSuccess(t *testing.T) {
	e := NewExporter()
	summary := batch.Summary{
		Results: []batch.Result{
			sampleResult("/docs/a.hwp"),
			{Success: false, Path: "/docs/b.hwp"},
			sampleResult("/docs/c.hwp"),
		},
	}

	var buf bytes.Buffer
	n, err := e.ExportBatchJSONL(&buf, summary)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestExportFailedLogOnlyWritesFailures(t *testing.T) {
	e := NewExporter()
	summary := batch.Summary{
		Results: []batch.Result{
			sampleResult("/docs/a.hwp"),
			{Success: false, Path: "/docs/b.hwp", Err: hwpdecode.NewError(hwpdecode.KindCorrupt, "/docs/b.hwp", nil)},
		},
	}

	var buf bytes.Buffer
	n, err := e.ExportFailedLog(&buf, summary)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Contains(t, buf.String(), "/docs/b.hwp")
}
