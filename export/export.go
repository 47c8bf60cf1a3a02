// Package export turns batch.Result records into the YAML/JSONL
// training-data shape a downstream fine-tuning pipeline expects,
// mirroring the original implementation's YAMLExporter field layout
// exactly so existing consumers of that shape keep working.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yuna-baek/hwpdecode/batch"
)

// TrainingData is one exported training example.
type TrainingData struct {
	Source   string         `yaml:"source" json:"source"`
	Category string         `yaml:"category" json:"category"`
	Title    string         `yaml:"title" json:"title"`
	Content  string         `yaml:"content" json:"content"`
	Metadata map[string]any `yaml:"metadata" json:"metadata"`
}

// CategoryDetector maps a file path to a category label. DefaultCategory
// is used when none is supplied.
type CategoryDetector func(path string) string

// DefaultCategory classifies by substring match on the path, same
// heuristic as _default_category, generalized past the two hardcoded
// Korean categories into a caller-supplied table.
func DefaultCategory(categories map[string]string) CategoryDetector {
	return func(path string) string {
		lower := strings.ToLower(path)
		for needle, category := range categories {
			if strings.Contains(lower, strings.ToLower(needle)) {
				return category
			}
		}
		return "unknown"
	}
}

// Exporter builds TrainingData from batch.Result and writes it as
// YAML (one file per result) or JSONL (one file for a whole batch).
type Exporter struct {
	CategoryDetector CategoryDetector
	// ExternalMetadata looks up crawl-time metadata for a path; absent
	// keys are simply omitted from the exported metadata.crawl map.
	ExternalMetadata func(path string) map[string]any
	now              func() time.Time
}

// NewExporter builds an Exporter with the default (unknown-only)
// category detector.
func NewExporter() *Exporter {
	return &Exporter{
		CategoryDetector: func(string) string { return "unknown" },
		now:              time.Now,
	}
}

// ToTrainingData converts one successful batch.Result into a
// TrainingData record, or returns ok=false for a failed result.
func (e *Exporter) ToTrainingData(r batch.Result) (TrainingData, bool) {
	if !r.Success || r.Doc == nil {
		return TrainingData{}, false
	}

	content := r.Doc.FlatText()
	var external map[string]any
	if e.ExternalMetadata != nil {
		external = e.ExternalMetadata(r.Path)
	}

	return TrainingData{
		Source:   r.Path,
		Category: e.detectCategory(r.Path),
		Title:    e.extractTitle(r.Path, content, external),
		Content:  content,
		Metadata: e.mergeMetadata(r, content, external),
	}, true
}

func (e *Exporter) detectCategory(path string) string {
	if e.CategoryDetector == nil {
		return "unknown"
	}
	return e.CategoryDetector(path)
}

// extractTitle prefers external metadata's "title", then the filename
// (underscores turned to spaces), falling back to the first content
// line when the filename-derived title is too short to be useful.
func (e *Exporter) extractTitle(path, content string, external map[string]any) string {
	if external != nil {
		if t, ok := external["title"].(string); ok && t != "" {
			return t
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := strings.TrimSpace(strings.ReplaceAll(base, "_", " "))

	if len(title) < 5 && content != "" {
		if line, _, _ := strings.Cut(content, "\n"); strings.TrimSpace(line) != "" {
			line = strings.TrimSpace(line)
			if len(line) > 100 {
				line = line[:100]
			}
			return line
		}
	}
	return title
}

func (e *Exporter) mergeMetadata(r batch.Result, content string, external map[string]any) map[string]any {
	metadata := map[string]any{}

	if r.Doc != nil {
		metadata["hwp"] = map[string]any{
			"warnings": len(r.Doc.Warnings),
			"sections": len(r.Doc.Sections),
		}
	}

	metadata["extraction"] = map[string]any{
		"method":       string(r.Method),
		"char_count":   len([]rune(content)),
		"extracted_at": e.nowFunc().UTC().Format(time.RFC3339),
	}

	if external != nil {
		crawl := map[string]any{}
		for k, v := range external {
			switch k {
			case "content", "text", "body":
				continue
			}
			crawl[k] = v
		}
		metadata["crawl"] = crawl
	}

	return metadata
}

func (e *Exporter) nowFunc() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

// ExportSingle writes one TrainingData record as a YAML file named
// after the source document's basename, inside dir.
func (e *Exporter) ExportSingle(dir string, r batch.Result) (string, error) {
	td, ok := e.ToTrainingData(r)
	if !ok {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
	outPath := filepath.Join(dir, base+".yaml")

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(td); err != nil {
		return "", fmt.Errorf("encode %s: %w", outPath, err)
	}

	return outPath, nil
}

// ExportBatch writes every successful result in summary to its own
// YAML file under dir, returning the written paths in order.
func (e *Exporter) ExportBatch(dir string, summary batch.Summary) ([]string, error) {
	var paths []string
	for _, r := range summary.Results {
		path, err := e.ExportSingle(dir, r)
		if err != nil {
			return paths, err
		}
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// ExportBatchJSONL writes every successful result in summary as one
// JSON object per line to w, returning the number of records written.
func (e *Exporter) ExportBatchJSONL(w io.Writer, summary batch.Summary) (int, error) {
	count := 0
	for _, r := range summary.Results {
		td, ok := e.ToTrainingData(r)
		if !ok {
			continue
		}
		line, err := json.Marshal(td)
		if err != nil {
			return count, fmt.Errorf("marshal %s: %w", r.Path, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return count, fmt.Errorf("write %s: %w", r.Path, err)
		}
		count++
	}
	return count, nil
}

// failedLogEntry is one line of ExportFailedLog's output.
type failedLogEntry struct {
	Filepath  string `json:"filepath"`
	Error     string `json:"error"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// ExportFailedLog writes every failed result in summary as one JSON
// object per line to w, returning the number of records written.
func (e *Exporter) ExportFailedLog(w io.Writer, summary batch.Summary) (int, error) {
	count := 0
	for _, r := range summary.Results {
		if r.Success {
			continue
		}
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		entry := failedLogEntry{
			Filepath:  r.Path,
			Error:     errMsg,
			Method:    string(r.Method),
			Timestamp: e.nowFunc().UTC().Format(time.RFC3339),
		}
		line, err := json.Marshal(entry)
		if err != nil {
			return count, fmt.Errorf("marshal %s: %w", r.Path, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return count, fmt.Errorf("write %s: %w", r.Path, err)
		}
		count++
	}
	return count, nil
}
