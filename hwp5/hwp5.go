// Package hwp5 decodes HWP 5.x compound-file documents into a
// model.Document by walking each BodyText/Section{i} stream's
// bit-packed record sequence through the shared structure builder.
package hwp5

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/yuna-baek/hwpdecode/container"
	"github.com/yuna-baek/hwpdecode/internal/model"
	"github.com/yuna-baek/hwpdecode/internal/record"
	"github.com/yuna-baek/hwpdecode/internal/structure"
)

// maxSectionSize bounds a single decompressed section: a corrupt size
// field in a compressed stream can otherwise inflate to an unbounded
// amount of memory.
const maxSectionSize = 256 << 20 // 256 MiB

// Decode opens ra (size bytes) as an HWP5 compound file and builds a
// Document from its body sections. maxFileSize, if non-zero, rejects
// containers larger than that many bytes before any parsing begins.
// Errors returned here wrap container.ErrTooLarge/ErrEncrypted/ErrNotHwp
// — the caller (the root package) matches on those with errors.Is to
// attach a file-level Kind.
func Decode(ra io.ReaderAt, size int64, maxFileSize int64) (*model.Document, error) {
	c, err := container.Open(ra, size, maxFileSize)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{}
	next := c.IterateBodySections()
	index := 0
	for {
		name, raw, ok := next()
		if !ok {
			break
		}

		data, err := decompressSection(raw, c.Header.Compressed)
		if err != nil {
			doc.AppendWarning(fmt.Sprintf("%s: falling back to raw bytes after decompression error: %v", name, err))
			data = raw
		}

		recs := record.All(data)
		section, warnings := structure.BuildFromRecords(index, recs)
		doc.Sections = append(doc.Sections, section)
		for _, w := range warnings {
			doc.AppendWarning(fmt.Sprintf("%s: %s", name, w))
		}
		index++
	}

	return doc, nil
}

// decompressSection inflates a raw-deflate (no zlib header) section
// stream, matching open_stream_decompressed's zlib.decompress(data, -15)
// call. When compressed is false the bytes are already plain and are
// returned unchanged; when inflation fails the caller falls back to
// treating the raw bytes as uncompressed, rather than aborting the
// whole document over one bad section.
func decompressSection(raw []byte, compressed bool) ([]byte, error) {
	if !compressed {
		return raw, nil
	}

	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()

	limited := io.LimitReader(r, maxSectionSize+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if len(out) > maxSectionSize {
		return nil, fmt.Errorf("decompressed section exceeds %d bytes", maxSectionSize)
	}
	return out, nil
}
