// Package container opens an OLE2 compound file and exposes the
// stream-level operations the HWP5 pipeline needs: stream existence,
// whole-stream reads, and ordered BodyText/Section{i} enumeration.
//
// It wraps github.com/richardlehane/mscfb rather than re-implementing
// the compound-file directory walk — the same library the retrieved
// hanpama/hwp reader uses for the identical purpose.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

// hwpSignature is the first 17 bytes every FileHeader stream must open
// with.
var hwpSignature = []byte("HWP Document File")[:17]

// ErrTooLarge, ErrEncrypted and ErrNotHwp are sentinels that hwp5
// passes through unchanged and the root package's translatePipelineErr
// matches on to attach a hwpdecode.Kind and the offending path —
// container itself only knows an io.ReaderAt, never a path.
var (
	ErrTooLarge  = fmt.Errorf("file exceeds configured size ceiling")
	ErrEncrypted = fmt.Errorf("encrypted HWP documents are not supported")
	ErrNotHwp    = fmt.Errorf("not an HWP document (magic mismatch)")
)

const (
	flagCompressed = 1 << 0
	flagEncrypted  = 1 << 1
)

// FileHeader is the decoded contents of the FileHeader stream.
type FileHeader struct {
	VersionMajor, VersionMinor, VersionBuild, VersionRevision uint8
	Compressed                                                bool
	Encrypted                                                  bool
}

// Reader is an open HWP5 OLE2 compound file. The zero value is not
// usable; construct with Open.
type Reader struct {
	ra     io.ReaderAt
	doc    *mscfb.Reader
	byName map[string]*mscfb.File
	Header FileHeader
}

// Open reads the compound-file directory and the FileHeader stream,
// validating the HWP magic and rejecting encrypted documents.
// maxSize, if non-zero, rejects ra larger than that many bytes — the
// caller is expected to have already checked os.Stat before calling
// Open with a *os.File, since io.ReaderAt alone carries no size.
func Open(ra io.ReaderAt, size int64, maxSize int64) (*Reader, error) {
	if maxSize > 0 && size > maxSize {
		return nil, ErrTooLarge
	}

	doc, err := mscfb.New(ra)
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}

	r := &Reader{ra: ra, doc: doc, byName: map[string]*mscfb.File{}}
	if err := r.index(); err != nil {
		return nil, err
	}

	raw, err := r.ReadStream("FileHeader")
	if err != nil {
		return nil, fmt.Errorf("read FileHeader: %w", err)
	}

	header, err := parseFileHeader(raw)
	if err != nil {
		return nil, err
	}
	r.Header = header

	if header.Encrypted {
		return nil, ErrEncrypted
	}

	return r, nil
}

// index walks every directory entry once, recording streams by their
// "/"-joined full path so repeated StreamExists/ReadStream calls don't
// re-walk the compound file.
func (r *Reader) index() error {
	for {
		entry, err := r.doc.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("walk compound file: %w", err)
		}
		if entry.IsDir() {
			continue
		}
		r.byName[fullPath(entry)] = entry
	}
}

func fullPath(entry *mscfb.File) string {
	full := ""
	for _, p := range entry.Path {
		full += p + "/"
	}
	return full + entry.Name
}

// StreamExists reports whether the named stream is present.
func (r *Reader) StreamExists(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// ReadStream reads and returns the full contents of the named stream.
func (r *Reader) ReadStream(name string) ([]byte, error) {
	entry, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("stream %q not found", name)
	}
	buf := make([]byte, entry.Size)
	if _, err := io.ReadFull(entry, buf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read stream %q: %w", name, err)
	}
	return buf, nil
}

// IterateBodySections yields BodyText/Section{i} streams for i = 0, 1,
// … until the next index does not exist.
func (r *Reader) IterateBodySections() iteratorFunc {
	i := 0
	return func() (name string, data []byte, ok bool) {
		streamName := fmt.Sprintf("BodyText/Section%d", i)
		if !r.StreamExists(streamName) {
			return "", nil, false
		}
		data, err := r.ReadStream(streamName)
		if err != nil {
			return "", nil, false
		}
		i++
		return streamName, data, true
	}
}

// iteratorFunc is called repeatedly until ok is false.
type iteratorFunc func() (name string, data []byte, ok bool)

// parseFileHeader decodes the fixed-layout FileHeader stream: 17-byte
// magic, a 4-byte version quad at offset 32 (stored revision, build,
// minor, major: the major number is the field's last byte), and a 4-byte little-endian
// attribute-flags word at offset 36.
func parseFileHeader(raw []byte) (FileHeader, error) {
	if len(raw) < 40 {
		return FileHeader{}, fmt.Errorf("FileHeader too short: %d bytes", len(raw))
	}
	if !bytes.Equal(raw[:17], hwpSignature) {
		return FileHeader{}, ErrNotHwp
	}

	version := raw[32:36]
	flags := binary.LittleEndian.Uint32(raw[36:40])

	return FileHeader{
		VersionMajor:    version[3],
		VersionMinor:    version[2],
		VersionBuild:    version[1],
		VersionRevision: version[0],
		Compressed:      flags&flagCompressed != 0,
		Encrypted:       flags&flagEncrypted != 0,
	}, nil
}
