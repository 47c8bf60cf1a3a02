package hwpdecode

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yuna-baek/hwpdecode/container"
	"github.com/yuna-baek/hwpdecode/hwp5"
	"github.com/yuna-baek/hwpdecode/hwpx"
	"github.com/yuna-baek/hwpdecode/triage"
)

// Decode triages path by signature and runs the matching pipeline,
// building the same Document shape regardless of which one ran.
// maxFileSize, if non-zero, rejects files larger than that many bytes
// before any parsing begins.
func Decode(path string, maxFileSize int64) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewError(KindNotFound, path, err)
		}
		return nil, NewError(KindIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, NewError(KindIO, path, err)
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return nil, NewError(KindTooLarge, path, nil)
	}

	result, err := triage.DetectFile(path, f)
	if err != nil {
		return nil, NewError(KindIO, path, err)
	}

	switch result.Version {
	case triage.HWP5:
		doc, err := hwp5.Decode(f, info.Size(), maxFileSize)
		if err != nil {
			return nil, translatePipelineErr(path, err)
		}
		return doc, nil
	case triage.HWPX:
		doc, err := hwpx.Decode(info.Size(), f)
		if err != nil {
			return nil, translatePipelineErr(path, err)
		}
		return doc, nil
	case triage.HWP3:
		return nil, NewError(KindNotHwp, path, fmt.Errorf("legacy HWP 3.x is not supported"))
	default:
		return nil, NewError(KindNotHwp, path, fmt.Errorf("unrecognized file signature"))
	}
}

// DecodeReader is like Decode but for callers that already hold an
// open ReaderAt, which must also be an io.ReadSeeker for triage. It
// decodes HWPX only: any other triage result, HWP5 included, is
// rejected with KindNotHwp.
func DecodeReader(path string, ra io.ReaderAt, size int64) (*Document, error) {
	sr, ok := ra.(io.ReadSeeker)
	if !ok {
		return nil, NewError(KindIO, path, fmt.Errorf("reader must also be an io.ReadSeeker for triage"))
	}
	result, err := triage.DetectFile(path, sr)
	if err != nil {
		return nil, NewError(KindIO, path, err)
	}
	if result.Version != triage.HWPX {
		return nil, NewError(KindNotHwp, path, fmt.Errorf("DecodeReader supports only HWPX"))
	}
	doc, err := hwpx.Decode(size, ra)
	if err != nil {
		return nil, translatePipelineErr(path, err)
	}
	return doc, nil
}

// translatePipelineErr maps the plain sentinel errors hwp5/hwpx return
// (they don't import this package, to avoid a cycle) onto the file-level
// Kind taxonomy callers expect from Decode/DecodeReader.
func translatePipelineErr(path string, err error) error {
	switch {
	case errors.Is(err, container.ErrTooLarge):
		return NewError(KindTooLarge, path, err)
	case errors.Is(err, container.ErrEncrypted):
		return NewError(KindEncrypted, path, err)
	case errors.Is(err, container.ErrNotHwp):
		return NewError(KindNotHwp, path, err)
	case errors.Is(err, hwpx.ErrNotHwpx):
		return NewError(KindNotHwp, path, err)
	default:
		return NewError(KindCorrupt, path, err)
	}
}
