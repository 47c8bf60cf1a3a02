package hwpdecode

import "fmt"

// Kind classifies a decode failure per the error taxonomy: file-level
// kinds surface to the caller, record/section-level corruption is
// absorbed by the structure builder and never reaches this type.
type Kind int

const (
	// KindNotFound means the path does not exist.
	KindNotFound Kind = iota
	// KindTooLarge means the file exceeds the configured size ceiling.
	KindTooLarge
	// KindNotHwp means the container magic did not match.
	KindNotHwp
	// KindEncrypted means the encryption bit was set.
	KindEncrypted
	// KindCorrupt means the file could not be decoded for a reason no
	// other kind covers (for example a malformed compound file or
	// FileHeader), or the decode panicked. Truncated records and bad
	// deflate streams inside a section are absorbed and do not produce it.
	KindCorrupt
	// KindTimeout means a batch-coordinator wall-clock budget expired.
	KindTimeout
	// KindIO means the backing store failed on read.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTooLarge:
		return "too_large"
	case KindNotHwp:
		return "not_hwp"
	case KindEncrypted:
		return "encrypted"
	case KindCorrupt:
		return "corrupt"
	case KindTimeout:
		return "timeout"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a file-level decode failure carrying its Kind alongside the
// usual wrapped cause.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps err (which may be nil) with a Kind and the offending path.
func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// NewError is the exported form of newError, for use by packages such
// as batch that surface file-level Kinds but live outside this package.
func NewError(kind Kind, path string, err error) *Error {
	return newError(kind, path, err)
}
