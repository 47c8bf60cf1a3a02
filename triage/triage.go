// Package triage classifies a file as HWP5, HWPX, legacy HWP3, or
// unknown from nothing but its leading bytes, so the caller can pick
// the right decoding pipeline (or reject it) before opening anything
// heavier.
package triage

import (
	"bytes"
	"fmt"
	"io"
)

// Version names the format a file triaged to.
type Version int

const (
	Unknown Version = iota
	HWP5
	HWPX
	HWP3
)

func (v Version) String() string {
	switch v {
	case HWP5:
		return "hwp5"
	case HWPX:
		return "hwpx"
	case HWP3:
		return "hwp3"
	default:
		return "unknown"
	}
}

var (
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature  = []byte{0x50, 0x4B, 0x03, 0x04}
	hwp3Signature = []byte("HWP Document File")
)

// headBytes is how much of the file triage needs to read — enough to
// cover the longest signature it checks.
const headBytes = 32

// Result is the outcome of triaging one file.
type Result struct {
	Path    string
	Version Version
}

// Detect reads up to headBytes from r (already positioned at the start
// of the file) and classifies it by signature alone — no external
// `file`-command fallback, unlike the tool this package's logic was
// distilled from.
func Detect(r io.Reader) (Version, error) {
	head := make([]byte, headBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, fmt.Errorf("read file head: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, ole2Signature):
		return HWP5, nil
	case bytes.HasPrefix(head, zipSignature):
		return HWPX, nil
	case bytes.HasPrefix(head, hwp3Signature):
		return HWP3, nil
	default:
		return Unknown, nil
	}
}

// DetectFile is a convenience wrapper around Detect for a path already
// opened as an io.ReadSeeker, returning to offset 0 on the way out so
// the caller can reuse it for the actual decode.
func DetectFile(path string, rs io.ReadSeeker) (Result, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("seek: %w", err)
	}
	v, err := Detect(rs)
	if err != nil {
		return Result{}, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("seek: %w", err)
	}
	return Result{Path: path, Version: v}, nil
}
