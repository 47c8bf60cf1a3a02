// Package record decodes the HWP5 body-text bit-packed record stream:
// a sequence of variable-length tagged binary records with a two-stage
// size encoding (12-bit inline, 32-bit extended) and a level field used
// downstream to recover implicit document structure.
package record

import "encoding/binary"

// Known tag ids the structure builder consumes. All other tags are
// skipped by callers but still yielded by Iterator — the record stream
// carries no hierarchy of its own beyond tag/level/payload.
const (
	TagParaHeader     = 0x42
	TagParaText       = 0x43
	TagParaCharShape  = 0x44
	TagCtrlHeader     = 0x47
	TagListHeader     = 0x48
	TagShapeComponent = 0x4C
	TagTable          = 0x4D
)

// Record is one decoded (tag, level, payload) unit from a section
// stream. Payload may be shorter than declared when the source buffer
// was truncated — see Iterator.
type Record struct {
	Tag     uint16
	Level   uint16
	Payload []byte
}

// Iterator walks a section's decoded byte stream yielding Records in
// stream order. It never returns an error: truncated headers or
// payloads end iteration silently, matching the "never raise" edge
// cases of the record format.
type Iterator struct {
	data   []byte
	offset int
	done   bool
}

// NewIterator wraps data (a single section's decompressed bytes).
func NewIterator(data []byte) *Iterator {
	return &Iterator{data: data}
}

// Next returns the next Record and true, or the zero Record and false
// once the stream is exhausted or malformed beyond recovery.
func (it *Iterator) Next() (Record, bool) {
	if it.done {
		return Record{}, false
	}

	if len(it.data)-it.offset < 4 {
		it.done = true
		return Record{}, false
	}

	header := binary.LittleEndian.Uint32(it.data[it.offset : it.offset+4])
	it.offset += 4

	tag := uint16(header & 0x3FF)
	level := uint16((header >> 10) & 0x3FF)
	size := uint32((header >> 20) & 0xFFF)

	if size == 0xFFF {
		if len(it.data)-it.offset < 4 {
			it.done = true
			return Record{}, false
		}
		size = binary.LittleEndian.Uint32(it.data[it.offset : it.offset+4])
		it.offset += 4
	}

	end := it.offset + int(size)
	truncated := end > len(it.data)
	if truncated {
		end = len(it.data)
	}

	payload := it.data[it.offset:end]
	it.offset = end

	rec := Record{Tag: tag, Level: level, Payload: payload}

	if truncated {
		// Payload ran off the end of the buffer: yield what we have,
		// then stop — per spec, never raise on a short tail.
		it.done = true
	}

	return rec, true
}

// All drains the iterator into a slice. Convenience for callers (like
// the structure builder) that want to look ahead within one section.
func All(data []byte) []Record {
	it := NewIterator(data)
	var out []Record
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out
}
