package text

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodePrvText decodes the PrvText preview stream: plain UTF-16LE text
// with no in-band control-character alphabet, unlike PARA_TEXT. This
// mirrors the teacher's BOM-aware UTF-16 decode in ParseHeader, using a
// whole-buffer transform rather than the unit-level scan PARA_TEXT
// needs for its inline-object skip logic.
func DecodePrvText(raw []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return ""
	}
	return string(out)
}
