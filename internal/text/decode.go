// Package text decodes HWP5 PARA_TEXT payloads: UTF-16LE code units
// carrying an in-band control-character alphabet alongside ordinary
// text, per the record format's text encoding.
package text

// utf16LE decodes raw UTF-16LE bytes to a []uint16 of code units. Units
// are returned as-is (decodeRune replaces unpaired surrogates with
// U+FFFD). An odd trailing byte is dropped — there is no unit to pair
// it with.
func utf16LE(b []byte) []uint16 {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units
}

// isExtendedControl reports whether code is an in-band inline-object
// marker: it consumes itself plus seven trailing code units.
func isExtendedControl(code uint16) bool {
	switch {
	case code >= 0x0001 && code <= 0x0003:
		return true
	case code >= 0x0004 && code <= 0x0008:
		return true
	case code == 0x000B, code == 0x000C:
		return true
	case code >= 0x0015 && code <= 0x0019:
		return true
	default:
		return false
	}
}

// DecodeParaText decodes the payload of a PARA_TEXT record into
// normalized text: paragraph/line breaks become '\n', tabs become
// '\t', extended control characters and their 7-unit trailer are
// skipped as a group, other control characters are skipped singly,
// and the result is trimmed at the paragraph boundary only (internal
// newlines are preserved).
//
// Unicode decoding always succeeds — unpaired surrogates and malformed
// units surface as U+FFFD rather than as an error.
func DecodeParaText(payload []byte) string {
	units := utf16LE(payload)

	var runes []rune
	i := 0
	n := len(units)

	for i < n {
		code := units[i]

		switch {
		case code == 0x000D: // paragraph separator
			runes = append(runes, '\n')
			i++
		case code == 0x000A: // line break
			runes = append(runes, '\n')
			i++
		case code == 0x0009: // tab
			runes = append(runes, '\t')
			i++
		case isExtendedControl(code):
			// Inline-object marker: this unit plus 7 trailing units
			// (16 bytes total) are consumed as a group.
			i += 8
		case code >= 0x0001 && code <= 0x001F:
			// Single-unit control character.
			i++
		default:
			r, width := decodeRune(units, i)
			runes = append(runes, r)
			i += width
		}
	}

	return trimParagraphBoundary(string(runes))
}

// decodeRune resolves one printable code point starting at units[i],
// pairing UTF-16 surrogates when present. Returns the rune and how
// many code units it consumed.
func decodeRune(units []uint16, i int) (rune, int) {
	u := units[i]
	if u < 0xD800 || u > 0xDFFF {
		return rune(u), 1
	}
	// High surrogate expecting a low surrogate pair.
	if u <= 0xDBFF && i+1 < len(units) {
		v := units[i+1]
		if v >= 0xDC00 && v <= 0xDFFF {
			r := ((rune(u) - 0xD800) << 10) + (rune(v) - 0xDC00) + 0x10000
			return r, 2
		}
	}
	return 0xFFFD, 1
}

// trimParagraphBoundary trims leading/trailing whitespace while
// preserving internal newlines.
func trimParagraphBoundary(s string) string {
	start := 0
	for start < len(s) && isTrimmable(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isTrimmable(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isTrimmable(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
