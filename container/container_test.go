package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFileHeaderRejectsShortBuffer(t *testing.T) {
	_, err := parseFileHeader(make([]byte, 10))
	require.Error(t, err)
}

func TestParseFileHeaderRejectsBadMagic(t *testing.T) {
	raw := make([]byte, 40)
	copy(raw, []byte("not the right magic"))
	_, err := parseFileHeader(raw)
	require.ErrorIs(t, err, ErrNotHwp)
}

func TestParseFileHeaderDecodesVersionAndFlags(t *testing.T) {
	raw := make([]byte, 40)
	copy(raw, hwpSignature)
	// Version quad stored revision-first within the field: major is
	// the last byte, matching original implementation's
	// major=version_bytes[3] layout.
	raw[32] = 0x04 // revision
	raw[33] = 0x03 // build
	raw[34] = 0x02 // minor
	raw[35] = 0x05 // major
	raw[36] = flagCompressed | flagEncrypted

	header, err := parseFileHeader(raw)
	require.NoError(t, err)
	require.Equal(t, uint8(5), header.VersionMajor)
	require.Equal(t, uint8(2), header.VersionMinor)
	require.Equal(t, uint8(3), header.VersionBuild)
	require.Equal(t, uint8(4), header.VersionRevision)
	require.True(t, header.Compressed)
	require.True(t, header.Encrypted)
}
