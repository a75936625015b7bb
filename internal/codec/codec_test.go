// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC16KnownVectors(t *testing.T) {
	tests := []struct {
		input string
		want  uint16
	}{
		{"123456789", 0x31C3},
		{"", 0x0000},
		{"A", 0x58E5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CRC16([]byte(tc.input)), "CRC16(%q)", tc.input)
	}
}

func TestAdler32KnownVectors(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"", 0x00000001},
		{"Wikipedia", 0x11E60398},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Adler32([]byte(tc.input)), "Adler32(%q)", tc.input)
	}
}

func TestZlibRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox "), 64)

	compressed, err := ZlibCompress(data)
	require.NoError(t, err)
	require.Greater(t, len(compressed), 6)
	assert.Equal(t, []byte{0x78, 0x9C}, compressed[:2])

	// Full stream inflate verifies the Adler-32 trailer.
	out, err := ZlibInflate(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	// The body between header and trailer is a bare deflate stream.
	out, err = RawInflate(compressed[2:])
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestZlibCompressEmpty(t *testing.T) {
	compressed, err := ZlibCompress(nil)
	require.NoError(t, err)

	// Trailer carries the Adler-32 of the empty input, big-endian.
	trailer := compressed[len(compressed)-4:]
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, trailer)

	out, err := ZlibInflate(compressed)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUTF16StringRoundTrip(t *testing.T) {
	tests := []string{"", "id", "이름", "Mixed 한글 and ASCII"}

	for _, s := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteUTF16String(&buf, s))

		got, err := ReadUTF16String(&buf)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestUTF16EmptyStringIsBareLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUTF16String(&buf, ""))
	assert.Equal(t, []byte{0, 0, 0, 0}, buf.Bytes())
}

func TestEUCKRRoundTrip(t *testing.T) {
	tests := []string{"data.ct", "아이템정보.ct", "모험가/스킬.vdk"}

	for _, s := range tests {
		enc, err := EncodeEUCKR(s)
		require.NoError(t, err)

		got, err := DecodeEUCKR(enc)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestEUCKRRejectsUnmappable(t *testing.T) {
	// U+1F600 has no EUC-KR representation.
	_, err := EncodeEUCKR("file\U0001F600.dat")
	assert.Error(t, err)
}
