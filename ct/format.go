// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package ct

import (
	"bytes"
	"fmt"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// Magic selects the table header variant.
type Magic int

const (
	// MagicNew is the "RO2SEC!" header used by current table files.
	MagicNew Magic = iota
	// MagicOld is the earlier "RO2!" header. Readers preserve it so a
	// rewritten file keeps its original variant.
	MagicOld
)

func (m Magic) String() string {
	if m == MagicOld {
		return "RO2!"
	}
	return "RO2SEC!"
}

const headerSize = 64

// Magic strings on the wire, UTF-16LE. Both are ASCII, so the encoding
// cannot fail.
var (
	magicNewBytes = mustUTF16("RO2SEC!")
	magicOldBytes = mustUTF16("RO2!")
)

func mustUTF16(s string) []byte {
	b, err := codec.EncodeUTF16(s)
	if err != nil {
		panic(err)
	}
	return b
}

// parseHeader decodes the 64-byte header: the magic string, a two-byte
// null, and the timestamp up to the next UTF-16 null.
func parseHeader(hdr []byte) (Magic, string, error) {
	var magic Magic
	var off int
	switch {
	case bytes.HasPrefix(hdr, magicNewBytes):
		magic, off = MagicNew, len(magicNewBytes)
	case bytes.HasPrefix(hdr, magicOldBytes):
		magic, off = MagicOld, len(magicOldBytes)
	default:
		return 0, "", ErrInvalidMagic
	}

	if hdr[off] != 0 || hdr[off+1] != 0 {
		return 0, "", fmt.Errorf("magic not null-terminated: %w", ErrInvalidMagic)
	}
	off += 2

	end := off
	for end+2 <= headerSize && !(hdr[end] == 0 && hdr[end+1] == 0) {
		end += 2
	}
	timestamp, err := codec.DecodeUTF16(hdr[off:end])
	if err != nil {
		return 0, "", fmt.Errorf("header timestamp: %w", err)
	}

	return magic, timestamp, nil
}

// encodeHeader builds the 64-byte header. The timestamp is truncated so at
// least two trailing zero bytes remain.
func encodeHeader(magic Magic, timestamp string) ([]byte, error) {
	out := make([]byte, headerSize)

	mb := magicNewBytes
	if magic == MagicOld {
		mb = magicOldBytes
	}
	copy(out, mb)
	off := len(mb) + 2 // two-byte null after the magic

	ts, err := codec.EncodeUTF16(timestamp)
	if err != nil {
		return nil, fmt.Errorf("header timestamp: %w", err)
	}
	if max := headerSize - off - 2; len(ts) > max {
		ts = ts[:max]
	}
	copy(out[off:], ts)

	return out, nil
}
