// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// ZlibCompress deflates data at the best compression level and frames it as
// a zlib stream: the 0x78 0x9C header, the raw deflate body, and the
// Adler-32 of the original bytes in big-endian order.
func ZlibCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0x78, 0x9C})

	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("create deflate writer: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate write: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("deflate close: %w", err)
	}

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], Adler32(data))
	buf.Write(trailer[:])

	return buf.Bytes(), nil
}

// ZlibInflate decompresses a full zlib stream, verifying the header and the
// Adler-32 trailer.
func ZlibInflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib inflate: %w", err)
	}
	return out, nil
}

// RawInflate decompresses a bare deflate stream with no zlib framing.
func RawInflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("raw inflate: %w", err)
	}
	return out, nil
}
