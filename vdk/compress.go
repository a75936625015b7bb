// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package vdk

import (
	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// packPayload compresses data for storage. The zlib result is used only if
// strictly smaller than the original; otherwise the original bytes are
// stored verbatim and the reader detects the stored form by the equal
// sizes.
func packPayload(data []byte, compress bool) ([]byte, error) {
	if !compress {
		return data, nil
	}
	compressed, err := codec.ZlibCompress(data)
	if err != nil {
		return nil, err
	}
	if len(compressed) >= len(data) {
		return data, nil
	}
	return compressed, nil
}

// decompressPayload recovers a file payload. Archives in the wild disagree
// about framing, so the strategies are tried in order:
//
//  1. equal sizes mean the payload was stored, return it verbatim
//  2. a full zlib stream, Adler-32 verified
//  3. raw deflate after the 2-byte zlib header (tolerates a bad trailer)
//  4. raw deflate from the first byte
//  5. the raw bytes unchanged, best effort
//
// The final absorbing step is intentional: a payload that matches no known
// framing is handed back as stored.
func decompressPayload(raw []byte, uncompressed, compressed uint32) []byte {
	if compressed == uncompressed {
		return raw
	}
	if out, err := codec.ZlibInflate(raw); err == nil {
		return out
	}
	if len(raw) > 2 {
		if out, err := codec.RawInflate(raw[2:]); err == nil {
			return out
		}
	}
	if out, err := codec.RawInflate(raw); err == nil {
		return out
	}
	return raw
}
