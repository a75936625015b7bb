// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

// Package codec holds the byte-level primitives shared by the vdk and ct
// codecs: UTF-16LE strings, code page 51949 (EUC-KR) names, the zlib
// payload frame, CRC-16/XMODEM and Adler-32.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

	// Decoders and encoders from x/text are stateless once built, so a
	// single shared instance serves every call.
	euckrEncoder = korean.EUCKR.NewEncoder()
	euckrDecoder = korean.EUCKR.NewDecoder()
)

// EncodeUTF16 converts s to UTF-16LE bytes.
func EncodeUTF16(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode utf-16: %w", err)
	}
	return b, nil
}

// DecodeUTF16 converts UTF-16LE bytes to a string.
func DecodeUTF16(b []byte) (string, error) {
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode utf-16: %w", err)
	}
	return string(out), nil
}

// ReadUTF16String reads a length-prefixed UTF-16LE string: a u32 count of
// UTF-16 code units followed by count*2 bytes. A zero count is an empty
// string with no trailing bytes.
func ReadUTF16String(r io.Reader) (string, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}
	if count == 0 {
		return "", nil
	}
	raw := make([]byte, int(count)*2)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", fmt.Errorf("read string body: %w", err)
	}
	return DecodeUTF16(raw)
}

// WriteUTF16String writes s with a u32 code-unit count prefix.
func WriteUTF16String(w io.Writer, s string) error {
	raw, err := EncodeUTF16(s)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(raw)/2)); err != nil {
		return fmt.Errorf("write string length: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write string body: %w", err)
	}
	return nil
}

// EncodeEUCKR converts s to code page 51949 bytes. Characters outside the
// code page yield an error.
func EncodeEUCKR(s string) ([]byte, error) {
	return euckrEncoder.Bytes([]byte(s))
}

// DecodeEUCKR converts code page 51949 bytes to a string.
func DecodeEUCKR(b []byte) (string, error) {
	out, err := euckrDecoder.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode euc-kr: %w", err)
	}
	return string(out), nil
}
