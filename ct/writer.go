// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package ct

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// Write encodes the table and writes it to path with truncate-and-write
// semantics.
func (t *Table) Write(path string) error {
	data, err := t.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// Encode serializes the table: the 64-byte header, column names, type
// codes, rows, and the CRC-16/XMODEM trailer computed over the row-value
// bytes only. The magic variant from a prior read is preserved; a zero
// Timestamp is stamped with the current time.
func (t *Table) Encode() ([]byte, error) {
	if len(t.Headers) != len(t.TypeNames) {
		return nil, fmt.Errorf("%d headers, %d types: %w", len(t.Headers), len(t.TypeNames), ErrShape)
	}

	codes := make([]TypeCode, len(t.TypeNames))
	for i, name := range t.TypeNames {
		code, err := TypeCodeFromName(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		codes[i] = code
	}

	timestamp := t.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format("2006-01-02 15:04:05")
	}

	header, err := encodeHeader(t.Magic, timestamp)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(header)

	binary.Write(&buf, binary.LittleEndian, uint32(len(t.Headers)))
	for _, name := range t.Headers {
		if err := codec.WriteUTF16String(&buf, name); err != nil {
			return nil, fmt.Errorf("column name %q: %w", name, err)
		}
	}

	binary.Write(&buf, binary.LittleEndian, uint32(len(codes)))
	for _, code := range codes {
		binary.Write(&buf, binary.LittleEndian, uint32(code))
	}

	binary.Write(&buf, binary.LittleEndian, uint32(len(t.Rows)))

	// Row values are encoded into their own buffer: the trailer CRC
	// covers these bytes and nothing else.
	var rowBuf bytes.Buffer
	for ri, row := range t.Rows {
		if len(row) != len(codes) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", ri, len(row), len(codes), ErrShape)
		}
		for ci, value := range row {
			if err := encodeValue(&rowBuf, codes[ci], value); err != nil {
				return nil, &CellValueError{Row: ri, Col: ci, Type: codes[ci].Name(), Value: value, Err: err}
			}
		}
	}
	buf.Write(rowBuf.Bytes())

	binary.Write(&buf, binary.LittleEndian, codec.CRC16(rowBuf.Bytes()))

	return buf.Bytes(), nil
}
