// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package ct

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// Table is a decoded CT file: column headers, type names, and rows of
// decoded text values. Headers, TypeNames, and every row share the same
// length.
type Table struct {
	Magic     Magic
	Timestamp string
	Headers   []string
	TypeNames []string
	Rows      [][]string

	// Trailer CRC diagnostics from the last Read. A mismatch does not
	// fail the read; check ChecksumError.
	HasChecksum      bool
	StoredChecksum   uint16
	ComputedChecksum uint16
}

// ChecksumError returns ErrChecksumMismatch if the file carried a trailer
// CRC that does not match the recomputed one, nil otherwise.
func (t *Table) ChecksumError() error {
	if t.HasChecksum && t.StoredChecksum != t.ComputedChecksum {
		return fmt.Errorf("stored 0x%04X, computed 0x%04X: %w",
			t.StoredChecksum, t.ComputedChecksum, ErrChecksumMismatch)
	}
	return nil
}

// Read parses the CT file at path.
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return Decode(data)
}

// Decode parses a CT file image, such as a payload extracted from an
// archive.
func Decode(data []byte) (*Table, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%d byte header: %w", len(data), ErrTruncated)
	}

	magic, timestamp, err := parseHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}
	t := &Table{Magic: magic, Timestamp: timestamp}

	body := data[headerSize:]
	r := bytes.NewReader(body)

	var columnCount uint32
	if err := binary.Read(r, binary.LittleEndian, &columnCount); err != nil {
		return nil, fmt.Errorf("column count: %w", truncated(err))
	}
	t.Headers = make([]string, columnCount)
	for i := range t.Headers {
		name, err := codec.ReadUTF16String(r)
		if err != nil {
			return nil, fmt.Errorf("column %d name: %w", i, truncated(err))
		}
		t.Headers[i] = name
	}

	var typeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &typeCount); err != nil {
		return nil, fmt.Errorf("type count: %w", truncated(err))
	}
	codes := make([]TypeCode, typeCount)
	t.TypeNames = make([]string, typeCount)
	for i := range codes {
		var code uint32
		if err := binary.Read(r, binary.LittleEndian, &code); err != nil {
			return nil, fmt.Errorf("type %d code: %w", i, truncated(err))
		}
		codes[i] = TypeCode(code)
		t.TypeNames[i] = TypeCode(code).Name()
	}

	var rowCount uint32
	if err := binary.Read(r, binary.LittleEndian, &rowCount); err != nil {
		return nil, fmt.Errorf("row count: %w", truncated(err))
	}

	rowsStart := len(body) - r.Len()
	t.Rows = make([][]string, rowCount)
	for ri := range t.Rows {
		row := make([]string, typeCount)
		for ci, code := range codes {
			value, err := decodeValue(r, code)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d (%s): %w", ri, ci, code.Name(), truncated(err))
			}
			row[ci] = value
		}
		t.Rows[ri] = row
	}
	rowsEnd := len(body) - r.Len()
	t.ComputedChecksum = codec.CRC16(body[rowsStart:rowsEnd])

	// The trailer CRC may be absent.
	if r.Len() >= 2 {
		if err := binary.Read(r, binary.LittleEndian, &t.StoredChecksum); err != nil {
			return nil, truncated(err)
		}
		t.HasChecksum = true
	}

	return t, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
