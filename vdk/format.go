// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package vdk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// VDK format constants
const (
	// Version tags, ASCII, null-padded to 8 bytes on disk.
	Version10 = "VDISK1.0"
	Version11 = "VDISK1.1"

	// VDISK1.0 stores this fixed magic where VDISK1.1 stores zero.
	magicV10 = 0xFFFFFF00

	// Header sizes
	headerSizeV10 = 24 // version + magic + file count + folder count + total size
	headerSizeV11 = 28 // V1.0 header + flat table size

	// Entry record layout
	entrySize     = 145
	nameFieldSize = 128
	maxNameBytes  = nameFieldSize - 1 // one byte reserved for the terminator

	// Flat secondary table (VDISK1.1)
	flatPathSize   = 260
	flatRecordSize = flatPathSize + 4
	maxFlatBytes   = flatPathSize - 1
)

// header is the decoded archive header.
type header struct {
	Version       string
	FileCount     uint32
	FolderCount   uint32
	TotalSize     uint32
	FlatTableSize uint32 // VDISK1.1 only
}

func (h *header) size() int64 {
	if h.Version == Version11 {
		return headerSizeV11
	}
	return headerSizeV10
}

// readHeader reads and validates the archive header. The magic field must
// match for VDISK1.0; for VDISK1.1 the flat-table size field must equal
// fileCount*flatRecordSize+4.
func readHeader(r io.Reader) (*header, error) {
	var raw [headerSizeV10]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", truncated(err))
	}

	version := string(bytes.TrimRight(raw[0:8], "\x00"))
	magic := binary.LittleEndian.Uint32(raw[8:12])

	h := &header{
		Version:     version,
		FileCount:   binary.LittleEndian.Uint32(raw[12:16]),
		FolderCount: binary.LittleEndian.Uint32(raw[16:20]),
		TotalSize:   binary.LittleEndian.Uint32(raw[20:24]),
	}

	switch version {
	case Version10:
		if magic != magicV10 {
			return nil, fmt.Errorf("magic 0x%08X: %w", magic, ErrInvalidHeader)
		}

	case Version11:
		var ext [4]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return nil, fmt.Errorf("read extended header: %w", truncated(err))
		}
		h.FlatTableSize = binary.LittleEndian.Uint32(ext[:])
		if want := h.FileCount*flatRecordSize + 4; h.FlatTableSize != want {
			return nil, fmt.Errorf("flat table size %d, want %d for %d files: %w",
				h.FlatTableSize, want, h.FileCount, ErrInvalidHeader)
		}

	default:
		return nil, fmt.Errorf("version %q: %w", version, ErrUnknownFormat)
	}

	return h, nil
}

// writeHeader writes the final VDISK1.1 header at the start of the stream.
func writeHeader(w io.Writer, fileCount, folderCount, hierSize, flatSize uint32) error {
	var raw [headerSizeV11]byte
	copy(raw[0:8], Version11)
	binary.LittleEndian.PutUint32(raw[12:16], fileCount)
	binary.LittleEndian.PutUint32(raw[16:20], folderCount)
	binary.LittleEndian.PutUint32(raw[20:24], hierSize)
	binary.LittleEndian.PutUint32(raw[24:28], flatSize)

	if _, err := w.Write(raw[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// entryRecord is one decoded 145-byte entry.
type entryRecord struct {
	isDir        bool
	name         string
	uncompressed uint32
	compressed   uint32
	sibling      uint32
}

// decodeEntryRecord decodes a 145-byte entry record. The name occupies a
// 128-byte code page 51949 field, terminated by the first null byte.
func decodeEntryRecord(buf []byte) (entryRecord, error) {
	var rec entryRecord
	rec.isDir = buf[0] != 0

	nameBytes := buf[1 : 1+nameFieldSize]
	if i := bytes.IndexByte(nameBytes, 0); i >= 0 {
		nameBytes = nameBytes[:i]
	}
	name, err := codec.DecodeEUCKR(nameBytes)
	if err != nil {
		return rec, fmt.Errorf("entry name: %w", err)
	}
	rec.name = name

	rec.uncompressed = binary.LittleEndian.Uint32(buf[129:133])
	rec.compressed = binary.LittleEndian.Uint32(buf[133:137])
	// buf[137:141] is the reserved data offset field, always written as 0.
	rec.sibling = binary.LittleEndian.Uint32(buf[141:145])

	return rec, nil
}

// encodeEntryRecord encodes one 145-byte entry record. Names that cannot be
// encoded in code page 51949, or whose encoding exceeds 127 bytes, fail with
// ErrUnencodableName.
func encodeEntryRecord(rec entryRecord) ([]byte, error) {
	enc, err := codec.EncodeEUCKR(rec.name)
	if err != nil {
		return nil, fmt.Errorf("entry name %q: %w", rec.name, ErrUnencodableName)
	}
	if len(enc) > maxNameBytes {
		return nil, fmt.Errorf("entry name %q is %d bytes: %w", rec.name, len(enc), ErrUnencodableName)
	}

	buf := make([]byte, entrySize)
	if rec.isDir {
		buf[0] = 1
	}
	copy(buf[1:], enc)
	binary.LittleEndian.PutUint32(buf[129:133], rec.uncompressed)
	binary.LittleEndian.PutUint32(buf[133:137], rec.compressed)
	binary.LittleEndian.PutUint32(buf[141:145], rec.sibling)

	return buf, nil
}

// encodeEUCKRPath encodes a flat-table path in code page 51949, reserving
// the terminator byte of the fixed 260-byte field.
func encodeEUCKRPath(path string) ([]byte, error) {
	enc, err := codec.EncodeEUCKR(path)
	if err != nil {
		return nil, fmt.Errorf("flat table path %q: %w", path, ErrUnencodableName)
	}
	if len(enc) > maxFlatBytes {
		return nil, fmt.Errorf("flat table path %q is %d bytes: %w", path, len(enc), ErrUnencodableName)
	}
	return enc, nil
}

// truncated maps short-read errors onto ErrTruncated, leaving other I/O
// errors untouched.
func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}
