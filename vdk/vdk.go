// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

package vdk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JordanRO2/RO2-Toolkit/internal/codec"
)

// Entry is one record of the archive's directory tree. Synthetic "." and
// ".." entries bracket every non-root directory; filter helpers exclude
// them.
type Entry struct {
	Name             string
	FullPath         string
	IsDir            bool
	UncompressedSize uint32
	CompressedSize   uint32
	SiblingOffset    uint32
	// DataPosition is the stream offset immediately after the 145-byte
	// record. For files, the payload bytes begin there.
	DataPosition int64
}

// IsSynthetic reports whether the entry is one of the "." or ".." records.
func (e Entry) IsSynthetic() bool {
	return e.Name == "." || e.Name == ".."
}

// Archive is a parsed VDK archive. It retains only the file path, not an
// open handle: each Extract call reopens the file, so read-only extracts
// may run concurrently.
type Archive struct {
	path    string
	version string
	header  *header
	entries []Entry
	// lookup maps uppercase full paths to entry indexes, built from the
	// VDISK1.1 flat secondary table. Nil for VDISK1.0 archives.
	lookup map[string]int
}

// Open reads and parses the archive at path. The directory tree and the
// VDISK1.1 flat table are decoded eagerly; payloads are read lazily by
// Extract.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	h, err := readHeader(file)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		path:    path,
		version: h.Version,
		header:  h,
	}

	byOffset := make(map[int64]int)
	end, err := a.walk(file, h.size(), "", byOffset)
	if err != nil {
		return nil, err
	}

	if h.Version == Version11 {
		if err := a.readFlatTable(file, end, byOffset); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// walk reads one sibling level starting at pos, recursing into named
// directories. Payloads lie between records, so the walker advances
// sequentially; the stored sibling offsets are informational.
func (a *Archive) walk(file *os.File, pos int64, dir string, byOffset map[int64]int) (int64, error) {
	for {
		var raw [entrySize]byte
		if _, err := file.ReadAt(raw[:], pos); err != nil {
			return 0, fmt.Errorf("entry record at offset %d: %w", pos, truncated(err))
		}
		rec, err := decodeEntryRecord(raw[:])
		if err != nil {
			return 0, fmt.Errorf("entry record at offset %d: %w", pos, err)
		}

		recordPos := pos
		pos += entrySize

		full := rec.name
		if dir != "" {
			full = dir + "/" + rec.name
		}
		a.entries = append(a.entries, Entry{
			Name:             rec.name,
			FullPath:         full,
			IsDir:            rec.isDir,
			UncompressedSize: rec.uncompressed,
			CompressedSize:   rec.compressed,
			SiblingOffset:    rec.sibling,
			DataPosition:     pos,
		})
		byOffset[recordPos] = len(a.entries) - 1

		if rec.isDir {
			if rec.name != "." && rec.name != ".." {
				pos, err = a.walk(file, pos, full, byOffset)
				if err != nil {
					return 0, err
				}
			}
		} else {
			pos += int64(rec.compressed)
		}

		if rec.sibling == 0 {
			return pos, nil
		}
	}
}

// readFlatTable decodes the VDISK1.1 secondary table that follows the
// hierarchical section: a u32 record count, then fixed 264-byte records of
// uppercase full path and absolute entry-record offset.
func (a *Archive) readFlatTable(file *os.File, pos int64, byOffset map[int64]int) error {
	var rawCount [4]byte
	if _, err := file.ReadAt(rawCount[:], pos); err != nil {
		return fmt.Errorf("flat table count: %w", truncated(err))
	}
	count := binary.LittleEndian.Uint32(rawCount[:])
	pos += 4

	a.lookup = make(map[string]int, count)
	for i := uint32(0); i < count; i++ {
		var raw [flatRecordSize]byte
		if _, err := file.ReadAt(raw[:], pos); err != nil {
			return fmt.Errorf("flat table record %d: %w", i, truncated(err))
		}
		pos += flatRecordSize

		pathBytes := raw[:flatPathSize]
		if j := bytes.IndexByte(pathBytes, 0); j >= 0 {
			pathBytes = pathBytes[:j]
		}
		path, err := codec.DecodeEUCKR(pathBytes)
		if err != nil {
			return fmt.Errorf("flat table record %d: %w", i, err)
		}

		offset := binary.LittleEndian.Uint32(raw[flatPathSize:])
		if idx, ok := byOffset[int64(offset)]; ok {
			a.lookup[path] = idx
		}
	}

	return nil
}

// Version returns the archive's version tag.
func (a *Archive) Version() string { return a.version }

// FileCount returns the file count declared in the header.
func (a *Archive) FileCount() uint32 { return a.header.FileCount }

// FolderCount returns the named-directory count declared in the header.
func (a *Archive) FolderCount() uint32 { return a.header.FolderCount }

// Entries returns every parsed entry, synthetic records included, in
// stream order.
func (a *Archive) Entries() []Entry { return a.entries }

// Files returns the file entries in stream order.
func (a *Archive) Files() []Entry {
	var out []Entry
	for _, e := range a.entries {
		if !e.IsDir {
			out = append(out, e)
		}
	}
	return out
}

// Directories returns the named directory entries, excluding the synthetic
// "." and ".." records.
func (a *Archive) Directories() []Entry {
	var out []Entry
	for _, e := range a.entries {
		if e.IsDir && !e.IsSynthetic() {
			out = append(out, e)
		}
	}
	return out
}

// FindFile looks up a file entry by archive path, case-insensitively.
// VDISK1.1 archives resolve through the flat secondary table; VDISK1.0
// archives fall back to a linear scan.
func (a *Archive) FindFile(path string) (Entry, bool) {
	key := normalizeArchivePath(path)

	if a.lookup != nil {
		idx, ok := a.lookup[key]
		if !ok {
			return Entry{}, false
		}
		return a.entries[idx], true
	}

	for _, e := range a.entries {
		if !e.IsDir && normalizeArchivePath(e.FullPath) == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Extract reads and decompresses the payload of a file entry. A failed
// extraction does not affect the archive or other entries.
func (a *Archive) Extract(e Entry) ([]byte, error) {
	if e.IsDir {
		return nil, fmt.Errorf("%s: %w", e.FullPath, ErrNotAFile)
	}

	file, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	raw := make([]byte, e.CompressedSize)
	if _, err := file.ReadAt(raw, e.DataPosition); err != nil {
		return nil, fmt.Errorf("payload of %s: %w", e.FullPath, truncated(err))
	}

	return decompressPayload(raw, e.UncompressedSize, e.CompressedSize), nil
}

// ExtractAll writes every file in the archive below destDir, recreating the
// directory tree. Archive paths use forward slashes; separators are
// translated for the host filesystem.
func (a *Archive) ExtractAll(destDir string) error {
	for _, e := range a.entries {
		if e.IsSynthetic() {
			continue
		}

		dest := filepath.Join(destDir, filepath.FromSlash(e.FullPath))
		if e.IsDir {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
			continue
		}

		data, err := a.Extract(e)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", e.FullPath, err)
		}
	}
	return nil
}

// normalizeArchivePath normalizes a path for flat-table lookup: forward
// slashes, no leading slash, uppercase.
func normalizeArchivePath(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	normalized = strings.TrimPrefix(normalized, "/")
	return strings.ToUpper(normalized)
}
