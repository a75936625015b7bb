// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

/*
Package vdk reads and writes VDK (VDISK) archives, the hierarchical
container format of Ragnarok Online 2. Two versions exist: VDISK1.0, and
VDISK1.1 which appends a flat lookup table mapping uppercase full paths to
entry offsets.

An archive stores a directory tree of fixed 145-byte entry records with
code page 51949 (EUC-KR) names. Non-root directories are bracketed by
synthetic "." and ".." entries, and every record carries the absolute
offset of its next sibling, or 0 if it is the last of its level. File payloads follow their records and are
zlib-compressed when that pays off, stored verbatim otherwise.

# Reading

	archive, err := vdk.Open("data.vdk")
	if err != nil {
		log.Fatal(err)
	}
	for _, entry := range archive.Files() {
		data, err := archive.Extract(entry)
		...
	}

Open parses the whole tree eagerly but payloads are read lazily: each
Extract call reopens the archive file, so read-only extracts are safe to
run concurrently.

# Writing

	w := vdk.NewWriter()
	w.AddFile("sub/item.ct", data)
	count, err := w.Write("data.vdk", true)

The writer always emits VDISK1.1. Output is assembled in a temporary file
and renamed into place, so a failed write leaves no partial archive.

# Limitations

  - Entry names are limited to 127 bytes of code page 51949; names that do
    not fit, or contain characters outside the code page, fail with
    ErrUnencodableName.
  - Archives are limited to 4GB of offsets (u32 on the wire).
  - A Writer or Archive must not be mutated concurrently.
*/
package vdk
