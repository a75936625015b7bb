// Copyright (c) 2025 JordanRO2
// SPDX-License-Identifier: MIT

// Command ro2tool packs, unpacks, and inspects Ragnarok Online 2 data
// files: VDK archives and CT tables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JordanRO2/RO2-Toolkit/ct"
	"github.com/JordanRO2/RO2-Toolkit/vdk"
)

const usage = `Usage: ro2tool <command> [options]

Commands:
  pack    -out <archive.vdk> [-raw] <source-dir>
  unpack  [-out <dir>] <archive.vdk> [more archives...]
  list    <archive.vdk>
  info    <table.ct>
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "pack":
		err = runPack(os.Args[2:])
	case "unpack":
		err = runUnpack(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	out := fs.String("out", "", "output archive path")
	raw := fs.Bool("raw", false, "store payloads uncompressed")
	fs.Parse(args)

	if *out == "" || fs.NArg() != 1 {
		return fmt.Errorf("pack: need -out and exactly one source directory")
	}
	srcDir := fs.Arg(0)

	w := vdk.NewWriter()
	if err := w.AddDirectory(srcDir, func(path string) {
		log.Printf("adding %s", path)
	}); err != nil {
		return err
	}

	count, err := w.Write(*out, !*raw)
	if err != nil {
		return err
	}
	log.Printf("packed %d files into %s", count, *out)
	return nil
}

func runUnpack(args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	out := fs.String("out", ".", "destination directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("unpack: need at least one archive")
	}

	// Archives unpack in parallel; per-call file handles keep the
	// extracts independent.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, path := range fs.Args() {
		path := path
		g.Go(func() error {
			archive, err := vdk.Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			dest := filepath.Join(*out, base)
			if err := archive.ExtractAll(dest); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Printf("unpacked %s (%d files) to %s", path, archive.FileCount(), dest)
			return nil
		})
	}
	return g.Wait()
}

func runList(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("list: need exactly one archive")
	}

	archive, err := vdk.Open(args[0])
	if err != nil {
		return err
	}

	log.Printf("%s: %s, %d files, %d folders", args[0], archive.Version(), archive.FileCount(), archive.FolderCount())
	for _, e := range archive.Directories() {
		log.Printf("  %s/", e.FullPath)
	}
	for _, e := range archive.Files() {
		log.Printf("  %s (%d -> %d bytes)", e.FullPath, e.UncompressedSize, e.CompressedSize)
	}
	return nil
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("info: need exactly one table file")
	}

	table, err := ct.Read(args[0])
	if err != nil {
		return err
	}

	log.Printf("%s: magic %s, timestamp %q, %d rows", args[0], table.Magic, table.Timestamp, len(table.Rows))
	for i, name := range table.Headers {
		log.Printf("  column %d: %s (%s)", i, name, table.TypeNames[i])
	}
	if err := table.ChecksumError(); err != nil {
		log.Printf("  warning: %v", err)
	}
	return nil
}
