// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The asm80 command assembles Intel 8080 source files into flat
// binary images, with optional symbol table, listing and
// cross-reference reports. With -i it starts the interactive monitor
// instead.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/term"

	"github.com/asm80/asm80/asm"
	"github.com/asm80/asm80/host"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <source.asm> [-o out.com] [-s] [-l] [-c] [-O] [-v] [-i]\n", os.Args[0])
	os.Exit(1)
}

func main() {
	var (
		inFilename  string
		outFilename string
		saveSymtab  bool
		listing     bool
		octalMode   bool
		cref        bool
		verbose     bool
		interactive bool
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-o":
			i++
			if i >= len(args) {
				fail("-o switch requires a filename")
			}
			outFilename = args[i]
		case arg == "-s" || arg == "/S" || arg == "/s":
			saveSymtab = true
		case arg == "-l" || arg == "-L" || arg == "/L" || arg == "/l":
			listing = true
		case arg == "-c" || arg == "-C" || arg == "/C" || arg == "/c":
			cref = true
		case arg == "-O" || arg == "/O" || arg == "/o":
			octalMode = true
		case arg == "-v":
			verbose = true
		case arg == "-i":
			interactive = true
		case strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "/"):
			fail("unknown switch " + arg)
		default:
			if inFilename != "" {
				fail("multiple input files specified")
			}
			inFilename = arg
		}
	}

	if interactive {
		h := host.New()
		h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
		return
	}

	if inFilename == "" {
		usage()
	}

	lines, err := readSourceLines(inFilename)
	if err != nil {
		fail("cannot open input file " + inFilename)
	}

	baseName := baseFilename(inFilename)
	if outFilename == "" {
		outFilename = baseName + ".com"
	}

	a := asm.New()
	a.SetOctalMode(octalMode)
	a.SetVerbose(verbose, os.Stdout)

	var listingFile *os.File
	if listing {
		listingFile, err = os.Create(baseName + ".lst")
		if err != nil {
			fail("cannot open listing file " + baseName + ".lst")
		}
		defer listingFile.Close()
		a.SetListingStream(listingFile)
	}

	if err := a.Assemble(lines); err != nil {
		fmt.Fprintf(os.Stderr, "asm80> %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outFilename, a.Output(), 0644); err != nil {
		fail("cannot open output file " + outFilename)
	}
	fmt.Printf("%d bytes written to %s\n", len(a.Output()), outFilename)

	if cref {
		if err := writeReport(baseName+".crf", a.WriteCrossReference); err != nil {
			fail("cannot open cross-reference file " + baseName + ".crf")
		}
		fmt.Printf("Cross-Reference file written to %s.crf\n", baseName)
	}
	if listing {
		fmt.Printf("Listing file written to %s.lst\n", baseName)
	}
	if saveSymtab {
		if err := writeReport(baseName+".sym", a.WriteSymbolTable); err != nil {
			fail("cannot open symbol file " + baseName + ".sym")
		}
		fmt.Printf("%d symbols written to %s.sym\n", len(a.SymbolTable()), baseName)
	}
}

func fail(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// baseFilename strips the directory and extension from a path.
func baseFilename(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func readSourceLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func writeReport(filename string, write func(w io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return write(file)
}
