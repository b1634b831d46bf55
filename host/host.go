// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive monitor for the asm80
// cross-assembler. Within the monitor it is possible to assemble
// source files, inspect the symbol table and cross-reference data,
// dump the assembled image, and disassemble it back to mnemonics.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"

	"github.com/asm80/asm80/asm"
	"github.com/asm80/asm80/disasm"
)

// A Host runs monitor commands against the most recent assembly.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection
	settings    *settings

	assembler *asm.Assembler // most recent successful assembly
	image     []byte
	origin    uint16
}

// New creates a new monitor host.
func New() *Host {
	return &Host{
		settings: newSettings(),
	}
}

// RunCommands accepts monitor commands from a reader and writes the
// results to a writer. If interactive is true, a prompt is displayed
// while the host waits for the next command.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println("asm80 monitor. Type 'help' for a list of commands.")
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("asm80* ")
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Syntax: %s\n", c.Usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		h.println("asm80 commands:")
		for _, b := range briefs {
			h.printf("    %-15s  %s\n", b.name, b.brief)
		}
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if s.Command.Usage != "" {
			h.printf("Syntax: %s\n\n", s.Command.Usage)
		}
		switch {
		case s.Command.Description != "":
			h.printf("Description:\n   %s\n\n", s.Command.Description)
		case s.Command.Brief != "":
			h.printf("Description:\n   %s.\n\n", s.Command.Brief)
		}
	}
	return nil
}

func (h *Host) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	lines, err := readSourceLines(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	a := asm.New()
	a.SetOctalMode(h.settings.OctalListing)
	a.SetVerbose(h.settings.Verbose, h.output)

	prefix := filename[:len(filename)-len(filepath.Ext(filename))]

	var listFile *os.File
	if h.settings.ListFile {
		listFile, err = os.Create(prefix + ".lst")
		if err != nil {
			h.printf("Failed to create '%s.lst': %v\n", filepath.Base(prefix), err)
			return nil
		}
		defer listFile.Close()
		a.SetListingStream(listFile)
	}

	if err := a.Assemble(lines); err != nil {
		h.printf("asm80> %v\n", err)
		return nil
	}

	binFilename := prefix + ".com"
	if err := os.WriteFile(binFilename, a.Output(), 0600); err != nil {
		h.printf("Failed to save '%s': %v\n", filepath.Base(binFilename), err)
		return nil
	}
	h.printf("%d bytes written to %s\n", len(a.Output()), binFilename)

	if h.settings.SymFile {
		if err := writeReport(prefix+".sym", a.WriteSymbolTable); err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.printf("%d symbols written to %s.sym\n", len(a.SymbolTable()), prefix)
	}
	if h.settings.CrefFile {
		if err := writeReport(prefix+".crf", a.WriteCrossReference); err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.printf("Cross-Reference file written to %s.crf\n", prefix)
	}

	h.assembler = a
	h.image = a.Output()
	h.origin = a.Origin()
	h.settings.NextDumpAddr = h.origin
	h.settings.NextDisasmAddr = h.origin
	return nil
}

func (h *Host) cmdSymbols(c cmd.Selection) error {
	if h.assembler == nil {
		h.println("Nothing assembled yet.")
		return nil
	}
	h.assembler.WriteSymbolTable(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdXref(c cmd.Selection) error {
	if h.assembler == nil {
		h.println("Nothing assembled yet.")
		return nil
	}
	h.assembler.WriteCrossReference(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdDump(c cmd.Selection) error {
	if h.assembler == nil {
		h.println("Nothing assembled yet.")
		return nil
	}

	addr := h.settings.NextDumpAddr
	if len(c.Args) >= 1 {
		a, err := parseNumber(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	count := uint16(h.settings.DumpBytes)
	if len(c.Args) >= 2 {
		n, err := parseNumber(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = n
	}

	h.dumpImage(addr, count)
	h.settings.NextDumpAddr = addr + count
	h.lastCmd.Args = nil
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if h.assembler == nil {
		h.println("Nothing assembled yet.")
		return nil
	}

	addr := h.settings.NextDisasmAddr
	if len(c.Args) >= 1 {
		a, err := parseNumber(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	count := h.settings.DisasmLines
	if len(c.Args) >= 2 {
		n, err := parseNumber(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	offset := int(addr) - int(h.origin)
	for i := 0; i < count && offset >= 0 && offset < len(h.image); i++ {
		line, next := disasm.Disassemble(h.image, offset)
		end := next
		if end > len(h.image) {
			end = len(h.image)
		}
		h.printf("%04X-   %-8s    %s\n",
			h.origin+uint16(offset), byteString(h.image[offset:end]), line)
		offset = next
	}

	h.settings.NextDisasmAddr = h.origin + uint16(offset)
	h.lastCmd.Args = nil
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v uint16
			v, err = parseNumber(value)
			if err == nil {
				err = h.settings.Set(key, int(v))
			}
		}
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.printf("Setting %s = %s.\n", key, value)
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting program")
}

// dumpImage prints a hex+ASCII dump of the assembled image, 8 bytes
// per row, aligned to 8-byte address boundaries.
func (h *Host) dumpImage(addr0, count uint16) {
	if count == 0 || len(h.image) == 0 {
		return
	}

	addr1 := addr0 + count - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			offset := int(a) - int(h.origin)
			if a >= addr0 && a <= addr1 && offset >= 0 && offset < len(h.image) {
				m := h.image[offset]
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

// readSourceLines loads a source file as a slice of lines.
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

// writeReport creates a file and fills it using an assembler report
// writer.
func writeReport(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return write(file)
}
