// Copyright 2026, The Computer-Architecture Authors

package cpu

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Loader reads LS-8 program images.
//
// An image holds one byte per line, written in binary. Everything from
// the first '#' on a line is a comment, and lines that are blank once the
// comment is removed are skipped. Bytes are placed at increasing
// addresses starting at 0.
type Loader struct {
	Verbose bool // If set, verbosely logs the loaded lines.
}

// Open reads a program image from a file.
func (ld *Loader) Open(path string) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = ld.Parse(inf)
	return
}

// Parse parses an input stream into a Program.
func (ld *Loader) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("loader: %v: %v", lineno, text)
		}

		line, _, _ = strings.Cut(text, "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var value uint8
		value, err = parseBinary(line)
		if err != nil {
			return
		}

		address := len(prog.Lines)
		if address >= MEMORY_SIZE {
			err = ErrProgramSize
			return
		}

		prog.Lines = append(prog.Lines, Line{
			LineNo:  lineno,
			Text:    line,
			Address: address,
			Value:   value,
		})
	}

	err = scanner.Err()
	if err != nil {
		// The scanner failed on the line after the last one read.
		lineno += 1
		line = ""
	}
	return
}

// parseBinary parses a binary byte literal, with an optional 0b prefix.
func parseBinary(word string) (value uint8, err error) {
	digits := word
	if len(digits) > 2 && (digits[:2] == "0b" || digits[:2] == "0B") {
		digits = digits[2:]
	}

	v, perr := strconv.ParseUint(digits, 2, 8)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint8(v)
	return
}
