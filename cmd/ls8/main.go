// Copyright 2026, The Computer-Architecture Authors

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/brilles/Computer-Architecture/cpu"
	"github.com/brilles/Computer-Architecture/emulator"
	"github.com/brilles/Computer-Architecture/trace"
)

const (
	EXIT_OK        = 0 // Program halted.
	EXIT_FAILURE   = 1 // Usage, parse, decode or runtime error.
	EXIT_NOT_FOUND = 2 // Program file not found.
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func run(name string, args []string, stdout io.Writer, stderr io.Writer) int {
	var verbose bool
	var tracing bool
	var watch string
	var timeout time.Duration
	var limit int

	logger := log.New(stderr, "", 0)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&tracing, "t", false, "Trace each instruction to stderr")
	flags.StringVar(&watch, "w", "", "Only trace instructions where this starlark expression is true")
	flags.DurationVar(&timeout, "timeout", 0, "Stop the program after this long")
	flags.IntVar(&limit, "limit", 0, "Stop the program after this many instructions")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %v [flags] filename\n", name)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return EXIT_FAILURE
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return EXIT_FAILURE
	}
	filename := flags.Arg(0)

	loader := &cpu.Loader{Verbose: verbose}
	prog, err := loader.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("%v: %v not found", name, filename)
		return EXIT_NOT_FOUND
	}
	if err != nil {
		logger.Printf("%v: %v", filename, err)
		return EXIT_FAILURE
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Limit = limit
	emu.Cpu.Output = stdout

	if tracing || len(watch) != 0 {
		tracer := &trace.Tracer{
			Output:    stderr,
			Highlight: isTerminal(stderr),
		}
		if len(watch) != 0 {
			tracer.Watch = &trace.Watch{Expr: watch}
		}
		emu.Trace = tracer
	}

	err = emu.Reset()
	if err != nil {
		logger.Printf("%v: %v", filename, err)
		return EXIT_FAILURE
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = emu.Run(ctx)
	if err != nil {
		logger.Printf("%v: %v", filename, err)
		if verbose {
			logger.Print(emu.Cpu.String())
		}
		return EXIT_FAILURE
	}

	return EXIT_OK
}
