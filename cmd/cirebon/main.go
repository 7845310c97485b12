// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/cirebon/config"
	"github.com/ezrec/cirebon/emulator"
	"github.com/ezrec/cirebon/translate"
	"github.com/ezrec/cirebon/vm"
)

var f = translate.From

var ErrInvalidExtension = errors.New(f("invalid file extension"))

// checkExtension verifies the source file name ends in ext.
func checkExtension(path string, ext string) (err error) {
	if !strings.HasSuffix(path, ext) {
		err = fmt.Errorf("%w. %v", ErrInvalidExtension, f("Expected '%v'.", ext))
	}
	return
}

// execute runs the program read from input, printing output lines to
// stdout and warnings to stderr.
func execute(cfg config.Config, input io.Reader, stdout, stderr io.Writer) (err error) {
	prog, err := vm.Tokenize(input)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.MaxSteps = cfg.MaxSteps
	emu.Listener = func(line vm.Line) {
		if cfg.Decorate {
			fmt.Fprintln(stdout, line.String())
		} else {
			fmt.Fprintln(stdout, line.Text)
		}
	}
	emu.Warn = func(err error) {
		fmt.Fprintln(stderr, f("Warning: %v", err))
	}
	emu.Load(prog)

	err = emu.Run()

	if cfg.Verbose {
		for name, value := range emu.State() {
			log.Printf("%v = %v", name, value)
		}
	}

	return
}

func main() {
	var config_path string
	var verbose bool
	var max_steps int

	default_path, _ := config.Path()

	flag.StringVar(&config_path, "config", default_path, "Configuration file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&max_steps, "max-steps", -1, "Halt after this many instructions (0 is unlimited)")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one .cire file, got %v", os.Args[0], flag.Args())
	}

	cfg, err := config.Load(config_path)
	if err != nil {
		log.Fatalf("%v: %v", config_path, err)
	}
	if verbose {
		cfg.Verbose = true
	}
	if max_steps >= 0 {
		cfg.MaxSteps = max_steps
	}
	if len(cfg.Language) != 0 {
		err = translate.SetLanguage(cfg.Language)
		if err != nil {
			log.Fatalf("%v: %v", config_path, err)
		}
	}

	path := flag.Arg(0)
	err = checkExtension(path, cfg.Extension)
	if err != nil {
		fmt.Fprintln(os.Stderr, f("Error: %v", err))
		os.Exit(1)
	}

	inf, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, f("Error: File '%v' not found.", path))
		os.Exit(1)
	}
	defer inf.Close()

	err = execute(cfg, inf, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, f("Error: %v", err))
		inf.Close()
		os.Exit(1)
	}
}
