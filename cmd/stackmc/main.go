// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/stackmc/cpu"
	"github.com/ezrec/stackmc/emulator"
)

// readLines returns all lines of a file, or of stdin for '-'.
// An interactive stdin provides no lines.
func readLines(name string) (lines []string, err error) {
	var in io.Reader

	switch name {
	case "":
		return
	case "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return
		}
		in = os.Stdin
	default:
		var inf *os.File
		inf, err = os.Open(name)
		if err != nil {
			return
		}
		defer inf.Close()
		in = inf
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()

	return
}

// create opens an output file, with '-' for stdout and '' for nothing.
func create(name string) (out io.WriteCloser, err error) {
	switch name {
	case "":
		out = nopCloser{io.Discard}
	case "-":
		out = nopCloser{os.Stdout}
	default:
		out, err = os.Create(name)
	}
	return
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func main() {
	var compile string
	var listing string
	var save bool
	var input string
	var output string
	var trace string
	var limit int
	var delay time.Duration
	var size int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&listing, "l", "", "listing file to write (with -c) or to run")
	flag.BoolVar(&save, "s", false, "Save listing only, do not execute")
	flag.StringVar(&input, "i", "-", "Input lines for dev0")
	flag.StringVar(&output, "o", "", "Output file for dev5-dev8, and the I/O transcript")
	flag.StringVar(&trace, "t", "", "Machine state trace file")
	flag.IntVar(&limit, "n", 0, "Instruction limit (0 for none)")
	flag.DurationVar(&delay, "d", 0, "Delay between instructions")
	flag.IntVar(&size, "m", 0, "Memory size in cells (0 for 16M)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var prog *cpu.Program

	if len(compile) != 0 {
		// Compile a new program.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(listing) != 0 {
			ouf, err := os.Create(listing)
			if err != nil {
				log.Fatalf("%v: %v", listing, err)
			}
			_, err = prog.WriteTo(ouf)
			if err == nil {
				err = ouf.Close()
			}
			if err != nil {
				log.Fatalf("%v: %v", listing, err)
			}
		}
	} else if len(listing) != 0 {
		// Load an existing listing.
		inf, err := os.Open(listing)
		if err != nil {
			log.Fatalf("%v: %v", listing, err)
		}
		defer inf.Close()

		prog, err = cpu.ReadListing(inf)
		if err != nil {
			log.Fatalf("%v: %v", listing, err)
		}
	} else {
		log.Fatalf("%v: one of -c or -l is required", os.Args[0])
	}

	if save {
		return
	}

	lines, err := readLines(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	ouf, err := create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
	defer ouf.Close()

	emu := emulator.NewEmulator(size)
	emu.Verbose = verbose
	emu.Limit = limit
	emu.Delay = delay
	emu.StandardDevices(lines, os.Stdout, ouf)

	var tw *bufio.Writer
	if len(trace) != 0 {
		tf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer tf.Close()
		tw = bufio.NewWriter(tf)
		defer tw.Flush()
		emu.Trace = tw
	}

	err = emu.Load(prog)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = emu.Run()
	if err != nil {
		if tw != nil {
			tw.Flush()
		}
		log.Printf("%v", emu.State())
		log.Fatal(err)
	}

	if verbose {
		log.Printf("halted after %d instructions, %d ticks", emu.Instructions, emu.Ticks)
	}
}
