// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled stackmc programs with their devices.
package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"log"
	"time"

	"github.com/ezrec/stackmc/cpu"
	"github.com/ezrec/stackmc/io"
)

// Standard device ports.
const (
	DEV_INPUT       = 0 // Line input.
	DEV_CONSOLE_STR = 1 // Console output, as text.
	DEV_CONSOLE_INT = 2 // Console output, as a signed integer.
	DEV_CONSOLE_UNS = 3 // Console output, as an unsigned integer.
	DEV_CONSOLE_HEX = 4 // Console output, as hex bytes.
	DEV_FILE_STR    = 5 // File output, as text.
	DEV_FILE_INT    = 6 // File output, as a signed integer.
	DEV_FILE_UNS    = 7 // File output, as an unsigned integer.
	DEV_FILE_HEX    = 8 // File output, as hex bytes.
)

// Emulator state. Control unit + program + devices.
type Emulator struct {
	Verbose          bool         // If set, enables verbose logging.
	*cpu.ControlUnit              // Reference to the CPU simulation.
	Program          *cpu.Program // Reference to the currently loaded program.

	Limit int           // If non-zero, the maximum number of instructions to run.
	Delay time.Duration // Pause between instructions.
	Trace stdio.Writer  // If set, receives one state line per instruction.

	inputs []*io.Input
}

// NewEmulator creates a new emulator with a memory of size cells.
// A size of zero selects the full 24-bit address space.
func NewEmulator(size int) (emu *Emulator) {
	emu = &Emulator{
		ControlUnit: cpu.NewControlUnit(size),
	}

	return
}

// AddInput attaches a line input device.
func (emu *Emulator) AddInput(id int, lines []string, journal stdio.Writer) (in *io.Input) {
	in = &io.Input{
		Port:    io.Port{Memory: emu.Memory, ID: id},
		Lines:   lines,
		Journal: journal,
	}
	emu.inputs = append(emu.inputs, in)
	emu.Attach(in)
	return
}

// AddOutput attaches an output device.
func (emu *Emulator) AddOutput(id int, format io.Format, sink io.Sink) (out *io.Output) {
	out = &io.Output{
		Port:   io.Port{Memory: emu.Memory, ID: id},
		Format: format,
		Sink:   sink,
	}
	emu.Attach(out)
	return
}

// StandardDevices attaches the standard device set: line input on dev0,
// console outputs on dev1-dev4 and file outputs on dev5-dev8. The file also
// receives the transcript of every input line and console output.
func (emu *Emulator) StandardDevices(lines []string, console stdio.Writer, file stdio.Writer) {
	emu.AddInput(DEV_INPUT, lines, file)

	consoleSink := &io.ConsoleSink{Console: console, Journal: file}
	fileSink := &io.FileSink{File: file}

	formats := []io.Format{io.FORMAT_STRING, io.FORMAT_INT, io.FORMAT_UINT, io.FORMAT_HEX}
	for n, format := range formats {
		emu.AddOutput(DEV_CONSOLE_STR+n, format, consoleSink)
	}
	for n, format := range formats {
		emu.AddOutput(DEV_FILE_STR+n, format, fileSink)
	}
}

// Load places a program in a cleared memory, and resets the machine to its
// entry point.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Program = prog
	err = emu.Reset()
	return
}

// Reset reloads the current program, and rewinds the inputs.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	emu.ControlUnit.Verbose = emu.Verbose
	emu.Memory.Clear()

	err = emu.Program.Load(emu.Memory)
	if err != nil {
		return
	}

	for _, in := range emu.inputs {
		in.Rewind()
	}

	emu.ControlUnit.Reset(emu.Program.Entry)

	if emu.Verbose {
		log.Printf("emulator: loaded %d cells, entry 0x%06x", len(emu.Program.Cells), emu.Program.Entry)
	}

	return
}

// peek reads a cell, or zero when outside of memory.
func (emu *Emulator) peek(addr uint32) (value uint32) {
	value, _ = emu.Memory.Read(addr)
	return
}

// State returns a one line dump of the machine state.
func (emu *Emulator) State() string {
	return fmt.Sprintf("Tick: %d \t| Instruction: %d   | %v | TOS: %08X | NOS: %08X",
		emu.Ticks, emu.Instructions, &emu.Registers, emu.peek(emu.SP), emu.peek(emu.SP+1))
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if !emu.Running() {
		done = true
		return
	}

	// Set CPU verbosity
	emu.ControlUnit.Verbose = emu.Verbose

	addr := emu.PC & cpu.ADDRESS_MASK
	defer func() {
		if err != nil {
			rerr := &ErrRuntime{Instruction: emu.Instructions, Addr: addr, Err: err}
			if emu.Program != nil {
				if cell, ok := emu.Program.Cell(addr); ok {
					rerr.Labels = cell.Labels
				}
			}
			err = rerr
		}
	}()

	if emu.Limit > 0 && emu.Instructions >= emu.Limit {
		err = ErrLimit
		return
	}

	err = emu.Step()

	if emu.Trace != nil {
		fmt.Fprintln(emu.Trace, emu.State())
	}

	if err != nil {
		return
	}

	if emu.Delay > 0 {
		time.Sleep(emu.Delay)
	}

	done = !emu.Running()
	return
}

// Run executes until the program halts, or an error occurs.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// IsFault returns true if err is a machine fault, rather than an
// emulator limit.
func IsFault(err error) bool {
	var fault *cpu.ErrFault
	return errors.As(err, &fault)
}
