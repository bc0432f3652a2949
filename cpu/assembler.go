// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
)

// Assembler translates stackmc assembly source into a Program.
//
// Translation runs in four stages: lexing, syntax analysis into a flat
// statement list, semantic analysis, and generation of the memory image.
// Any error aborts translation before an image is produced.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]int64 // Names available to $(...) expressions.
}

// Predefine defines a new integer for $(...) expressions, or redefines an
// existing one.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	stmts, err := ParseStatements(Lex(input))
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("asm: %d statements", len(stmts))
	}

	an := &analyzer{
		Verbose:   asm.Verbose,
		predefine: asm.predefine,
	}
	err = an.analyze(stmts)
	if err != nil {
		return
	}

	gen := &generator{
		Verbose: asm.Verbose,
	}
	prog, err = gen.generate(stmts)
	if err != nil {
		return
	}

	if asm.Verbose {
		log.Printf("asm: %d cells, entry 0x%06x", len(prog.Cells), prog.Entry)
	}

	return
}
