// Package cpu implements the microcoded processor and assembler for the
// stackmc machine.
//
// The processor is a 32-bit stack machine with seven registers (PC, SP, CR,
// AR, DR, SR, BR), a flat word-addressed memory and an ALU/commutator pair on
// a single data path. Every architectural instruction is expanded by the
// ControlUnit into a short sequence of 40-bit microinstructions, and each
// microinstruction costs exactly one tick.
//
// The assembler turns sectioned source text (.section data, text and devices)
// into a Program, which can be written to and read from a text listing.
package cpu
