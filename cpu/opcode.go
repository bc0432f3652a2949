// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the high byte of an instruction word.
type Opcode uint8

const (
	// Stack management.
	OP_NOP   = Opcode(0x00) // nop
	OP_POP   = Opcode(0x02) // pop
	OP_PUSHF = Opcode(0x03) // pushf
	OP_POPF  = Opcode(0x04) // popf
	OP_INC   = Opcode(0x05) // inc
	OP_DEC   = Opcode(0x06) // dec
	OP_SWAP  = Opcode(0x07) // swap
	OP_DUP   = Opcode(0x08) // dup
	OP_RET   = Opcode(0x09) // ret

	// Privileged.
	OP_HALT = Opcode(0x0A) // halt
	OP_IRET = Opcode(0x0C) // iret
	OP_EI   = Opcode(0x0D) // ei
	OP_DI   = Opcode(0x0E) // di

	// Stack arithmetic.
	OP_ADD = Opcode(0x11) // add
	OP_SUB = Opcode(0x12) // sub
	OP_MUL = Opcode(0x13) // mul
	OP_DIV = Opcode(0x14) // div
	OP_AND = Opcode(0x15) // and
	OP_OR  = Opcode(0x16) // or
	OP_XOR = Opcode(0x17) // xor
	OP_NOT = Opcode(0x18) // not
	OP_NEG = Opcode(0x19) // neg
	OP_SHL = Opcode(0x1A) // shl
	OP_SHR = Opcode(0x1B) // shr
	OP_ROL = Opcode(0x1C) // rol
	OP_ROR = Opcode(0x1D) // ror
	OP_CMP = Opcode(0x1E) // cmp

	// Memory.
	OP_LD = Opcode(0x28) // ld
	OP_ST = Opcode(0x29) // st

	// Addressed: control flow.
	OP_JMP = Opcode(0x80) // jmp
	OP_JZ  = Opcode(0x84) // jz
	OP_JE  = Opcode(0x88) // je
	OP_JNZ = Opcode(0x8C) // jnz
	OP_JG  = Opcode(0x90) // jg
	OP_JGE = Opcode(0x94) // jge
	OP_JL  = Opcode(0x98) // jl
	OP_JLE = Opcode(0x9C) // jle

	// Addressed: stack.
	OP_CALL = Opcode(0xA0) // call
	OP_PUSH = Opcode(0xA4) // push

	// Addressed: device control.
	OP_SET   = Opcode(0xF0) // set
	OP_UNSET = Opcode(0xF4) // unset
	OP_CHECK = Opcode(0xFC) // check

	OP_ADDRESSED = Opcode(0x80) // Set on all addressed opcodes.
	OP_MODE_MASK = Opcode(0x03) // Addressing submode bits of an addressed opcode.
)

// AddrMode is the addressing submode of an addressed instruction.
type AddrMode uint8

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	ADDR_ABSOLUTE = AddrMode(0) // absolute
	ADDR_RELATIVE = AddrMode(1) // relative
	ADDR_DIRECT   = AddrMode(2) // direct
)

// OperandKind is the kind of operand an opcode accepts.
type OperandKind uint8

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_NONE   = OperandKind(0) // none
	OPERAND_LABEL  = OperandKind(1) // label
	OPERAND_VALUE  = OperandKind(2) // label or number
	OPERAND_DEVICE = OperandKind(3) // device
)

type opcodeInfo struct {
	Mnemonic string
	Operand  OperandKind
}

var opcodeTable = map[Opcode]opcodeInfo{
	OP_NOP:   {"nop", OPERAND_NONE},
	OP_POP:   {"pop", OPERAND_NONE},
	OP_PUSHF: {"pushf", OPERAND_NONE},
	OP_POPF:  {"popf", OPERAND_NONE},
	OP_INC:   {"inc", OPERAND_NONE},
	OP_DEC:   {"dec", OPERAND_NONE},
	OP_SWAP:  {"swap", OPERAND_NONE},
	OP_DUP:   {"dup", OPERAND_NONE},
	OP_RET:   {"ret", OPERAND_NONE},
	OP_HALT:  {"halt", OPERAND_NONE},
	OP_IRET:  {"iret", OPERAND_NONE},
	OP_EI:    {"ei", OPERAND_NONE},
	OP_DI:    {"di", OPERAND_NONE},
	OP_ADD:   {"add", OPERAND_NONE},
	OP_SUB:   {"sub", OPERAND_NONE},
	OP_MUL:   {"mul", OPERAND_NONE},
	OP_DIV:   {"div", OPERAND_NONE},
	OP_AND:   {"and", OPERAND_NONE},
	OP_OR:    {"or", OPERAND_NONE},
	OP_XOR:   {"xor", OPERAND_NONE},
	OP_NOT:   {"not", OPERAND_NONE},
	OP_NEG:   {"neg", OPERAND_NONE},
	OP_SHL:   {"shl", OPERAND_NONE},
	OP_SHR:   {"shr", OPERAND_NONE},
	OP_ROL:   {"rol", OPERAND_NONE},
	OP_ROR:   {"ror", OPERAND_NONE},
	OP_CMP:   {"cmp", OPERAND_NONE},
	OP_LD:    {"ld", OPERAND_NONE},
	OP_ST:    {"st", OPERAND_NONE},
	OP_JMP:   {"jmp", OPERAND_LABEL},
	OP_JZ:    {"jz", OPERAND_LABEL},
	OP_JE:    {"je", OPERAND_LABEL},
	OP_JNZ:   {"jnz", OPERAND_LABEL},
	OP_JG:    {"jg", OPERAND_LABEL},
	OP_JGE:   {"jge", OPERAND_LABEL},
	OP_JL:    {"jl", OPERAND_LABEL},
	OP_JLE:   {"jle", OPERAND_LABEL},
	OP_CALL:  {"call", OPERAND_LABEL},
	OP_PUSH:  {"push", OPERAND_VALUE},
	OP_SET:   {"set", OPERAND_DEVICE},
	OP_UNSET: {"unset", OPERAND_DEVICE},
	OP_CHECK: {"check", OPERAND_DEVICE},
}

var mnemonicTable = func() (table map[string]Opcode) {
	table = make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		table[info.Mnemonic] = op
	}
	return
}()

// LookupOpcode returns the opcode for a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicTable[strings.ToLower(mnemonic)]
	return
}

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Addressed returns true if the opcode carries a 24-bit operand.
func (op Opcode) Addressed() bool {
	return op&OP_ADDRESSED != 0
}

// Operand returns the kind of operand the opcode takes.
func (op Opcode) Operand() OperandKind {
	return opcodeTable[op].Operand
}

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("Opcode(0x%02x)", uint8(op))
	}
	return info.Mnemonic
}

// Instruction word layout.
const (
	INSN_OPCODE_SHIFT  = 24
	INSN_OPERAND_MASK  = uint32(0x00ff_ffff)
	INSN_ADDRESSED_BIT = uint32(1 << 31)
)

// MakeInstruction encodes an instruction word.
func MakeInstruction(op Opcode, mode AddrMode, operand uint32) uint32 {
	if !op.Addressed() {
		return uint32(op) << INSN_OPCODE_SHIFT
	}
	return uint32(op|Opcode(mode)&OP_MODE_MASK)<<INSN_OPCODE_SHIFT | (operand & INSN_OPERAND_MASK)
}

// DecodeInstruction splits an instruction word into its opcode, addressing
// submode and operand.
func DecodeInstruction(word uint32) (op Opcode, mode AddrMode, operand uint32) {
	op = Opcode(word >> INSN_OPCODE_SHIFT)
	if op.Addressed() {
		mode = AddrMode(op & OP_MODE_MASK)
		op &^= OP_MODE_MASK
		operand = word & INSN_OPERAND_MASK
	}
	return
}
