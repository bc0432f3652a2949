// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

// Register is a bit mask selecting one or more machine registers.
type Register uint8

const (
	REG_NONE = Register(0)
	REG_PC   = Register(1 << 0) // PC
	REG_SP   = Register(1 << 1) // SP
	REG_CR   = Register(1 << 2) // CR
	REG_AR   = Register(1 << 3) // AR
	REG_DR   = Register(1 << 4) // DR
	REG_SR   = Register(1 << 5) // SR
	REG_BR   = Register(1 << 6) // BR

	REG_MASK = Register(0x7f)
)

var registerNames = [...]string{"PC", "SP", "CR", "AR", "DR", "SR", "BR"}

// String returns the register selection as 'A|B', or '0' for none.
func (reg Register) String() string {
	if reg&REG_MASK == REG_NONE {
		return "0"
	}

	var names []string
	for n, name := range registerNames {
		if reg&(1<<n) != 0 {
			names = append(names, name)
		}
	}

	return strings.Join(names, "|")
}

// Status register bits.
const (
	SR_C   = uint32(1 << 0)  // Carry
	SR_V   = uint32(1 << 1)  // Overflow
	SR_Z   = uint32(1 << 2)  // Zero
	SR_N   = uint32(1 << 3)  // Negative
	SR_IE  = uint32(1 << 14) // Interrupts enabled
	SR_RUN = uint32(1 << 15) // Running

	SR_FLAGS = SR_C | SR_V | SR_Z | SR_N
)

// Registers is the register file of the machine.
type Registers struct {
	PC uint32 // Program counter.
	SP uint32 // Stack pointer.
	CR uint32 // Command register.
	AR uint32 // Address register.
	DR uint32 // Data register.
	SR uint32 // Status register.
	BR uint32 // Buffer register.
}

func (regs *Registers) slot(n int) *uint32 {
	switch n {
	case 0:
		return &regs.PC
	case 1:
		return &regs.SP
	case 2:
		return &regs.CR
	case 3:
		return &regs.AR
	case 4:
		return &regs.DR
	case 5:
		return &regs.SR
	default:
		return &regs.BR
	}
}

// Get returns the bitwise OR of all selected registers.
func (regs *Registers) Get(reg Register) (value uint32) {
	for n := range len(registerNames) {
		if reg&(1<<n) != 0 {
			value |= *regs.slot(n)
		}
	}

	return
}

// Set stores value into every selected register.
func (regs *Registers) Set(reg Register, value uint32) {
	for n := range len(registerNames) {
		if reg&(1<<n) != 0 {
			*regs.slot(n) = value
		}
	}
}

// String returns a one line dump of the register file.
func (regs *Registers) String() string {
	return fmt.Sprintf("PC: %06X | SP: %06X | CR: %08X | AR: %06X | DR: %08X | SR: %04X | BR: %08X",
		regs.PC&ADDRESS_MASK, regs.SP&ADDRESS_MASK, regs.CR, regs.AR&ADDRESS_MASK, regs.DR, regs.SR&0xffff, regs.BR)
}
