// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/stackmc/io"
)

// Device is a memory mapped peripheral, polled after every instruction.
type Device io.Device

// ControlUnit sequences instructions through the data path.
type ControlUnit struct {
	Verbose bool // Set to enable verbose logging.

	DataPath

	Devices []Device // Devices polled after each instruction.

	Ticks        int // Microinstructions executed since reset.
	Instructions int // Instructions completed since reset.

	Opcode  Opcode   // Opcode of the current instruction.
	Mode    AddrMode // Addressing submode of the current instruction.
	Operand uint32   // Operand of the current instruction.
}

// NewControlUnit creates a control unit over a memory of size cells.
func NewControlUnit(size int) (cu *ControlUnit) {
	cu = &ControlUnit{
		DataPath: DataPath{
			Memory: NewMemory(size),
		},
	}

	cu.Reset(0)

	return
}

// Reset clears the registers and counters, starting execution at entry.
// The stack pointer is placed just beyond the last memory cell.
func (cu *ControlUnit) Reset(entry uint32) {
	if cu.Verbose {
		log.Printf("cpu: reset, entry 0x%06x", entry)
	}

	cu.Registers = Registers{
		PC: entry & ADDRESS_MASK,
		SP: uint32(cu.Memory.Size()),
		SR: SR_RUN,
	}
	cu.Ticks = 0
	cu.Instructions = 0
	cu.Opcode = OP_NOP
	cu.Mode = ADDR_ABSOLUTE
	cu.Operand = 0
}

// Running returns true until the machine halts.
func (cu *ControlUnit) Running() bool {
	return cu.SR&SR_RUN != 0
}

// Attach adds a device to the poll list.
func (cu *ControlUnit) Attach(dev Device) {
	cu.Devices = append(cu.Devices, dev)
}

// run executes a microsequence, one tick per microinstruction.
func (cu *ControlUnit) run(seq []Micro) (err error) {
	for _, mc := range seq {
		if cu.Verbose {
			log.Printf("cpu:   %v", mc)
		}
		cu.Ticks++
		err = cu.DataPath.Execute(mc)
		if err != nil {
			return
		}
	}

	return
}

// Step fetches, decodes and executes one instruction, then polls devices.
// Faults are returned as *ErrFault.
func (cu *ControlUnit) Step() (err error) {
	if !cu.Running() {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			err = &ErrFault{
				Tick:        cu.Ticks,
				Instruction: cu.Instructions,
				PC:          cu.PC,
				Err:         err,
			}
		}
	}()

	// FETCH
	err = cu.run(seqFetch)
	if err != nil {
		return
	}

	// DECODE
	cu.Opcode, cu.Mode, cu.Operand = DecodeInstruction(cu.CR)

	if cu.Verbose {
		log.Printf("cpu: %06x: %08x %v", cu.BR&ADDRESS_MASK, cu.CR, cu.Opcode)
	}

	// EXECUTE
	err = cu.execute(cu.Opcode)
	if err != nil {
		return
	}

	cu.Instructions++

	// DEVICE-POLL
	for _, dev := range cu.Devices {
		err = dev.Poll()
		if err != nil {
			return
		}
	}

	return
}

// jumpIf returns the jump sequence when cond holds.
func jumpIf(cond bool) []Micro {
	if cond {
		return seqJump
	}
	return nil
}

// execute runs the microsequence of an opcode.
func (cu *ControlUnit) execute(op Opcode) (err error) {
	var seq []Micro

	z := cu.SR&SR_Z != 0
	n := cu.SR&SR_N != 0

	switch op {
	case OP_NOP:
	case OP_POP:
		seq = seqPop
	case OP_PUSHF:
		seq = seqPushf
	case OP_POPF:
		seq = seqPopf
	case OP_INC:
		seq = seqInc
	case OP_DEC:
		seq = seqDec
	case OP_SWAP:
		seq = seqSwap
	case OP_DUP:
		seq = seqDup
	case OP_RET:
		seq = seqRet
	case OP_HALT:
		cu.Ticks++
		cu.SR &^= SR_RUN
	case OP_IRET:
		seq = seqIret
	case OP_EI:
		cu.Ticks++
		cu.SR |= SR_IE
	case OP_DI:
		cu.Ticks++
		cu.SR &^= SR_IE
	case OP_ADD:
		seq = seqAdd
	case OP_SUB:
		seq = seqSub
	case OP_MUL:
		seq = seqMul
	case OP_DIV:
		seq = seqDiv
	case OP_AND:
		seq = seqAnd
	case OP_OR:
		seq = seqOr
	case OP_XOR:
		seq = seqXor
	case OP_NOT:
		seq = seqNot
	case OP_NEG:
		seq = seqNeg
	case OP_SHL:
		seq = seqShl
	case OP_SHR:
		seq = seqShr
	case OP_ROL:
		seq = seqRol
	case OP_ROR:
		seq = seqRor
	case OP_CMP:
		seq = seqCmp
	case OP_LD:
		seq = seqLd
	case OP_ST:
		seq = seqSt
	case OP_JMP:
		seq = seqJump
	case OP_JZ, OP_JE:
		seq = jumpIf(z)
	case OP_JNZ:
		seq = jumpIf(!z)
	case OP_JG:
		seq = jumpIf(!n)
	case OP_JGE:
		seq = jumpIf(!n || z)
	case OP_JL:
		seq = jumpIf(n)
	case OP_JLE:
		seq = jumpIf(n || z)
	case OP_CALL:
		seq = seqCall
	case OP_PUSH:
		seq = seqPush
	case OP_SET:
		seq = seqSet
	case OP_UNSET:
		seq = seqUnset
	case OP_CHECK:
		seq = seqCheck
	default:
		err = ErrOpcode(cu.CR)
		return
	}

	err = cu.run(seq)

	return
}
