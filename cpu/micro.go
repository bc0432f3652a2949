// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strings"
)

// DataPathOp is the memory class of a microinstruction.
type DataPathOp uint8

const (
	DP_NONE   = DataPathOp(0) // alu
	DP_READ   = DataPathOp(1) // read
	DP_WRITE  = DataPathOp(2) // write
	DP_DEVICE = DataPathOp(4) // device
)

// Micro is a packed 40-bit microinstruction:
//
//	op<<37 | target<<30 | lhs<<23 | rhs<<16 | alu<<10 | commutator
type Micro uint64

const (
	micro_OP_SHIFT     = 37
	micro_TARGET_SHIFT = 30
	micro_LHS_SHIFT    = 23
	micro_RHS_SHIFT    = 16
	micro_ALU_SHIFT    = 10
)

// MakeMicro packs a microinstruction.
func MakeMicro(op DataPathOp, target Register, lhs Register, rhs Register, alu AluCode, comm CommutatorCode) Micro {
	return Micro(uint64(op&0x7)<<micro_OP_SHIFT |
		uint64(target&REG_MASK)<<micro_TARGET_SHIFT |
		uint64(lhs&REG_MASK)<<micro_LHS_SHIFT |
		uint64(rhs&REG_MASK)<<micro_RHS_SHIFT |
		uint64(alu&0x3f)<<micro_ALU_SHIFT |
		uint64(comm&comm_MASK))
}

// Decode unpacks a microinstruction.
func (mc Micro) Decode() (op DataPathOp, target Register, lhs Register, rhs Register, alu AluCode, comm CommutatorCode) {
	op = DataPathOp((mc >> micro_OP_SHIFT) & 0x7)
	target = Register((mc >> micro_TARGET_SHIFT) & Micro(REG_MASK))
	lhs = Register((mc >> micro_LHS_SHIFT) & Micro(REG_MASK))
	rhs = Register((mc >> micro_RHS_SHIFT) & Micro(REG_MASK))
	alu = AluCode((mc >> micro_ALU_SHIFT) & 0x3f)
	comm = CommutatorCode(mc) & comm_MASK
	return
}

// String returns the register transfer notation of the microinstruction,
// ie 'SP+~0 -> SP|AR' or 'MEM(AR) -> DR'.
func (mc Micro) String() string {
	op, target, lhs, rhs, alu, comm := mc.Decode()

	switch op {
	case DP_READ:
		return "MEM(AR) -> DR"
	case DP_WRITE:
		return "DR -> MEM(AR)"
	case DP_DEVICE:
		return "DEV"
	}

	aluOp, lhsTf, rhsTf := alu.Decode()
	expr := lhsTf.mnemonic(lhs.String())
	if rhs != REG_NONE || rhsTf != ALU_PASS || aluOp != ALU_OP_ADD {
		expr += fmt.Sprintf(" %v %v", aluOp, rhsTf.mnemonic(rhs.String()))
	}

	route := comm &^ COMM_SET_NZVC
	if route != COMM_PASS {
		name := route.String()
		if strings.Contains(name, ",") || name == "" {
			name = fmt.Sprintf("COMM[%#x]", uint16(route))
		}
		expr = fmt.Sprintf("%v(%v)", name, expr)
	}

	if target != REG_NONE {
		expr += " -> " + target.String()
	}

	if commit := comm & COMM_SET_NZVC; commit != 0 {
		expr += " [" + commit.String() + "]"
	}

	return expr
}

// Microinstruction builders.

func mcRead() Micro {
	return MakeMicro(DP_READ, REG_NONE, REG_NONE, REG_NONE, 0, 0)
}

func mcWrite() Micro {
	return MakeMicro(DP_WRITE, REG_NONE, REG_NONE, REG_NONE, 0, 0)
}

// mcMove copies src into target.
func mcMove(target Register, src Register) Micro {
	return MakeMicro(DP_NONE, target, src, REG_NONE, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), COMM_PASS)
}

// mcCut copies the low 24 bits of src into target.
func mcCut(target Register, src Register) Micro {
	return MakeMicro(DP_NONE, target, src, REG_NONE, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), COMM_CUTB)
}

// mcAlu computes 'lhs op rhs' through the commutator into target.
func mcAlu(target Register, lhs Register, lhsTf AluTransform, op AluOp, rhs Register, rhsTf AluTransform, comm CommutatorCode) Micro {
	return MakeMicro(DP_NONE, target, lhs, rhs, MakeAluCode(op, lhsTf, rhsTf), comm)
}

// mcInc computes 'src + 1' into target.
func mcInc(target Register, src Register) Micro {
	return mcAlu(target, src, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_INC, COMM_PASS)
}

// mcDec computes 'src + ~0' into target.
func mcDec(target Register, src Register) Micro {
	return mcAlu(target, src, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_NOT, COMM_PASS)
}
