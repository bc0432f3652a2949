// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"math/bits"
)

// AluOp is an ALU operation.
type AluOp uint8

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // +
	ALU_OP_AND = AluOp(1) // &
	ALU_OP_MUL = AluOp(2) // *
	ALU_OP_DIV = AluOp(3) // /
)

// AluTransform is a set of operand transforms, applied NOT first, then INC.
type AluTransform uint8

const (
	ALU_PASS = AluTransform(0)
	ALU_NOT  = AluTransform(1 << 0)
	ALU_INC  = AluTransform(1 << 1)
	ALU_NEG  = ALU_NOT | ALU_INC
)

// AluCode is the 6-bit ALU control field of a microinstruction.
type AluCode uint8

// ALU result flags, in status register order.
const (
	ALU_FLAG_C = SR_C
	ALU_FLAG_V = SR_V
	ALU_FLAG_Z = SR_Z
	ALU_FLAG_N = SR_N
)

// MakeAluCode packs an operation and its operand transforms.
func MakeAluCode(op AluOp, lhs AluTransform, rhs AluTransform) AluCode {
	return AluCode((uint8(op)&0x3)<<4 | (uint8(lhs)&0x3)<<2 | uint8(rhs)&0x3)
}

// Decode unpacks an ALU code.
func (code AluCode) Decode() (op AluOp, lhs AluTransform, rhs AluTransform) {
	op = AluOp((code >> 4) & 0x3)
	lhs = AluTransform((code >> 2) & 0x3)
	rhs = AluTransform(code & 0x3)
	return
}

// apply transforms an operand. NOT is the unbounded complement -x-1.
func (tf AluTransform) apply(value uint32) (out int64) {
	out = int64(value)
	if tf&ALU_NOT != 0 {
		out = -out - 1
	}
	if tf&ALU_INC != 0 {
		out++
	}
	return
}

func (tf AluTransform) mnemonic(reg string) string {
	if tf&ALU_NOT != 0 {
		reg = "~" + reg
	}
	if tf&ALU_INC != 0 {
		if reg == "0" {
			return "1"
		}
		reg += "+1"
	}
	return reg
}

func abs64(value int64) uint64 {
	if value < 0 {
		return uint64(-value)
	}
	return uint64(value)
}

// Alu computes the operation selected by code on lhs and rhs.
//
// Operands are transformed into unbounded integers, combined, and the result
// truncated to 32 bits. Carry is set when the unbounded result exceeds 32
// bits, overflow uses the sign rule on the unbounded operands, zero and
// negative describe the truncated result.
func Alu(lhs uint32, rhs uint32, code AluCode) (result uint32, flags uint32, err error) {
	op, lhsTf, rhsTf := code.Decode()

	l := lhsTf.apply(lhs)
	r := rhsTf.apply(rhs)

	switch op {
	case ALU_OP_ADD:
		res := l + r
		if res > 0xffff_ffff {
			flags |= ALU_FLAG_C
		}
		if (l > 0 && r > 0 && res < 0) || (l < 0 && r < 0 && res > 0) {
			flags |= ALU_FLAG_V
		}
		result = uint32(res)
	case ALU_OP_AND:
		result = uint32(l & r)
	case ALU_OP_MUL:
		hi, lo := bits.Mul64(abs64(l), abs64(r))
		positive := (l > 0 && r > 0) || (l < 0 && r < 0)
		if positive && (hi != 0 || lo > 0xffff_ffff) {
			flags |= ALU_FLAG_C
		}
		result = uint32(uint64(l) * uint64(r))
	case ALU_OP_DIV:
		if r == 0 {
			err = ErrDivisionByZero
			return
		}
		res := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			res--
		}
		result = uint32(res)
	}

	if result == 0 {
		flags |= ALU_FLAG_Z
	}
	if result&0x8000_0000 != 0 {
		flags |= ALU_FLAG_N
	}

	return
}
