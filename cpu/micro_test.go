package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMicroPacking(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     DataPathOp
		target Register
		lhs    Register
		rhs    Register
		alu    AluCode
		comm   CommutatorCode
	}){
		{DP_NONE, REG_NONE, REG_NONE, REG_NONE, 0, 0},
		{DP_READ, REG_NONE, REG_NONE, REG_NONE, 0, 0},
		{DP_WRITE, REG_NONE, REG_NONE, REG_NONE, 0, 0},
		{DP_DEVICE, REG_NONE, REG_NONE, REG_NONE, 0, 0},
		{DP_NONE, REG_AR | REG_BR, REG_PC, REG_NONE, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), COMM_PASS},
		{DP_NONE, REG_MASK, REG_MASK, REG_MASK, 0x3f, comm_MASK},
		{DP_NONE, REG_DR, REG_DR, REG_BR, MakeAluCode(ALU_OP_DIV, ALU_NOT, ALU_NEG), COMM_ROR | COMM_SET_NZVC},
	}

	for _, entry := range table {
		mc := MakeMicro(entry.op, entry.target, entry.lhs, entry.rhs, entry.alu, entry.comm)
		assert.Less(uint64(mc), uint64(1)<<40)

		op, target, lhs, rhs, alu, comm := mc.Decode()
		assert.Equal(entry.op, op)
		assert.Equal(entry.target, target)
		assert.Equal(entry.lhs, lhs)
		assert.Equal(entry.rhs, rhs)
		assert.Equal(entry.alu, alu)
		assert.Equal(entry.comm, comm)
	}

	mc := MakeMicro(DP_WRITE, REG_PC, REG_SP, REG_CR, 0x15, 0x203)
	assert.Equal(Micro(2<<37|1<<30|2<<23|4<<16|0x15<<10|0x203), mc)
}

func TestMicroString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mc   Micro
		text string
	}){
		{mcRead(), "MEM(AR) -> DR"},
		{mcWrite(), "DR -> MEM(AR)"},
		{mcMove(REG_AR|REG_BR, REG_PC), "PC -> AR|BR"},
		{mcInc(REG_PC, REG_BR), "BR + 1 -> PC"},
		{mcDec(REG_SP|REG_AR, REG_SP), "SP + ~0 -> SP|AR"},
		{mcCut(REG_DR, REG_CR), "CUTB(CR) -> DR"},
		{mcAlu(REG_BR, REG_BR, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_ROR), "ROR(BR) -> BR"},
		{mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_ADD, REG_BR, ALU_PASS, COMM_PASS|COMM_SET_NZVC), "DR + BR -> DR [NZ,V,C]"},
		{mcAlu(REG_NONE, REG_DR, ALU_PASS, ALU_OP_AND, REG_BR, ALU_PASS, COMM_PASS|COMM_SET_NZ), "DR & BR [NZ]"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.mc.String())
	}
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0", REG_NONE.String())
	assert.Equal("AR|BR", (REG_AR | REG_BR).String())
	assert.Equal("PC|SP|CR|AR|DR|SR|BR", REG_MASK.String())

	var regs Registers
	regs.Set(REG_SP|REG_AR, 0x1234)
	assert.Equal(uint32(0x1234), regs.SP)
	assert.Equal(uint32(0x1234), regs.AR)
	assert.Zero(regs.PC)

	regs.Set(REG_DR, 0xff00)
	assert.Equal(uint32(0x1234|0xff00), regs.Get(REG_AR|REG_DR))
	assert.Zero(regs.Get(REG_NONE))

	// Addresses print as 24 bits, so the line stays fixed width.
	regs = Registers{PC: 0xff00_0020, SP: MEMORY_SIZE, AR: 0x0100_0001, SR: 0x1_8000, DR: 0xdead_beef}
	assert.Equal("PC: 000020 | SP: 000000 | CR: 00000000 | AR: 000001 | DR: DEADBEEF | SR: 8000 | BR: 00000000", regs.String())
}
