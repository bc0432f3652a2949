package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		lhs    uint32
		rhs    uint32
		code   AluCode
		result uint32
		flags  uint32
	}){
		{"add", 2, 3, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), 5, 0},
		{"add_carry", 0xffff_ffff, 1, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), 0, ALU_FLAG_C | ALU_FLAG_Z},
		{"add_neg", 0x7fff_ffff, 1, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS), 0x8000_0000, ALU_FLAG_N},
		{"not_lhs", 5, 0, MakeAluCode(ALU_OP_ADD, ALU_NOT, ALU_PASS), 0xffff_fffa, ALU_FLAG_N},
		{"inc_rhs", 5, 0, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_INC), 6, 0},
		{"sub", 5, 3, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_NEG), 2, 0},
		{"sub_zero", 5, 5, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_NEG), 0, ALU_FLAG_Z},
		{"sub_borrow", 3, 5, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_NEG), 0xffff_fffe, ALU_FLAG_N},
		{"dec", 0, 0, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_NOT), 0xffff_ffff, ALU_FLAG_N},
		{"and", 0xf0f0, 0xff00, MakeAluCode(ALU_OP_AND, ALU_PASS, ALU_PASS), 0xf000, 0},
		{"and_not", 0xff, 0x0f, MakeAluCode(ALU_OP_AND, ALU_PASS, ALU_NOT), 0xf0, 0},
		{"and_clear", 0x1234, 0x1234, MakeAluCode(ALU_OP_AND, ALU_PASS, ALU_NOT), 0, ALU_FLAG_Z},
		{"nand", 0x0c, 0x0a, MakeAluCode(ALU_OP_AND, ALU_NOT, ALU_NOT), 0xffff_fff1, ALU_FLAG_N},
		{"mul", 6, 7, MakeAluCode(ALU_OP_MUL, ALU_PASS, ALU_PASS), 42, 0},
		{"mul_carry", 0x1_0000, 0x1_0000, MakeAluCode(ALU_OP_MUL, ALU_PASS, ALU_PASS), 0, ALU_FLAG_C | ALU_FLAG_Z},
		{"mul_big", 0xffff_ffff, 0xffff_ffff, MakeAluCode(ALU_OP_MUL, ALU_PASS, ALU_PASS), 1, ALU_FLAG_C},
		{"mul_neg", 2, 3, MakeAluCode(ALU_OP_MUL, ALU_NOT, ALU_PASS), 0xffff_fff7, ALU_FLAG_N},
		{"mul_neg_neg", 2, 3, MakeAluCode(ALU_OP_MUL, ALU_NOT, ALU_NOT), 12, 0},
		{"div", 7, 2, MakeAluCode(ALU_OP_DIV, ALU_PASS, ALU_PASS), 3, 0},
		{"div_floor", 6, 3, MakeAluCode(ALU_OP_DIV, ALU_NOT, ALU_PASS), 0xffff_fffd, ALU_FLAG_N},
		{"div_exact", 5, 3, MakeAluCode(ALU_OP_DIV, ALU_NOT, ALU_PASS), 0xffff_fffe, ALU_FLAG_N},
		{"div_small", 1, 2, MakeAluCode(ALU_OP_DIV, ALU_PASS, ALU_PASS), 0, ALU_FLAG_Z},
	}

	for _, entry := range table {
		result, flags, err := Alu(entry.lhs, entry.rhs, entry.code)
		assert.NoError(err, entry.name)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}
}

func TestAluDivisionByZero(t *testing.T) {
	assert := assert.New(t)

	_, _, err := Alu(6, 0, MakeAluCode(ALU_OP_DIV, ALU_PASS, ALU_PASS))
	assert.ErrorIs(err, ErrDivisionByZero)

	// ~0 + 1 is zero as well.
	_, _, err = Alu(6, 0, MakeAluCode(ALU_OP_DIV, ALU_PASS, ALU_NEG))
	assert.ErrorIs(err, ErrDivisionByZero)

	// ~0 is not.
	result, _, err := Alu(6, 0, MakeAluCode(ALU_OP_DIV, ALU_PASS, ALU_NOT))
	assert.NoError(err)
	assert.Equal(uint32(0xffff_fffa), result)
}

func TestAluCode(t *testing.T) {
	assert := assert.New(t)

	for op := range AluOp(4) {
		for lhs := range AluTransform(4) {
			for rhs := range AluTransform(4) {
				code := MakeAluCode(op, lhs, rhs)
				assert.Less(uint8(code), uint8(0x40))
				o, l, r := code.Decode()
				assert.Equal(op, o)
				assert.Equal(lhs, l)
				assert.Equal(rhs, r)
			}
		}
	}

	assert.Equal(AluCode(0b10_01_11), MakeAluCode(ALU_OP_MUL, ALU_NOT, ALU_NEG))
}

func FuzzAluAdd(f *testing.F) {
	f.Add(uint32(0), uint32(0))
	f.Add(uint32(0xffff_ffff), uint32(1))
	f.Add(uint32(0x8000_0000), uint32(0x8000_0000))
	f.Add(uint32(0x7fff_ffff), uint32(0x7fff_ffff))

	f.Fuzz(func(t *testing.T, lhs uint32, rhs uint32) {
		assert := assert.New(t)

		result, flags, err := Alu(lhs, rhs, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_PASS))
		assert.NoError(err)

		sum := uint64(lhs) + uint64(rhs)
		assert.Equal(uint32(sum), result)
		assert.Equal(sum > 0xffff_ffff, flags&ALU_FLAG_C != 0)
		assert.Equal(result == 0, flags&ALU_FLAG_Z != 0)
		assert.Equal(result&0x8000_0000 != 0, flags&ALU_FLAG_N != 0)

		// Subtraction through the complement transform.
		result, flags, err = Alu(lhs, rhs, MakeAluCode(ALU_OP_ADD, ALU_PASS, ALU_NEG))
		assert.NoError(err)
		assert.Equal(lhs-rhs, result)
		assert.Equal(lhs == rhs, flags&ALU_FLAG_Z != 0)
	})
}
