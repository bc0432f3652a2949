// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Microcode sequences. Binary stack operations compute 'next op top',
// leaving the result in place of next.

var seqFetch = []Micro{
	mcMove(REG_AR|REG_BR, REG_PC),
	mcRead(),
	mcMove(REG_CR, REG_DR),
	mcInc(REG_PC, REG_BR),
}

// seqBinary loads top into BR and next into DR, with SP and AR at next.
var seqBinary = []Micro{
	mcMove(REG_AR, REG_SP),
	mcRead(),
	mcMove(REG_BR, REG_DR),
	mcInc(REG_SP|REG_AR, REG_SP),
	mcRead(),
}

// seqUnary loads top into DR, with AR at top.
var seqUnary = []Micro{
	mcMove(REG_AR, REG_SP),
	mcRead(),
}

// seqReadyMask builds the device ready bit mask in BR.
var seqReadyMask = []Micro{
	mcAlu(REG_BR, REG_BR, ALU_PASS, ALU_OP_AND, REG_BR, ALU_NOT, COMM_PASS),
	mcInc(REG_BR, REG_BR),
	mcAlu(REG_BR, REG_BR, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_ROR),
}

func sequence(parts ...any) (seq []Micro) {
	for _, part := range parts {
		switch p := part.(type) {
		case Micro:
			seq = append(seq, p)
		case []Micro:
			seq = append(seq, p...)
		}
	}
	return
}

// binary applies 'DR op BR' into DR, committing flags, and writes it back.
func binary(op AluOp, rhsTf AluTransform, commit CommutatorCode) []Micro {
	return sequence(seqBinary,
		mcAlu(REG_DR, REG_DR, ALU_PASS, op, REG_BR, rhsTf, COMM_PASS|commit),
		mcWrite(),
	)
}

// shift routes DR through the shifter, then sets N and Z from the result.
func shift(comm CommutatorCode) []Micro {
	return sequence(seqUnary,
		mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_PASS, comm),
		mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_PASS|COMM_SET_NZ),
		mcWrite(),
	)
}

var (
	seqPush = sequence(
		mcCut(REG_DR, REG_CR),
		mcDec(REG_SP|REG_AR, REG_SP),
		mcWrite(),
	)

	seqPop = sequence(
		mcInc(REG_SP, REG_SP),
	)

	seqDup = sequence(seqUnary,
		mcDec(REG_SP|REG_AR, REG_SP),
		mcWrite(),
	)

	seqSwap = sequence(seqUnary,
		mcMove(REG_BR, REG_DR),
		mcInc(REG_AR, REG_SP),
		mcRead(),
		mcMove(REG_AR, REG_SP),
		mcWrite(),
		mcMove(REG_DR, REG_BR),
		mcInc(REG_AR, REG_SP),
		mcWrite(),
	)

	seqInc = sequence(seqUnary,
		mcInc(REG_DR, REG_DR),
		mcWrite(),
	)

	seqDec = sequence(seqUnary,
		mcDec(REG_DR, REG_DR),
		mcWrite(),
	)

	seqPushf = sequence(
		mcDec(REG_SP|REG_AR, REG_SP),
		mcMove(REG_DR, REG_SR),
		mcWrite(),
	)

	seqPopf = sequence(seqUnary,
		mcMove(REG_SR, REG_DR),
		mcInc(REG_SP, REG_SP),
	)

	seqCall = sequence(
		mcDec(REG_SP|REG_AR, REG_SP),
		mcMove(REG_DR, REG_PC),
		mcWrite(),
		mcCut(REG_PC, REG_CR),
	)

	seqRet = sequence(seqUnary,
		mcMove(REG_PC, REG_DR),
		mcInc(REG_SP, REG_SP),
	)

	seqIret = sequence(seqPopf, seqRet)

	seqAdd = binary(ALU_OP_ADD, ALU_PASS, COMM_SET_NZVC)
	seqSub = binary(ALU_OP_ADD, ALU_NEG, COMM_SET_NZVC)
	seqMul = binary(ALU_OP_MUL, ALU_PASS, COMM_SET_NZVC)
	seqDiv = binary(ALU_OP_DIV, ALU_PASS, COMM_SET_NZVC)
	seqAnd = binary(ALU_OP_AND, ALU_PASS, COMM_SET_NZVC)

	// a | b == ~(~a & ~b)
	seqOr = sequence(seqBinary,
		mcAlu(REG_DR, REG_DR, ALU_NOT, ALU_OP_AND, REG_BR, ALU_NOT, COMM_PASS),
		mcAlu(REG_DR, REG_DR, ALU_NOT, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_PASS|COMM_SET_NZVC),
		mcWrite(),
	)

	// a ^ b == (a + b) - ((a & b) << 1)
	seqXor = sequence(seqBinary,
		mcAlu(REG_AR, REG_DR, ALU_PASS, ALU_OP_AND, REG_BR, ALU_PASS, COMM_PASS),
		mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_ADD, REG_BR, ALU_PASS, COMM_PASS),
		mcAlu(REG_AR, REG_AR, ALU_PASS, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_SHL),
		mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_ADD, REG_AR, ALU_NEG, COMM_PASS|COMM_SET_NZVC),
		mcMove(REG_AR, REG_SP),
		mcWrite(),
	)

	seqNot = sequence(seqUnary,
		mcAlu(REG_DR, REG_DR, ALU_NOT, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_PASS|COMM_SET_NZVC),
		mcWrite(),
	)

	seqNeg = sequence(seqUnary,
		mcAlu(REG_DR, REG_DR, ALU_NEG, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_PASS|COMM_SET_NZVC),
		mcWrite(),
	)

	seqShl = shift(COMM_SHL)
	seqShr = shift(COMM_SHR)
	seqRol = shift(COMM_ROL)
	seqRor = shift(COMM_ROR)

	seqCmp = sequence(seqUnary,
		mcMove(REG_BR, REG_DR),
		mcInc(REG_AR, REG_SP),
		mcRead(),
		mcAlu(REG_NONE, REG_DR, ALU_PASS, ALU_OP_ADD, REG_BR, ALU_NEG, COMM_PASS|COMM_SET_NZVC),
	)

	seqLd = sequence(seqUnary,
		mcCut(REG_AR, REG_DR),
		mcRead(),
		mcMove(REG_AR, REG_SP),
		mcWrite(),
	)

	seqSt = sequence(seqBinary,
		mcCut(REG_AR, REG_BR),
		mcWrite(),
		mcInc(REG_SP, REG_SP),
	)

	seqJump = sequence(
		mcCut(REG_PC, REG_CR),
	)

	seqSet = sequence(
		mcCut(REG_AR, REG_CR),
		mcRead(),
		seqReadyMask,
		mcAlu(REG_DR, REG_DR, ALU_NOT, ALU_OP_AND, REG_BR, ALU_NOT, COMM_PASS),
		mcAlu(REG_DR, REG_DR, ALU_NOT, ALU_OP_ADD, REG_NONE, ALU_PASS, COMM_PASS),
		mcWrite(),
	)

	seqUnset = sequence(
		mcCut(REG_AR, REG_CR),
		mcRead(),
		seqReadyMask,
		mcAlu(REG_DR, REG_DR, ALU_PASS, ALU_OP_AND, REG_BR, ALU_NOT, COMM_PASS),
		mcWrite(),
	)

	seqCheck = sequence(
		mcCut(REG_AR, REG_CR),
		mcRead(),
		seqReadyMask,
		mcAlu(REG_NONE, REG_DR, ALU_PASS, ALU_OP_AND, REG_BR, ALU_PASS, COMM_PASS|COMM_SET_NZ),
	)
)
