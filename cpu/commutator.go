// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"
)

// CommutatorCode is the 10-bit commutator control field of a microinstruction.
type CommutatorCode uint16

const (
	COMM_LTOH = CommutatorCode(1 << 0) // low half to high half
	COMM_LTOL = CommutatorCode(1 << 1) // low half to low half
	COMM_HTOL = CommutatorCode(1 << 2) // high half to low half
	COMM_HTOH = CommutatorCode(1 << 3) // high half to high half

	COMM_PASS = COMM_LTOL | COMM_HTOH
	COMM_SWAP = COMM_LTOH | COMM_HTOL
	COMM_CUTB = COMM_LTOH | COMM_LTOL | COMM_HTOL | COMM_HTOH // keep the low 24 bits

	COMM_SHL = CommutatorCode(1 << 4)
	COMM_SHR = CommutatorCode(2 << 4)
	COMM_ROL = CommutatorCode(3 << 4)
	COMM_ROR = CommutatorCode(4 << 4)

	COMM_SET_NZ = CommutatorCode(1 << 7)
	COMM_SET_V  = CommutatorCode(1 << 8)
	COMM_SET_C  = CommutatorCode(1 << 9)

	COMM_SET_NZVC = COMM_SET_NZ | COMM_SET_V | COMM_SET_C

	comm_LANES = COMM_CUTB
	comm_SHIFT = CommutatorCode(7 << 4)
	comm_MASK  = CommutatorCode(0x3ff)
)

// Commutate routes value through the byte lanes and shifter selected by
// code, then commits the requested flags into sr.
func Commutate(value uint32, code CommutatorCode, flags uint32, sr *uint32) (result uint32) {
	lanes := code & comm_LANES
	if lanes == COMM_CUTB {
		result = value & 0x00ff_ffff
	} else {
		if lanes&COMM_LTOH != 0 {
			result |= (value & 0x0000_ffff) << 16
		}
		if lanes&COMM_LTOL != 0 {
			result |= value & 0x0000_ffff
		}
		if lanes&COMM_HTOL != 0 {
			result |= (value & 0xffff_0000) >> 16
		}
		if lanes&COMM_HTOH != 0 {
			result |= value & 0xffff_0000
		}
	}

	switch code & comm_SHIFT {
	case COMM_SHL:
		result = value << 1
	case COMM_SHR:
		result = value >> 1
	case COMM_ROL:
		result = (value << 1) | (value >> 31)
	case COMM_ROR:
		result = (value >> 1) | (value << 31)
	}

	if code&COMM_SET_NZ != 0 {
		*sr = (*sr &^ (SR_N | SR_Z)) | (flags & (SR_N | SR_Z))
	}
	if code&COMM_SET_V != 0 {
		*sr = (*sr &^ SR_V) | (flags & SR_V)
	}
	if code&COMM_SET_C != 0 {
		*sr = (*sr &^ SR_C) | (flags & SR_C)
	}

	return
}

// String returns the commutator setting as a list of mnemonics.
func (code CommutatorCode) String() string {
	var parts []string

	lanes := code & comm_LANES
	switch lanes {
	case COMM_CUTB:
		parts = append(parts, "CUTB")
	case COMM_PASS:
	default:
		for _, lane := range []struct {
			code CommutatorCode
			name string
		}{{COMM_LTOH, "LTOH"}, {COMM_LTOL, "LTOL"}, {COMM_HTOL, "HTOL"}, {COMM_HTOH, "HTOH"}} {
			if lanes&lane.code != 0 {
				parts = append(parts, lane.name)
			}
		}
	}

	switch code & comm_SHIFT {
	case COMM_SHL:
		parts = append(parts, "SHL")
	case COMM_SHR:
		parts = append(parts, "SHR")
	case COMM_ROL:
		parts = append(parts, "ROL")
	case COMM_ROR:
		parts = append(parts, "ROR")
	}

	if code&COMM_SET_NZ != 0 {
		parts = append(parts, "NZ")
	}
	if code&COMM_SET_V != 0 {
		parts = append(parts, "V")
	}
	if code&COMM_SET_C != 0 {
		parts = append(parts, "C")
	}

	return strings.Join(parts, ",")
}
