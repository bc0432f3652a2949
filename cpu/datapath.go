// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// DataPath connects the register file, memory, ALU and commutator.
type DataPath struct {
	Registers
	Memory *Memory
}

// Execute performs a single microinstruction.
func (dp *DataPath) Execute(mc Micro) (err error) {
	op, target, lhs, rhs, alu, comm := mc.Decode()

	switch op {
	case DP_READ:
		dp.DR, err = dp.Memory.Read(dp.AR)
		return
	case DP_WRITE:
		err = dp.Memory.Write(dp.AR, dp.DR)
		return
	case DP_NONE:
	default:
		err = ErrDeviceBus
		return
	}

	result, flags, err := Alu(dp.Get(lhs), dp.Get(rhs), alu)
	if err != nil {
		return
	}

	result = Commutate(result, comm, flags, &dp.SR)
	dp.Set(target, result)

	return
}
