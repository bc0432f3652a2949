package cpu

const (
	ADDRESS_MASK = uint32(0x00ff_ffff) // Addresses are 24 bits.
	MEMORY_SIZE  = 1 << 24             // Default memory size, in cells.
)

// Memory is a flat, word addressed store of 32-bit cells.
type Memory struct {
	Cells []uint32
}

// NewMemory creates a zeroed memory of size cells.
// A size of zero, or one beyond the address space, selects MEMORY_SIZE.
func NewMemory(size int) (mem *Memory) {
	if size <= 0 || size > MEMORY_SIZE {
		size = MEMORY_SIZE
	}

	mem = &Memory{
		Cells: make([]uint32, size),
	}

	return
}

// Size returns the number of cells.
func (mem *Memory) Size() int {
	return len(mem.Cells)
}

// Read returns the cell at the 24-bit truncation of addr.
func (mem *Memory) Read(addr uint32) (value uint32, err error) {
	addr &= ADDRESS_MASK
	if int(addr) >= len(mem.Cells) {
		err = ErrAddress(addr)
		return
	}

	value = mem.Cells[addr]
	return
}

// Write stores value in the cell at the 24-bit truncation of addr.
func (mem *Memory) Write(addr uint32, value uint32) (err error) {
	addr &= ADDRESS_MASK
	if int(addr) >= len(mem.Cells) {
		err = ErrAddress(addr)
		return
	}

	mem.Cells[addr] = value
	return
}

// Clear zeroes all cells.
func (mem *Memory) Clear() {
	clear(mem.Cells)
}
