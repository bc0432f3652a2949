// Package io provides the memory mapped devices of the stackmc machine.
//
// Each of the sixteen device ports owns a two word control block at the
// bottom of memory:
//
//	word 2n:   ready (bit 31) | handler address (bits 0-23)
//	word 2n+1: buffer size (bits 24-31) | buffer address (bits 0-23)
//
// Devices are polled once per instruction, and hand data to the program
// through the ready bit and the buffer.
package io

// Device defines the interface for all peripherals.
type Device interface {
	// Poll gives the device a chance to move data, once per instruction.
	Poll() error
}

// Memory is the word addressed store a device is mapped into.
type Memory interface {
	Read(addr uint32) (value uint32, err error)
	Write(addr uint32, value uint32) error
}

const (
	PORT_COUNT        = 16                  // Number of device ports.
	PORT_READY        = uint32(1 << 31)     // Ready bit of the control word.
	PORT_ADDRESS_MASK = uint32(0x00ff_ffff) // Handler and buffer address mask.
	PORT_SIZE_SHIFT   = 24                  // Buffer size position in the buffer word.
)

// Port is the control block of a single device.
type Port struct {
	Memory Memory // Memory holding the control block.
	ID     int    // Port number, 0..15.
}

func (port *Port) control() (addr uint32, err error) {
	if port.ID < 0 || port.ID >= PORT_COUNT || port.Memory == nil {
		err = &ErrDevice{ID: port.ID, Err: ErrPortInvalid}
		return
	}

	addr = uint32(port.ID * 2)
	return
}

// Ready returns the ready bit.
func (port *Port) Ready() (ready bool, err error) {
	addr, err := port.control()
	if err != nil {
		return
	}

	word, err := port.Memory.Read(addr)
	if err != nil {
		return
	}

	ready = word&PORT_READY != 0
	return
}

// SetReady sets or clears the ready bit, preserving the handler address.
func (port *Port) SetReady(ready bool) (err error) {
	addr, err := port.control()
	if err != nil {
		return
	}

	word, err := port.Memory.Read(addr)
	if err != nil {
		return
	}

	if ready {
		word |= PORT_READY
	} else {
		word &^= PORT_READY
	}

	err = port.Memory.Write(addr, word)
	return
}

// Handler returns the interrupt handler address.
func (port *Port) Handler() (handler uint32, err error) {
	addr, err := port.control()
	if err != nil {
		return
	}

	word, err := port.Memory.Read(addr)
	if err != nil {
		return
	}

	handler = word & PORT_ADDRESS_MASK
	return
}

// Buffer returns the buffer address and its size in bytes.
func (port *Port) Buffer() (buffer uint32, size int, err error) {
	addr, err := port.control()
	if err != nil {
		return
	}

	word, err := port.Memory.Read(addr + 1)
	if err != nil {
		return
	}

	buffer = word & PORT_ADDRESS_MASK
	size = int(word >> PORT_SIZE_SHIFT)
	return
}

// byteAt locates byte n of a buffer: the cell, and the shift of the byte
// within it. Bytes are packed big-endian, four per cell.
func byteAt(buffer uint32, n int) (cell uint32, shift uint) {
	cell = buffer + uint32(n/4)
	shift = uint(8 * (3 - n%4))
	return
}

// ReadBytes returns the contents of the buffer.
func (port *Port) ReadBytes() (data []byte, err error) {
	buffer, size, err := port.Buffer()
	if err != nil {
		return
	}

	data = make([]byte, size)
	for n := range size {
		cell, shift := byteAt(buffer, n)
		var word uint32
		word, err = port.Memory.Read(cell)
		if err != nil {
			data = nil
			return
		}
		data[n] = byte(word >> shift)
	}

	return
}

// WriteBytes fills the buffer with data, truncated or zero padded to the
// buffer size. Bytes of the last cell beyond the buffer are preserved.
// It returns the bytes actually stored.
func (port *Port) WriteBytes(data []byte) (written []byte, err error) {
	buffer, size, err := port.Buffer()
	if err != nil {
		return
	}

	if len(data) > size {
		data = data[:size]
	}

	for n := range size {
		var value byte
		if n < len(data) {
			value = data[n]
		}

		cell, shift := byteAt(buffer, n)
		var word uint32
		word, err = port.Memory.Read(cell)
		if err != nil {
			return
		}
		word = (word &^ (0xff << shift)) | (uint32(value) << shift)
		err = port.Memory.Write(cell, word)
		if err != nil {
			return
		}
	}

	written = data
	return
}
