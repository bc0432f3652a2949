// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/stackmc/internal"
	"github.com/ezrec/stackmc/io"
)

// DATA_BASE is the first cell after the device control blocks.
const DATA_BASE = uint32(io.PORT_COUNT * 2)

// generator lays out a checked statement list into a program image.
type generator struct {
	Verbose bool

	cells  map[uint32]uint32
	labels map[string]uint32
	order  []string // Labels in definition order.
	addr   uint32
	offset int // Byte offset within the current data cell.
}

func (gen *generator) label(name string, addr uint32) {
	gen.labels[name] = addr
	gen.order = append(gen.order, name)
}

func (gen *generator) emit(addr uint32, value uint32) (err error) {
	if addr > ADDRESS_MASK {
		err = ErrImageOverflow
		return
	}
	gen.cells[addr] = value
	return
}

// align moves to the next cell if the current one is partly filled.
func (gen *generator) align() {
	if gen.offset > 0 {
		gen.addr++
		gen.offset = 0
	}
}

// pack appends a byte to the data area, big-endian, four per cell.
func (gen *generator) pack(value byte) (err error) {
	word := gen.cells[gen.addr] | uint32(value)<<(24-8*gen.offset)
	err = gen.emit(gen.addr, word)
	if err != nil {
		return
	}

	gen.offset++
	if gen.offset == 4 {
		gen.addr++
		gen.offset = 0
	}
	return
}

// sections returns the statements of every section with the given name,
// in source order.
func sections(stmts []Statement, name string) (body []Statement) {
	current := SECTION_TEXT
	for _, stmt := range stmts {
		if stmt.Kind == STATEMENT_SECTION {
			current = stmt.Name
			continue
		}
		if current == name {
			body = append(body, stmt)
		}
	}
	return
}

// generate builds the program image in three steps: the data layout, the
// text label addresses, and the encoding of instructions and device blocks.
func (gen *generator) generate(stmts []Statement) (prog *Program, err error) {
	gen.cells = make(map[uint32]uint32)
	gen.labels = make(map[string]uint32)
	gen.order = nil

	var lineNo int
	defer func() {
		if err != nil {
			prog = nil
			err = &ErrGeneration{LineNo: lineNo, Err: err}
		}
	}()

	devicesSeen := false
	for _, stmt := range stmts {
		if stmt.Kind == STATEMENT_SECTION && stmt.Name == SECTION_DEVICES {
			if devicesSeen {
				lineNo = stmt.LineNo
				err = ErrDevicesDuplicate
				return
			}
			devicesSeen = true
		}
	}

	// Data layout.
	gen.addr = DATA_BASE
	for _, stmt := range sections(stmts, SECTION_DATA) {
		lineNo = stmt.LineNo
		err = gen.data(stmt)
		if err != nil {
			return
		}
	}
	gen.align()

	// A trailing data label owns a cell of its own.
	for _, name := range gen.order {
		if gen.labels[name] == gen.addr {
			err = gen.emit(gen.addr, 0)
			if err != nil {
				return
			}
			gen.addr++
			break
		}
	}

	// Text labels.
	textBase := gen.addr
	for _, stmt := range sections(stmts, SECTION_TEXT) {
		switch stmt.Kind {
		case STATEMENT_LABEL:
			gen.label(stmt.Name, gen.addr)
		case STATEMENT_INSTRUCTION:
			gen.addr++
		}
	}

	// Text encoding.
	gen.addr = textBase
	for _, stmt := range sections(stmts, SECTION_TEXT) {
		if stmt.Kind != STATEMENT_INSTRUCTION {
			continue
		}
		lineNo = stmt.LineNo
		var word uint32
		word, err = gen.encode(stmt)
		if err != nil {
			return
		}
		err = gen.emit(gen.addr, word)
		if err != nil {
			return
		}
		if gen.Verbose {
			log.Printf("asm: %06x: %08x %v", gen.addr, word, stmt.Name)
		}
		gen.addr++
	}

	// Device blocks.
	err = gen.devices(sections(stmts, SECTION_DEVICES), &lineNo)
	if err != nil {
		return
	}

	prog = gen.program()
	return
}

// data lays out one data section statement.
func (gen *generator) data(stmt Statement) (err error) {
	switch stmt.Kind {
	case STATEMENT_LABEL:
		gen.align()
		gen.label(stmt.Name, gen.addr)
		return
	case STATEMENT_INSTRUCTION:
	default:
		return
	}

	switch stmt.Name {
	case DIRECTIVE_BYTE, DIRECTIVE_CHAR:
		for _, tok := range stmt.Operands {
			err = gen.pack(byte(tok.Number))
			if err != nil {
				return
			}
		}
	case DIRECTIVE_STR:
		for _, tok := range stmt.Operands {
			for _, r := range tok.Text {
				err = gen.pack(byte(r))
				if err != nil {
					return
				}
			}
		}
	case DIRECTIVE_RES:
		gen.align()
		cells := (uint32(stmt.Operands[0].Number) + 3) / 4
		for range cells {
			err = gen.emit(gen.addr, 0)
			if err != nil {
				return
			}
			gen.addr++
		}
	}

	return
}

// address resolves a label or device operand.
func (gen *generator) address(name string) (addr uint32, err error) {
	if id, ok := DeviceID(name); ok {
		addr = DeviceAddress(id)
		return
	}

	addr, ok := gen.labels[name]
	if !ok {
		err = ErrLabelMissing(name)
	}
	return
}

// encode builds the instruction word of a text statement.
func (gen *generator) encode(stmt Statement) (word uint32, err error) {
	op, ok := LookupOpcode(stmt.Name)
	if !ok {
		err = ErrSectionIllegal
		return
	}

	mode := ADDR_ABSOLUTE
	var operand uint32

	if len(stmt.Operands) > 0 {
		tok := stmt.Operands[0]
		switch tok.Kind {
		case TOKEN_NUMBER, TOKEN_CHAR:
			mode = ADDR_DIRECT
			operand = uint32(tok.Number)
		case TOKEN_IDENTIFIER:
			operand, err = gen.address(tok.Text)
			if err != nil {
				return
			}
		}
	}

	word = MakeInstruction(op, mode, operand)
	return
}

// devices encodes the device control blocks. Each block is a device label
// followed by exactly: byte flags, addr handler, byte size, addr buffer.
func (gen *generator) devices(stmts []Statement, lineNo *int) (err error) {
	initialized := make(map[int]bool)

	for n := 0; n < len(stmts); n++ {
		stmt := stmts[n]
		*lineNo = stmt.LineNo

		if stmt.Kind != STATEMENT_LABEL {
			err = ErrDeviceMalformed
			return
		}

		id, ok := DeviceID(stmt.Name)
		if !ok {
			err = ErrDeviceName
			return
		}
		if initialized[id] {
			err = ErrDeviceDuplicate
			return
		}
		initialized[id] = true

		var fields [4]uint32
		for field, want := range []string{DIRECTIVE_BYTE, DIRECTIVE_ADDR, DIRECTIVE_BYTE, DIRECTIVE_ADDR} {
			n++
			if n >= len(stmts) {
				err = ErrDeviceMalformed
				return
			}
			entry := stmts[n]
			*lineNo = entry.LineNo
			if entry.Kind != STATEMENT_INSTRUCTION || entry.Name != want || len(entry.Operands) != 1 {
				err = ErrDeviceMalformed
				return
			}
			tok := entry.Operands[0]
			switch tok.Kind {
			case TOKEN_NUMBER, TOKEN_CHAR:
				fields[field] = uint32(tok.Number)
			case TOKEN_IDENTIFIER:
				fields[field], err = gen.address(tok.Text)
				if err != nil {
					return
				}
			case TOKEN_NULL:
				fields[field] = 0
			}
		}

		flags, handler, size, buffer := fields[0], fields[1], fields[2], fields[3]
		if buffer == 0 {
			err = ErrDeviceBufferNull
			return
		}

		addr := DeviceAddress(id)
		gen.cells[addr] = flags<<24 | (handler & ADDRESS_MASK)
		gen.cells[addr+1] = size<<24 | (buffer & ADDRESS_MASK)
		gen.label(stmt.Name, addr)

		if gen.Verbose {
			log.Printf("asm: %v: flags %#02x handler %#06x size %d buffer %#06x", stmt.Name, flags, handler, size, buffer)
		}
	}

	return
}

// program collects the cells and labels into a Program.
func (gen *generator) program() (prog *Program) {
	// Every label gets a cell, even one at the end of a section.
	for _, addr := range gen.labels {
		if _, ok := gen.cells[addr]; !ok {
			gen.cells[addr] = 0
		}
	}

	byAddr := make(map[uint32][]string)
	for _, name := range gen.order {
		addr := gen.labels[name]
		byAddr[addr] = append(byAddr[addr], name)
	}

	prog = &Program{
		Entry: gen.labels[ENTRY_LABEL],
	}

	for addr, value := range internal.IterSortedMap(gen.cells) {
		prog.Cells = append(prog.Cells, Cell{Addr: addr, Value: value, Labels: byAddr[addr]})
	}

	return
}
