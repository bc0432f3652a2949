package cpu

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Cell is a single initialized memory word of a program image.
type Cell struct {
	Addr   uint32
	Value  uint32
	Labels []string // Labels pointing at this cell.
}

// Program is a memory image and its entry point.
type Program struct {
	Entry uint32 // Address execution starts at.
	Cells []Cell // Initialized cells, in address order.
}

// Image returns an iterator over the initialized (address, value) pairs.
func (prog *Program) Image() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, value uint32) bool) {
		for _, cell := range prog.Cells {
			if !yield(cell.Addr, cell.Value) {
				return
			}
		}
	}
}

// Cell returns the cell at addr, if initialized.
func (prog *Program) Cell(addr uint32) (cell *Cell, ok bool) {
	n, ok := slices.BinarySearchFunc(prog.Cells, addr, func(c Cell, addr uint32) int {
		return cmp.Compare(c.Addr, addr)
	})
	if ok {
		cell = &prog.Cells[n]
	}
	return
}

// Label returns the address of a label.
func (prog *Program) Label(name string) (addr uint32, ok bool) {
	for _, cell := range prog.Cells {
		if slices.Contains(cell.Labels, name) {
			addr = cell.Addr
			ok = true
			return
		}
	}
	return
}

// Load copies the image into memory.
func (prog *Program) Load(mem *Memory) (err error) {
	for addr, value := range prog.Image() {
		err = mem.Write(addr, value)
		if err != nil {
			return
		}
	}
	return
}

// WriteTo writes the program as a listing, one cell per line:
//
//	AAAAAA : VVVVVVVV <- label, ...
//
// The entry cell is marked with '>' in place of ':'.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	bw := bufio.NewWriter(w)

	for _, cell := range prog.Cells {
		marker := ':'
		if cell.Addr == prog.Entry {
			marker = '>'
		}
		line := fmt.Sprintf("%06x %c %08x", cell.Addr, marker, cell.Value)
		if len(cell.Labels) > 0 {
			line += " <- " + strings.Join(cell.Labels, ", ")
		}
		var wrote int
		wrote, err = fmt.Fprintln(bw, line)
		n += int64(wrote)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

var listingLine = regexp.MustCompile(`^([0-9a-fA-F]{6})\s*([:>])\s*([0-9a-fA-F]{8})(?:\s*<-\s*(.*?))?\s*$`)

// ReadListing parses a listing, as written by Program.WriteTo.
// Any line ending style is accepted, and blank lines are skipped.
func ReadListing(r io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	prog = &Program{}
	seen := make(map[uint32]bool)
	hasEntry := false

	for n, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		fail := func(e error) error {
			return &ErrLoad{LineNo: n + 1, Line: line, Err: e}
		}

		match := listingLine.FindStringSubmatch(line)
		if match == nil {
			err = fail(ErrListingSyntax)
			prog = nil
			return
		}

		addr, _ := strconv.ParseUint(match[1], 16, 32)
		value, _ := strconv.ParseUint(match[3], 16, 32)

		cell := Cell{
			Addr:  uint32(addr),
			Value: uint32(value),
		}
		for _, label := range strings.Split(match[4], ",") {
			label = strings.TrimSpace(label)
			if len(label) > 0 {
				cell.Labels = append(cell.Labels, label)
			}
		}

		if seen[cell.Addr] {
			err = fail(ErrAddressConflict)
			prog = nil
			return
		}
		seen[cell.Addr] = true

		if match[2] == ">" {
			if hasEntry {
				err = fail(ErrEntryDuplicate)
				prog = nil
				return
			}
			hasEntry = true
			prog.Entry = cell.Addr
		}

		prog.Cells = append(prog.Cells, cell)
	}

	if !hasEntry {
		err = &ErrLoad{Err: ErrEntryMarker}
		prog = nil
		return
	}

	slices.SortFunc(prog.Cells, func(a, b Cell) int {
		return cmp.Compare(a.Addr, b.Addr)
	})

	return
}
