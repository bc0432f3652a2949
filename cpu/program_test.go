package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testProgram = &Program{
	Entry: 0x21,
	Cells: []Cell{
		{Addr: 0x20, Value: 0x4865_6c6c, Labels: []string{"msg"}},
		{Addr: 0x21, Value: 0xa600_0002, Labels: []string{"start", "main"}},
		{Addr: 0x22, Value: 0x0a00_0000},
	},
}

func TestProgramWriteTo(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	n, err := testProgram.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), n)
	assert.Equal(""+
		"000020 : 48656c6c <- msg\n"+
		"000021 > a6000002 <- start, main\n"+
		"000022 : 0a000000\n",
		buf.String())
}

func TestProgramRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	_, err := testProgram.WriteTo(&buf)
	assert.NoError(err)

	prog, err := ReadListing(&buf)
	assert.NoError(err)
	assert.Equal(testProgram, prog)
}

func TestReadListingFormats(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"000022 : 0A000000\r\n000020:48656C6C <- msg\r\n000021 > A6000002 <- start,main\r\n",
		"000020 : 48656c6c <- msg\r000021 > a6000002 <- start, main\r000022 : 0a000000",
		"\n000020 : 48656c6c <- msg \n\n000021 > a6000002 <- start, main \n000022 : 0a000000 \n\n",
	}

	for _, listing := range table {
		prog, err := ReadListing(strings.NewReader(listing))
		assert.NoError(err, listing)
		assert.Equal(testProgram, prog, listing)
	}
}

func TestReadListingErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		listing string
		err     error
		lineNo  int
	}){
		{"000020 > 00000000\nbogus\n", ErrListingSyntax, 2},
		{"00020 > 00000000\n", ErrListingSyntax, 1},
		{"000020 > 0000000\n", ErrListingSyntax, 1},
		{"000020 = 00000000\n", ErrListingSyntax, 1},
		{"000020 > 00000000\n000020 : 00000000\n", ErrAddressConflict, 2},
		{"000020 > 00000000\n000021 > 00000000\n", ErrEntryDuplicate, 2},
		{"000020 : 00000000\n", ErrEntryMarker, 0},
		{"", ErrEntryMarker, 0},
	}

	for _, entry := range table {
		prog, err := ReadListing(strings.NewReader(entry.listing))
		assert.Nil(prog, entry.listing)
		assert.ErrorIs(err, entry.err, entry.listing)
		var load *ErrLoad
		if assert.True(errors.As(err, &load), entry.listing) {
			assert.Equal(entry.lineNo, load.LineNo, entry.listing)
		}
	}
}

func TestProgramLoad(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(0x100)
	assert.NoError(testProgram.Load(mem))
	assert.Equal(uint32(0xa600_0002), mem.Cells[0x21])

	small := NewMemory(0x10)
	assert.ErrorIs(testProgram.Load(small), ErrAddressRange)
}

func TestProgramCell(t *testing.T) {
	assert := assert.New(t)

	cell, ok := testProgram.Cell(0x22)
	assert.True(ok)
	assert.Equal(uint32(0x0a00_0000), cell.Value)

	_, ok = testProgram.Cell(0x23)
	assert.False(ok)

	_, ok = testProgram.Label("nowhere")
	assert.False(ok)
}
