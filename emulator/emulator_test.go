package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/stackmc/cpu"
)

const testMemorySize = 0x1000

var echoProgram = []string{
	".section data",
	"buf: res 8",
	".section devices",
	"dev0:",
	"    byte 0",
	"    addr null",
	"    byte 5",
	"    addr buf",
	"dev1:",
	"    byte 0",
	"    addr null",
	"    byte 5",
	"    addr buf",
	".section text",
	"start:",
	"wait:",
	"    check dev0",
	"    jz wait",
	"    unset dev0",
	"    set dev1",
	"    halt",
}

func load(t *testing.T, emu *Emulator, program []string) {
	t.Helper()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	if !assert.NoError(t, emu.Load(prog)) {
		t.FailNow()
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(testMemorySize)

	assert.False(emu.Verbose)
	assert.NotNil(emu.ControlUnit)
	assert.Equal(testMemorySize, emu.Memory.Size())
	assert.ErrorIs(emu.Reset(), ErrNoProgram)
}

func TestEmulatorEcho(t *testing.T) {
	assert := assert.New(t)

	var console, file, trace bytes.Buffer

	emu := NewEmulator(testMemorySize)
	emu.StandardDevices([]string{"Hello, world"}, &console, &file)
	emu.Trace = &trace
	load(t, emu, echoProgram)

	assert.NoError(emu.Run())
	assert.False(emu.Running())
	assert.Equal(7, emu.Instructions)

	assert.Equal("Output: Hello\n", console.String())
	assert.Equal("< Hello\n> Hello\n", file.String())

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	assert.Len(lines, 7)
	assert.True(strings.HasPrefix(lines[0], "Tick: 10 \t| Instruction: 1   | PC: 000023 | "), lines[0])

	// Reset rewinds the input, so the program runs the same again.
	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal("Output: Hello\nOutput: Hello\n", console.String())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorState(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(0x100)
	load(t, emu, []string{"start: halt"})

	assert.Equal("Tick: 0 \t| Instruction: 0   | "+
		"PC: 000020 | SP: 000100 | CR: 00000000 | AR: 000000 | DR: 00000000 | SR: 8000 | BR: 00000000 | "+
		"TOS: 00000000 | NOS: 00000000", emu.State())
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(testMemorySize)
	load(t, emu, []string{
		"start:",
		"    push 7",
		"    push 0",
		"    div",
		"    halt",
	})

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrDivisionByZero)
	assert.True(IsFault(err))

	var rerr *ErrRuntime
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(uint32(0x22), rerr.Addr)
		assert.Equal(2, rerr.Instruction)
		assert.Empty(rerr.Labels)
	}

	load(t, emu, []string{
		"start:",
		"    ld",
	})

	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrAddressRange)
	if assert.True(errors.As(err, &rerr)) {
		assert.Equal(uint32(0x20), rerr.Addr)
		assert.Equal([]string{"start"}, rerr.Labels)
	}
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(testMemorySize)
	emu.Limit = 10
	load(t, emu, []string{"start: jmp start"})

	err := emu.Run()
	assert.ErrorIs(err, ErrLimit)
	assert.False(IsFault(err))
	assert.Equal(10, emu.Instructions)
	assert.True(emu.Running())
}
