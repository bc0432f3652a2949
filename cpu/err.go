package cpu

import (
	"errors"

	"github.com/ezrec/stackmc/translate"
)

var f = translate.From

var (
	// Execution faults
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrOpcodeUnknown  = errors.New(f("opcode unknown"))
	ErrAddressRange   = errors.New(f("address out of range"))
	ErrDeviceBus      = errors.New(f("device bus unsupported"))
	ErrHalted         = errors.New(f("halted"))

	// Lexer and parser errors
	ErrTokenUnexpected = errors.New(f("unexpected token"))
	ErrTokenMissing    = errors.New(f("operand missing"))

	// Semantic errors
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelReserved  = errors.New(f("label reserved for devices"))
	ErrEntryMissing   = errors.New(f("no entry point (label 'start' is missing)"))
	ErrEntrySection   = errors.New(f("label 'start' must be in the text section"))
	ErrOperandCount   = errors.New(f("wrong number of operands"))
	ErrOperandType    = errors.New(f("wrong operand type"))
	ErrOperandRange   = errors.New(f("operand out of range"))
	ErrSectionIllegal = errors.New(f("not allowed in this section"))
	ErrSectionUnknown = errors.New(f("unknown section"))
	ErrDeviceName     = errors.New(f("device must be one of dev0-dev15"))

	// Generator errors
	ErrDevicesDuplicate = errors.New(f("multiple devices sections"))
	ErrDeviceDuplicate  = errors.New(f("device already initialized"))
	ErrDeviceMalformed  = errors.New(f("invalid device initialization"))
	ErrDeviceBufferNull = errors.New(f("device buffer address must not be null"))
	ErrImageOverflow    = errors.New(f("program exceeds the address space"))

	// Listing errors
	ErrListingSyntax   = errors.New(f("malformed listing line"))
	ErrEntryDuplicate  = errors.New(f("multiple entry markers"))
	ErrEntryMarker     = errors.New(f("no entry marker"))
	ErrAddressConflict = errors.New(f("address listed twice"))
)

// ErrAddress is a memory access outside the installed memory.
type ErrAddress uint32

func (err ErrAddress) Error() string {
	return f("address 0x%06x out of range", uint32(err))
}

func (err ErrAddress) Unwrap() error {
	return ErrAddressRange
}

// ErrOpcode is an instruction word that does not decode.
type ErrOpcode uint32

func (err ErrOpcode) Error() string {
	return f("bad instruction 0x%08x", uint32(err))
}

func (err ErrOpcode) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrLabelMissing is a reference to an undefined label.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrLexical is input that does not form a token.
type ErrLexical struct {
	LineNo int
	Text   string
}

func (err *ErrLexical) Error() string {
	return f("line %d unexpected '%v'", err.LineNo, err.Text)
}

// ErrSyntax is a statement that does not parse.
type ErrSyntax struct {
	LineNo int
	Token  string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Token, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrSemantic is a statement that parses but is not meaningful.
type ErrSemantic struct {
	LineNo int
	Err    error
}

func (err *ErrSemantic) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrSemantic) Unwrap() error {
	return err.Err
}

// ErrGeneration is a failure to lay out the program image.
type ErrGeneration struct {
	LineNo int
	Err    error
}

func (err *ErrGeneration) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrGeneration) Unwrap() error {
	return err.Err
}

// ErrExpression is a $(...) expression that does not evaluate to an integer.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	if err.Err != nil {
		return f("$(%v) %v", err.Expr, err.Err)
	}
	return f("$(%v) is not an integer", err.Expr)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}

// ErrLoad is a listing line that cannot be loaded.
type ErrLoad struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLoad) Error() string {
	return f("listing line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// ErrFault is an execution fault, located by the machine counters.
type ErrFault struct {
	Tick        int    // Tick count at the fault.
	Instruction int    // Instructions completed before the fault.
	PC          uint32 // PC at the fault, one past the faulting instruction.
	Err         error
}

func (err *ErrFault) Error() string {
	return f("tick %d instruction %d pc 0x%06x: %v", err.Tick, err.Instruction, err.PC, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
