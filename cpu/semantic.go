// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/stackmc/io"
)

// Section names.
const (
	SECTION_TEXT    = "text"
	SECTION_DATA    = "data"
	SECTION_DEVICES = "devices"
)

// ENTRY_LABEL is the label execution starts at.
const ENTRY_LABEL = "start"

// DeviceID returns the port number of a device name 'dev0' .. 'dev15'.
func DeviceID(name string) (id int, ok bool) {
	digits, found := strings.CutPrefix(name, "dev")
	if !found {
		return
	}

	id, err := strconv.Atoi(digits)
	if err != nil || strconv.Itoa(id) != digits || id < 0 || id >= io.PORT_COUNT {
		id = 0
		return
	}

	ok = true
	return
}

// DeviceAddress returns the control block address of a device port.
func DeviceAddress(id int) uint32 {
	return uint32(id * 2)
}

// analyzer validates a statement list before generation.
type analyzer struct {
	Verbose   bool
	predefine map[string]int64
	labels    map[string]string // Label to section.
}

// analyze checks the program in two passes: labels first, then every
// instruction. Expression operands are replaced by their values.
func (an *analyzer) analyze(stmts []Statement) (err error) {
	an.labels = make(map[string]string)

	// Pass 1: sections and labels.
	section := SECTION_TEXT
	for _, stmt := range stmts {
		semantic := func(e error) error {
			return &ErrSemantic{LineNo: stmt.LineNo, Err: e}
		}

		switch stmt.Kind {
		case STATEMENT_SECTION:
			switch stmt.Name {
			case SECTION_TEXT, SECTION_DATA, SECTION_DEVICES:
				section = stmt.Name
			default:
				err = semantic(fmt.Errorf("%w: %v", ErrSectionUnknown, stmt.Name))
				return
			}
		case STATEMENT_LABEL:
			_, isDevice := DeviceID(stmt.Name)
			if section == SECTION_DEVICES {
				if !isDevice {
					err = semantic(fmt.Errorf("%w: %v", ErrDeviceName, stmt.Name))
					return
				}
				continue
			}
			if isDevice {
				err = semantic(fmt.Errorf("%w: %v", ErrLabelReserved, stmt.Name))
				return
			}
			if _, ok := an.labels[stmt.Name]; ok {
				err = semantic(fmt.Errorf("%w: %v", ErrLabelDuplicate, stmt.Name))
				return
			}
			an.labels[stmt.Name] = section
			if stmt.Name == ENTRY_LABEL && section != SECTION_TEXT {
				err = semantic(ErrEntrySection)
				return
			}
		}
	}

	if _, ok := an.labels[ENTRY_LABEL]; !ok {
		err = &ErrSemantic{Err: ErrEntryMissing}
		return
	}

	// Pass 2: instructions.
	section = SECTION_TEXT
	for n := range stmts {
		stmt := &stmts[n]
		switch stmt.Kind {
		case STATEMENT_SECTION:
			section = stmt.Name
		case STATEMENT_INSTRUCTION:
			err = an.instruction(section, stmt)
			if err != nil {
				err = &ErrSemantic{LineNo: stmt.LineNo, Err: err}
				return
			}
		}
	}

	return
}

// instruction checks a single instruction or directive.
func (an *analyzer) instruction(section string, stmt *Statement) (err error) {
	for n, tok := range stmt.Operands {
		if tok.Kind == TOKEN_EXPR {
			stmt.Operands[n], err = an.eval(tok)
			if err != nil {
				return
			}
		}
	}

	op, isOpcode := LookupOpcode(stmt.Name)

	var legal bool
	switch section {
	case SECTION_TEXT:
		legal = isOpcode
	case SECTION_DATA:
		switch stmt.Name {
		case DIRECTIVE_BYTE, DIRECTIVE_CHAR, DIRECTIVE_STR, DIRECTIVE_RES:
			legal = true
		}
	case SECTION_DEVICES:
		legal = stmt.Name == DIRECTIVE_BYTE || stmt.Name == DIRECTIVE_ADDR
	}
	if !legal {
		err = fmt.Errorf("%v: %w: %v", stmt.Name, ErrSectionIllegal, section)
		return
	}

	operands := stmt.Operands
	count := func(least, most int) error {
		if len(operands) < least || (most >= 0 && len(operands) > most) {
			return fmt.Errorf("%v: %w: %d", stmt.Name, ErrOperandCount, len(operands))
		}
		return nil
	}
	wrong := func(tok Token, e error) error {
		return fmt.Errorf("%v %v: %w", stmt.Name, tok, e)
	}

	if isOpcode {
		switch op.Operand() {
		case OPERAND_NONE:
			err = count(0, 0)
		case OPERAND_LABEL:
			if err = count(1, 1); err != nil {
				return
			}
			tok := operands[0]
			if tok.Kind != TOKEN_IDENTIFIER {
				err = wrong(tok, ErrOperandType)
				return
			}
			if _, ok := an.labels[tok.Text]; !ok {
				err = ErrLabelMissing(tok.Text)
			}
		case OPERAND_VALUE:
			if err = count(1, 1); err != nil {
				return
			}
			tok := operands[0]
			switch tok.Kind {
			case TOKEN_NUMBER, TOKEN_CHAR:
				if tok.Number < -0x80_0000 || tok.Number > 0xff_ffff {
					err = wrong(tok, ErrOperandRange)
				}
			case TOKEN_IDENTIFIER:
				_, isDevice := DeviceID(tok.Text)
				if _, ok := an.labels[tok.Text]; !ok && !isDevice {
					err = ErrLabelMissing(tok.Text)
				}
			default:
				err = wrong(tok, ErrOperandType)
			}
		case OPERAND_DEVICE:
			if err = count(1, 1); err != nil {
				return
			}
			tok := operands[0]
			if tok.Kind != TOKEN_IDENTIFIER {
				err = wrong(tok, ErrOperandType)
				return
			}
			if _, ok := DeviceID(tok.Text); !ok {
				err = wrong(tok, ErrDeviceName)
			}
		}
		return
	}

	switch stmt.Name {
	case DIRECTIVE_BYTE:
		if err = count(1, -1); err != nil {
			return
		}
		for _, tok := range operands {
			if tok.Kind != TOKEN_NUMBER && tok.Kind != TOKEN_CHAR {
				return wrong(tok, ErrOperandType)
			}
			if tok.Number < 0 || tok.Number > 0xff {
				return wrong(tok, ErrOperandRange)
			}
		}
	case DIRECTIVE_CHAR:
		if err = count(1, -1); err != nil {
			return
		}
		for _, tok := range operands {
			if tok.Kind != TOKEN_CHAR {
				return wrong(tok, ErrOperandType)
			}
			if tok.Number < 0 || tok.Number > 0xff {
				return wrong(tok, ErrOperandRange)
			}
		}
	case DIRECTIVE_STR:
		if err = count(1, -1); err != nil {
			return
		}
		for _, tok := range operands {
			if tok.Kind != TOKEN_STRING {
				return wrong(tok, ErrOperandType)
			}
			for _, r := range tok.Text {
				if r > 0xff {
					return wrong(tok, ErrOperandRange)
				}
			}
		}
	case DIRECTIVE_RES:
		if err = count(1, 1); err != nil {
			return
		}
		tok := operands[0]
		if tok.Kind != TOKEN_NUMBER {
			return wrong(tok, ErrOperandType)
		}
		if tok.Number < 1 || tok.Number > int64(ADDRESS_MASK) {
			return wrong(tok, ErrOperandRange)
		}
	case DIRECTIVE_ADDR:
		if err = count(1, 1); err != nil {
			return
		}
		tok := operands[0]
		switch tok.Kind {
		case TOKEN_NULL:
		case TOKEN_IDENTIFIER:
			if _, ok := an.labels[tok.Text]; !ok {
				err = ErrLabelMissing(tok.Text)
			}
		default:
			err = wrong(tok, ErrOperandType)
		}
	}

	return
}

// eval does compile-time $(...) evaluations.
func (an *analyzer) eval(tok Token) (out Token, err error) {
	defer func() {
		if err != nil {
			err = &ErrExpression{Expr: tok.Text, Err: err}
		}
	}()

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(tok.LineNo),
	}
	for id := range io.PORT_COUNT {
		pred[fmt.Sprintf("dev%d", id)] = starlark.MakeInt64(int64(DeviceAddress(id)))
	}
	for key, value := range an.predefine {
		pred[key] = starlark.MakeInt64(value)
	}

	prog := "rc=" + tok.Text + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	out = Token{LineNo: tok.LineNo}
	switch rc := dict["rc"].(type) {
	case starlark.Int:
		value, ok := rc.Int64()
		if !ok {
			err = ErrOperandRange
			return
		}
		out.Kind = TOKEN_NUMBER
		out.Number = value
		out.Text = rc.String()
	case starlark.String:
		out.Kind = TOKEN_STRING
		out.Text = rc.GoString()
	default:
		err = ErrOperandType
		return
	}

	if an.Verbose {
		log.Printf("asm: line %d: $(%v) = %v", tok.LineNo, tok.Text, out)
	}

	return
}
