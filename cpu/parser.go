package cpu

import (
	"iter"
)

// StatementKind is the kind of an assembler statement.
type StatementKind int

//go:generate go tool stringer -linecomment -type=StatementKind
const (
	STATEMENT_SECTION     = StatementKind(0) // section
	STATEMENT_LABEL       = StatementKind(1) // label
	STATEMENT_INSTRUCTION = StatementKind(2) // instruction
)

// Statement is a node of the flat assembler syntax tree.
type Statement struct {
	Kind     StatementKind
	LineNo   int
	Name     string  // Section name, label name, or lower case mnemonic.
	Operands []Token // Instruction operands.
}

func isOperand(kind TokenKind) bool {
	switch kind {
	case TOKEN_NUMBER, TOKEN_CHAR, TOKEN_STRING, TOKEN_NULL, TOKEN_IDENTIFIER, TOKEN_EXPR:
		return true
	}
	return false
}

// ParseStatements builds the statement list from a token stream in a single
// pass. Instruction operands are comma separated, and end at a newline or
// at the end of input.
func ParseStatements(tokens iter.Seq2[Token, error]) (stmts []Statement, err error) {
	next, stop := iter.Pull2(tokens)
	defer stop()

	read := func() (tok Token, ok bool, err error) {
		tok, err, ok = next()
		return
	}

	unexpected := func(tok Token) error {
		return &ErrSyntax{LineNo: tok.LineNo, Token: tok.String(), Err: ErrTokenUnexpected}
	}

	for {
		tok, ok, rerr := read()
		if rerr != nil {
			err = rerr
			return
		}
		if !ok {
			return
		}

		switch tok.Kind {
		case TOKEN_NEWLINE:
			continue
		case TOKEN_SECTION:
			stmts = append(stmts, Statement{Kind: STATEMENT_SECTION, LineNo: tok.LineNo, Name: tok.Text})
			continue
		case TOKEN_LABEL:
			stmts = append(stmts, Statement{Kind: STATEMENT_LABEL, LineNo: tok.LineNo, Name: tok.Text})
			continue
		case TOKEN_OPCODE:
		default:
			err = unexpected(tok)
			return
		}

		stmt := Statement{Kind: STATEMENT_INSTRUCTION, LineNo: tok.LineNo, Name: tok.Text}
		wantOperand := false
	operands:
		for {
			tok, ok, rerr = read()
			if rerr != nil {
				err = rerr
				return
			}

			switch {
			case !ok || tok.Kind == TOKEN_NEWLINE:
				if wantOperand {
					err = &ErrSyntax{LineNo: stmt.LineNo, Token: stmt.Name, Err: ErrTokenMissing}
					return
				}
				break operands
			case isOperand(tok.Kind) && (wantOperand || len(stmt.Operands) == 0):
				stmt.Operands = append(stmt.Operands, tok)
				wantOperand = false
			case tok.Kind == TOKEN_COMMA && !wantOperand && len(stmt.Operands) > 0:
				wantOperand = true
			default:
				err = unexpected(tok)
				return
			}
		}

		stmts = append(stmts, stmt)
		if !ok {
			return
		}
	}
}
