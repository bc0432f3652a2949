// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_NUMBER     = TokenKind(0)  // number
	TOKEN_CHAR       = TokenKind(1)  // char
	TOKEN_STRING     = TokenKind(2)  // string
	TOKEN_NULL       = TokenKind(3)  // null
	TOKEN_LABEL      = TokenKind(4)  // label
	TOKEN_SECTION    = TokenKind(5)  // section
	TOKEN_OPCODE     = TokenKind(6)  // opcode
	TOKEN_IDENTIFIER = TokenKind(7)  // identifier
	TOKEN_COMMA      = TokenKind(8)  // comma
	TOKEN_NEWLINE    = TokenKind(9)  // newline
	TOKEN_EXPR       = TokenKind(10) // expression
)

// Token is a single lexical element of assembler source.
type Token struct {
	Kind   TokenKind
	Text   string // Decoded text: string contents, names, lower case mnemonics.
	Number int64  // Value of a number or character.
	LineNo int
}

func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_NUMBER:
		return strconv.FormatInt(tok.Number, 10)
	case TOKEN_CHAR:
		return strconv.QuoteRune(rune(tok.Number))
	case TOKEN_STRING:
		return strconv.Quote(tok.Text)
	case TOKEN_LABEL:
		return tok.Text + ":"
	case TOKEN_SECTION:
		return ".section " + tok.Text
	case TOKEN_COMMA:
		return ","
	case TOKEN_NEWLINE:
		return "\\n"
	case TOKEN_EXPR:
		return "$(" + tok.Text + ")"
	}
	return tok.Text
}

// Data directives, accepted wherever an opcode is.
const (
	DIRECTIVE_BYTE = "byte"
	DIRECTIVE_CHAR = "char"
	DIRECTIVE_STR  = "str"
	DIRECTIVE_RES  = "res"
	DIRECTIVE_ADDR = "addr"
)

func isDirective(word string) bool {
	switch word {
	case DIRECTIVE_BYTE, DIRECTIVE_CHAR, DIRECTIVE_STR, DIRECTIVE_RES, DIRECTIVE_ADDR:
		return true
	}
	return false
}

func isWordStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isWord(r rune) bool {
	return isWordStart(r) || (r >= '0' && r <= '9')
}

type lexer struct {
	in     *bufio.Reader
	lineNo int
}

func (lx *lexer) peek() (r rune, err error) {
	r, _, err = lx.in.ReadRune()
	if err == nil {
		err = lx.in.UnreadRune()
	}
	return
}

// word reads runes while accept holds.
func (lx *lexer) word(accept func(rune) bool) (text string, err error) {
	var sb strings.Builder
	for {
		var r rune
		r, _, err = lx.in.ReadRune()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}
		if !accept(r) {
			err = lx.in.UnreadRune()
			break
		}
		sb.WriteRune(r)
	}

	text = sb.String()
	return
}

// quoted reads up to and including the closing quote, on a single line.
func (lx *lexer) quoted(quote rune) (text string, err error) {
	var sb strings.Builder
	sb.WriteRune(quote)
	escaped := false
	for {
		var r rune
		r, _, err = lx.in.ReadRune()
		if err != nil || r == '\n' {
			err = &ErrLexical{LineNo: lx.lineNo, Text: sb.String()}
			return
		}
		sb.WriteRune(r)
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == quote {
			break
		}
	}

	text = sb.String()
	return
}

// expr reads a balanced $( ... ) expression, after the '$'.
func (lx *lexer) expr() (text string, err error) {
	r, _, err := lx.in.ReadRune()
	if err != nil || r != '(' {
		err = &ErrLexical{LineNo: lx.lineNo, Text: "$"}
		return
	}

	var sb strings.Builder
	depth := 1
	for {
		r, _, err = lx.in.ReadRune()
		if err != nil || r == '\n' {
			err = &ErrLexical{LineNo: lx.lineNo, Text: "$(" + sb.String()}
			return
		}
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			break
		}
		sb.WriteRune(r)
	}

	text = strings.TrimSpace(sb.String())
	return
}

func parseNumber(text string) (value int64, err error) {
	digits := text
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	base := 10
	lower := strings.ToLower(digits)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
		digits = digits[2:]
	case strings.HasPrefix(lower, "0b"):
		base = 2
		digits = digits[2:]
	}

	u64, err := strconv.ParseUint(digits, base, 33)
	if err != nil {
		return
	}

	value = int64(u64)
	if negative {
		value = -value
	}

	return
}

// next returns the next token, or io.EOF at the end of the input.
func (lx *lexer) next() (tok Token, err error) {
	for {
		var r rune
		r, _, err = lx.in.ReadRune()
		if err != nil {
			return
		}

		tok = Token{LineNo: lx.lineNo}

		switch {
		case r == ' ' || r == '\t' || r == '\r':
			continue
		case r == '\n':
			tok.Kind = TOKEN_NEWLINE
			lx.lineNo++
		case r == ';':
			_, err = lx.word(func(r rune) bool { return r != '\n' })
			if err != nil {
				return
			}
			continue
		case r == ',':
			tok.Kind = TOKEN_COMMA
		case r == '-' || (r >= '0' && r <= '9'):
			var rest string
			rest, err = lx.word(isWord)
			if err != nil {
				return
			}
			text := string(r) + rest
			tok.Kind = TOKEN_NUMBER
			tok.Text = text
			tok.Number, err = parseNumber(text)
			if err != nil {
				err = &ErrLexical{LineNo: lx.lineNo, Text: text}
				return
			}
		case r == '\'':
			var text string
			text, err = lx.quoted(r)
			if err != nil {
				return
			}
			var value rune
			var tail string
			value, _, tail, err = strconv.UnquoteChar(text[1:len(text)-1], '\'')
			if err != nil || len(tail) != 0 {
				err = &ErrLexical{LineNo: lx.lineNo, Text: text}
				return
			}
			tok.Kind = TOKEN_CHAR
			tok.Text = text
			tok.Number = int64(value)
		case r == '"':
			var text string
			text, err = lx.quoted(r)
			if err != nil {
				return
			}
			tok.Kind = TOKEN_STRING
			tok.Text, err = strconv.Unquote(text)
			if err != nil {
				err = &ErrLexical{LineNo: lx.lineNo, Text: text}
				return
			}
		case r == '$':
			tok.Kind = TOKEN_EXPR
			tok.Text, err = lx.expr()
			if err != nil {
				return
			}
		case r == '.':
			var keyword, name string
			keyword, err = lx.word(isWord)
			if err != nil {
				return
			}
			if keyword != "section" {
				err = &ErrLexical{LineNo: lx.lineNo, Text: "." + keyword}
				return
			}
			_, err = lx.word(func(r rune) bool { return r == ' ' || r == '\t' })
			if err != nil {
				return
			}
			name, err = lx.word(isWord)
			if err != nil {
				return
			}
			if len(name) == 0 {
				err = &ErrLexical{LineNo: lx.lineNo, Text: ".section"}
				return
			}
			tok.Kind = TOKEN_SECTION
			tok.Text = strings.ToLower(name)
		case isWordStart(r):
			var rest string
			rest, err = lx.word(isWord)
			if err != nil {
				return
			}
			text := string(r) + rest
			var colon rune
			colon, err = lx.peek()
			if err != nil && !errors.Is(err, io.EOF) {
				return
			}
			err = nil
			lower := strings.ToLower(text)
			_, isOpcode := LookupOpcode(lower)
			switch {
			case colon == ':':
				_, _, err = lx.in.ReadRune()
				if err != nil {
					return
				}
				tok.Kind = TOKEN_LABEL
				tok.Text = text
			case lower == "null":
				tok.Kind = TOKEN_NULL
				tok.Text = lower
			case isOpcode || isDirective(lower):
				tok.Kind = TOKEN_OPCODE
				tok.Text = lower
			default:
				tok.Kind = TOKEN_IDENTIFIER
				tok.Text = text
			}
		default:
			err = &ErrLexical{LineNo: lx.lineNo, Text: string(r)}
			return
		}

		return
	}
}

// Lex returns a lazy token stream over the input. The stream ends at the
// first error, which is yielded with a zero Token. It cannot be restarted.
func Lex(input io.Reader) iter.Seq2[Token, error] {
	lx := &lexer{
		in:     bufio.NewReader(input),
		lineNo: 1,
	}

	return func(yield func(Token, error) bool) {
		for {
			tok, err := lx.next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}
