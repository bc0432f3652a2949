package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(source string) (toks []Token, err error) {
	for tok, lerr := range Lex(strings.NewReader(source)) {
		if lerr != nil {
			err = lerr
			return
		}
		toks = append(toks, tok)
	}
	return
}

func TestLex(t *testing.T) {
	assert := assert.New(t)

	source := `start: PUSH 0x10, -5 ; comment
.section data
msg: str "hi\n"
	char 'A', null, $(dev1 + 2), Foo
`

	expected := []Token{
		{Kind: TOKEN_LABEL, Text: "start", LineNo: 1},
		{Kind: TOKEN_OPCODE, Text: "push", LineNo: 1},
		{Kind: TOKEN_NUMBER, Text: "0x10", Number: 16, LineNo: 1},
		{Kind: TOKEN_COMMA, LineNo: 1},
		{Kind: TOKEN_NUMBER, Text: "-5", Number: -5, LineNo: 1},
		{Kind: TOKEN_NEWLINE, LineNo: 1},
		{Kind: TOKEN_SECTION, Text: "data", LineNo: 2},
		{Kind: TOKEN_NEWLINE, LineNo: 2},
		{Kind: TOKEN_LABEL, Text: "msg", LineNo: 3},
		{Kind: TOKEN_OPCODE, Text: "str", LineNo: 3},
		{Kind: TOKEN_STRING, Text: "hi\n", LineNo: 3},
		{Kind: TOKEN_NEWLINE, LineNo: 3},
		{Kind: TOKEN_OPCODE, Text: "char", LineNo: 4},
		{Kind: TOKEN_CHAR, Text: "'A'", Number: 'A', LineNo: 4},
		{Kind: TOKEN_COMMA, LineNo: 4},
		{Kind: TOKEN_NULL, Text: "null", LineNo: 4},
		{Kind: TOKEN_COMMA, LineNo: 4},
		{Kind: TOKEN_EXPR, Text: "dev1 + 2", LineNo: 4},
		{Kind: TOKEN_COMMA, LineNo: 4},
		{Kind: TOKEN_IDENTIFIER, Text: "Foo", LineNo: 4},
		{Kind: TOKEN_NEWLINE, LineNo: 4},
	}

	toks, err := lexAll(source)
	assert.NoError(err)
	assert.Equal(expected, toks)
}

func TestLexNumbers(t *testing.T) {
	assert := assert.New(t)

	table := map[string]int64{
		"0":          0,
		"42":         42,
		"0x2A":       42,
		"0X2a":       42,
		"0b101010":   42,
		"-0x800000":  -0x80_0000,
		"0xffffffff": 0xffff_ffff,
		"'\\n'":      '\n',
		"'\\x41'":    'A',
	}

	for source, value := range table {
		toks, err := lexAll(source)
		if assert.NoError(err, source) && assert.Len(toks, 1, source) {
			assert.Equal(value, toks[0].Number, source)
		}
	}
}

func TestLexErrors(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"@",
		"0xZZ",
		"12abc",
		"-",
		"'ab'",
		"''",
		"\"unterminated",
		"\"split\nstring\"",
		".text",
		".section",
		"$(1 + 2",
		"$1",
		"push #3",
	}

	for _, source := range table {
		_, err := lexAll(source)
		var lexical *ErrLexical
		assert.True(errors.As(err, &lexical), source)
	}
}

func TestLexStops(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for range Lex(strings.NewReader("nop\nnop\nnop\n")) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
