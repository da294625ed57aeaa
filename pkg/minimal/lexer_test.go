package minimal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minimal.dev/internal/corpus"
)

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		expect []Token
	}{
		{
			name: "identifier assign int literal",
			line: "x:=1",
			expect: []Token{
				{Lexeme: "x", Category: CategoryIdentifier, Name: MiniID, Line: 1, Col: 0},
				{Lexeme: ":=", Category: CategoryBinaryAssignOp, Name: Assign, Line: 1, Col: 1},
				{Lexeme: "1", Category: CategoryLiteral, Name: IntLiteral, Line: 1, Col: 3},
			},
		},
		{
			name: "whitespace between lexemes is dropped",
			line: "x := 1",
			expect: []Token{
				{Lexeme: "x", Category: CategoryIdentifier, Name: MiniID, Line: 1, Col: 0},
				{Lexeme: ":=", Category: CategoryBinaryAssignOp, Name: Assign, Line: 1, Col: 2},
				{Lexeme: "1", Category: CategoryLiteral, Name: IntLiteral, Line: 1, Col: 5},
			},
		},
		{
			name:   "line comments produce no tokens",
			line:   "//this is a comment",
			expect: nil,
		},
		{
			name: "identifier at the max stem length stays one token",
			line: "abcdefgh",
			expect: []Token{
				{Lexeme: "abcdefgh", Category: CategoryIdentifier, Name: MiniID, Line: 1, Col: 0},
			},
		},
		{
			name: "identifier past the max stem length splits",
			line: "abcdefghi",
			expect: []Token{
				{Lexeme: "abcdefgh", Category: CategoryIdentifier, Name: MiniID, Line: 1, Col: 0},
				{Lexeme: "i", Category: CategoryIdentifier, Name: MiniID, Line: 1, Col: 8},
			},
		},
		{
			name: "M-qualified identifier",
			line: "M:abc",
			expect: []Token{
				{Lexeme: "M:abc", Category: CategoryIdentifier, Name: MiniExtID, Line: 1, Col: 0},
			},
		},
		{
			name: "C-qualified identifier has no length cap",
			line: "C:foo_bar_baz",
			expect: []Token{
				{Lexeme: "C:foo_bar_baz", Category: CategoryIdentifier, Name: CID, Line: 1, Col: 0},
			},
		},
		{
			name: "constant identifier",
			line: "MYCONST1",
			expect: []Token{
				{Lexeme: "MYCONST1", Category: CategoryIdentifier, Name: MiniConstID, Line: 1, Col: 0},
			},
		},
		{
			name: "signed float literal with exponent",
			line: "-1.5e10",
			expect: []Token{
				{Lexeme: "-1.5e10", Category: CategoryLiteral, Name: FloatLiteral, Line: 1, Col: 0},
			},
		},
		{
			name: "string literal with an escaped quote",
			line: `"a\"b"`,
			expect: []Token{
				{Lexeme: `"a\"b"`, Category: CategoryLiteral, Name: StringLiteral, Line: 1, Col: 0},
			},
		},
		{
			name: "empty string literal",
			line: `""`,
			expect: []Token{
				{Lexeme: `""`, Category: CategoryLiteral, Name: StringLiteral, Line: 1, Col: 0},
			},
		},
		{
			name: "branch and terminator keywords",
			line: "??~?",
			expect: []Token{
				{Lexeme: "??", Category: CategoryBranchKeyword, Name: If, Line: 1, Col: 0},
				{Lexeme: "~?", Category: CategoryTerminatingKeyword, Name: EndIf, Line: 1, Col: 2},
			},
		},
		{
			name: "void type keyword",
			line: "<>",
			expect: []Token{
				{Lexeme: "<>", Category: CategoryTypeKeyword, Name: Void, Line: 1, Col: 0},
			},
		},
		{
			name: "int type keyword",
			line: "<#>",
			expect: []Token{
				{Lexeme: "<#>", Category: CategoryTypeKeyword, Name: Int, Line: 1, Col: 0},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stream, err := Lex([]string{c.line})
			require.NoError(t, err)
			assert.Equal(t, c.expect, stream.Tokens)
		})
	}
}

func TestLex_Errors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"unclosed string", `"unclosed`},
		{"unclassifiable symbol", "`"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Lex([]string{c.line})
			require.Error(t, err)
			var lexErr *LexError
			assert.True(t, errors.As(err, &lexErr))
			assert.True(t, errors.Is(err, StatusInvalidSyntax))
		})
	}
}

func TestLex_EmptyInput(t *testing.T) {
	_, err := Lex(nil)
	assert.ErrorIs(t, err, StatusFileEmpty)
}

// benchResult pins the result so the compiler can't optimize the benchmark
// loop away.
var benchResult TokenStream

func benchmarkLex(size int, b *testing.B) {
	data := corpus.GetRandomTokens(size)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		var err error
		benchResult, err = Lex([]string{data})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLex100(b *testing.B)    { benchmarkLex(100, b) }
func BenchmarkLex1000(b *testing.B)   { benchmarkLex(1000, b) }
func BenchmarkLex10000(b *testing.B)  { benchmarkLex(10000, b) }
func BenchmarkLex100000(b *testing.B) { benchmarkLex(100000, b) }
