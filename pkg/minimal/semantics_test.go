package minimal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_RegisterDeclaration(t *testing.T) {
	p := NewParser(newStream(
		termTok(Int, "<#>"),
		termTok(MiniID, "x"),
	))
	node, err := p.declaration()
	require.NoError(t, err)

	stab, err := NewAnalyzer(node).Analyze()
	assert.True(t, errors.Is(err, StatusNotImplemented))

	typ, ok := stab.Get("x").(*BasicType)
	require.True(t, ok)
	assert.Equal(t, Int, typ.Name)
	assert.Empty(t, stab.Errors)
}

func TestAnalyzer_RegisterSubprogram(t *testing.T) {
	p := NewParser(newStream(
		termTok(Func, "$$"),
		termTok(MiniID, "main"),
		termTok(LeftParen, "("),
		termTok(Int, "<#>"),
		termTok(MiniID, "x"),
		termTok(RightParen, ")"),
		termTok(Redirect, "->"),
		termTok(Void, "<>"),
		termTok(Colon, ":"),
		termTok(ReadWrite, "!"),
		termTok(Stdio, "..."),
		termTok(Redirect, "->"),
		termTok(Semicolon, ";"),
		termTok(EndFunc, "~$"),
	))
	node, err := p.subprogram()
	require.NoError(t, err)

	stab, err := NewAnalyzer(node).Analyze()
	assert.True(t, errors.Is(err, StatusNotImplemented))

	sig, ok := stab.Get("main").(*FuncType)
	require.True(t, ok)
	require.Len(t, sig.Args, 1)
	assert.Equal(t, "x", sig.Args[0].Name)
	assert.Equal(t, Int, sig.Args[0].Type.Name)
	require.NotNil(t, sig.Return)
	assert.Equal(t, Void, sig.Return.Name)
}

func TestAnalyzer_DuplicateDeclaration(t *testing.T) {
	first := NewParser(newStream(termTok(Int, "<#>"), termTok(MiniID, "x")))
	firstDecl, err := first.declaration()
	require.NoError(t, err)

	second := NewParser(newStream(termTok(Int, "<#>"), termTok(MiniID, "x")))
	secondDecl, err := second.declaration()
	require.NoError(t, err)

	root := NewNonTerminalNode(Sequence)
	Attach(root, firstDecl, RelationChild)
	Attach(firstDecl, secondDecl, RelationSibling)

	stab, err := NewAnalyzer(root).Analyze()
	assert.True(t, errors.Is(err, StatusNotImplemented))

	require.Len(t, stab.Errors, 1)
	var dupErr *DuplicateDeclarationError
	require.True(t, errors.As(stab.Errors[0], &dupErr))
	assert.Equal(t, "x", dupErr.Name)
}

func TestFuncType_String(t *testing.T) {
	sig := &FuncType{
		Args:   []*ArgumentType{{Name: "x", Type: &BasicType{Name: Int}}},
		Return: &BasicType{Name: Void},
	}
	assert.Contains(t, sig.String(), "->")
}

func TestBasicType_Equals(t *testing.T) {
	a := &BasicType{Name: Int}
	b := &BasicType{Name: Int}
	c := &BasicType{Name: Void}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(&ErrorType{}))
}
