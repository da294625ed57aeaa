package minimal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	root := NewNonTerminalNode(Declaration)
	typeExpr := NewNonTerminalNode(TypeExpr)
	idNode := NewTerminalNode(Token{Name: MiniID, Lexeme: "x"})

	Attach(root, typeExpr, RelationChild)
	Attach(typeExpr, idNode, RelationSibling)

	assert.Same(t, typeExpr, root.Child)
	assert.Same(t, idNode, typeExpr.Sibling)
	assert.Nil(t, root.Sibling)
}

// TestParser_DeclarationMatchesHandBuiltTree cross-checks the parser's
// output against a tree built directly from Attach/NewTerminalNode, using
// go-cmp's deep structural diff instead of a field-by-field assertion.
func TestParser_DeclarationMatchesHandBuiltTree(t *testing.T) {
	p := NewParser(newStream(
		termTok(Int, "<#>"),
		termTok(MiniID, "x"),
	))
	got, err := p.declaration()
	require.NoError(t, err)

	want := NewNonTerminalNode(Declaration)
	typeExpr := NewNonTerminalNode(TypeExpr)
	Attach(want, typeExpr, RelationChild)
	Attach(typeExpr, NewTerminalNode(termTok(Int, "<#>")), RelationChild)
	Attach(typeExpr, NewTerminalNode(termTok(MiniID, "x")), RelationSibling)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("declaration() tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFprint_TerminalNode(t *testing.T) {
	node := NewTerminalNode(Token{Category: CategoryIdentifier, Lexeme: "x"})

	var buf strings.Builder
	node.Fprint(&buf, 0)

	assert.Equal(t, "[identifier: x]\n", buf.String())
}

func TestFprint_NonTerminalWithChildAndSibling(t *testing.T) {
	root := NewNonTerminalNode(Declaration)
	typeExpr := NewNonTerminalNode(TypeExpr)
	idNode := NewTerminalNode(Token{Category: CategoryIdentifier, Lexeme: "x"})

	Attach(root, typeExpr, RelationChild)
	Attach(typeExpr, idNode, RelationSibling)

	var buf strings.Builder
	PrintTree(&buf, root)

	want := "[Declaration]\n" +
		"  [Type Expression]\n" +
		"  [identifier: x]\n"
	assert.Equal(t, want, buf.String())
}
