package minimal

import (
	"fmt"
	"io"
	"strings"
)

// NonTerminal names a grammar production in the concrete syntax tree. The
// numbering scheme in original_source/src/inc/syntax.h encodes tree depth
// in the digit count (SOURCE=0 is the one exception); Go has no use for
// that encoding, so the values here are a plain iota sequence, but the
// grouping and relative order is preserved exactly.
type NonTerminal int

const (
	NonTermUndetermined NonTerminal = iota - 1

	Source
	MainFile
	ModuleFile
	MainPart
	ModulePart
	Sequence
	ModuleSequence
	Statement
	Branch
	Importing
	TypeAliasing
	Subprogram
	ModuleDeclaration
	Declaration
	Designation
	Control
	IfBlock
	SwitchBlock
	LoopBlock
	FileImport
	MFileImport
	CFileImport
	TypeExpr
	ParamList
	Collection
	PrimaryExpression
	Assignment
	Incrementation
	InOutCtrl
	FlowCtrl
	FuncCall
	ElifBlock
	ElseBlock
	CaseBlock
	ForLoop
	WhileLoop
	Expression
	Indexing
	Sizeof
	ArgumentList
	List
	Dict
	ArithmeticExpr
	LogicalExpr
	ArithOperand
	StringOperand
	LogicalOperand
)

// String reproduces print_construct_category's NON_TERMINAL branch from
// original_source/src/syntax.c, verbatim per label.
func (n NonTerminal) String() string {
	switch n {
	case Source:
		return "Source"
	case MainFile:
		return "Main File"
	case ModuleFile:
		return "Module File"
	case MainPart:
		return "Main Part"
	case ModulePart:
		return "Module Part"
	case Sequence:
		return "Sequence"
	case ModuleSequence:
		return "Module Sequence"
	case Statement:
		return "Statement"
	case Branch:
		return "Branch"
	case Importing:
		return "Import"
	case TypeAliasing:
		return "Type Alias"
	case Subprogram:
		return "Subprogram"
	case ModuleDeclaration:
		return "Module Declaration"
	case Declaration:
		return "Declaration"
	case Designation:
		return "Designation"
	case Control:
		return "Control"
	case IfBlock:
		return "If-Block"
	case SwitchBlock:
		return "Switch-Block"
	case LoopBlock:
		return "Loop-Block"
	case FileImport:
		return "Minimal Module Import"
	case MFileImport:
		return "Minimal Stdlib Import"
	case CFileImport:
		return "C Import"
	case TypeExpr:
		return "Type Expression"
	case ParamList:
		return "Parameter List"
	case Collection:
		return "Collection"
	case PrimaryExpression:
		return "Primary Expression"
	case Assignment:
		return "Assignment"
	case Incrementation:
		return "Incrementation"
	case InOutCtrl:
		return "Input/Output -Control"
	case FlowCtrl:
		return "Flow Control"
	case FuncCall:
		return "Function Call"
	case ElifBlock:
		return "Else If -Block"
	case ElseBlock:
		return "Else-Block"
	case CaseBlock:
		return "Case-Block"
	case ForLoop:
		return "For-Loop"
	case WhileLoop:
		return "While-Loop"
	case Expression:
		return "Expression"
	case Indexing:
		return "Indexing"
	case Sizeof:
		return "Sizeof"
	case ArgumentList:
		return "Argument List"
	case List:
		return "List"
	case Dict:
		return "Associative Array"
	case ArithmeticExpr:
		return "Arithmetic Expression"
	case LogicalExpr:
		return "Logical Expression"
	case ArithOperand:
		return "Arithmetic Operand"
	case StringOperand:
		return "String Operand"
	case LogicalOperand:
		return "Logical Operand"
	default:
		return "Unclassifiable"
	}
}

// ConsType distinguishes what a Construct holds, mirroring MiniConsType.
// The zero value is ConsInactive so an unattached Node is self-evidently
// empty, matching the C source's memset-to-zero alloc_gram_construct.
type ConsType int

const (
	ConsInactive ConsType = iota
	ConsTerminal
	ConsNonTerminal
)

func (t ConsType) String() string {
	switch t {
	case ConsTerminal:
		return "terminal"
	case ConsNonTerminal:
		return "non-terminal"
	default:
		return "inactive"
	}
}

// Construct is the tagged union a Node carries: either a copied Token
// (terminal) or a NonTerminal tag, never both. It plays the role of the C
// source's MiniGramCons union plus its MiniConsType discriminant.
type Construct struct {
	Type    ConsType
	Token   Token
	NonTerm NonTerminal
}

// Node is one vertex of the concrete syntax tree, using the first-child /
// next-sibling representation from original_source/src/inc/syntax.h's
// MiniSyntaxTree instead of an n-ary child slice: Child points at the
// node's first offspring and Sibling chains to the next node at the same
// level, so an arbitrary-arity tree is built from two pointers per node.
type Node struct {
	Data    Construct
	Child   *Node
	Sibling *Node
}

// NewTerminalNode builds a leaf node that copies tok's value out, the same
// "copy now so the token stream can be discarded later" contract as
// init_syntax_tree's TOKEN branch.
func NewTerminalNode(tok Token) *Node {
	return &Node{Data: Construct{Type: ConsTerminal, Token: tok}}
}

// NewNonTerminalNode builds an interior node tagged with the production it
// represents.
func NewNonTerminalNode(nt NonTerminal) *Node {
	return &Node{Data: Construct{Type: ConsNonTerminal, NonTerm: nt}}
}

// Relation picks which of a node's two links Attach sets, mirroring
// MiniRelation's SIBLING/CHILD discriminant.
type Relation int

const (
	RelationSibling Relation = iota
	RelationChild
)

// Attach wires newNode onto target as either its child or its sibling,
// overwriting whichever link relation selects (the Go analogue of
// add_node, which simply assigns the pointer field).
func Attach(target, newNode *Node, relation Relation) {
	if target == nil || newNode == nil {
		return
	}
	switch relation {
	case RelationChild:
		target.Child = newNode
	case RelationSibling:
		target.Sibling = newNode
	}
}

// indentWidth is the per-depth-level space count used by Fprint, matching
// TREE_INDENT_WIDTH from original_source/src/syntax.c.
const indentWidth = 2

// Fprint writes the tree rooted at n to w in the same depth-first,
// child-then-sibling order and bracketed "[Category: lexeme]" /
// "[Category]" shape as print_syntax_tree / file_print_syntax_tree.
func (n *Node) Fprint(w io.Writer, depth int) {
	if n == nil {
		return
	}
	fmt.Fprint(w, strings.Repeat(" ", depth*indentWidth))
	if n.Data.Type == ConsTerminal {
		fmt.Fprintf(w, "[%s: %s]\n", n.Data.Token.Category, n.Data.Token.Lexeme)
	} else {
		fmt.Fprintf(w, "[%s]\n", n.Data.NonTerm)
	}
	n.Child.Fprint(w, depth+1)
	n.Sibling.Fprint(w, depth)
}

// PrintTree is a convenience wrapper over Fprint starting at depth 0.
func PrintTree(w io.Writer, root *Node) {
	root.Fprint(w, 0)
}
