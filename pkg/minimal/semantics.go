package minimal

import "fmt"

// TypeInfo is the symbol-table value every declared name resolves to,
// mirroring the teacher's TypeInfo interface (pkg/semantics.go) generalized
// from its ad hoc "int"/"string" basic types to Minimal's own type-keyword
// vocabulary.
type TypeInfo interface {
	String() string
	Equals(TypeInfo) bool
}

// ErrorType marks a symbol whose type could not be determined, the Go
// analogue of the teacher's ErrorType sentinel.
type ErrorType struct{}

func (t *ErrorType) String() string      { return "~error" }
func (t *ErrorType) Equals(TypeInfo) bool { return false }

// BasicType wraps one of Minimal's type-keyword TokenNames (Void, Int,
// Float, Str, Bool, Stream, ListT, DictT, EnumT, UnionT, StructT, CustomT),
// replacing the teacher's bare string Typ field.
type BasicType struct {
	Name TokenName
}

func (t *BasicType) String() string { return Describe(t.Name) }

func (t *BasicType) Equals(o TypeInfo) bool {
	other, ok := o.(*BasicType)
	return ok && t.Name == other.Name
}

// ArgumentType names one subprogram parameter's declared type, the Go
// analogue of the teacher's ArgumentType.
type ArgumentType struct {
	Name string
	Type *BasicType
}

func (t *ArgumentType) String() string { return t.Type.String() }

func (t *ArgumentType) Equals(o TypeInfo) bool {
	other, ok := o.(*ArgumentType)
	return ok && t.Name == other.Name && t.Type.Equals(other.Type)
}

// FuncType is a subprogram's full signature, the Go analogue of the
// teacher's FuncType.
type FuncType struct {
	Args   []*ArgumentType
	Return *BasicType
}

func (t *FuncType) String() string {
	s := "subprogram("
	for i, arg := range t.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	s += ") -> "
	if t.Return != nil {
		s += t.Return.String()
	}
	return s
}

func (t *FuncType) Equals(o TypeInfo) bool {
	other, ok := o.(*FuncType)
	if !ok || len(t.Args) != len(other.Args) {
		return false
	}
	for i, arg := range t.Args {
		if !arg.Equals(other.Args[i]) {
			return false
		}
	}
	if t.Return == nil || other.Return == nil {
		return t.Return == other.Return
	}
	return t.Return.Equals(other.Return)
}

// DuplicateDeclarationError reports a name declared more than once at the
// scope the Analyzer walked, the one check the current scaffolding actually
// performs.
type DuplicateDeclarationError struct {
	Name string
	Line int
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%d: %q redeclared", e.Line, e.Name)
}

// SymbolTable maps declared names to their resolved type, the Go analogue
// of the teacher's SymbolTable.
type SymbolTable struct {
	Entries map[string]TypeInfo
	Errors  []error
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Entries: make(map[string]TypeInfo)}
}

func (t *SymbolTable) Add(name string, typ TypeInfo) {
	t.Entries[name] = typ
}

func (t *SymbolTable) Get(name string) TypeInfo {
	return t.Entries[name]
}

func (t *SymbolTable) AddError(err error) {
	t.Errors = append(t.Errors, err)
}

// Analyzer walks a parsed CST and builds the symbol table a later semantic
// pass would type-check against. It is the adapted, stubbed-out
// descendant of the teacher's ContextAnalyzer (pkg/semantics.go): it
// performs no type resolution and Analyze always returns
// StatusNotImplemented, but the declaration/subprogram discovery it does
// perform is real and is what a full semantic pass would build on.
type Analyzer struct {
	root *Node
}

// NewAnalyzer returns an Analyzer over the CST rooted at root.
func NewAnalyzer(root *Node) *Analyzer {
	return &Analyzer{root: root}
}

// Analyze walks the tree, registers every declaration and subprogram it
// finds into a SymbolTable, and returns it alongside StatusNotImplemented:
// the scaffolding for semantic analysis exists, but no type-checking runs
// yet, matching spec.md's Non-goals for this stage.
func (a *Analyzer) Analyze() (*SymbolTable, error) {
	stab := NewSymbolTable()
	a.walk(stab, a.root)
	return stab, StatusNotImplemented
}

func (a *Analyzer) walk(stab *SymbolTable, n *Node) {
	if n == nil {
		return
	}
	if n.Data.Type == ConsNonTerminal {
		switch n.Data.NonTerm {
		case Declaration, ModuleDeclaration:
			a.registerDeclaration(stab, n)
		case Subprogram:
			a.registerSubprogram(stab, n)
		}
	}
	a.walk(stab, n.Child)
	a.walk(stab, n.Sibling)
}

// registerDeclaration pulls the (type, name) pair out of a Declaration/
// ModuleDeclaration subtree built by declarationBody in parser.go: its
// Child is a TypeExpr node whose own Child is the type-keyword terminal,
// and the TypeExpr's Sibling is the declared identifier terminal.
func (a *Analyzer) registerDeclaration(stab *SymbolTable, n *Node) {
	typeExpr := n.Child
	if typeExpr == nil || typeExpr.Data.Type != ConsNonTerminal || typeExpr.Child == nil {
		return
	}
	idNode := typeExpr.Sibling
	if idNode == nil || idNode.Data.Type != ConsTerminal {
		return
	}
	a.register(stab, idNode.Data.Token, &BasicType{Name: typeExpr.Child.Data.Token.Name})
}

// registerSubprogram pulls the subprogram's name, parameter types, and
// return type out of the tree built by subprogram() in parser.go.
func (a *Analyzer) registerSubprogram(stab *SymbolTable, n *Node) {
	funcTok := n.Child
	if funcTok == nil {
		return
	}
	idNode := funcTok.Sibling
	if idNode == nil || idNode.Data.Type != ConsTerminal {
		return
	}
	leftParen := idNode.Sibling
	if leftParen == nil {
		return
	}
	params := leftParen.Sibling

	sig := &FuncType{Args: collectParams(params)}
	if rightParen := siblingOf(params); rightParen != nil {
		if redirect := rightParen.Sibling; redirect != nil {
			if retType := redirect.Sibling; retType != nil && retType.Data.Type == ConsNonTerminal && retType.Child != nil {
				sig.Return = &BasicType{Name: retType.Child.Data.Token.Name}
			}
		}
	}

	a.register(stab, idNode.Data.Token, sig)
}

// collectParams walks a ParamList subtree's flattened TypeExpr/identifier/
// comma sibling chain (see paramList's pick/pickRel construction in
// parser.go) into a slice of ArgumentType.
func collectParams(params *Node) []*ArgumentType {
	if params == nil {
		return nil
	}
	var args []*ArgumentType
	cur := params.Child
	for cur != nil && cur.Data.Type == ConsNonTerminal && cur.Data.NonTerm == TypeExpr && cur.Child != nil {
		idNode := cur.Sibling
		if idNode == nil || idNode.Data.Type != ConsTerminal {
			break
		}
		args = append(args, &ArgumentType{
			Name: idNode.Data.Token.Lexeme,
			Type: &BasicType{Name: cur.Child.Data.Token.Name},
		})
		cur = idNode.Sibling
		if cur != nil && cur.Data.Type == ConsTerminal && cur.Data.Token.Name == Comma {
			cur = cur.Sibling
		}
	}
	return args
}

func siblingOf(n *Node) *Node {
	if n == nil {
		return nil
	}
	return n.Sibling
}

func (a *Analyzer) register(stab *SymbolTable, tok Token, typ TypeInfo) {
	if stab.Get(tok.Lexeme) != nil {
		stab.AddError(&DuplicateDeclarationError{Name: tok.Lexeme, Line: tok.Line})
		return
	}
	stab.Add(tok.Lexeme, typ)
}
