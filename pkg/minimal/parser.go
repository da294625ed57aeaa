package minimal

// Parse runs the recursive-descent grammar over stream and returns the root
// of the concrete syntax tree, a Source node. Grounded production-by-
// production on original_source/src/parser.c; every tail-recursive rule in
// the C source (sequence, module-sequence, case-block, elif-block,
// argument-list, list, dict, parameter-list) is written here as a loop
// instead, per the loop-conversion decision in DESIGN.md.
func Parse(stream TokenStream) (*Node, error) {
	p := NewParser(stream)
	return p.source()
}

// <source> ::= <module-file> <source> | <module-file> | <main-file>
func (p *Parser) source() (*Node, error) {
	root := NewNonTerminalNode(Source)
	var last *Node
	attach := func(n *Node) {
		if last == nil {
			Attach(root, n, RelationChild)
		} else {
			Attach(last, n, RelationSibling)
		}
		last = n
	}

	for {
		tok, ok := p.current()
		if !ok {
			if last != nil {
				return root, nil
			}
			return nil, newParseError(Source, Token{}, StatusEndOfStream, "empty source")
		}
		if tok.Name != Module {
			break
		}
		mf, err := p.moduleFile()
		if err != nil {
			return nil, err
		}
		attach(mf)
	}

	mainF, err := p.mainFile()
	if err != nil {
		return nil, err
	}
	attach(mainF)
	return root, nil
}

// <main-file> ::= "!~>..<~!" (<module-part> | "") <main-part>
func (p *Parser) mainFile() (*Node, error) {
	node := NewNonTerminalNode(MainFile)
	if _, err := p.matchAndAddTerminal(MainFile, node, RelationChild, MainDeclaration); err != nil {
		return nil, err
	}

	var last *Node = node.Child
	if tok, ok := p.current(); ok && tok.Name == Module {
		mp, err := p.modulePart()
		if err != nil {
			return nil, err
		}
		Attach(last, mp, RelationSibling)
		last = mp
	}

	mainP, err := p.mainPart()
	if err != nil {
		return nil, err
	}
	Attach(last, mainP, RelationSibling)
	return node, nil
}

// <module-file> ::= <module-part>
func (p *Parser) moduleFile() (*Node, error) {
	node := NewNonTerminalNode(ModuleFile)
	mp, err := p.modulePart()
	if err != nil {
		return nil, err
	}
	Attach(node, mp, RelationChild)
	return node, nil
}

// <module-part> ::= "}}}" <mini-id> ":" <module-seq> "{{{"
func (p *Parser) modulePart() (*Node, error) {
	node := NewNonTerminalNode(ModulePart)
	if _, err := p.matchAndAddTerminal(ModulePart, node, RelationChild, Module); err != nil {
		return nil, err
	}
	idNode, err := p.matchAndAddTerminal(ModulePart, node.Child, RelationSibling, MiniID)
	if err != nil {
		return nil, err
	}
	colonNode, err := p.matchAndAddTerminal(ModulePart, idNode, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	seq, err := p.moduleSequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, seq, RelationSibling)
	if _, err := p.matchAndAddTerminal(ModulePart, seq, RelationSibling, EndModule); err != nil {
		return nil, err
	}
	return node, nil
}

// <module-seq> ::= (<import> | <typedef> | <module-declaration> | <subprogram>) (<module-sequence> | "")
func (p *Parser) moduleSequence() (*Node, error) {
	node := NewNonTerminalNode(ModuleSequence)
	var last *Node
	attach := func(n *Node) {
		if last == nil {
			Attach(node, n, RelationChild)
		} else {
			Attach(last, n, RelationSibling)
		}
		last = n
	}

	for {
		tok, ok := p.current()
		if !ok || tok.Name == EndModule {
			break
		}
		var item *Node
		var err error
		switch {
		case tok.Name == Import || tok.Name == MImport || tok.Name == CImport:
			item, err = p.importStmt()
		case tok.Category == CategoryTypeKeyword:
			if next, ok := p.peek(1); ok && next.Name == Redirect {
				item, err = p.typeAliasing()
			} else {
				item, err = p.moduleDeclaration()
			}
		case tok.Name == Func:
			item, err = p.subprogram()
		default:
			return nil, &ParseError{
				Status: StatusNonMatchingToken, Component: "parser", NonTerm: ModuleSequence,
				Line: tok.Line, Col: tok.Col, Detail: "unexpected " + Describe(tok.Name) + " in module body",
			}
		}
		if err != nil {
			return nil, err
		}
		attach(item)
	}
	if last == nil {
		return nil, p.expectedError(ModuleSequence, Import, MImport, CImport, Func)
	}
	return node, nil
}

// <import> ::= ("::" <mini-id> | ("M::" | "C::") <string-literal>) ";"
func (p *Parser) importStmt() (*Node, error) {
	tok, _ := p.current()
	switch tok.Name {
	case Import:
		node := NewNonTerminalNode(FileImport)
		if _, err := p.matchAndAddTerminal(FileImport, node, RelationChild, Import); err != nil {
			return nil, err
		}
		idNode, err := p.matchAndAddTerminal(FileImport, node.Child, RelationSibling, MiniID)
		if err != nil {
			return nil, err
		}
		if _, err := p.matchAndAddTerminal(FileImport, idNode, RelationSibling, Semicolon); err != nil {
			return nil, err
		}
		return node, nil
	case MImport:
		return p.importWith(MFileImport, MImport)
	case CImport:
		return p.importWith(CFileImport, CImport)
	default:
		return nil, p.expectedError(Importing, Import, MImport, CImport)
	}
}

func (p *Parser) importWith(nt NonTerminal, keyword TokenName) (*Node, error) {
	node := NewNonTerminalNode(nt)
	if _, err := p.matchAndAddTerminal(nt, node, RelationChild, keyword); err != nil {
		return nil, err
	}
	strNode, err := p.matchAndAddTerminal(nt, node.Child, RelationSibling, StringLiteral)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchAndAddTerminal(nt, strNode, RelationSibling, Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// <type-alias> ::= <type-kw> "->" <custom-type> ";"
func (p *Parser) typeAliasing() (*Node, error) {
	node := NewNonTerminalNode(TypeAliasing)
	kwNode, err := p.typeKeyword(node, RelationChild)
	if err != nil {
		return nil, err
	}
	redirNode, err := p.matchAndAddTerminal(TypeAliasing, kwNode, RelationSibling, Redirect)
	if err != nil {
		return nil, err
	}
	customNode, err := p.matchAndAddTerminal(TypeAliasing, redirNode, RelationSibling, CustomT)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchAndAddTerminal(TypeAliasing, customNode, RelationSibling, Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// <module-declaration> is a declaration at module scope: like <declaration>
// but terminated with its own ";" since it isn't wrapped by <statement>.
func (p *Parser) moduleDeclaration() (*Node, error) {
	node := NewNonTerminalNode(ModuleDeclaration)
	last, err := p.declarationBody(node)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchAndAddTerminal(ModuleDeclaration, last, RelationSibling, Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// typeKeyword matches any fixed type keyword or a custom-type shape and
// attaches it to parent under rel, grounded on <type>'s token set.
func (p *Parser) typeKeyword(parent *Node, rel Relation) (*Node, error) {
	return p.matchAndAddTerminal(TypeExpr, parent, rel,
		Void, Int, Float, Str, Bool, Stream, ListT, DictT, EnumT, UnionT, StructT, CustomT)
}

// <declaration> ::= <type> (<mini-ID> | <mini-const-ID>) ("" | ":=" (<primary-expression> | <collection>))
func (p *Parser) declaration() (*Node, error) {
	node := NewNonTerminalNode(Declaration)
	if _, err := p.declarationBody(node); err != nil {
		return nil, err
	}
	return node, nil
}

// declarationBody parses the shared type+id(+initializer) shape used by
// both <declaration> and <module-declaration>, returning the last attached
// node so the caller can hang a trailing ";" off of it.
func (p *Parser) declarationBody(node *Node) (*Node, error) {
	typeNode, err := p.matchCatAndAddNonTerminal(Declaration, node, RelationChild,
		[]TokenCategory{CategoryTypeKeyword}, []NonTerminal{TypeExpr})
	if err != nil {
		return nil, err
	}
	if _, err := p.typeKeyword(typeNode, RelationChild); err != nil {
		return nil, err
	}

	idNode, err := p.matchAndAddTerminal(Declaration, typeNode, RelationSibling, MiniID, MiniConstID)
	if err != nil {
		return nil, err
	}

	last := idNode
	if tok, ok := p.current(); ok && tok.Name == Assign {
		assignNode, err := p.matchAndAddTerminal(Declaration, last, RelationSibling, Assign)
		if err != nil {
			return nil, err
		}
		var valueNode *Node
		if tok, ok := p.current(); ok && tok.Name == LeftBracket {
			valueNode, err = p.collection()
		} else {
			valueNode, err = p.primaryExpression()
		}
		if err != nil {
			return nil, err
		}
		Attach(assignNode, valueNode, RelationSibling)
		last = valueNode
	}
	return last, nil
}

// <subprogram> ::= "$$" <mini-id> "(" <param-list> ")" "->" <type> ":" <sequence> "~$"
func (p *Parser) subprogram() (*Node, error) {
	node := NewNonTerminalNode(Subprogram)
	if _, err := p.matchAndAddTerminal(Subprogram, node, RelationChild, Func); err != nil {
		return nil, err
	}
	idNode, err := p.matchAndAddTerminal(Subprogram, node.Child, RelationSibling, MiniID)
	if err != nil {
		return nil, err
	}
	lp, err := p.matchAndAddTerminal(Subprogram, idNode, RelationSibling, LeftParen)
	if err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	Attach(lp, params, RelationSibling)
	rp, err := p.matchAndAddTerminal(Subprogram, params, RelationSibling, RightParen)
	if err != nil {
		return nil, err
	}
	redir, err := p.matchAndAddTerminal(Subprogram, rp, RelationSibling, Redirect)
	if err != nil {
		return nil, err
	}
	retTypeNode, err := p.matchCatAndAddNonTerminal(Subprogram, redir, RelationSibling,
		[]TokenCategory{CategoryTypeKeyword}, []NonTerminal{TypeExpr})
	if err != nil {
		return nil, err
	}
	if _, err := p.typeKeyword(retTypeNode, RelationChild); err != nil {
		return nil, err
	}
	colon, err := p.matchAndAddTerminal(Subprogram, retTypeNode, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	seq, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colon, seq, RelationSibling)
	if _, err := p.matchAndAddTerminal(Subprogram, seq, RelationSibling, EndFunc); err != nil {
		return nil, err
	}
	return node, nil
}

// <param-list> ::= <type> <mini-id> ("," <param-list> | "")
func (p *Parser) paramList() (*Node, error) {
	node := NewNonTerminalNode(ParamList)
	var last *Node

	for {
		if !p.matchCategory(CategoryTypeKeyword) {
			return nil, p.expectedError(ParamList, Void, Int, Float, Str, Bool, Stream, ListT, DictT, EnumT, UnionT, StructT, CustomT)
		}
		typeNode := NewNonTerminalNode(TypeExpr)
		Attach(pick(node, last), typeNode, pickRel(last))
		if _, err := p.typeKeyword(typeNode, RelationChild); err != nil {
			return nil, err
		}
		last = typeNode

		idNode, err := p.matchAndAddTerminal(ParamList, last, RelationSibling, MiniID)
		if err != nil {
			return nil, err
		}
		last = idNode

		tok, ok := p.current()
		if !ok || tok.Name != Comma {
			break
		}
		commaNode, err := p.matchAndAddTerminal(ParamList, last, RelationSibling, Comma)
		if err != nil {
			return nil, err
		}
		last = commaNode
	}
	return node, nil
}

// <collection> ::= "[" (<list> | <dict>) "]"
func (p *Parser) collection() (*Node, error) {
	node := NewNonTerminalNode(Collection)
	lb, err := p.matchAndAddTerminal(Collection, node, RelationChild, LeftBracket)
	if err != nil {
		return nil, err
	}

	isDict := false
	if second, ok := p.peek(1); ok && second.Name == Colon {
		isDict = true
	}

	var body *Node
	if isDict {
		body, err = p.dict()
	} else {
		body, err = p.list()
	}
	if err != nil {
		return nil, err
	}
	Attach(lb, body, RelationSibling)
	if _, err := p.matchAndAddTerminal(Collection, body, RelationSibling, RightBracket); err != nil {
		return nil, err
	}
	return node, nil
}

// <list> ::= (<literal> | <true> | <false> | <mini-const-id>) "," <list> | <literal> | <mini-const-id>
func (p *Parser) list() (*Node, error) {
	node := NewNonTerminalNode(List)
	var last *Node
	for {
		elem, err := p.matchAndAddTerminal(List, pick(node, last), pickRel(last),
			IntLiteral, FloatLiteral, StringLiteral, True, False, MiniConstID)
		if err != nil {
			return nil, err
		}
		last = elem

		tok, ok := p.current()
		if !ok || tok.Name != Comma {
			break
		}
		commaNode, err := p.matchAndAddTerminal(List, last, RelationSibling, Comma)
		if err != nil {
			return nil, err
		}
		last = commaNode
	}
	return node, nil
}

// <dict> ::= (<literal> | <mini-const-id>) ":" (<literal> | <true> | <false> | <mini-const-id>) "," <dict> | ... (single pair)
func (p *Parser) dict() (*Node, error) {
	node := NewNonTerminalNode(Dict)
	var last *Node
	for {
		key, err := p.matchAndAddTerminal(Dict, pick(node, last), pickRel(last),
			IntLiteral, FloatLiteral, StringLiteral, MiniConstID)
		if err != nil {
			return nil, err
		}
		colonNode, err := p.matchAndAddTerminal(Dict, key, RelationSibling, Colon)
		if err != nil {
			return nil, err
		}
		value, err := p.matchAndAddTerminal(Dict, colonNode, RelationSibling,
			IntLiteral, FloatLiteral, StringLiteral, True, False, MiniConstID)
		if err != nil {
			return nil, err
		}
		last = value

		tok, ok := p.current()
		if !ok || tok.Name != Comma {
			break
		}
		commaNode, err := p.matchAndAddTerminal(Dict, last, RelationSibling, Comma)
		if err != nil {
			return nil, err
		}
		last = commaNode
	}
	return node, nil
}

// pick and pickRel are small helpers shared by the flattened list/dict
// loops: the first element attaches as the node's Child, every element
// after attaches as the previous element's Sibling.
func pick(node, last *Node) *Node {
	if last == nil {
		return node
	}
	return last
}

func pickRel(last *Node) Relation {
	if last == nil {
		return RelationChild
	}
	return RelationSibling
}

// <primary-expression> ::= <mini-ID> | <mini-const-ID> | <mini-ext-ID> | <C-ID> | <int-lit> | <float-lit>
func (p *Parser) primaryExpression() (*Node, error) {
	node := NewNonTerminalNode(PrimaryExpression)
	if _, err := p.matchAndAddTerminal(PrimaryExpression, node, RelationChild,
		MiniID, MiniConstID, MiniExtID, CID, IntLiteral, FloatLiteral); err != nil {
		return nil, err
	}
	return node, nil
}

// <expression> ::= <arithmetic-expr> | <logical-expr> | "(" <primary-expression> ")"
func (p *Parser) expression() (*Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(Expression, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	node := NewNonTerminalNode(Expression)
	switch {
	case tok.Name == True || tok.Name == False || tok.Name == Null:
		logicalNode, err := p.logicalExpr()
		if err != nil {
			return nil, err
		}
		Attach(node, logicalNode, RelationChild)
	case tok.Name == LeftParen:
		lp, err := p.matchAndAddTerminal(Expression, node, RelationChild, LeftParen)
		if err != nil {
			return nil, err
		}
		primary, err := p.primaryExpression()
		if err != nil {
			return nil, err
		}
		Attach(lp, primary, RelationSibling)
		if _, err := p.matchAndAddTerminal(Expression, primary, RelationSibling, RightParen); err != nil {
			return nil, err
		}
	default:
		arithNode, err := p.arithmeticExpr()
		if err != nil {
			return nil, err
		}
		Attach(node, arithNode, RelationChild)
	}
	return node, nil
}

// <arith-operand> ::= <mini-ID> | <mini-const-ID> | <mini-ext-ID> | <C-id> | <int-lit> | <float-lit> | <func-call> | "(" <arithmetic-expr> ")"
func (p *Parser) arithOperand() (*Node, error) {
	node := NewNonTerminalNode(ArithOperand)
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(ArithOperand, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	switch {
	case tok.Name == Call:
		call, err := p.funcCall()
		if err != nil {
			return nil, err
		}
		Attach(node, call, RelationChild)
	case tok.Name == LeftParen:
		lp, err := p.matchAndAddTerminal(ArithOperand, node, RelationChild, LeftParen)
		if err != nil {
			return nil, err
		}
		inner, err := p.arithmeticExpr()
		if err != nil {
			return nil, err
		}
		Attach(lp, inner, RelationSibling)
		if _, err := p.matchAndAddTerminal(ArithOperand, inner, RelationSibling, RightParen); err != nil {
			return nil, err
		}
	default:
		if _, err := p.matchAndAddTerminal(ArithOperand, node, RelationChild,
			MiniID, MiniConstID, MiniExtID, CID, IntLiteral, FloatLiteral); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// <arithmetic-expr> ::= <arith-operand> <bin-arith-oper> <arith-operand> | <una-arith-oper> <arith-operand> | <arith-operand>
func (p *Parser) arithmeticExpr() (*Node, error) {
	node := NewNonTerminalNode(ArithmeticExpr)

	if tok, ok := p.current(); ok && (tok.Name == Sqrt || tok.Name == Dereference || tok.Name == Address) {
		unary, err := p.matchAndAddTerminal(ArithmeticExpr, node, RelationChild, Sqrt, Dereference, Address)
		if err != nil {
			return nil, err
		}
		operand, err := p.arithOperand()
		if err != nil {
			return nil, err
		}
		Attach(unary, operand, RelationSibling)
		return node, nil
	}

	lhs, err := p.arithOperand()
	if err != nil {
		return nil, err
	}
	Attach(node, lhs, RelationChild)

	if tok, ok := p.current(); ok && isBinaryMathOp(tok.Name) {
		opNode, err := p.matchAndAddTerminal(ArithmeticExpr, lhs, RelationSibling,
			Plus, Minus, Times, Div, Mod, Pow)
		if err != nil {
			return nil, err
		}
		rhs, err := p.arithOperand()
		if err != nil {
			return nil, err
		}
		Attach(opNode, rhs, RelationSibling)
	}
	return node, nil
}

func isBinaryMathOp(name TokenName) bool {
	switch name {
	case Plus, Minus, Times, Div, Mod, Pow:
		return true
	default:
		return false
	}
}

// <logical-operand>, limited (per the Open Question decision recorded in
// DESIGN.md) to the boolean/null keyword literals the original source
// itself only ever exercises here.
func (p *Parser) logicalOperand() (*Node, error) {
	node := NewNonTerminalNode(LogicalOperand)
	if _, err := p.matchAndAddTerminal(LogicalOperand, node, RelationChild, True, False, Null); err != nil {
		return nil, err
	}
	return node, nil
}

// <logical-expr> ::= <logical-operand> <bin-log-oper> <logical-operand>
func (p *Parser) logicalExpr() (*Node, error) {
	node := NewNonTerminalNode(LogicalExpr)
	lhs, err := p.logicalOperand()
	if err != nil {
		return nil, err
	}
	Attach(node, lhs, RelationChild)

	if tok, ok := p.current(); ok && (tok.Name == And || tok.Name == Or) {
		opNode, err := p.matchAndAddTerminal(LogicalExpr, lhs, RelationSibling, And, Or)
		if err != nil {
			return nil, err
		}
		rhs, err := p.logicalOperand()
		if err != nil {
			return nil, err
		}
		Attach(opNode, rhs, RelationSibling)
	}
	return node, nil
}

// <main-part> ::= ">>>" <mini-id> ("[..]" | "") ":" <sequence> "<<<"
func (p *Parser) mainPart() (*Node, error) {
	node := NewNonTerminalNode(MainPart)
	if _, err := p.matchAndAddTerminal(MainPart, node, RelationChild, Main); err != nil {
		return nil, err
	}
	idNode, err := p.matchAndAddTerminal(MainPart, node.Child, RelationSibling, MiniID)
	if err != nil {
		return nil, err
	}
	last := idNode
	if tok, ok := p.current(); ok && tok.Name == Argv {
		argvNode, err := p.matchAndAddTerminal(MainPart, last, RelationSibling, Argv)
		if err != nil {
			return nil, err
		}
		last = argvNode
	}
	colonNode, err := p.matchAndAddTerminal(MainPart, last, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	seq, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, seq, RelationSibling)
	if _, err := p.matchAndAddTerminal(MainPart, seq, RelationSibling, EndMain); err != nil {
		return nil, err
	}
	return node, nil
}

// isSequenceTerminator reports the tokens that legally end a <sequence>
// without being consumed by it — the enclosing block's own closing keyword.
func isSequenceTerminator(name TokenName) bool {
	switch name {
	case EndModule, EndMain, EndIf, EndSwitch, EndLoop, EndFunc, ElseIf, Else, Case:
		return true
	default:
		return false
	}
}

// <sequence> ::= (<statement> | <branch>) ("" | <sequence>)
//
// A sequence with no statements or branches is also accepted: it yields a
// Sequence node with no children.
func (p *Parser) sequence() (*Node, error) {
	node := NewNonTerminalNode(Sequence)
	var last *Node
	attach := func(n *Node) {
		if last == nil {
			Attach(node, n, RelationChild)
		} else {
			Attach(last, n, RelationSibling)
		}
		last = n
	}

	for {
		tok, ok := p.current()
		if !ok || isSequenceTerminator(tok.Name) {
			break
		}
		var item *Node
		var err error
		if tok.Name == If || tok.Name == Switch || tok.Name == Loop {
			item, err = p.branch()
		} else {
			item, err = p.statement()
		}
		if err != nil {
			return nil, err
		}
		attach(item)
	}
	return node, nil
}

// <statement> ::= (<declaration> | <designation> | <control>) ";"
func (p *Parser) statement() (*Node, error) {
	node := NewNonTerminalNode(Statement)
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(Statement, Token{}, StatusEndOfStream, "unexpected end of input")
	}

	var body *Node
	var err error
	switch {
	case tok.Category == CategoryTypeKeyword:
		body, err = p.declaration()
	case tok.Name == MiniID || tok.Name == MiniExtID || tok.Name == CID:
		body, err = p.designation()
	case tok.Name == ReadWrite || tok.Name == Break || tok.Name == Continue || tok.Name == Return || tok.Name == Call:
		body, err = p.control()
	default:
		return nil, &ParseError{
			Status: StatusInvalidSyntax, Component: "parser", NonTerm: Statement,
			Line: tok.Line, Col: tok.Col, Detail: "unexpected " + Describe(tok.Name) + " at start of statement",
		}
	}
	if err != nil {
		return nil, err
	}
	Attach(node, body, RelationChild)
	if _, err := p.matchAndAddTerminal(Statement, body, RelationSibling, Semicolon); err != nil {
		return nil, err
	}
	return node, nil
}

// <designation> ::= <assignment> | <incrementation>
func (p *Parser) designation() (*Node, error) {
	node := NewNonTerminalNode(Designation)
	idNode, err := p.matchAndAddTerminal(Designation, node, RelationChild, MiniID, MiniExtID, CID)
	if err != nil {
		return nil, err
	}

	tok, ok := p.current()
	if !ok {
		return nil, newParseError(Designation, Token{}, StatusEndOfStream, "unexpected end of input")
	}

	switch {
	case tok.Name == Assign:
		return p.assignment(node, idNode)
	case isBinaryAssignOp(tok.Name) || tok.Name == Increment || tok.Name == Decrement:
		return p.incrementation(node, idNode)
	default:
		return nil, &ParseError{
			Status: StatusNonMatchingToken, Component: "parser", NonTerm: Designation,
			Line: tok.Line, Col: tok.Col, Detail: "expected assignment or increment/decrement operator",
		}
	}
}

// <assignment> ::= (<mini-id> | <mini-ext-id> | <C-id>) ":=" (<primary-expression> | <collection>)
func (p *Parser) assignment(node, idNode *Node) (*Node, error) {
	assignNode, err := p.matchAndAddTerminal(Assignment, idNode, RelationSibling, Assign)
	if err != nil {
		return nil, err
	}
	var valueNode *Node
	if tok, ok := p.current(); ok && tok.Name == LeftBracket {
		valueNode, err = p.collection()
	} else {
		valueNode, err = p.primaryExpression()
	}
	if err != nil {
		return nil, err
	}
	Attach(assignNode, valueNode, RelationSibling)
	return node, nil
}

func isBinaryAssignOp(name TokenName) bool {
	switch name {
	case PlusAssign, MinusAssign, TimesAssign, DivAssign, ModAssign:
		return true
	default:
		return false
	}
}

// <incrementation> ::= ((<mini-id> | <mini-ext-id> | <C-id>) (<BIN-A-OP> <expression> | <UNA-A-OP>))
func (p *Parser) incrementation(node, idNode *Node) (*Node, error) {
	tok, _ := p.current()
	if tok.Name == Increment || tok.Name == Decrement {
		if _, err := p.matchAndAddTerminal(Incrementation, idNode, RelationSibling, Increment, Decrement); err != nil {
			return nil, err
		}
		return node, nil
	}
	opNode, err := p.matchAndAddTerminal(Incrementation, idNode, RelationSibling,
		PlusAssign, MinusAssign, TimesAssign, DivAssign, ModAssign)
	if err != nil {
		return nil, err
	}
	exprNode, err := p.expression()
	if err != nil {
		return nil, err
	}
	Attach(opNode, exprNode, RelationSibling)
	return node, nil
}

// <control> ::= <io-control> | <flow-control> | <func-call>
func (p *Parser) control() (*Node, error) {
	node := NewNonTerminalNode(Control)
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(Control, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	var body *Node
	var err error
	switch tok.Name {
	case ReadWrite:
		body, err = p.ioControl()
	case Break, Continue, Return:
		body, err = p.flowControl()
	case Call:
		body, err = p.funcCall()
	default:
		return nil, p.expectedError(Control, ReadWrite, Break, Continue, Return, Call)
	}
	if err != nil {
		return nil, err
	}
	Attach(node, body, RelationChild)
	return node, nil
}

// <io-control> ::= "!" ("..." | <mini-id> | <mini-const-id> | <mini-ext-id> | <C-id> | <string>) "->"
func (p *Parser) ioControl() (*Node, error) {
	node := NewNonTerminalNode(InOutCtrl)
	bangNode, err := p.matchAndAddTerminal(InOutCtrl, node, RelationChild, ReadWrite)
	if err != nil {
		return nil, err
	}
	target, err := p.matchAndAddTerminal(InOutCtrl, bangNode, RelationSibling,
		Stdio, MiniID, MiniConstID, MiniExtID, CID, StringLiteral)
	if err != nil {
		return nil, err
	}
	if _, err := p.matchAndAddTerminal(InOutCtrl, target, RelationSibling, Redirect); err != nil {
		return nil, err
	}
	return node, nil
}

// <flow-control> ::= "." | ".." | "<-" <primary-expression>
func (p *Parser) flowControl() (*Node, error) {
	node := NewNonTerminalNode(FlowCtrl)
	tok, _ := p.current()
	if tok.Name == Break || tok.Name == Continue {
		if _, err := p.matchAndAddTerminal(FlowCtrl, node, RelationChild, Break, Continue); err != nil {
			return nil, err
		}
		return node, nil
	}
	returnNode, err := p.matchAndAddTerminal(FlowCtrl, node, RelationChild, Return)
	if err != nil {
		return nil, err
	}
	value, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}
	Attach(returnNode, value, RelationSibling)
	return node, nil
}

// <func-call> ::= "$" (<mini-id> | <mini-ext-id> | <C-id>) "(" <arg-list> ")"
func (p *Parser) funcCall() (*Node, error) {
	node := NewNonTerminalNode(FuncCall)
	if _, err := p.matchAndAddTerminal(FuncCall, node, RelationChild, Call); err != nil {
		return nil, err
	}
	nameNode, err := p.matchAndAddTerminal(FuncCall, node.Child, RelationSibling, MiniID, MiniExtID, CID)
	if err != nil {
		return nil, err
	}
	lp, err := p.matchAndAddTerminal(FuncCall, nameNode, RelationSibling, LeftParen)
	if err != nil {
		return nil, err
	}
	args, err := p.argumentList()
	if err != nil {
		return nil, err
	}
	Attach(lp, args, RelationSibling)
	if _, err := p.matchAndAddTerminal(FuncCall, args, RelationSibling, RightParen); err != nil {
		return nil, err
	}
	return node, nil
}

// <arg-list> ::= <primary-expression> ("" | "," <arg-list>)
func (p *Parser) argumentList() (*Node, error) {
	node := NewNonTerminalNode(ArgumentList)
	var last *Node
	if tok, ok := p.current(); ok && tok.Name == RightParen {
		return node, nil
	}
	for {
		arg, err := p.primaryExpression()
		if err != nil {
			return nil, err
		}
		if last == nil {
			Attach(node, arg, RelationChild)
		} else {
			Attach(last, arg, RelationSibling)
		}
		last = arg

		tok, ok := p.current()
		if !ok || tok.Name != Comma {
			break
		}
		commaNode, err := p.matchAndAddTerminal(ArgumentList, last, RelationSibling, Comma)
		if err != nil {
			return nil, err
		}
		last = commaNode
	}
	return node, nil
}

// <branch> ::= <if-block> | <switch-block> | <loop>
func (p *Parser) branch() (*Node, error) {
	node := NewNonTerminalNode(Branch)
	tok, _ := p.current()
	var body *Node
	var err error
	switch tok.Name {
	case If:
		body, err = p.ifBlock()
	case Switch:
		body, err = p.switchBlock()
	case Loop:
		body, err = p.loopBlock()
	default:
		return nil, p.expectedError(Branch, If, Switch, Loop)
	}
	if err != nil {
		return nil, err
	}
	Attach(node, body, RelationChild)
	return node, nil
}

// <if-block> ::= "??" <logical-expression> ":" <sequence> ("~?" | <else-if-block> | <else-block>)
func (p *Parser) ifBlock() (*Node, error) {
	node := NewNonTerminalNode(IfBlock)
	if _, err := p.matchAndAddTerminal(IfBlock, node, RelationChild, If); err != nil {
		return nil, err
	}
	cond, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}
	Attach(node.Child, cond, RelationSibling)
	colonNode, err := p.matchAndAddTerminal(IfBlock, cond, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	body, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, body, RelationSibling)

	last := body
	for {
		tok, ok := p.current()
		if !ok {
			return nil, newParseError(IfBlock, Token{}, StatusEndOfStream, "unterminated if-block")
		}
		if tok.Name == ElseIf {
			elif, err := p.elifBlock()
			if err != nil {
				return nil, err
			}
			Attach(last, elif, RelationSibling)
			last = elif
			continue
		}
		if tok.Name == Else {
			elseN, err := p.elseBlock()
			if err != nil {
				return nil, err
			}
			Attach(last, elseN, RelationSibling)
			last = elseN
		}
		break
	}
	if _, err := p.matchAndAddTerminal(IfBlock, last, RelationSibling, EndIf); err != nil {
		return nil, err
	}
	return node, nil
}

// <else-if-block> ::= "|?" <logical-expression> ":" <sequence> ("~?" | <else-if-block> | <else-block>)
//
// elifBlock itself stops after the sequence; ifBlock parses whatever follows
// (further else-if/else blocks and the closing "~?") and attaches each as a
// sibling of this node.
func (p *Parser) elifBlock() (*Node, error) {
	node := NewNonTerminalNode(ElifBlock)
	if _, err := p.matchAndAddTerminal(ElifBlock, node, RelationChild, ElseIf); err != nil {
		return nil, err
	}
	cond, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}
	Attach(node.Child, cond, RelationSibling)
	colonNode, err := p.matchAndAddTerminal(ElifBlock, cond, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	body, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, body, RelationSibling)
	return node, nil
}

// <else-block> ::= "|." ":" <sequence> "~?"
//
// elseBlock itself stops after the sequence; ifBlock matches the closing
// "~?" and attaches it as a sibling of this node.
func (p *Parser) elseBlock() (*Node, error) {
	node := NewNonTerminalNode(ElseBlock)
	elseTok, err := p.matchAndAddTerminal(ElseBlock, node, RelationChild, Else)
	if err != nil {
		return nil, err
	}
	colonNode, err := p.matchAndAddTerminal(ElseBlock, elseTok, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	body, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, body, RelationSibling)
	return node, nil
}

// <switch-block> ::= "##" <primary-expression> ":" [ <sequence> ] <case-block>
//
// The leading sequence is optional, but a case-block always follows it,
// matching original_source/src/parser.c's switch_block(): a leading
// sequence is parsed only when the token after the colon isn't CASE, and
// case_block is then called unconditionally either way.
func (p *Parser) switchBlock() (*Node, error) {
	node := NewNonTerminalNode(SwitchBlock)
	if _, err := p.matchAndAddTerminal(SwitchBlock, node, RelationChild, Switch); err != nil {
		return nil, err
	}
	selector, err := p.primaryExpression()
	if err != nil {
		return nil, err
	}
	Attach(node.Child, selector, RelationSibling)
	colonNode, err := p.matchAndAddTerminal(SwitchBlock, selector, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}

	last := colonNode
	if tok, ok := p.current(); ok && tok.Name != Case {
		seq, err := p.sequence()
		if err != nil {
			return nil, err
		}
		Attach(last, seq, RelationSibling)
		last = seq
	}

	cases, err := p.caseBlock()
	if err != nil {
		return nil, err
	}
	Attach(last, cases, RelationSibling)
	if _, err := p.matchAndAddTerminal(SwitchBlock, cases, RelationSibling, EndSwitch); err != nil {
		return nil, err
	}
	return node, nil
}

// <case-block> ::= "#=" (<mini-ID> | <mini-const-ID> | <mini-ext-ID> | <C-ID> | <int-literal> | <default>) ":" <sequence> ("~#" | <case-block>)
//
// A DEFAULT case's selector must be the last one: original_source's
// case_block() drops CASE from the set of tokens it will accept next once
// it has seen DEFAULT, leaving only END_SWITCH.
func (p *Parser) caseBlock() (*Node, error) {
	node := NewNonTerminalNode(CaseBlock)
	var last *Node
	sawDefault := false
	for {
		tok, ok := p.current()
		if !ok || tok.Name != Case {
			break
		}
		if sawDefault {
			return nil, p.expectedError(CaseBlock, EndSwitch)
		}
		caseNode, err := p.matchAndAddTerminal(CaseBlock, pick(node, last), pickRel(last), Case)
		if err != nil {
			return nil, err
		}
		selector, err := p.matchAndAddTerminal(CaseBlock, caseNode, RelationSibling,
			MiniID, MiniConstID, MiniExtID, CID, IntLiteral, Default)
		if err != nil {
			return nil, err
		}
		sawDefault = selector.Data.Token.Name == Default
		colonNode, err := p.matchAndAddTerminal(CaseBlock, selector, RelationSibling, Colon)
		if err != nil {
			return nil, err
		}
		body, err := p.sequence()
		if err != nil {
			return nil, err
		}
		Attach(colonNode, body, RelationSibling)
		last = body
	}
	if last == nil {
		return nil, p.expectedError(CaseBlock, Case)
	}
	return node, nil
}

// <loop-block> ::= <while-loop> | <for-loop>
func (p *Parser) loopBlock() (*Node, error) {
	node := NewNonTerminalNode(LoopBlock)
	next, ok := p.peek(1)
	var body *Node
	var err error
	if ok && next.Category == CategoryTypeKeyword {
		body, err = p.forLoop()
	} else {
		body, err = p.whileLoop()
	}
	if err != nil {
		return nil, err
	}
	Attach(node, body, RelationChild)
	return node, nil
}

// <while-loop> ::= "@@" <logical-expression> ":" <sequence> "~@"
func (p *Parser) whileLoop() (*Node, error) {
	node := NewNonTerminalNode(WhileLoop)
	if _, err := p.matchAndAddTerminal(WhileLoop, node, RelationChild, Loop); err != nil {
		return nil, err
	}
	cond, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}
	Attach(node.Child, cond, RelationSibling)
	colonNode, err := p.matchAndAddTerminal(WhileLoop, cond, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	body, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, body, RelationSibling)
	if _, err := p.matchAndAddTerminal(WhileLoop, body, RelationSibling, EndLoop); err != nil {
		return nil, err
	}
	return node, nil
}

// <for-loop> ::= "@@" <declaration> ";" <logical-expression> ";" <incrementation> ":" <sequence> "~@"
func (p *Parser) forLoop() (*Node, error) {
	node := NewNonTerminalNode(ForLoop)
	if _, err := p.matchAndAddTerminal(ForLoop, node, RelationChild, Loop); err != nil {
		return nil, err
	}
	decl, err := p.declaration()
	if err != nil {
		return nil, err
	}
	Attach(node.Child, decl, RelationSibling)
	semi1, err := p.matchAndAddTerminal(ForLoop, decl, RelationSibling, Semicolon)
	if err != nil {
		return nil, err
	}
	cond, err := p.logicalExpr()
	if err != nil {
		return nil, err
	}
	Attach(semi1, cond, RelationSibling)
	semi2, err := p.matchAndAddTerminal(ForLoop, cond, RelationSibling, Semicolon)
	if err != nil {
		return nil, err
	}

	idNode, err := p.matchAndAddTerminal(ForLoop, semi2, RelationSibling, MiniID, MiniExtID, CID)
	if err != nil {
		return nil, err
	}
	incrWrapper := NewNonTerminalNode(Incrementation)
	Attach(semi2, incrWrapper, RelationSibling)
	Attach(incrWrapper, idNode, RelationChild)
	incr, err := p.incrementation(incrWrapper, idNode)
	if err != nil {
		return nil, err
	}

	colonNode, err := p.matchAndAddTerminal(ForLoop, incr, RelationSibling, Colon)
	if err != nil {
		return nil, err
	}
	body, err := p.sequence()
	if err != nil {
		return nil, err
	}
	Attach(colonNode, body, RelationSibling)
	if _, err := p.matchAndAddTerminal(ForLoop, body, RelationSibling, EndLoop); err != nil {
		return nil, err
	}
	return node, nil
}
