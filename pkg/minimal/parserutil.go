package minimal

// Parser walks a TokenStream left to right, building a concrete syntax
// tree one production at a time. It plays the role of the global
// g_current_token cursor original_source/src/parser.c advances through
// next_token calls, made local and receiver-bound instead of global.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser returns a parser positioned at the first token of stream.
func NewParser(stream TokenStream) *Parser {
	return &Parser{tokens: stream.Tokens}
}

// current returns the token the cursor sits on, or false once the stream
// is exhausted (the Go analogue of next_token returning NULL at the list's
// end).
func (p *Parser) current() (Token, bool) {
	if p.pos < 0 || p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// advance moves the cursor to the next token.
func (p *Parser) advance() {
	p.pos++
}

// peek looks offset tokens ahead of the cursor without moving it, used by
// the handful of productions that need one token of look-ahead to pick
// between alternatives starting with the same leading token (for-loop vs.
// while-loop, list vs. dict, type-alias vs. module-declaration).
func (p *Parser) peek(offset int) (Token, bool) {
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[i], true
}

// match reports whether the current token's name is target, the Go
// analogue of parser-utils.c's static match_terminal.
func (p *Parser) match(target TokenName) bool {
	tok, ok := p.current()
	return ok && tok.Name == target
}

// matchAny is match_terminals generalized over a slice instead of a
// -1-terminated C array, returning the matching name.
func (p *Parser) matchAny(targets ...TokenName) (TokenName, bool) {
	tok, ok := p.current()
	if !ok {
		return NameUndetermined, false
	}
	for _, name := range targets {
		if tok.Name == name {
			return name, true
		}
	}
	return NameUndetermined, false
}

// matchCategory reports whether the current token's category is target,
// the Go analogue of match_terminal_category.
func (p *Parser) matchCategory(target TokenCategory) bool {
	tok, ok := p.current()
	return ok && tok.Category == target
}

// matchAnyCategory is match_terminal_cats generalized over a slice.
func (p *Parser) matchAnyCategory(targets ...TokenCategory) (TokenCategory, bool) {
	tok, ok := p.current()
	if !ok {
		return CategoryUndetermined, false
	}
	for _, cat := range targets {
		if tok.Category == cat {
			return cat, true
		}
	}
	return CategoryUndetermined, false
}

// addTerminal copies the current token into a new leaf node and attaches
// it to parent under rel, the Go analogue of add_term_node. It does not
// move the cursor.
func (p *Parser) addTerminal(parent *Node, rel Relation) *Node {
	tok, ok := p.current()
	if !ok {
		return nil
	}
	node := NewTerminalNode(tok)
	Attach(parent, node, rel)
	return node
}

// addNonTerminal allocates a tagged interior node and attaches it to
// parent under rel, the Go analogue of add_nonterm_node.
func (p *Parser) addNonTerminal(parent *Node, nt NonTerminal, rel Relation) *Node {
	node := NewNonTerminalNode(nt)
	Attach(parent, node, rel)
	return node
}

// matchAndAddTerminal matches the current token against names, attaches it
// to parent under rel on success and advances past it, the Go analogue of
// match_and_add_term_node plus the separate cursor-advance the original
// performs at its call sites (merged here into a single step, since Go has
// no global cursor to advance out of band).
func (p *Parser) matchAndAddTerminal(nonTerm NonTerminal, parent *Node, rel Relation, names ...TokenName) (*Node, error) {
	if _, ok := p.current(); !ok {
		return nil, newParseError(nonTerm, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	if _, matched := p.matchAny(names...); !matched {
		return nil, p.expectedError(nonTerm, names...)
	}
	node := p.addTerminal(parent, rel)
	p.advance()
	return node, nil
}

// matchAndAddNonTerminal matches the current token's name against names,
// attaches the corresponding entry of nonTerms to parent under rel, and
// advances past the matched token. names and nonTerms are parallel slices,
// the Go analogue of match_and_add_nonterm_node's two parallel C arrays.
func (p *Parser) matchAndAddNonTerminal(enclosing NonTerminal, parent *Node, rel Relation, names []TokenName, nonTerms []NonTerminal) (*Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(enclosing, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	for i, name := range names {
		if tok.Name == name {
			node := p.addNonTerminal(parent, nonTerms[i], rel)
			p.advance()
			return node, nil
		}
	}
	return nil, p.expectedError(enclosing, names...)
}

// matchCatAndAddNonTerminal is matchAndAddNonTerminal's category-keyed
// sibling, the Go analogue of match_cat_and_add_nonterm_node. Unlike
// matchAndAddNonTerminal it leaves the cursor on the matched token, so the
// new non-terminal's own production can consume it as its first child.
func (p *Parser) matchCatAndAddNonTerminal(enclosing NonTerminal, parent *Node, rel Relation, cats []TokenCategory, nonTerms []NonTerminal) (*Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, newParseError(enclosing, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	for i, cat := range cats {
		if tok.Category == cat {
			return p.addNonTerminal(parent, nonTerms[i], rel), nil
		}
	}
	return nil, &ParseError{
		Status:    StatusNonMatchingCategory,
		Component: "parser",
		NonTerm:   enclosing,
		Line:      tok.Line,
		Col:       tok.Col,
		Detail:    "unexpected " + tok.Category.String(),
	}
}

// matchSequence matches and attaches a run of terminals in order, each
// under its own relation, stopping at the first mismatch. It generalizes
// match_and_add_term_node_seq's sentinel-terminated parallel arrays into
// ordinary Go slices.
func (p *Parser) matchSequence(enclosing NonTerminal, parent *Node, names []TokenName, rels []Relation) (*Node, error) {
	cur := parent
	for i, name := range names {
		node, err := p.matchAndAddTerminal(enclosing, cur, rels[i], name)
		if err != nil {
			return nil, err
		}
		cur = node
	}
	return cur, nil
}

// expectedError builds the "non-matching token" ParseError describing
// which of names (by their Describe phrasing) the caller needed.
func (p *Parser) expectedError(nonTerm NonTerminal, names ...TokenName) *ParseError {
	tok, ok := p.current()
	if !ok {
		return newParseError(nonTerm, Token{}, StatusEndOfStream, "unexpected end of input")
	}
	detail := "expected "
	for i, name := range names {
		if i > 0 {
			detail += " or "
		}
		detail += Describe(name)
	}
	detail += ", found " + Describe(tok.Name)
	return newParseError(nonTerm, tok, StatusNonMatchingToken, detail)
}
