package syntax

import "fmt"

// tokenEOF is returned by peek past the last token.
const tokenEOF Kind = -1

// File is the result of parsing one source file.
type File struct {
	Name   string
	Root   *Node
	errors *ErrorList
}

// Errors returns the syntax errors found while parsing.
func (f *File) Errors() *ErrorList {
	return f.errors
}

// Err returns the first syntax error, or nil when the file is well-formed.
func (f *File) Err() error {
	if first := f.errors.First(); first != nil {
		return first
	}
	return nil
}

// Parse tokenizes and parses source into a lossless syntax tree. The tree
// is always returned; callers must check Err before trusting its shape.
func Parse(filename, source string) *File {
	lexer := NewLexer(filename, source)
	tokens := lexer.Tokenize()

	p := &Parser{
		tokens: tokens,
		errors: lexer.Errors(),
		eof: Position{
			File:   filename,
			Line:   lexer.line,
			Column: lexer.column,
			Offset: len(source),
		},
	}
	return &File{Name: filename, Root: p.parseRoot(), errors: p.errors}
}

// Parser builds a syntax tree from a token stream.
type Parser struct {
	tokens []*Token
	pos    int // index of the next unconsumed token, trivia included
	tree   treeBuilder
	errors *ErrorList
	eof    Position
}

// treeBuilder assembles nodes from a stack of open nodes. Checkpoints let
// the parser wrap already-built children in a new node, which is how binary
// operators and applications get their left operand.
type treeBuilder struct {
	stack []*Node
}

func (b *treeBuilder) current() *Node {
	return b.stack[len(b.stack)-1]
}

func (b *treeBuilder) startNode(kind Kind) {
	b.stack = append(b.stack, &Node{kind: kind})
}

// checkpoint marks the current child count of the open node.
func (b *treeBuilder) checkpoint() int {
	return len(b.current().children)
}

// startNodeAt opens a node that adopts the children added since cp.
func (b *treeBuilder) startNodeAt(cp int, kind Kind) {
	parent := b.current()
	adopted := make([]Element, len(parent.children)-cp)
	copy(adopted, parent.children[cp:])
	parent.children = parent.children[:cp]
	b.stack = append(b.stack, &Node{kind: kind, children: adopted})
}

func (b *treeBuilder) finishNode() *Node {
	n := b.current()
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) > 0 {
		parent := b.current()
		parent.children = append(parent.children, n)
	}
	return n
}

func (b *treeBuilder) token(t *Token) {
	n := b.current()
	n.children = append(n.children, t)
}

// nth returns the index of the n-th significant token at or after pos.
func (p *Parser) nth(n int) int {
	i := p.pos
	for ; i < len(p.tokens); i++ {
		if p.tokens[i].kind.IsTrivia() {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return len(p.tokens)
}

// peek returns the kind of the next significant token.
func (p *Parser) peek() Kind {
	return p.peekN(0)
}

// peekN returns the kind of the n-th significant token ahead.
func (p *Parser) peekN(n int) Kind {
	i := p.nth(n)
	if i >= len(p.tokens) {
		return tokenEOF
	}
	return p.tokens[i].kind
}

// flushTrivia attaches pending trivia tokens to the open node.
func (p *Parser) flushTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].kind.IsTrivia() {
		p.tree.token(p.tokens[p.pos])
		p.pos++
	}
}

// bump consumes the next significant token along with preceding trivia.
func (p *Parser) bump() {
	p.flushTrivia()
	if p.pos < len(p.tokens) {
		p.tree.token(p.tokens[p.pos])
		p.pos++
	}
}

// expect consumes the next token if it has the given kind, otherwise it
// records an error and leaves the token in place.
func (p *Parser) expect(kind Kind) bool {
	if p.peek() == kind {
		p.bump()
		return true
	}
	p.errorf("unexpected %s, expected %s", p.describe(), describeKind(kind))
	return false
}

// bumpError wraps the next token in an error node so parsing makes progress.
func (p *Parser) bumpError() {
	if p.peek() == tokenEOF {
		return
	}
	p.flushTrivia()
	p.tree.startNode(NodeError)
	p.bump()
	p.tree.finishNode()
}

// errorf records an error at the next significant token.
func (p *Parser) errorf(format string, args ...any) {
	pos := p.eof
	if i := p.nth(0); i < len(p.tokens) {
		pos = p.tokens[i].pos
	}
	p.errors.AddErrorf(pos, format, args...)
}

// describe names the next significant token for error messages.
func (p *Parser) describe() string {
	i := p.nth(0)
	if i >= len(p.tokens) {
		return "end of file"
	}
	return fmt.Sprintf("%q", p.tokens[i].text)
}

func describeKind(kind Kind) string {
	switch kind {
	case tokenEOF:
		return "end of file"
	case TokenIdent:
		return "identifier"
	case TokenInterpolEnd:
		return `"}"`
	}
	return fmt.Sprintf("%q", kind.String())
}

func (p *Parser) parseRoot() *Node {
	p.tree.startNode(NodeRoot)
	if p.peek() == tokenEOF {
		p.errorf("unexpected end of file, expected expression")
	} else {
		p.parseExpr()
	}
	if p.peek() != tokenEOF {
		p.errorf("unexpected %s, expected end of file", p.describe())
		p.flushTrivia()
		p.tree.startNode(NodeError)
		for p.peek() != tokenEOF {
			p.bump()
		}
		p.tree.finishNode()
	}
	p.flushTrivia()
	return p.tree.finishNode()
}

// parseBinds parses bindings until the end token: the body of an attribute
// set or of a let expression.
func (p *Parser) parseBinds(end Kind) {
	for {
		switch k := p.peek(); {
		case k == end || k == tokenEOF:
			return
		case k == TokenInherit:
			p.parseInherit()
		case startsAttr(k):
			p.parseKeyValue()
		default:
			p.errorf("unexpected %s, expected binding", p.describe())
			p.bumpError()
		}
	}
}

func startsAttr(k Kind) bool {
	switch k {
	case TokenIdent, TokenOr, TokenStringStart, TokenInterpolStart:
		return true
	}
	return false
}

// parseKeyValue parses attrpath = expr;
func (p *Parser) parseKeyValue() {
	p.flushTrivia()
	p.tree.startNode(NodeKeyValue)
	p.parseAttrpath()
	p.expect(TokenAssign)
	p.parseExpr()
	p.expect(TokenSemi)
	p.tree.finishNode()
}

// parseAttrpath parses attr ( . attr )*
func (p *Parser) parseAttrpath() {
	p.flushTrivia()
	p.tree.startNode(NodeAttrpath)
	p.parseAttr()
	for p.peek() == TokenDot {
		p.bump()
		p.parseAttr()
	}
	p.tree.finishNode()
}

// parseAttr parses one attribute name: identifier, string or ${expr}.
func (p *Parser) parseAttr() {
	switch p.peek() {
	case TokenIdent, TokenOr:
		p.bump()
	case TokenStringStart:
		p.parseString(TokenStringEnd)
	case TokenInterpolStart:
		p.flushTrivia()
		p.tree.startNode(NodeDynamic)
		p.bump()
		p.parseExpr()
		p.expect(TokenInterpolEnd)
		p.tree.finishNode()
	default:
		p.errorf("unexpected %s, expected attribute name", p.describe())
		switch p.peek() {
		case TokenAssign, TokenSemi, TokenRBrace, tokenEOF:
		default:
			p.bumpError()
		}
	}
}

// parseInherit parses inherit [(expr)] attr* ;
func (p *Parser) parseInherit() {
	p.flushTrivia()
	p.tree.startNode(NodeInherit)
	p.bump()
	if p.peek() == TokenLParen {
		p.flushTrivia()
		p.tree.startNode(NodeInheritFrom)
		p.bump()
		p.parseExpr()
		p.expect(TokenRParen)
		p.tree.finishNode()
	}
	for startsAttr(p.peek()) {
		p.parseAttr()
	}
	p.expect(TokenSemi)
	p.tree.finishNode()
}

// parseString parses a string node; the opening token is next.
func (p *Parser) parseString(end Kind) {
	p.flushTrivia()
	p.tree.startNode(NodeString)
	p.bump()
	for {
		switch p.peek() {
		case TokenStringContent:
			p.bump()
		case TokenInterpolStart:
			p.flushTrivia()
			p.tree.startNode(NodeInterpol)
			p.bump()
			p.parseExpr()
			p.expect(TokenInterpolEnd)
			p.tree.finishNode()
		case end:
			p.bump()
			p.tree.finishNode()
			return
		default:
			// Unterminated: the lexer has already reported it.
			p.tree.finishNode()
			return
		}
	}
}
