package syntax

// Binding powers, loosest first. Left-associative operators bind their
// right operand one step tighter; right-associative ones one step looser.
const (
	bpNot     = 13
	bpHasAttr = 20
	bpNegate  = 21
)

// infixBindingPower returns the left and right binding power of a binary
// operator token.
func infixBindingPower(k Kind) (left, right int, ok bool) {
	switch k {
	case TokenImplies:
		return 2, 1, true
	case TokenOrOr:
		return 3, 4, true
	case TokenAnd:
		return 5, 6, true
	case TokenEqual, TokenNotEqual:
		return 7, 8, true
	case TokenLess, TokenLessEq, TokenMore, TokenMoreEq:
		return 9, 10, true
	case TokenUpdate:
		return 12, 11, true
	case TokenAdd, TokenSub:
		return 14, 15, true
	case TokenMul, TokenDiv:
		return 16, 17, true
	case TokenConcat:
		return 19, 18, true
	}
	return 0, 0, false
}

// parseExpr parses a full expression, including the keyword forms that
// extend as far right as possible.
func (p *Parser) parseExpr() {
	p.flushTrivia()
	switch p.peek() {
	case TokenLet:
		if p.peekN(1) == TokenLBrace {
			p.errorf("legacy let expression is not supported")
			p.bumpError()
			return
		}
		p.parseLetIn()
		return
	case TokenWith:
		p.parseKeywordBody(NodeWith)
		return
	case TokenAssert:
		p.parseKeywordBody(NodeAssert)
		return
	case TokenIf:
		p.parseIfElse()
		return
	case TokenIdent:
		if k := p.peekN(1); k == TokenColon || k == TokenAt {
			p.parseLambda()
			return
		}
	case TokenLBrace:
		if p.isPattern() {
			p.parseLambda()
			return
		}
	}
	p.parseBinary(0)
}

// parseLetIn parses let binds in expr
func (p *Parser) parseLetIn() {
	p.tree.startNode(NodeLetIn)
	p.bump()
	p.parseBinds(TokenIn)
	p.expect(TokenIn)
	p.parseExpr()
	p.tree.finishNode()
}

// parseKeywordBody parses "with e; e" and "assert e; e".
func (p *Parser) parseKeywordBody(kind Kind) {
	p.tree.startNode(kind)
	p.bump()
	p.parseExpr()
	p.expect(TokenSemi)
	p.parseExpr()
	p.tree.finishNode()
}

// parseIfElse parses if e then e else e
func (p *Parser) parseIfElse() {
	p.tree.startNode(NodeIfElse)
	p.bump()
	p.parseExpr()
	p.expect(TokenThen)
	p.parseExpr()
	p.expect(TokenElse)
	p.parseExpr()
	p.tree.finishNode()
}

// isPattern reports whether the '{' ahead opens a lambda pattern rather
// than an attribute set.
func (p *Parser) isPattern() bool {
	switch p.peekN(1) {
	case TokenRBrace:
		k := p.peekN(2)
		return k == TokenColon || k == TokenAt
	case TokenEllipsis:
		return true
	case TokenIdent:
		switch p.peekN(2) {
		case TokenComma, TokenQuestion:
			return true
		case TokenRBrace:
			k := p.peekN(3)
			return k == TokenColon || k == TokenAt
		}
	}
	return false
}

// parseLambda parses x: e, {pattern}: e, x@{pattern}: e and {pattern}@x: e.
func (p *Parser) parseLambda() {
	p.tree.startNode(NodeLambda)
	if p.peek() == TokenIdent && p.peekN(1) == TokenColon {
		p.bump()
	} else {
		p.flushTrivia()
		p.tree.startNode(NodePattern)
		if p.peek() == TokenIdent {
			p.parsePatBind(false)
			p.parsePatternBody()
		} else {
			p.parsePatternBody()
			if p.peek() == TokenAt {
				p.parsePatBind(true)
			}
		}
		p.tree.finishNode()
	}
	p.expect(TokenColon)
	p.parseExpr()
	p.tree.finishNode()
}

// parsePatBind parses "x @" before a pattern or "@ x" after it.
func (p *Parser) parsePatBind(after bool) {
	p.flushTrivia()
	p.tree.startNode(NodePatBind)
	if after {
		p.bump()
		p.expect(TokenIdent)
	} else {
		p.bump()
		p.expect(TokenAt)
	}
	p.tree.finishNode()
}

// parsePatternBody parses { a, b ? e, ... }
func (p *Parser) parsePatternBody() {
	p.expect(TokenLBrace)
	for {
		switch p.peek() {
		case TokenRBrace, tokenEOF:
			p.expect(TokenRBrace)
			return
		case TokenEllipsis:
			p.bump()
		case TokenIdent:
			p.flushTrivia()
			p.tree.startNode(NodePatEntry)
			p.bump()
			if p.peek() == TokenQuestion {
				p.bump()
				p.parseExpr()
			}
			p.tree.finishNode()
		default:
			p.errorf("unexpected %s, expected pattern entry", p.describe())
			p.bumpError()
			continue
		}
		if p.peek() != TokenComma {
			p.expect(TokenRBrace)
			return
		}
		p.bump()
	}
}

// parseBinary parses prefix and infix operator expressions whose left
// binding power is at least minBP.
func (p *Parser) parseBinary(minBP int) {
	p.flushTrivia()
	cp := p.tree.checkpoint()

	switch p.peek() {
	case TokenNot:
		p.tree.startNode(NodeUnaryOp)
		p.bump()
		p.parseBinary(bpNot)
		p.tree.finishNode()
	case TokenSub:
		p.tree.startNode(NodeUnaryOp)
		p.bump()
		p.parseBinary(bpNegate)
		p.tree.finishNode()
	default:
		p.parseApply()
	}

	for {
		k := p.peek()
		if k == TokenQuestion {
			if bpHasAttr < minBP {
				return
			}
			p.tree.startNodeAt(cp, NodeHasAttr)
			p.bump()
			p.parseAttrpath()
			p.tree.finishNode()
			continue
		}
		left, right, ok := infixBindingPower(k)
		if !ok || left < minBP {
			return
		}
		p.tree.startNodeAt(cp, NodeBinOp)
		p.bump()
		p.parseBinary(right)
		p.tree.finishNode()
	}
}

// parseApply parses function application: select select*
func (p *Parser) parseApply() {
	p.flushTrivia()
	cp := p.tree.checkpoint()
	p.parseSelect()
	for startsAtom(p.peek()) {
		p.tree.startNodeAt(cp, NodeApply)
		p.parseSelect()
		p.tree.finishNode()
	}
}

func startsAtom(k Kind) bool {
	switch k {
	case TokenIdent, TokenInt, TokenFloat, TokenPath, TokenPathContent, TokenSearchPath,
		TokenUri, TokenStringStart, TokenIndStringStart, TokenLParen, TokenLBracket,
		TokenLBrace, TokenRec:
		return true
	}
	return false
}

// parseSelect parses atom [. attrpath [or select]]
func (p *Parser) parseSelect() {
	p.flushTrivia()
	cp := p.tree.checkpoint()
	p.parseAtom()
	if p.peek() != TokenDot {
		return
	}
	p.tree.startNodeAt(cp, NodeSelect)
	p.bump()
	p.parseAttrpath()
	if p.peek() == TokenOr {
		p.bump()
		p.parseSelect()
	}
	p.tree.finishNode()
}

// parseAtom parses literals, identifiers, strings, parens, lists and sets.
func (p *Parser) parseAtom() {
	switch p.peek() {
	case TokenIdent, TokenInt, TokenFloat, TokenPath, TokenSearchPath, TokenUri:
		p.bump()
	case TokenPathContent:
		p.parsePath()
	case TokenStringStart:
		p.parseString(TokenStringEnd)
	case TokenIndStringStart:
		p.parseString(TokenIndStringEnd)
	case TokenLParen:
		p.tree.startNode(NodeParen)
		p.bump()
		p.parseExpr()
		p.expect(TokenRParen)
		p.tree.finishNode()
	case TokenLBracket:
		p.parseList()
	case TokenRec, TokenLBrace:
		p.parseAttrSet()
	default:
		p.errorf("unexpected %s, expected expression", p.describe())
		switch p.peek() {
		case TokenRParen, TokenRBracket, TokenRBrace, TokenSemi, TokenInterpolEnd,
			TokenThen, TokenElse, TokenIn, tokenEOF:
		default:
			p.bumpError()
		}
	}
}

// parsePath parses a path with interpolations. Paths hold no trivia, so
// only tokens directly after the previous one continue it.
func (p *Parser) parsePath() {
	p.flushTrivia()
	p.tree.startNode(NodePath)
	p.bump()
	for p.pos < len(p.tokens) {
		switch p.tokens[p.pos].kind {
		case TokenPathContent:
			p.bump()
			continue
		case TokenInterpolStart:
			p.tree.startNode(NodeInterpol)
			p.bump()
			p.parseExpr()
			p.expect(TokenInterpolEnd)
			p.tree.finishNode()
			continue
		}
		break
	}
	p.tree.finishNode()
}

// parseList parses [ select* ]
func (p *Parser) parseList() {
	p.tree.startNode(NodeList)
	p.bump()
	for {
		k := p.peek()
		if k == TokenRBracket || k == tokenEOF {
			break
		}
		if !startsAtom(k) {
			p.errorf("unexpected %s, expected list element", p.describe())
			p.bumpError()
			continue
		}
		p.parseSelect()
	}
	p.expect(TokenRBracket)
	p.tree.finishNode()
}

// parseAttrSet parses [rec] { binds }
func (p *Parser) parseAttrSet() {
	p.tree.startNode(NodeAttrSet)
	if p.peek() == TokenRec {
		p.bump()
	}
	p.expect(TokenLBrace)
	p.parseBinds(TokenRBrace)
	p.expect(TokenRBrace)
	p.tree.finishNode()
}
