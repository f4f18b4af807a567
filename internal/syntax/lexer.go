package syntax

import (
	"strings"
	"unicode/utf8"
)

type lexMode int

const (
	modeNormal lexMode = iota
	modeString
	modeIndString
	modePath
)

// frame is one level of the lexer's context stack. Interpolations push a
// normal-mode frame that ends at the matching unbalanced '}'.
type frame struct {
	mode     lexMode
	interpol bool
	braces   int
}

// Lexer tokenizes Nix source into a lossless token stream. Whitespace and
// comments are emitted as tokens so the tree can reproduce the input.
type Lexer struct {
	filename string
	source   string
	pos      int // byte offset of the next unread byte
	line     int // 1-based line of pos
	column   int // 1-based rune column of pos

	// Start of the token being scanned
	start     int
	startLine int
	startCol  int

	stack  []frame
	tokens []*Token
	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	return &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   1,
		stack:    []frame{{mode: modeNormal}},
		errors:   NewErrorList(),
	}
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// Tokenize scans the whole source and returns every token, trivia included.
func (l *Lexer) Tokenize() []*Token {
	for l.pos < len(l.source) {
		switch l.top().mode {
		case modeString:
			l.lexString()
		case modeIndString:
			l.lexIndString()
		case modePath:
			l.lexPath()
		default:
			l.lexNormal()
		}
	}
	for i := len(l.stack) - 1; i > 0; i-- {
		switch {
		case l.stack[i].interpol:
			l.errors.AddErrorf(l.position(), "unexpected end of file, unterminated interpolation")
		case l.stack[i].mode == modePath:
			// a path may end with the file
		default:
			l.errors.AddErrorf(l.position(), "unexpected end of file, unterminated string")
		}
	}
	return l.tokens
}

func (l *Lexer) top() *frame {
	return &l.stack[len(l.stack)-1]
}

func (l *Lexer) push(f frame) {
	l.stack = append(l.stack, f)
}

func (l *Lexer) pop() {
	if len(l.stack) > 1 {
		l.stack = l.stack[:len(l.stack)-1]
	}
}

// position returns the current token start for error reporting.
func (l *Lexer) position() Position {
	return Position{File: l.filename, Line: l.startLine, Column: l.startCol, Offset: l.start}
}

// peekByte returns the byte n positions ahead of pos, or 0 past the end.
func (l *Lexer) peekByte(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// advance moves pos forward n bytes, tracking line and rune column.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.source); i++ {
		b := l.source[l.pos]
		l.pos++
		switch {
		case b == '\n':
			l.line++
			l.column = 1
		case b&0xC0 != 0x80:
			l.column++
		}
	}
}

func (l *Lexer) startToken() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.column
}

func (l *Lexer) emit(kind Kind) {
	l.tokens = append(l.tokens, &Token{
		kind: kind,
		text: l.source[l.start:l.pos],
		pos:  l.position(),
	})
}

func (l *Lexer) lexNormal() {
	l.startToken()
	c := l.source[l.pos]

	switch {
	case isSpace(c):
		for l.pos < len(l.source) && isSpace(l.source[l.pos]) {
			l.advance(1)
		}
		l.emit(TokenWhitespace)
		return
	case c == '#':
		for l.pos < len(l.source) && l.source[l.pos] != '\n' {
			l.advance(1)
		}
		l.emit(TokenComment)
		return
	case l.hasPrefix("/*"):
		l.lexBlockComment()
		return
	case c == '"':
		l.advance(1)
		l.emit(TokenStringStart)
		l.push(frame{mode: modeString})
		return
	case l.hasPrefix("''"):
		l.advance(2)
		l.emit(TokenIndStringStart)
		l.push(frame{mode: modeIndString})
		return
	case l.hasPrefix("${"):
		l.advance(2)
		l.emit(TokenInterpolStart)
		l.push(frame{mode: modeNormal, interpol: true})
		return
	case c == '{':
		l.advance(1)
		l.top().braces++
		l.emit(TokenLBrace)
		return
	case c == '}':
		l.advance(1)
		if f := l.top(); f.interpol && f.braces == 0 {
			l.emit(TokenInterpolEnd)
			l.pop()
			return
		}
		l.top().braces--
		l.emit(TokenRBrace)
		return
	}

	if n, interpol := l.scanPath(); n > 0 {
		l.advance(n)
		if interpol {
			l.emit(TokenPathContent)
			l.push(frame{mode: modePath})
			return
		}
		l.emit(TokenPath)
		return
	}
	if n := l.scanSearchPath(); n > 0 {
		l.advance(n)
		l.emit(TokenSearchPath)
		return
	}
	if n := l.scanUri(); n > 0 {
		l.advance(n)
		l.emit(TokenUri)
		return
	}

	switch {
	case isIdentStart(c):
		n := 1
		for isIdentChar(l.peekByte(n)) {
			n++
		}
		word := l.source[l.pos : l.pos+n]
		l.advance(n)
		if kw, ok := keywords[word]; ok {
			l.emit(kw)
		} else {
			l.emit(TokenIdent)
		}
		return
	case isDigit(c):
		l.lexNumber()
		return
	}

	if kind, n := l.scanOperator(); n > 0 {
		l.advance(n)
		l.emit(kind)
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.advance(size)
	l.errors.AddErrorf(l.position(), "unexpected character %q", r)
	l.emit(TokenError)
}

// lexBlockComment reads a /* */ comment.
func (l *Lexer) lexBlockComment() {
	end := strings.Index(l.source[l.pos+2:], "*/")
	if end < 0 {
		l.advance(len(l.source) - l.pos)
		l.errors.AddErrorf(l.position(), "unterminated block comment")
		l.emit(TokenComment)
		return
	}
	l.advance(end + 4)
	l.emit(TokenComment)
}

// lexNumber reads an integer or float literal.
func (l *Lexer) lexNumber() {
	n := 0
	for isDigit(l.peekByte(n)) {
		n++
	}
	kind := TokenInt
	if l.peekByte(n) == '.' && isDigit(l.peekByte(n+1)) {
		kind = TokenFloat
		n++
		for isDigit(l.peekByte(n)) {
			n++
		}
	}
	if e := l.peekByte(n); e == 'e' || e == 'E' {
		m := n + 1
		if s := l.peekByte(m); s == '+' || s == '-' {
			m++
		}
		if isDigit(l.peekByte(m)) {
			kind = TokenFloat
			n = m
			for isDigit(l.peekByte(n)) {
				n++
			}
		}
	}
	l.advance(n)
	l.emit(kind)
}

// scanPath returns the byte length of a path literal at pos, or 0.
// Paths need at least one '/' followed by a path character: ./a, /a, a/b, ~/a.
// A '/' may also be followed by ${, as in ./${name}.nix. interpol reports
// that the literal stops at an interpolation and the path continues after it.
func (l *Lexer) scanPath() (n int, interpol bool) {
	if l.peekByte(0) == '~' {
		if l.peekByte(1) != '/' {
			return 0, false
		}
		n = 1
	} else {
		for isPathChar(l.peekByte(n)) {
			n++
		}
	}
	segments := 0
	for l.peekByte(n) == '/' {
		if l.interpolAt(n + 1) {
			return n + 1, true
		}
		if !isPathChar(l.peekByte(n + 1)) {
			break
		}
		n++
		for isPathChar(l.peekByte(n)) {
			n++
		}
		segments++
	}
	if segments == 0 {
		return 0, false
	}
	return n, l.interpolAt(n)
}

// lexPath continues a path after its first fragment: more fragments and
// interpolations, until a byte that cannot extend the path.
func (l *Lexer) lexPath() {
	l.startToken()
	if l.hasPrefix("${") {
		l.advance(2)
		l.emit(TokenInterpolStart)
		l.push(frame{mode: modeNormal, interpol: true})
		return
	}

	n := 0
	for l.extendsPath(n) {
		n++
	}
	if n == 0 {
		l.pop()
		return
	}
	l.advance(n)
	l.emit(TokenPathContent)
}

// extendsPath reports whether the byte n past pos continues a path.
func (l *Lexer) extendsPath(n int) bool {
	switch c := l.peekByte(n); {
	case isPathChar(c):
		return true
	case c == '/':
		return isPathChar(l.peekByte(n+1)) || l.interpolAt(n+1)
	}
	return false
}

// interpolAt reports whether ${ starts n bytes past pos.
func (l *Lexer) interpolAt(n int) bool {
	return l.peekByte(n) == '$' && l.peekByte(n+1) == '{'
}

// scanSearchPath returns the byte length of a <path> literal at pos, or 0.
func (l *Lexer) scanSearchPath() int {
	if l.peekByte(0) != '<' || !isPathChar(l.peekByte(1)) {
		return 0
	}
	n := 1
	for {
		for isPathChar(l.peekByte(n)) {
			n++
		}
		if l.peekByte(n) == '/' && isPathChar(l.peekByte(n+1)) {
			n++
			continue
		}
		break
	}
	if l.peekByte(n) != '>' {
		return 0
	}
	return n + 1
}

// scanUri returns the byte length of a URI literal at pos, or 0.
func (l *Lexer) scanUri() int {
	if !isAlpha(l.peekByte(0)) {
		return 0
	}
	n := 1
	for c := l.peekByte(n); isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.'; c = l.peekByte(n) {
		n++
	}
	if l.peekByte(n) != ':' || !isUriChar(l.peekByte(n+1)) {
		return 0
	}
	n++
	for isUriChar(l.peekByte(n)) {
		n++
	}
	return n
}

var operators = []struct {
	text string
	kind Kind
}{
	{"...", TokenEllipsis},
	{"++", TokenConcat},
	{"//", TokenUpdate},
	{"->", TokenImplies},
	{"==", TokenEqual},
	{"!=", TokenNotEqual},
	{"<=", TokenLessEq},
	{">=", TokenMoreEq},
	{"&&", TokenAnd},
	{"||", TokenOrOr},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{"(", TokenLParen},
	{")", TokenRParen},
	{";", TokenSemi},
	{",", TokenComma},
	{".", TokenDot},
	{"=", TokenAssign},
	{"?", TokenQuestion},
	{":", TokenColon},
	{"@", TokenAt},
	{"*", TokenMul},
	{"/", TokenDiv},
	{"+", TokenAdd},
	{"-", TokenSub},
	{"!", TokenNot},
	{"<", TokenLess},
	{">", TokenMore},
}

func (l *Lexer) scanOperator() (Kind, int) {
	for _, op := range operators {
		if l.hasPrefix(op.text) {
			return op.kind, len(op.text)
		}
	}
	return TokenError, 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '\'' || c == '-'
}

func isPathChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '.' || c == '_' || c == '-' || c == '+'
}

func isUriChar(c byte) bool {
	if isAlpha(c) || isDigit(c) {
		return true
	}
	return strings.IndexByte("%/?:@&=+$,-_.!~*'", c) >= 0
}
