package syntax

// lexString scans inside a "..." string: content, escapes, interpolations
// and the closing quote.
func (l *Lexer) lexString() {
	l.startToken()
	switch {
	case l.peekByte(0) == '"':
		l.advance(1)
		l.emit(TokenStringEnd)
		l.pop()
		return
	case l.hasPrefix("${"):
		l.advance(2)
		l.emit(TokenInterpolStart)
		l.push(frame{mode: modeNormal, interpol: true})
		return
	}

	for l.pos < len(l.source) {
		c := l.source[l.pos]
		switch {
		case c == '"':
			l.emit(TokenStringContent)
			return
		case c == '\\':
			// \x escapes any single character
			l.advance(2)
		case c == '$' && l.peekByte(1) == '$':
			l.advance(2)
		case c == '$' && l.peekByte(1) == '{':
			l.emit(TokenStringContent)
			return
		default:
			l.advance(1)
		}
	}
	l.emit(TokenStringContent)
}

// lexIndString scans inside a ''...'' string. Within it '' is only a
// terminator when not followed by ', $ or \, which form escapes.
func (l *Lexer) lexIndString() {
	l.startToken()
	switch {
	case l.hasPrefix("''") && !l.indEscapeAhead():
		l.advance(2)
		l.emit(TokenIndStringEnd)
		l.pop()
		return
	case l.hasPrefix("${"):
		l.advance(2)
		l.emit(TokenInterpolStart)
		l.push(frame{mode: modeNormal, interpol: true})
		return
	}

	for l.pos < len(l.source) {
		switch {
		case l.hasPrefix("'''"), l.hasPrefix("''$"):
			l.advance(3)
		case l.hasPrefix("''\\"):
			l.advance(4)
		case l.hasPrefix("''"):
			l.emit(TokenStringContent)
			return
		case l.hasPrefix("$$"):
			l.advance(2)
		case l.hasPrefix("${"):
			l.emit(TokenStringContent)
			return
		default:
			l.advance(1)
		}
	}
	l.emit(TokenStringContent)
}

// indEscapeAhead reports whether the '' at pos starts an escape sequence.
func (l *Lexer) indEscapeAhead() bool {
	switch l.peekByte(2) {
	case '\'', '$', '\\':
		return true
	}
	return false
}
