package formatter

import (
	"strings"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// TriviaKind classifies a trivia child.
type TriviaKind int

const (
	// TriviaComment is a line or block comment.
	TriviaComment TriviaKind = iota
	// TriviaWhitespace is a run of spaces, tabs and newlines.
	TriviaWhitespace
)

// Trivia is a comment or whitespace child seen while draining.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Children is a read-only cursor over the direct children of one node.
// Whitespace is never significant: PeekNext and GetNext step over it.
// Comments are returned so rules can look ahead at them, and DrainTrivia
// consumes them explicitly.
type Children struct {
	elements []syntax.Element
	index    int
}

// NewChildren creates a cursor positioned before the first child of node.
func NewChildren(node *syntax.Node) *Children {
	return &Children{elements: node.Children()}
}

func (c *Children) skipWhitespace() {
	for c.index < len(c.elements) && c.elements[c.index].Kind() == syntax.TokenWhitespace {
		c.index++
	}
}

// PeekNext returns the next element without consuming it.
func (c *Children) PeekNext() (syntax.Element, bool) {
	c.skipWhitespace()
	if c.index >= len(c.elements) {
		return nil, false
	}
	return c.elements[c.index], true
}

// GetNext returns the next element and consumes it.
func (c *Children) GetNext() (syntax.Element, bool) {
	el, ok := c.PeekNext()
	if ok {
		c.index++
	}
	return el, ok
}

// MoveNext consumes the next element.
func (c *Children) MoveNext() {
	c.GetNext()
}

// DrainTrivia consumes leading comments and whitespace, calling visit for
// each, and stops at the first significant element.
func (c *Children) DrainTrivia(visit func(Trivia)) {
	for c.index < len(c.elements) {
		el := c.elements[c.index]
		switch el.Kind() {
		case syntax.TokenComment:
			visit(Trivia{Kind: TriviaComment, Text: el.Text()})
		case syntax.TokenWhitespace:
			visit(Trivia{Kind: TriviaWhitespace, Text: el.Text()})
		default:
			return
		}
		c.index++
	}
}

// HasComments reports whether an unconsumed child is a comment.
func (c *Children) HasComments() bool {
	for _, el := range c.elements[c.index:] {
		if el.Kind() == syntax.TokenComment {
			return true
		}
	}
	return false
}

// HasNewlines reports whether an unconsumed whitespace child spans lines.
func (c *Children) HasNewlines() bool {
	for _, el := range c.elements[c.index:] {
		if el.Kind() == syntax.TokenWhitespace && strings.Contains(el.Text(), "\n") {
			return true
		}
	}
	return false
}

// Done reports whether every significant child has been consumed.
func (c *Children) Done() bool {
	_, ok := c.PeekNext()
	return !ok
}
