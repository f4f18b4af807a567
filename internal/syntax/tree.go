package syntax

import (
	"fmt"
	"strings"
)

// Position is a location in a source file.
type Position struct {
	File   string
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // byte offset
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	// Text returns the exact source text covered by the element.
	Text() string
	element()
}

// Token is a leaf of the syntax tree holding raw source text.
type Token struct {
	kind Kind
	text string
	pos  Position
}

func (t *Token) element() {}

// Kind returns the token kind.
func (t *Token) Kind() Kind { return t.kind }

// Text returns the raw source text of the token.
func (t *Token) Text() string { return t.text }

// Pos returns the start position of the token.
func (t *Token) Pos() Position { return t.pos }

// String returns a debug representation of the token.
func (t *Token) String() string {
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

// Node is an interior element of the syntax tree. Nodes are immutable once
// the parser returns them.
type Node struct {
	kind     Kind
	children []Element
}

func (n *Node) element() {}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Len returns the number of direct children, trivia included.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *Node) Child(i int) Element { return n.children[i] }

// Children returns a copy of the direct children, trivia included.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// Text returns the lossless source text of the subtree.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			sb.WriteString(c.text)
		case *Node:
			c.writeText(sb)
		}
	}
}

// FirstNode returns the first direct child node of the given kind.
func (n *Node) FirstNode(kind Kind) (*Node, bool) {
	for _, c := range n.children {
		if c, ok := c.(*Node); ok && c.kind == kind {
			return c, true
		}
	}
	return nil, false
}

// FirstToken returns the first direct child token of the given kind.
func (n *Node) FirstToken(kind Kind) (*Token, bool) {
	for _, c := range n.children {
		if c, ok := c.(*Token); ok && c.kind == kind {
			return c, true
		}
	}
	return nil, false
}

// Significant returns the direct children that are not trivia.
func (n *Node) Significant() []Element {
	var out []Element
	for _, c := range n.children {
		if !c.Kind().IsTrivia() {
			out = append(out, c)
		}
	}
	return out
}

// Pos returns the position of the first token in the subtree.
func (n *Node) Pos() Position {
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			return c.pos
		case *Node:
			if len(c.children) > 0 {
				return c.Pos()
			}
		}
	}
	return Position{}
}

// Walk visits el and its descendants depth-first, left to right. Returning
// false from visit skips the children of a node.
func Walk(el Element, visit func(Element) bool) {
	if !visit(el) {
		return
	}
	if n, ok := el.(*Node); ok {
		for _, c := range n.children {
			Walk(c, visit)
		}
	}
}

// Dump renders the tree structure for debugging and tests.
func Dump(el Element) string {
	var sb strings.Builder
	dump(&sb, el, 0)
	return sb.String()
}

func dump(sb *strings.Builder, el Element, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	switch el := el.(type) {
	case *Token:
		fmt.Fprintf(sb, "%s %q\n", el.kind, el.text)
	case *Node:
		fmt.Fprintf(sb, "%s\n", el.kind)
		for _, c := range el.children {
			dump(sb, c, depth+1)
		}
	}
}
