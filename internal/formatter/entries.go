package formatter

import (
	"strings"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// entry is a binding together with the comments that move with it.
type entry struct {
	element  syntax.Element
	leading  []string // comments on the lines before the binding
	trailing string   // comment on the same line after the binding
}

func entryElement(e entry) syntax.Element { return e.element }

// isEntry reports whether el is a binding inside a set or let.
func isEntry(el syntax.Element) bool {
	switch el.Kind() {
	case syntax.NodeKeyValue, syntax.NodeInherit:
		return true
	}
	return false
}

// collectEntries consumes bindings of node up to the end token, which is
// left unconsumed. A comment that follows a binding on the same line becomes
// its trailing comment; other comments lead the next binding. Comments after
// the last binding are returned as dangling. Any other significant child is
// an error.
func collectEntries(ctx *BuildCtx, node *syntax.Node, children *Children, end syntax.Kind) (entries []entry, dangling []string, err error) {
	var pending []string
	newline := false
	for {
		children.DrainTrivia(func(t Trivia) {
			switch t.Kind {
			case TriviaWhitespace:
				if strings.Contains(t.Text, "\n") {
					newline = true
				}
			case TriviaComment:
				if n := len(entries); n > 0 && !newline && len(pending) == 0 && entries[n-1].trailing == "" {
					entries[n-1].trailing = t.Text
					return
				}
				pending = append(pending, t.Text)
			}
		})

		el, ok := children.PeekNext()
		if !ok || el.Kind() == end {
			return entries, pending, nil
		}
		if !isEntry(el) {
			return nil, nil, ctx.malformed(node, "unexpected %s between bindings", el.Kind())
		}
		children.MoveNext()
		entries = append(entries, entry{element: el, leading: pending})
		pending = nil
		newline = false
	}
}

// forcedVertical reports whether a set lays out vertically under any hint:
// it has more than one member or holds a comment.
func forcedVertical(set *syntax.Node) bool {
	members, _ := countMembers(set)
	return members > 1 || NewChildren(set).HasComments()
}

// countMembers counts the bindings and comments between a set's braces.
func countMembers(node *syntax.Node) (members, bindings int) {
	inside := false
	for _, el := range node.Children() {
		switch {
		case el.Kind() == syntax.TokenLBrace:
			inside = true
		case el.Kind() == syntax.TokenRBrace:
			inside = false
		case !inside:
		case isEntry(el):
			members++
			bindings++
		case el.Kind() == syntax.TokenComment:
			members++
		}
	}
	return members, bindings
}

// entrySteps lays out bindings one per line at the current depth, each
// preceded by its leading comments and followed by its trailing comment.
func entrySteps(entries []entry, dangling []string) []Step {
	var steps []Step
	for _, e := range entries {
		for _, c := range e.leading {
			steps = append(steps, NewLine(), Pad(), Comment(c))
		}
		steps = append(steps, NewLine(), Pad(), FormatWider(e.element))
		if e.trailing != "" {
			steps = append(steps, Whitespace(), Comment(e.trailing))
		}
	}
	for _, c := range dangling {
		steps = append(steps, NewLine(), Pad(), Comment(c))
	}
	return steps
}
