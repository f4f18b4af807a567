package formatter

import (
	"slices"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// ruleAttrSet lays out { ... } and rec { ... }.
func ruleAttrSet(ctx *BuildCtx, node *syntax.Node) ([]Step, error) {
	var steps []Step
	children := NewChildren(node)

	_, bindings := countMembers(node)
	vertical := forcedVertical(node) ||
		(bindings > 0 && (children.HasNewlines() || ctx.Vertical))

	// rec
	if child, ok := children.PeekNext(); ok && child.Kind() == syntax.TokenRec {
		steps = append(steps, Format(child))
		children.MoveNext()

		if next, ok := children.PeekNext(); ok && next.Kind() == syntax.TokenComment {
			steps = append(steps, NewLine(), Pad())
		} else {
			steps = append(steps, Whitespace())
		}
	}

	// /**/
	children.DrainTrivia(func(t Trivia) {
		if t.Kind == TriviaComment {
			steps = append(steps, Comment(t.Text), NewLine(), Pad())
		}
	})

	// {
	open, _ := children.GetNext()
	steps = append(steps, Format(open))
	if vertical {
		steps = append(steps, Indent())
	}

	entries, dangling, err := collectEntries(ctx, node, children, syntax.TokenRBrace)
	if err != nil {
		return nil, err
	}
	entries = sortAttrSetEntries(ctx, node, entries)

	if vertical {
		steps = append(steps, entrySteps(entries, dangling)...)
	} else {
		for i, e := range entries {
			if i > 0 {
				steps = append(steps, Whitespace())
			}
			steps = append(steps, Format(e.element))
		}
	}

	// }
	if vertical {
		steps = append(steps, Dedent(), NewLine(), Pad())
	}
	closing, _ := children.GetNext()
	steps = append(steps, Format(closing))

	return steps, nil
}

// sortAttrSetEntries applies the configured ordering to a set's entries.
func sortAttrSetEntries(ctx *BuildCtx, node *syntax.Node, entries []entry) []entry {
	switch {
	case ctx.Options.SortFlake && ctx.flakeInputs == node:
		return sortFlakeInputs(entries, entryElement)
	case ctx.Options.SortAttrs:
		return sortByKey(entries, entryElement, ctx.Options.KeepSelfFirst)
	}
	return slices.Clone(entries)
}
