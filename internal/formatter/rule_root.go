package formatter

import (
	"strings"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// ruleRoot lays out the file: leading comments, the expression, trailing
// comments and a final newline. A blank line after a leading comment is kept.
func ruleRoot(_ *BuildCtx, node *syntax.Node) ([]Step, error) {
	var steps []Step
	children := NewChildren(node)

	children.DrainTrivia(func(t Trivia) {
		switch t.Kind {
		case TriviaComment:
			steps = append(steps, Comment(t.Text), NewLine())
		case TriviaWhitespace:
			if len(steps) > 0 && strings.Count(t.Text, "\n") > 1 {
				steps = append(steps, NewLine())
			}
		}
	})

	expr, _ := children.GetNext()
	steps = append(steps, FormatWider(expr))

	children.DrainTrivia(func(t Trivia) {
		if t.Kind == TriviaComment {
			steps = append(steps, NewLine(), Comment(t.Text))
		}
	})

	return append(steps, NewLine()), nil
}
