package formatter

import "github.com/grindlemire/nixfmt/internal/syntax"

// ruleLetIn lays out let bindings one per line with the body after "in".
func ruleLetIn(ctx *BuildCtx, node *syntax.Node) ([]Step, error) {
	children := NewChildren(node)

	// let
	let, _ := children.GetNext()
	steps := []Step{Format(let), Indent()}

	entries, dangling, err := collectEntries(ctx, node, children, syntax.TokenIn)
	if err != nil {
		return nil, err
	}
	steps = append(steps, entrySteps(entries, dangling)...)
	steps = append(steps, Dedent(), NewLine(), Pad())

	// in
	in, _ := children.GetNext()
	steps = append(steps, Format(in), Indent())

	children.DrainTrivia(func(t Trivia) {
		if t.Kind == TriviaComment {
			steps = append(steps, NewLine(), Pad(), Comment(t.Text))
		}
	})

	body, _ := children.GetNext()
	steps = append(steps, NewLine(), Pad(), FormatWider(body), Dedent())
	return steps, nil
}
