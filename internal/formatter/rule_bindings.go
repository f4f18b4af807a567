package formatter

import "github.com/grindlemire/nixfmt/internal/syntax"

// ruleKeyValue lays out "key = value;" with single spaces around "=".
// Bindings that hold comments are emitted as written.
func ruleKeyValue(ctx *BuildCtx, node *syntax.Node) ([]Step, error) {
	if NewChildren(node).HasComments() {
		return ruleDefault(ctx, node)
	}
	sig := node.Significant()
	if len(sig) != 4 {
		return ruleDefault(ctx, node)
	}
	key, assign, value, semi := sig[0], sig[1], sig[2], sig[3]
	return []Step{
		Format(key), Whitespace(), Format(assign), Whitespace(),
		Format(value), Format(semi),
	}, nil
}

// ruleInherit lays out "inherit (from) a b;" on one line. Inherits that
// hold comments or span lines are emitted as written.
func ruleInherit(ctx *BuildCtx, node *syntax.Node) ([]Step, error) {
	children := NewChildren(node)
	if children.HasComments() || children.HasNewlines() {
		return ruleDefault(ctx, node)
	}
	var steps []Step
	for i, el := range node.Significant() {
		if i > 0 && el.Kind() != syntax.TokenSemi {
			steps = append(steps, Whitespace())
		}
		steps = append(steps, Format(el))
	}
	return steps, nil
}
