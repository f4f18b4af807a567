package formatter

import "github.com/grindlemire/nixfmt/internal/syntax"

// rule maps a node to the steps that lay it out. An error means the node
// does not have the shape the rule expects.
type rule func(ctx *BuildCtx, node *syntax.Node) ([]Step, error)

// rules is indexed by node kind. Every node kind must have an entry.
var rules = [syntax.KindCount]rule{
	syntax.NodeRoot:        ruleRoot,
	syntax.NodeAttrSet:     ruleAttrSet,
	syntax.NodeKeyValue:    ruleKeyValue,
	syntax.NodeAttrpath:    ruleDefault,
	syntax.NodeDynamic:     ruleDefault,
	syntax.NodeInherit:     ruleInherit,
	syntax.NodeInheritFrom: ruleDefault,
	syntax.NodeString:      ruleDefault,
	syntax.NodePath:        ruleDefault,
	syntax.NodeInterpol:    ruleDefault,
	syntax.NodeList:        ruleDefault,
	syntax.NodeParen:       ruleDefault,
	syntax.NodeLambda:      ruleDefault,
	syntax.NodePattern:     ruleDefault,
	syntax.NodePatEntry:    ruleDefault,
	syntax.NodePatBind:     ruleDefault,
	syntax.NodeLetIn:       ruleLetIn,
	syntax.NodeWith:        ruleDefault,
	syntax.NodeAssert:      ruleDefault,
	syntax.NodeIfElse:      ruleDefault,
	syntax.NodeApply:       ruleDefault,
	syntax.NodeSelect:      ruleDefault,
	syntax.NodeHasAttr:     ruleDefault,
	syntax.NodeBinOp:       ruleDefault,
	syntax.NodeUnaryOp:     ruleDefault,
	syntax.NodeError:       ruleDefault,
}

// ruleFor returns the rule for a node kind, or nil when there is none.
func ruleFor(kind syntax.Kind) rule {
	if kind < 0 || int(kind) >= len(rules) {
		return nil
	}
	return rules[kind]
}

// ruleDefault emits every child as written, recursing into child nodes.
// Children of a verbatim node do not inherit the vertical hint.
func ruleDefault(ctx *BuildCtx, node *syntax.Node) ([]Step, error) {
	ctx.Vertical = false
	steps := make([]Step, 0, node.Len())
	for i := 0; i < node.Len(); i++ {
		steps = append(steps, Format(node.Child(i)))
	}
	return steps, nil
}
