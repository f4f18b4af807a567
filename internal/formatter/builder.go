package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grindlemire/nixfmt/internal/debug"
	"github.com/grindlemire/nixfmt/internal/syntax"
)

// Build renders el into ctx and returns the text it produced.
func Build(ctx *BuildCtx, el syntax.Element) (string, error) {
	start := ctx.buf.Len()
	if err := build(ctx, el); err != nil {
		return "", err
	}
	return ctx.buf.String()[start:], nil
}

// Render formats a parsed file from its root node.
func Render(path string, root *syntax.Node, opts Options) (string, error) {
	ctx := NewBuildCtx(path, opts)
	if opts.SortFlake {
		ctx.flakeInputs = findFlakeInputs(root)
	}
	return Build(ctx, root)
}

func build(ctx *BuildCtx, el syntax.Element) error {
	switch el := el.(type) {
	case *syntax.Token:
		// Tokens are emitted as written; spacing comes from steps.
		ctx.write(el.Text())
		return ctx.fits()
	case *syntax.Node:
		r := ruleFor(el.Kind())
		if r == nil {
			return &InternalError{Path: ctx.Path, Kind: el.Kind(), Message: "no rule for node kind"}
		}
		vertical := ctx.Vertical
		defer func() { ctx.Vertical = vertical }()
		steps, err := r(ctx, el)
		if err != nil {
			return err
		}
		return ctx.execute(el, steps)
	}
	return &InternalError{Path: ctx.Path, Message: fmt.Sprintf("cannot format element %T", el)}
}

// execute runs the steps a rule produced for node. Indent and Dedent must
// balance within one sequence.
func (ctx *BuildCtx) execute(node *syntax.Node, steps []Step) error {
	depth := 0
	for _, step := range steps {
		switch step.Kind {
		case StepFormat, StepFormatWider:
			if step.Element == nil {
				ctx.Indentation -= depth
				return ctx.malformed(node, "%s step without an element", step.Kind)
			}
			var err error
			if step.Kind == StepFormat {
				err = build(ctx, step.Element)
			} else {
				err = ctx.formatWider(step.Element)
			}
			if err != nil {
				return err
			}
		case StepNewLine:
			ctx.newline()
		case StepPad:
			ctx.pad()
		case StepIndent:
			depth++
			ctx.Indentation++
		case StepDedent:
			if depth == 0 {
				return ctx.malformed(node, "dedent without matching indent")
			}
			depth--
			ctx.Indentation--
		case StepWhitespace:
			ctx.write(" ")
		case StepComment:
			ctx.write(step.Text)
		default:
			ctx.Indentation -= depth
			return ctx.malformed(node, "unknown step kind %d", int(step.Kind))
		}
		if err := ctx.fits(); err != nil {
			return err
		}
	}
	if depth != 0 {
		ctx.Indentation -= depth
		return ctx.malformed(node, "%d indent(s) without matching dedent", depth)
	}
	return nil
}

func (ctx *BuildCtx) malformed(node *syntax.Node, format string, args ...any) error {
	return &InternalError{Path: ctx.Path, Kind: node.Kind(), Message: fmt.Sprintf(format, args...)}
}

// layout tags the outcome of a layout attempt.
type layout int

const (
	fitsNarrow layout = iota
	needsWide
)

// attempt is one rendering of a subtree in a forked context.
type attempt struct {
	ctx    *BuildCtx
	layout layout
}

// errDoesNotFit aborts a narrow attempt at its first line break or at the
// first column past the width limit.
var errDoesNotFit = errors.New("layout does not fit on one line")

// try renders el in a fork with the given vertical hint. A rendering fits
// narrow when it stays on one line within the width limit. Horizontal
// attempts, and every attempt inside one, stop as soon as they cannot fit.
func (ctx *BuildCtx) try(el syntax.Element, vertical bool) (attempt, error) {
	f := ctx.fork(vertical)
	f.narrow = !vertical || ctx.narrow
	if err := build(f, el); err != nil {
		if errors.Is(err, errDoesNotFit) {
			return attempt{ctx: f, layout: needsWide}, nil
		}
		return attempt{}, err
	}
	if f.overflow || strings.Contains(f.String(), "\n") {
		return attempt{ctx: f, layout: needsWide}, nil
	}
	return attempt{ctx: f, layout: fitsNarrow}, nil
}

// formatWider renders el narrow first and falls back to a vertical layout
// when the narrow rendering spans lines or runs past the width limit.
// Elements that are vertical under any hint go straight to the fallback.
func (ctx *BuildCtx) formatWider(el syntax.Element) error {
	if !alwaysVertical(el) {
		narrow, err := ctx.try(el, false)
		if err != nil {
			return err
		}
		if narrow.layout == fitsNarrow {
			ctx.merge(narrow.ctx)
			return nil
		}
		if narrow.ctx.overflow && !ctx.narrow {
			debug.Log("%s:%d: %s exceeds %d columns, retrying vertical", ctx.Path, ctx.Pos.Line+1, el.Kind(), ctx.Options.MaxWidth)
		}
	}

	wide, err := ctx.try(el, true)
	if err != nil {
		return err
	}
	if ctx.narrow && wide.layout == needsWide {
		return errDoesNotFit
	}
	ctx.merge(wide.ctx)
	return nil
}

// alwaysVertical reports whether el, or the value it binds, is a set that
// lays out vertically under any hint.
func alwaysVertical(el syntax.Element) bool {
	node, ok := el.(*syntax.Node)
	if ok && node.Kind() == syntax.NodeKeyValue {
		node, ok = bindingValue(node).(*syntax.Node)
	}
	return ok && node.Kind() == syntax.NodeAttrSet && forcedVertical(node)
}
