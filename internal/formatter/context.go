package formatter

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// Position is the line and column just past the last emitted character.
// Both start at zero. Columns count terminal cells, so wide runes take two.
type Position struct {
	Line   int
	Column int
}

// BuildCtx is the state threaded through one formatting run. It is owned
// by a single call stack and never shared between runs.
type BuildCtx struct {
	// Indentation is the current nesting depth.
	Indentation int
	// Vertical is set when an ancestor has committed to multi-line layout
	// and wants its descendants to follow. Verbatim nodes clear it for
	// their children.
	Vertical bool
	// Pos tracks where the next character will be written.
	Pos Position
	// Path labels diagnostics.
	Path string
	// Options are the formatting options for this run.
	Options Options

	// flakeInputs is the set sorted by flake categories when SortFlake is on.
	flakeInputs *syntax.Node

	buf      *strings.Builder
	overflow bool // some emitted line went past Options.MaxWidth

	// narrow contexts fail on the first line break or overflow.
	narrow bool
	failed bool
}

// NewBuildCtx creates the context for formatting one file.
func NewBuildCtx(path string, opts Options) *BuildCtx {
	if opts.Indent == "" {
		opts.Indent = defaultIndent
	}
	return &BuildCtx{
		Path:    path,
		Options: opts,
		buf:     &strings.Builder{},
	}
}

// String returns everything emitted so far.
func (ctx *BuildCtx) String() string {
	return ctx.buf.String()
}

// fork returns a context that renders into its own buffer starting at the
// same position and depth. Nothing written to the fork reaches ctx until
// merge is called.
func (ctx *BuildCtx) fork(vertical bool) *BuildCtx {
	return &BuildCtx{
		Indentation: ctx.Indentation,
		Vertical:    vertical,
		Pos:         ctx.Pos,
		Path:        ctx.Path,
		Options:     ctx.Options,
		flakeInputs: ctx.flakeInputs,
		buf:         &strings.Builder{},
	}
}

// merge appends a fork's output and adopts its end position.
func (ctx *BuildCtx) merge(f *BuildCtx) {
	ctx.buf.WriteString(f.buf.String())
	ctx.Pos = f.Pos
	ctx.overflow = ctx.overflow || f.overflow
}

// write emits s, tracking line and column.
func (ctx *BuildCtx) write(s string) {
	ctx.buf.WriteString(s)
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			ctx.advance(s)
			return
		}
		ctx.advance(s[:i])
		ctx.Pos.Line++
		ctx.Pos.Column = 0
		ctx.failed = ctx.failed || ctx.narrow
		s = s[i+1:]
	}
}

// advance moves the column past a newline-free segment.
func (ctx *BuildCtx) advance(segment string) {
	if segment == "" {
		return
	}
	ctx.Pos.Column += uniseg.StringWidth(segment)
	if limit := ctx.Options.MaxWidth; limit > 0 && ctx.Pos.Column > limit {
		ctx.overflow = true
		ctx.failed = ctx.failed || ctx.narrow
	}
}

func (ctx *BuildCtx) newline() {
	ctx.buf.WriteByte('\n')
	ctx.Pos.Line++
	ctx.Pos.Column = 0
	ctx.failed = ctx.failed || ctx.narrow
}

// fits returns errDoesNotFit once a narrow context has broken a line or
// run past the width limit.
func (ctx *BuildCtx) fits() error {
	if ctx.failed {
		return errDoesNotFit
	}
	return nil
}

func (ctx *BuildCtx) pad() {
	ctx.write(strings.Repeat(ctx.Options.Indent, ctx.Indentation))
}
