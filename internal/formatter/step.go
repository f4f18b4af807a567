package formatter

import "github.com/grindlemire/nixfmt/internal/syntax"

// StepKind identifies a layout instruction.
type StepKind int

const (
	// StepFormat renders an element with the current context.
	StepFormat StepKind = iota
	// StepFormatWider renders an element that may choose its own vertical
	// layout when it does not fit on one line.
	StepFormatWider
	// StepNewLine emits a line break.
	StepNewLine
	// StepPad emits indentation for the current depth.
	StepPad
	// StepIndent increases the depth by one.
	StepIndent
	// StepDedent decreases the depth by one.
	StepDedent
	// StepWhitespace emits a single space.
	StepWhitespace
	// StepComment re-emits a comment verbatim.
	StepComment
)

var stepNames = map[StepKind]string{
	StepFormat:      "Format",
	StepFormatWider: "FormatWider",
	StepNewLine:     "NewLine",
	StepPad:         "Pad",
	StepIndent:      "Indent",
	StepDedent:      "Dedent",
	StepWhitespace:  "Whitespace",
	StepComment:     "Comment",
}

// String returns the step kind name.
func (k StepKind) String() string {
	if name, ok := stepNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Step is one layout instruction produced by a rule.
type Step struct {
	Kind    StepKind
	Element syntax.Element // StepFormat, StepFormatWider
	Text    string         // StepComment
}

// Format renders el with the current context.
func Format(el syntax.Element) Step {
	return Step{Kind: StepFormat, Element: el}
}

// FormatWider renders el, letting it expand vertically when it does not fit.
func FormatWider(el syntax.Element) Step {
	return Step{Kind: StepFormatWider, Element: el}
}

// NewLine emits a line break.
func NewLine() Step { return Step{Kind: StepNewLine} }

// Pad emits the indentation for the current depth.
func Pad() Step { return Step{Kind: StepPad} }

// Indent increases the depth by one.
func Indent() Step { return Step{Kind: StepIndent} }

// Dedent decreases the depth by one.
func Dedent() Step { return Step{Kind: StepDedent} }

// Whitespace emits a single space.
func Whitespace() Step { return Step{Kind: StepWhitespace} }

// Comment re-emits comment text verbatim.
func Comment(text string) Step {
	return Step{Kind: StepComment, Text: text}
}
