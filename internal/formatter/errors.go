package formatter

import (
	"fmt"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// InternalError reports a broken rule contract: a node kind without a rule
// or a malformed step sequence. It never results from well-formed input.
type InternalError struct {
	Path    string
	Kind    syntax.Kind
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: internal formatter error in %s: %s", e.Path, e.Kind, e.Message)
}
