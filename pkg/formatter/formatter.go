// Package formatter provides canonical formatting for Nix source files.
package formatter

import (
	"fmt"
	"os"

	"github.com/grindlemire/nixfmt/internal/debug"
	"github.com/grindlemire/nixfmt/internal/formatter"
	"github.com/grindlemire/nixfmt/internal/syntax"
)

// Options controls formatting behavior.
type Options = formatter.Options

// DefaultOptions returns the default formatting options.
func DefaultOptions() Options {
	return formatter.DefaultOptions()
}

// Outcome is the result of formatting one file. Err is set when the file
// could not be formatted; Changed is only meaningful when Err is nil.
type Outcome struct {
	// Changed reports whether the formatted text differs from the source.
	Changed bool
	// Err is the first syntax error, an *IOError or an internal error.
	Err error
}

// IOError reports a failure reading or writing a file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// InMemory formats source and returns the outcome with the rendered text.
// When the source does not parse, or formatting fails, the source is
// returned unchanged.
func InMemory(path, source string, opts Options) (Outcome, string) {
	file := syntax.Parse(path, source)
	if err := file.Err(); err != nil {
		debug.Log("%s: parse failed: %v", path, err)
		return Outcome{Err: err}, source
	}

	rendered, err := formatter.Render(path, file.Root, opts)
	if err != nil {
		debug.Log("%s: %v", path, err)
		return Outcome{Err: err}, source
	}
	return Outcome{Changed: rendered != source}, rendered
}

// InFS formats the file at path. With inPlace set, a changed file is
// overwritten with the formatted text, keeping its permissions. The file is
// written only after formatting has fully succeeded.
func InFS(path string, inPlace bool, opts Options) Outcome {
	source, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Err: &IOError{Op: "read", Path: path, Err: err}}
	}

	outcome, rendered := InMemory(path, string(source), opts)
	if outcome.Err != nil || !outcome.Changed || !inPlace {
		return outcome
	}

	info, err := os.Stat(path)
	if err != nil {
		return Outcome{Err: &IOError{Op: "write", Path: path, Err: err}}
	}
	if err := os.WriteFile(path, []byte(rendered), info.Mode().Perm()); err != nil {
		return Outcome{Err: &IOError{Op: "write", Path: path, Err: err}}
	}
	debug.Log("%s: rewritten", path)
	return outcome
}

// Formatter formats Nix source with a fixed set of options.
type Formatter struct {
	Options Options
}

// New creates a new Formatter with default settings.
func New() *Formatter {
	return &Formatter{Options: DefaultOptions()}
}

// Format parses and reformats the given source.
// Returns the formatted code and any error encountered during parsing.
func (f *Formatter) Format(filename, source string) (string, error) {
	outcome, rendered := InMemory(filename, source, f.Options)
	if outcome.Err != nil {
		return "", outcome.Err
	}
	return rendered, nil
}

// FormatResult contains the result of formatting a file.
type FormatResult struct {
	// Content is the formatted content.
	Content string
	// Changed indicates if the content was different from the original.
	Changed bool
}

// FormatWithResult formats the source and indicates if it changed.
func (f *Formatter) FormatWithResult(filename, source string) (FormatResult, error) {
	outcome, rendered := InMemory(filename, source, f.Options)
	if outcome.Err != nil {
		return FormatResult{}, outcome.Err
	}
	return FormatResult{Content: rendered, Changed: outcome.Changed}, nil
}

// FormatFile formats the file at path, rewriting it when inPlace is set.
func (f *Formatter) FormatFile(path string, inPlace bool) Outcome {
	return InFS(path, inPlace, f.Options)
}
