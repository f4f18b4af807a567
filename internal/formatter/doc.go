// Package formatter implements the layout engine for Nix source.
//
// Every node kind maps to a rule that inspects the node's children and
// returns a sequence of layout steps. The builder executes those steps
// against a BuildCtx, recursing into child elements, and accumulates the
// rendered text. Used by the "nixfmt fmt" command through pkg/formatter.
package formatter
