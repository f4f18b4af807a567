package formatter

// Options controls formatting behavior.
type Options struct {
	// SortAttrs sorts attribute set entries by key.
	SortAttrs bool
	// SortFlake sorts the top-level flake inputs into categories:
	// nixpkgs sources, independent flakes, nixpkgs-dependent flakes and
	// non-flake inputs.
	SortFlake bool
	// KeepSelfFirst keeps a "self" entry first when sorting.
	KeepSelfFirst bool
	// Indent is the string emitted per indentation level (default: two spaces).
	Indent string
	// MaxWidth is the column limit that triggers vertical re-layout of an
	// entry; zero or less disables width checks.
	MaxWidth int
}

const (
	defaultIndent   = "  "
	defaultMaxWidth = 80
)

// DefaultOptions returns the default formatting options.
func DefaultOptions() Options {
	return Options{
		SortAttrs:     false,
		SortFlake:     false,
		KeepSelfFirst: true,
		Indent:        defaultIndent,
		MaxWidth:      defaultMaxWidth,
	}
}
