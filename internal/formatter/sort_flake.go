package formatter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// FlakeCategory orders flake inputs.
type FlakeCategory int

const (
	// CategoryNixpkgs is a nixpkgs source.
	CategoryNixpkgs FlakeCategory = iota + 1
	// CategoryIndependent is a flake that does not follow nixpkgs.
	CategoryIndependent
	// CategoryNixpkgsDependent is a flake whose nixpkgs input follows ours.
	CategoryNixpkgsDependent
	// CategoryNonFlake is an input with flake = false.
	CategoryNonFlake
)

// findFlakeInputs returns the value of a top-level inputs = { ... };
// binding when the file's expression is an attribute set.
func findFlakeInputs(root *syntax.Node) *syntax.Node {
	set, ok := root.FirstNode(syntax.NodeAttrSet)
	if !ok {
		return nil
	}
	for _, el := range set.Children() {
		if el.Kind() != syntax.NodeKeyValue || EntryKey(el) != "inputs" {
			continue
		}
		if value, ok := bindingValue(el.(*syntax.Node)).(*syntax.Node); ok && value.Kind() == syntax.NodeAttrSet {
			return value
		}
	}
	return nil
}

// bindingValue returns the expression bound by a key-value node.
func bindingValue(kv *syntax.Node) syntax.Element {
	sig := kv.Significant()
	if len(sig) < 3 {
		return nil
	}
	return sig[2]
}

// attrSegments returns the text of each attribute in an attrpath.
func attrSegments(path *syntax.Node) []string {
	var segments []string
	for _, el := range path.Significant() {
		if el.Kind() != syntax.TokenDot {
			segments = append(segments, el.Text())
		}
	}
	return segments
}

// inputName returns the input a binding belongs to: the first attrpath
// segment, or the first inherited name.
func inputName(el syntax.Element) string {
	node, ok := el.(*syntax.Node)
	if !ok {
		return ""
	}
	if node.Kind() == syntax.NodeKeyValue {
		if path, ok := node.FirstNode(syntax.NodeAttrpath); ok {
			if segments := attrSegments(path); len(segments) > 0 {
				return segments[0]
			}
		}
		return ""
	}
	return EntryKey(el)
}

// flattenBinding reports every leaf assignment under a binding as a dotted
// path, descending into attribute set values.
func flattenBinding(el syntax.Element, prefix []string, visit func(path string, value syntax.Element)) {
	kv, ok := el.(*syntax.Node)
	if !ok || kv.Kind() != syntax.NodeKeyValue {
		return
	}
	path, ok := kv.FirstNode(syntax.NodeAttrpath)
	if !ok {
		return
	}
	full := append(slices.Clone(prefix), attrSegments(path)...)
	value := bindingValue(kv)
	if set, ok := value.(*syntax.Node); ok && set.Kind() == syntax.NodeAttrSet {
		for _, child := range set.Children() {
			flattenBinding(child, full, visit)
		}
		return
	}
	visit(strings.Join(full, "."), value)
}

// classifyInput decides the category of one input from all of its bindings.
func classifyInput(name string, bindings []syntax.Element) FlakeCategory {
	var nonFlake, nixpkgsURL, follows bool
	for _, b := range bindings {
		flattenBinding(b, nil, func(path string, value syntax.Element) {
			rel := strings.TrimPrefix(path, name+".")
			text := ""
			if value != nil {
				text = value.Text()
			}
			switch rel {
			case "flake":
				nonFlake = nonFlake || text == "false"
			case "url":
				nixpkgsURL = nixpkgsURL || strings.Contains(strings.ToLower(text), "nixos/nixpkgs")
			case "inputs.nixpkgs.follows":
				follows = true
			}
		})
	}
	switch {
	case nonFlake:
		return CategoryNonFlake
	case strings.HasPrefix(name, "nixpkgs") || nixpkgsURL:
		return CategoryNixpkgs
	case follows:
		return CategoryNixpkgsDependent
	}
	return CategoryIndependent
}

// sortFlakeInputs orders input bindings by category and then input name.
// Bindings of the same input keep their source order.
func sortFlakeInputs[T any](items []T, element func(T) syntax.Element) []T {
	groups := map[string][]syntax.Element{}
	for _, item := range items {
		el := element(item)
		name := inputName(el)
		groups[name] = append(groups[name], el)
	}
	categories := make(map[string]FlakeCategory, len(groups))
	for name, bindings := range groups {
		categories[name] = classifyInput(name, bindings)
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		na, nb := inputName(element(a)), inputName(element(b))
		if c := cmp.Compare(categories[na], categories[nb]); c != 0 {
			return c
		}
		return strings.Compare(na, nb)
	})
	return sorted
}

// SortFlakeInputs returns flake input bindings in category order.
func SortFlakeInputs(entries []syntax.Element) []syntax.Element {
	return sortFlakeInputs(entries, func(el syntax.Element) syntax.Element { return el })
}
