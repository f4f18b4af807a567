package formatter

import (
	"slices"
	"strings"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// selfKey is the attribute kept first when KeepSelfFirst is set.
const selfKey = "self"

// EntryKey returns the sort key of an attribute set entry: the attrpath
// text of a key-value binding, the first inherited name of an inherit, and
// the empty string for anything else.
func EntryKey(el syntax.Element) string {
	node, ok := el.(*syntax.Node)
	if !ok {
		return ""
	}
	switch node.Kind() {
	case syntax.NodeKeyValue:
		if path, ok := node.FirstNode(syntax.NodeAttrpath); ok {
			return path.Text()
		}
	case syntax.NodeInherit:
		if ident, ok := node.FirstToken(syntax.TokenIdent); ok {
			return ident.Text()
		}
	}
	return ""
}

// CompareKeys orders two entry keys. With keepSelfFirst, "self" sorts
// before every other key; two "self" keys compare equal.
func CompareKeys(a, b string, keepSelfFirst bool) int {
	if keepSelfFirst {
		aSelf, bSelf := a == selfKey, b == selfKey
		switch {
		case aSelf && bSelf:
			return 0
		case aSelf:
			return -1
		case bSelf:
			return 1
		}
	}
	return strings.Compare(a, b)
}

// SortEntries returns the entries in key order. The sort is stable, so
// duplicate keys keep their source order, and the input is left untouched.
func SortEntries(entries []syntax.Element, keepSelfFirst bool) []syntax.Element {
	return sortByKey(entries, func(el syntax.Element) syntax.Element { return el }, keepSelfFirst)
}

// sortByKey stable-sorts a copy of items by the entry key of each item's element.
func sortByKey[T any](items []T, element func(T) syntax.Element, keepSelfFirst bool) []T {
	keys := make(map[syntax.Element]string, len(items))
	for _, item := range items {
		el := element(item)
		keys[el] = EntryKey(el)
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return CompareKeys(keys[element(a)], keys[element(b)], keepSelfFirst)
	})
	return sorted
}
