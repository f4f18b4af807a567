package syntax

import (
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	type tc struct {
		kind   Kind
		name   string
		node   bool
		trivia bool
	}

	tests := map[string]tc{
		"whitespace":   {kind: TokenWhitespace, name: "Whitespace", trivia: true},
		"comment":      {kind: TokenComment, name: "Comment", trivia: true},
		"keyword":      {kind: TokenRec, name: "rec"},
		"operator":     {kind: TokenUpdate, name: "//"},
		"root":         {kind: NodeRoot, name: "Root", node: true},
		"error node":   {kind: NodeError, name: "ErrorNode", node: true},
		"out of range": {kind: Kind(KindCount), name: fmt.Sprintf("Kind(%d)", KindCount)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.IsNode(); got != tt.node {
				t.Errorf("IsNode() = %t, want %t", got, tt.node)
			}
			if got := tt.kind.IsTrivia(); got != tt.trivia {
				t.Errorf("IsTrivia() = %t, want %t", got, tt.trivia)
			}
		})
	}
}

func TestNodeKinds(t *testing.T) {
	kinds := NodeKinds()
	if len(kinds) == 0 || kinds[0] != NodeRoot || kinds[len(kinds)-1] != NodeError {
		t.Fatalf("NodeKinds() = %v", kinds)
	}
	for _, k := range kinds {
		if !k.IsNode() {
			t.Errorf("%s is listed as a node kind", k)
		}
	}
}

func TestKeywordsHaveNames(t *testing.T) {
	for word, kind := range keywords {
		if kind.String() != word {
			t.Errorf("keyword %q has name %q", word, kind.String())
		}
	}
}
