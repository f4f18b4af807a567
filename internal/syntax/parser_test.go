package syntax

import (
	"strings"
	"testing"
)

// shape renders a tree as an s-expression of nodes and significant token
// text, dropping trivia.
func shape(el Element) string {
	switch el := el.(type) {
	case *Token:
		return el.Text()
	case *Node:
		parts := []string{el.Kind().String()}
		for _, c := range el.Significant() {
			parts = append(parts, shape(c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return ""
}

func TestParse_Shape(t *testing.T) {
	type tc struct {
		input    string
		expected string
	}

	tests := map[string]tc{
		"precedence": {
			input:    "1 + 2 * 3",
			expected: "(Root (BinOp 1 + (BinOp 2 * 3)))",
		},
		"left associative": {
			input:    "a - b - c",
			expected: "(Root (BinOp (BinOp a - b) - c))",
		},
		"right associative concat": {
			input:    "a ++ b ++ c",
			expected: "(Root (BinOp a ++ (BinOp b ++ c)))",
		},
		"update binds looser than plus": {
			input:    "a // b + c",
			expected: "(Root (BinOp a // (BinOp b + c)))",
		},
		"not and": {
			input:    "!a && b",
			expected: "(Root (BinOp (UnaryOp ! a) && b))",
		},
		"negation": {
			input:    "-a * b",
			expected: "(Root (BinOp (UnaryOp - a) * b))",
		},
		"has attr": {
			input:    "a ? b.c",
			expected: "(Root (HasAttr a ? (Attrpath b . c)))",
		},
		"application": {
			input:    "f x y",
			expected: "(Root (Apply (Apply f x) y))",
		},
		"select with default": {
			input:    "a.b.c or d",
			expected: "(Root (Select a . (Attrpath b . c) or d))",
		},
		"lambda": {
			input:    "x: x",
			expected: "(Root (Lambda x : x))",
		},
		"pattern lambda": {
			input:    "{ a, b ? 1, ... }: a",
			expected: "(Root (Lambda (Pattern { (PatEntry a) , (PatEntry b ? 1) , ... }) : a))",
		},
		"pattern with bind": {
			input:    "args@{ a }: a",
			expected: "(Root (Lambda (Pattern (PatBind args @) { (PatEntry a) }) : a))",
		},
		"empty pattern": {
			input:    "{ }: 1",
			expected: "(Root (Lambda (Pattern { }) : 1))",
		},
		"empty set": {
			input:    "{ }",
			expected: "(Root (AttrSet { }))",
		},
		"let in": {
			input:    "let a = 1; in a",
			expected: "(Root (LetIn let (KeyValue (Attrpath a) = 1 ;) in a))",
		},
		"with": {
			input:    "with a; b",
			expected: "(Root (With with a ; b))",
		},
		"assert": {
			input:    "assert a; b",
			expected: "(Root (Assert assert a ; b))",
		},
		"if": {
			input:    "if a then b else c",
			expected: "(Root (IfElse if a then b else c))",
		},
		"list": {
			input:    "[ 1 a.b (f x) ]",
			expected: "(Root (List [ 1 (Select a . (Attrpath b)) (Paren ( (Apply f x) )) ]))",
		},
		"rec set": {
			input:    "rec { a = 1; }",
			expected: "(Root (AttrSet rec { (KeyValue (Attrpath a) = 1 ;) }))",
		},
		"inherit from": {
			input:    "{ inherit (pkgs) a b; }",
			expected: "(Root (AttrSet { (Inherit inherit (InheritFrom ( pkgs )) a b ;) }))",
		},
		"nested attrpath": {
			input:    `{ a."b".${c} = 1; }`,
			expected: `(Root (AttrSet { (KeyValue (Attrpath a . (String " b ") . (Dynamic ${ c })) = 1 ;) }))`,
		},
		"path interpolation": {
			input:    "./foo/${bar}",
			expected: "(Root (PathNode ./foo/ (Interpol ${ bar })))",
		},
		"imported path with suffix": {
			input:    "import ./${name}.nix { }",
			expected: "(Root (Apply (Apply import (PathNode ./ (Interpol ${ name }) .nix)) (AttrSet { })))",
		},
		"path interpolation ends at whitespace": {
			input:    "[ ./${a} b ]",
			expected: "(Root (List [ (PathNode ./ (Interpol ${ a })) b ]))",
		},
		"string interpolation": {
			input:    `"a${b}"`,
			expected: `(Root (String " a (Interpol ${ b }) "))`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := Parse("test.nix", tt.input)
			if err := file.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := shape(file.Root); got != tt.expected {
				t.Errorf("shape mismatch\ngot:  %s\nwant: %s", got, tt.expected)
			}
		})
	}
}

func TestParse_Lossless(t *testing.T) {
	tests := map[string]string{
		"comments between entries": "{\n  # lead\n  a = 1; # trail\n\n  b = 2;\n}\n",
		"block comment":            "/* header */\nlet x = 1; /* mid */ in x\n",
		"flake":                    "{\n  inputs.nixpkgs.url = \"github:NixOS/nixpkgs\";\n  outputs = { self, nixpkgs }: { };\n}\n",
		"indented string":          "''\n  echo ${pkgs.hello}/bin/hello\n  ''$HOME\n''\n",
		"unicode":                  "{ name = \"héllo wörld\"; }",
		"syntax error":             "{ a = ; b = 1 }",
		"trailing junk":            "1 2 )",
		"interpolated path":        "import ./${name}.nix { inherit pkgs; }\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			file := Parse("test.nix", input)
			if got := file.Root.Text(); got != input {
				t.Errorf("Root.Text() = %q, want %q", got, input)
			}

			var sb strings.Builder
			Walk(file.Root, func(el Element) bool {
				if tok, ok := el.(*Token); ok {
					sb.WriteString(tok.Text())
				}
				return true
			})
			if sb.String() != input {
				t.Errorf("token concatenation = %q, want %q", sb.String(), input)
			}
		})
	}
}

func TestParse_TriviaBetweenEntries(t *testing.T) {
	file := Parse("test.nix", "{ # c\n  a = 1;\n}")
	if err := file.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, ok := file.Root.FirstNode(NodeAttrSet)
	if !ok {
		t.Fatal("expected attribute set")
	}
	if _, ok := set.FirstToken(TokenComment); !ok {
		t.Error("comment should be a direct child of the set")
	}
	kv, ok := set.FirstNode(NodeKeyValue)
	if !ok {
		t.Fatal("expected key-value")
	}
	first, last := kv.Child(0), kv.Child(kv.Len()-1)
	if first.Kind().IsTrivia() || last.Kind().IsTrivia() {
		t.Errorf("node starts or ends with trivia: first %s, last %s", first.Kind(), last.Kind())
	}
}

func TestParse_Errors(t *testing.T) {
	type tc struct {
		input   string
		wantErr string
	}

	tests := map[string]tc{
		"empty file": {
			input:   "",
			wantErr: "test.nix:1:1: error: unexpected end of file, expected expression",
		},
		"missing value": {
			input:   "{ a = ; }",
			wantErr: `test.nix:1:7: error: unexpected ";", expected expression`,
		},
		"missing semicolon": {
			input:   "{ a = 1 }",
			wantErr: `test.nix:1:9: error: unexpected "}", expected ";"`,
		},
		"unclosed set": {
			input:   "{ a = 1;",
			wantErr: `test.nix:1:9: error: unexpected end of file, expected "}"`,
		},
		"trailing junk": {
			input:   "1 )",
			wantErr: `test.nix:1:3: error: unexpected ")", expected end of file`,
		},
		"legacy let": {
			input:   "let { a = 1; }",
			wantErr: "test.nix:1:1: error: legacy let expression is not supported",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := Parse("test.nix", tt.input)
			err := file.Err()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
			if file.Root.Text() != tt.input {
				t.Errorf("tree is not lossless: %q", file.Root.Text())
			}
		})
	}
}

func TestDump(t *testing.T) {
	file := Parse("test.nix", "{ a = 1; }")
	want := `Root
  AttrSet
    { "{"
    Whitespace " "
    KeyValue
      Attrpath
        Ident "a"
      Whitespace " "
      = "="
      Whitespace " "
      Int "1"
      ; ";"
    Whitespace " "
    } "}"
`
	if got := Dump(file.Root); got != want {
		t.Errorf("Dump mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
