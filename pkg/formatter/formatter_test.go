package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

func TestInMemory(t *testing.T) {
	type tc struct {
		input       string
		opts        func(*Options)
		want        string
		wantChanged bool
		wantErr     string
	}

	tests := map[string]tc{
		"reformats": {
			input:       "{ b = 1; a = 2; }",
			want:        "{\n  b = 1;\n  a = 2;\n}\n",
			wantChanged: true,
		},
		"sorts when asked": {
			input:       "{ b = 1; a = 2; }",
			opts:        func(o *Options) { o.SortAttrs = true },
			want:        "{\n  a = 2;\n  b = 1;\n}\n",
			wantChanged: true,
		},
		"canonical input is unchanged": {
			input:       "{\n  a = 1;\n  b = 2;\n}\n",
			want:        "{\n  a = 1;\n  b = 2;\n}\n",
			wantChanged: false,
		},
		"adds final newline": {
			input:       "{a = 1;}",
			want:        "{a = 1;}\n",
			wantChanged: true,
		},
		"interpolated path parses": {
			input:       "./foo/${bar}",
			want:        "./foo/${bar}\n",
			wantChanged: true,
		},
		"parse error returns source": {
			input:   "{ a = 1 }",
			want:    "{ a = 1 }",
			wantErr: `a.nix:1:9: error: unexpected "}", expected ";"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			outcome, got := InMemory("a.nix", tt.input, opts)
			if tt.wantErr != "" {
				if outcome.Err == nil {
					t.Fatal("expected error, got nil")
				}
				var syntaxErr *syntax.Error
				if !errors.As(outcome.Err, &syntaxErr) {
					t.Errorf("error %T is not a *syntax.Error", outcome.Err)
				}
				if outcome.Err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", outcome.Err.Error(), tt.wantErr)
				}
			} else if outcome.Err != nil {
				t.Fatalf("unexpected error: %v", outcome.Err)
			}

			if got != tt.want {
				t.Errorf("text mismatch\ngot:\n%q\nwant:\n%q", got, tt.want)
			}
			if outcome.Changed != tt.wantChanged {
				t.Errorf("Changed = %t, want %t", outcome.Changed, tt.wantChanged)
			}
		})
	}
}

func TestInFS(t *testing.T) {
	type tc struct {
		content     string
		inPlace     bool
		wantContent string
		wantChanged bool
		wantErr     bool
	}

	tests := map[string]tc{
		"writes changed file": {
			content:     "{ a = 1; b = 2; }",
			inPlace:     true,
			wantContent: "{\n  a = 1;\n  b = 2;\n}\n",
			wantChanged: true,
		},
		"check leaves file alone": {
			content:     "{ a = 1; b = 2; }",
			inPlace:     false,
			wantContent: "{ a = 1; b = 2; }",
			wantChanged: true,
		},
		"formatted file untouched": {
			content:     "{a = 1;}\n",
			inPlace:     true,
			wantContent: "{a = 1;}\n",
			wantChanged: false,
		},
		"parse error leaves file alone": {
			content:     "{ a = ; }",
			inPlace:     true,
			wantContent: "{ a = ; }",
			wantErr:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "default.nix")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			outcome := InFS(path, tt.inPlace, DefaultOptions())
			if (outcome.Err != nil) != tt.wantErr {
				t.Fatalf("Err = %v, wantErr %t", outcome.Err, tt.wantErr)
			}
			if outcome.Changed != tt.wantChanged {
				t.Errorf("Changed = %t, want %t", outcome.Changed, tt.wantChanged)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.wantContent {
				t.Errorf("file content = %q, want %q", data, tt.wantContent)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("file mode = %o, want 600", perm)
			}
		})
	}
}

func TestInFS_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.nix")
	outcome := InFS(path, true, DefaultOptions())

	var ioErr *IOError
	if !errors.As(outcome.Err, &ioErr) {
		t.Fatalf("Err = %v, want *IOError", outcome.Err)
	}
	if ioErr.Op != "read" || ioErr.Path != path {
		t.Errorf("IOError = %+v", ioErr)
	}
	if !errors.Is(outcome.Err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", outcome.Err)
	}
	if !strings.HasPrefix(outcome.Err.Error(), "read "+path+": ") {
		t.Errorf("Error() = %q", outcome.Err.Error())
	}
}

func TestFormatter(t *testing.T) {
	f := New()
	f.Options.SortAttrs = true

	res, err := f.FormatWithResult("x.nix", "{ z = 1; y = 2; }")
	if err != nil {
		t.Fatalf("FormatWithResult: %v", err)
	}
	if !res.Changed || res.Content != "{\n  y = 2;\n  z = 1;\n}\n" {
		t.Errorf("FormatWithResult = %+v", res)
	}

	out, err := f.Format("x.nix", res.Content)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != res.Content {
		t.Errorf("Format is not idempotent: %q", out)
	}

	if _, err := f.Format("x.nix", "{"); err == nil {
		t.Error("Format of invalid source returned no error")
	}
}
