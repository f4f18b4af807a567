package formatter

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// Golden fixtures are txtar archives holding input.nix and output.nix. The
// archive comment lists options, one per line: sort-attrs, sort-flake,
// no-self-first and width=N.
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden fixtures found")
	}

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			opts := fixtureOptions(t, string(archive.Comment))
			input := fixtureFile(t, archive, "input.nix")
			want := fixtureFile(t, archive, "output.nix")

			got := render(t, input, opts)
			if got != want {
				t.Fatalf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
			if again := render(t, got, opts); again != got {
				t.Errorf("not idempotent\nfirst:\n%s\nsecond:\n%s", got, again)
			}
			if in, out := countComments(input), countComments(got); in != out {
				t.Errorf("comment count changed: %d in input, %d in output", in, out)
			}
		})
	}
}

func fixtureOptions(t *testing.T, comment string) Options {
	t.Helper()
	opts := DefaultOptions()
	for _, line := range strings.Fields(comment) {
		switch {
		case line == "sort-attrs":
			opts.SortAttrs = true
		case line == "sort-flake":
			opts.SortFlake = true
		case line == "no-self-first":
			opts.KeepSelfFirst = false
		case strings.HasPrefix(line, "width="):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "width="))
			if err != nil {
				t.Fatalf("bad width option %q: %v", line, err)
			}
			opts.MaxWidth = n
		default:
			t.Fatalf("unknown fixture option %q", line)
		}
	}
	return opts
}

func fixtureFile(t *testing.T, archive *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range archive.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("fixture has no %s", name)
	return ""
}

func countComments(source string) int {
	file := syntax.Parse("test.nix", source)
	n := 0
	syntax.Walk(file.Root, func(el syntax.Element) bool {
		if el.Kind() == syntax.TokenComment {
			n++
		}
		return true
	})
	return n
}
