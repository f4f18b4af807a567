package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grindlemire/nixfmt/pkg/formatter"
)

func TestParseFmtFlags(t *testing.T) {
	type tc struct {
		args      []string
		wantCheck bool
		wantOpts  formatter.Options
		wantPaths []string
	}

	defaults := formatter.DefaultOptions()
	sorted := defaults
	sorted.SortAttrs = true
	sorted.SortFlake = true
	sorted.KeepSelfFirst = false
	sorted.MaxWidth = 100

	tests := map[string]tc{
		"defaults": {
			args:      nil,
			wantOpts:  defaults,
			wantPaths: []string{"."},
		},
		"all flags": {
			args:      []string{"--check", "--sort-attrs", "--sort-flake", "--no-self-first", "--width", "100", "a.nix", "b.nix"},
			wantCheck: true,
			wantOpts:  sorted,
			wantPaths: []string{"a.nix", "b.nix"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := parseFmtFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFmtFlags: %v", err)
			}
			if cfg.check != tt.wantCheck {
				t.Errorf("check = %t, want %t", cfg.check, tt.wantCheck)
			}
			if cfg.opts != tt.wantOpts {
				t.Errorf("opts = %+v, want %+v", cfg.opts, tt.wantOpts)
			}
			if strings.Join(cfg.paths, ",") != strings.Join(tt.wantPaths, ",") {
				t.Errorf("paths = %v, want %v", cfg.paths, tt.wantPaths)
			}
		})
	}

	if _, err := parseFmtFlags([]string{"--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestFormatAll(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.nix": "{ a = 1; b = 2; }",
		"b.nix": "{a = 1;}\n",
		"c.nix": "{ a = ; }",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := collectNixFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	outcomes := formatAll(paths, false, formatter.DefaultOptions())
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if !outcomes[0].Changed || outcomes[0].Err != nil {
		t.Errorf("a.nix outcome = %+v, want changed", outcomes[0])
	}
	if outcomes[1].Changed || outcomes[1].Err != nil {
		t.Errorf("b.nix outcome = %+v, want unchanged", outcomes[1])
	}
	if outcomes[2].Err == nil {
		t.Errorf("c.nix outcome = %+v, want parse error", outcomes[2])
	}

	var stdout, stderr bytes.Buffer
	err = report(&stdout, &stderr, paths, outcomes, true)
	if err == nil || !strings.Contains(err.Error(), "1 file(s) had errors") {
		t.Errorf("report error = %v", err)
	}
	if !strings.Contains(stderr.String(), "a.nix is not formatted") {
		t.Errorf("stderr missing unformatted report:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "c.nix: ") {
		t.Errorf("stderr missing parse error:\n%s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("check mode wrote to stdout: %q", stdout.String())
	}

	// Check mode must not touch files.
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != files["a.nix"] {
		t.Errorf("a.nix modified in check mode: %q", data)
	}
}

func TestReport(t *testing.T) {
	type tc struct {
		outcomes   []formatter.Outcome
		check      bool
		wantErr    string
		wantStdout string
	}

	files := []string{"a.nix", "b.nix"}
	tests := map[string]tc{
		"all formatted": {
			outcomes: []formatter.Outcome{{}, {}},
		},
		"rewritten": {
			outcomes:   []formatter.Outcome{{Changed: true}, {}},
			wantStdout: "Formatted: a.nix\n",
		},
		"unformatted in check mode": {
			outcomes: []formatter.Outcome{{Changed: true}, {Changed: true}},
			check:    true,
			wantErr:  "2 file(s) not formatted",
		},
		"errors win": {
			outcomes: []formatter.Outcome{{Err: errors.New("boom")}, {Changed: true}},
			check:    true,
			wantErr:  "1 file(s) had errors",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := report(&stdout, &stderr, files, tt.outcomes, tt.check)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
			if stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
		})
	}
}
