package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/nixfmt/internal/debug"
	"github.com/grindlemire/nixfmt/pkg/formatter"
)

// fmtConfig holds the parsed flags of the fmt subcommand.
type fmtConfig struct {
	check  bool // report unformatted files, exit 1 if any
	stdout bool // print to stdout instead of modifying files
	opts   formatter.Options
	paths  []string
}

func parseFmtFlags(args []string) (fmtConfig, error) {
	cfg := fmtConfig{opts: formatter.DefaultOptions()}

	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.check, "check", false, "report unformatted files without modifying them")
	fs.BoolVar(&cfg.stdout, "stdout", false, "print formatted output to stdout")
	fs.BoolVar(&cfg.opts.SortAttrs, "sort-attrs", false, "sort attribute set entries by key")
	fs.BoolVar(&cfg.opts.SortFlake, "sort-flake", false, "sort flake inputs by category")
	noSelfFirst := fs.Bool("no-self-first", false, `do not keep "self" first when sorting`)
	fs.IntVar(&cfg.opts.MaxWidth, "width", cfg.opts.MaxWidth, "column limit before entries expand")

	if err := fs.Parse(args); err != nil {
		return fmtConfig{}, err
	}
	cfg.opts.KeepSelfFirst = !*noSelfFirst
	cfg.paths = fs.Args()

	// Default to current directory if no paths specified
	if len(cfg.paths) == 0 {
		cfg.paths = []string{"."}
	}
	return cfg, nil
}

// runFmt implements the fmt subcommand.
// It formats .nix files in place, prints them, or checks formatting.
func runFmt(args []string) error {
	cfg, err := parseFmtFlags(args)
	if err != nil {
		return err
	}

	files, err := collectNixFiles(cfg.paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .nix files found")
	}

	if cfg.stdout {
		return runFmtStdout(os.Stdout, files, cfg.opts)
	}

	outcomes := formatAll(files, !cfg.check, cfg.opts)
	return report(os.Stdout, os.Stderr, files, outcomes, cfg.check)
}

// formatAll formats files in parallel, one goroutine per CPU. Outcomes are
// returned in the order of files.
func formatAll(files []string, inPlace bool, opts formatter.Options) []formatter.Outcome {
	outcomes := make([]formatter.Outcome, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			outcomes[i] = formatter.InFS(path, inPlace, opts)
			debug.Log("%s: changed=%t err=%v", path, outcomes[i].Changed, outcomes[i].Err)
			return nil
		})
	}
	// Failures are per file and live in outcomes.
	_ = g.Wait()

	return outcomes
}

// report prints per-file results and returns an error summarizing failures.
func report(stdout, stderr io.Writer, files []string, outcomes []formatter.Outcome, check bool) error {
	var errorCount, notFormattedCount int
	for i, outcome := range outcomes {
		path := files[i]
		switch {
		case outcome.Err != nil:
			fmt.Fprintf(stderr, "%s %s: %v\n", errorLabel(), path, outcome.Err)
			errorCount++
		case outcome.Changed && check:
			fmt.Fprintf(stderr, "%s %s is not formatted\n", errorLabel(), path)
			notFormattedCount++
		case outcome.Changed:
			fmt.Fprintf(stdout, "Formatted: %s\n", path)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if notFormattedCount > 0 {
		return fmt.Errorf("%d file(s) not formatted", notFormattedCount)
	}
	return nil
}

// runFmtStdout formats files and prints them to w.
func runFmtStdout(w io.Writer, files []string, opts formatter.Options) error {
	var errorCount int

	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: reading file: %v\n", errorLabel(), path, err)
			errorCount++
			continue
		}

		outcome, rendered := formatter.InMemory(path, string(source), opts)
		if outcome.Err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", errorLabel(), path, outcome.Err)
			errorCount++
			continue
		}

		if len(files) > 1 {
			fmt.Fprintf(w, "# %s\n", path)
		}
		fmt.Fprint(w, rendered)
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	return nil
}
