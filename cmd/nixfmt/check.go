package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/nixfmt/internal/syntax"
)

// runCheck implements the check subcommand.
// It parses .nix files and reports every syntax error without formatting.
func runCheck(args []string) error {
	verbose := false
	var paths []string

	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		} else {
			paths = append(paths, arg)
		}
	}

	// Default to current directory if no paths specified
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectNixFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .nix files found")
	}

	if verbose {
		fmt.Printf("Checking %d .nix file(s)\n", len(files))
	}

	var errorCount int
	for _, path := range files {
		if verbose {
			fmt.Printf("Checking %s\n", path)
		}
		if err := checkFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if verbose {
		fmt.Printf("All %d file(s) passed checks\n", len(files))
	}
	return nil
}

// checkFile parses a single file and returns all of its syntax errors.
func checkFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: reading file: %w", path, err)
	}
	file := syntax.Parse(path, string(source))
	return file.Errors().Err()
}
