// Package main provides the nixfmt command line tool.
//
// Usage:
//
//	nixfmt fmt [options] [path...]   Format .nix files
//	nixfmt check [path...]           Check .nix files for syntax errors
//	nixfmt help                      Show help
//
// Examples:
//
//	nixfmt fmt ./...                 Recursively format all .nix files
//	nixfmt fmt --check flake.nix     Report whether a file is formatted
//	nixfmt check ./modules           Check syntax of a directory
package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/nixfmt/internal/debug"
)

const version = "0.1.0"

const usage = `nixfmt - canonical formatter for Nix expressions

Usage:
  nixfmt <command> [options] [path...]

Commands:
  fmt         Format .nix files
  check       Check .nix files for syntax errors
  version     Print version information
  help        Show this help message

Format options:
  --check          Report unformatted files without modifying them
  --stdout         Print formatted output to stdout
  --sort-attrs     Sort attribute set entries by key
  --sort-flake     Sort flake inputs by category
  --no-self-first  Do not keep "self" first when sorting
  --width N        Column limit before entries expand (default 80, 0 disables)

Examples:
  nixfmt fmt ./...                  Recursively format all .nix files
  nixfmt fmt --check ./...          Check formatting without modifying
  nixfmt fmt --stdout default.nix   Print formatted output to stdout
  nixfmt fmt --sort-flake flake.nix Sort the inputs of a flake
  nixfmt check -v ./modules         Check syntax with verbose output

Set NIXFMT_DEBUG to a file path to write a debug log.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}
	defer debug.Close()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "fmt":
		if err := runFmt(args); err != nil {
			fail(err)
		}
	case "check":
		if err := runCheck(args); err != nil {
			fail(err)
		}
	case "version":
		fmt.Printf("nixfmt version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel(), err)
	debug.Close()
	os.Exit(1)
}
