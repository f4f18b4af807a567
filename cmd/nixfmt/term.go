package main

import (
	"os"
	"strings"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// colorEnabled reports whether diagnostics on stderr may use color: stderr
// must be a terminal, NO_COLOR unset and TERM not dumb.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	return isTerminal(int(os.Stderr.Fd()))
}

// errorLabel returns the prefix for error lines.
func errorLabel() string {
	if colorEnabled() {
		return ansiRed + "ERROR:" + ansiReset
	}
	return "ERROR:"
}
