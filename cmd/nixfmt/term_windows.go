//go:build windows

package main

import "golang.org/x/sys/windows"

// isTerminal reports whether fd refers to a console.
func isTerminal(fd int) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}
