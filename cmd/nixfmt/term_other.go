//go:build !unix && !windows

package main

func isTerminal(int) bool { return false }
