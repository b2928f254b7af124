package main

import (
	"net"
	"os"

	"golang.org/x/term"
)

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// portOf extracts the port from a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return addr
	}
	return port
}
