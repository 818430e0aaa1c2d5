//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package main

import "errors"

func terminalSize() (cols, lines int, err error) {
	return -1, -1, errors.New("terminal size is not supported on this platform")
}
