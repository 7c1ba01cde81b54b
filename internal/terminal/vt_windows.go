//go:build windows

package terminal

import (
	"os"

	"golang.org/x/sys/windows"
)

// enableVT turns on VT sequence processing for output and VT key
// encoding for input.
func enableVT(in, out *os.File) error {
	if err := addMode(out, windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return err
	}
	return addMode(in, windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
}

func addMode(f *os.File, flags uint32) error {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	return windows.SetConsoleMode(h, mode|flags)
}
