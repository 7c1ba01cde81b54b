// Package key provides key press types and the key sources that feed the
// prompt.
//
//   - Key: identifies a key (special keys, runes or a paste)
//   - Modifier: Ctrl, Alt, Shift and Meta
//   - Press: a single key press with modifiers and a Handled flag
//   - Source: yields presses one at a time
//
// # Sources
//
// ReaderSource decodes VT input from a terminal. A single read that
// yields four or more printable characters, or a bracketed paste, is
// delivered as one KeyPaste press carrying the whole text, so per-key
// work such as highlighting runs once per paste.
//
// SliceSource replays scripted presses and is used by tests.
//
// # Key Specifications
//
// Parse accepts "a", "Enter", "Ctrl+S", "Ctrl+Shift+Left" and Vim-style
// "<C-s>" notation.
package key
