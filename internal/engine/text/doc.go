// Package text provides the value types and Unicode helpers shared by the
// document model, the wrapping algorithms and the renderer.
//
// Offsets are rune indices into a document. Widths are terminal columns:
// every grapheme cluster occupies 1 or 2 columns, except a newline which
// occupies none.
package text
