// Package core provides the value types shared by the screen model and
// the diff engine: colors, formats, formatted strings and cells.
//
// Every type here is comparable. The zero Color is the terminal default,
// the zero Format is unformatted text and the zero Cell is an empty
// screen position.
package core
