// Package termformat lays out text for terminal display: sanitizing control characters, measuring width (ignoring ANSI escapes), and fitting text into
// fixed-width columns.
package termformat
