package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscapes matches the color escape sequences.
var ansiEscapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

// EscapeAwareRuneCountInString counts the runes that are visible
// on the terminal.
func EscapeAwareRuneCountInString(s string) int {
	return utf8.RuneCountInString(ansiEscapes.ReplaceAllString(s, ""))
}

// RightPad pads str with spaces until it is length runes long, not
// counting the escape sequences.
func RightPad(str string, length int) string {
	if pad := length - EscapeAwareRuneCountInString(str); pad > 0 {
		return str + strings.Repeat(" ", pad)
	}
	return str
}
